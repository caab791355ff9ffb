package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		if x, y := a.RandomRange(0, 1000), b.RandomRange(0, 1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestRandomRangeBounds(t *testing.T) {
	s := New(7)
	tests := []struct {
		min, max int
	}{
		{0, 1},
		{3, 10},
		{-5, 5},
		{10, 11},
	}

	for _, tt := range tests {
		for i := 0; i < 200; i++ {
			got := s.RandomRange(tt.min, tt.max)
			if got < tt.min || got >= tt.max {
				t.Errorf("RandomRange(%d, %d) = %d, out of range", tt.min, tt.max, got)
			}
		}
	}
}

func TestRandomRangeEmpty(t *testing.T) {
	s := New(1)
	if got := s.RandomRange(5, 5); got != 5 {
		t.Errorf("RandomRange(5, 5) = %d, want 5", got)
	}
	if got := s.RandomRange(5, 2); got != 5 {
		t.Errorf("RandomRange(5, 2) = %d, want 5", got)
	}
}

func TestPercent(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		p := s.Percent()
		if p < 1 || p > 100 {
			t.Fatalf("Percent() = %d, want 1..100", p)
		}
	}
}

func TestRolld100Extremes(t *testing.T) {
	s := New(3)
	for i := 0; i < 200; i++ {
		if s.Rolld100(0) {
			t.Fatal("Rolld100(0) should never pass")
		}
		if !s.Rolld100(100) {
			t.Fatal("Rolld100(100) should always pass")
		}
	}
}

func TestReseed(t *testing.T) {
	s := New(10)
	first := s.Intn(1 << 30)
	s.Intn(5)

	s.Reseed(10)
	if got := s.Intn(1 << 30); got != first {
		t.Errorf("after Reseed first draw = %d, want %d", got, first)
	}
	if s.Seed() != 10 {
		t.Errorf("Seed() = %d, want 10", s.Seed())
	}
}

func TestPick(t *testing.T) {
	s := New(5)
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[Pick(s, items)] = true
	}
	if len(seen) != 3 {
		t.Errorf("Pick visited %d distinct items, want 3", len(seen))
	}
}
