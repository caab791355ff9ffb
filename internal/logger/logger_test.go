package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := parseLogLevel(tt.input); result != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	if config.Level != "WARNING" {
		t.Errorf("Default level = %q, want %q", config.Level, "WARNING")
	}
	if !config.ConsoleEnabled {
		t.Error("Default ConsoleEnabled = false, want true")
	}
	if config.FileEnabled {
		t.Error("Default FileEnabled = true, want false")
	}
	if config.FilePath != "logs/mapgen.log" {
		t.Errorf("Default FilePath = %q, want %q", config.FilePath, "logs/mapgen.log")
	}
}

func TestLoadConfigFromLevelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	content := `seed: 7
algorithm: cellular_automata
logging:
  level: DEBUG
  console_format: json
  file_enabled: true
  file_path: gen.log
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want json", config.ConsoleFormat)
	}
	if !config.FileEnabled || config.FilePath != "gen.log" {
		t.Errorf("file settings = %v %q", config.FileEnabled, config.FilePath)
	}
	// Keys absent from the file keep their defaults.
	if config.FileMaxSizeMB != 10 || !config.ConsoleEnabled {
		t.Errorf("defaults lost: %+v", config)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("logging: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfig(path)
	if err == nil {
		t.Error("LoadConfig should report the parse error")
	}
	if config.Level != DefaultConfig().Level {
		t.Errorf("Level = %q, want the default", config.Level)
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestInitializeWriter(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	InitializeWriter(&buf, "INFO")

	Info("Joined isolated area", "corridor", 4)
	Debug("This should not appear")

	output := buf.String()
	if !strings.Contains(output, "Joined isolated area") || !strings.Contains(output, "corridor=4") {
		t.Errorf("Output missing INFO message: %s", output)
	}
	if strings.Contains(output, "This should not appear") {
		t.Errorf("Output contains DEBUG message when level is INFO: %s", output)
	}
	if !Enabled(slog.LevelWarn) || Enabled(slog.LevelDebug) {
		t.Error("Enabled() does not follow the configured level")
	}
}

func TestInitializeFile(t *testing.T) {
	defer Reset()
	path := filepath.Join(t.TempDir(), "nested", "mapgen.log")

	err := Initialize(Config{
		Level:          "DEBUG",
		FileEnabled:    true,
		FilePath:       path,
		FileFormat:     "json",
		FileMaxSizeMB:  1,
		FileMaxBackups: 1,
		FileMaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	Debug("Generated maze", "floor", 12)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"Generated maze"`) || !strings.Contains(string(data), `"floor":12`) {
		t.Errorf("unexpected log file contents: %s", data)
	}
}

func TestInitializeSilenced(t *testing.T) {
	defer Reset()
	if err := Initialize(Config{Level: "DEBUG"}); err != nil {
		t.Fatal(err)
	}
	if Enabled(LevelAlways) {
		t.Error("no handlers configured should leave the sink silent")
	}
}

func TestAlwaysBypassesLogLevel(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	InitializeWriter(&buf, "ERROR")

	Debug("Debug message")
	Info("Info message")
	Warning("Warning")
	Error("Error message")
	Always("Always message")

	output := buf.String()
	for _, hidden := range []string{"Debug message", "Info message", "Warning"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q appeared when level is ERROR", hidden)
		}
	}
	if !strings.Contains(output, "Error message") {
		t.Error("ERROR message missing from output")
	}
	if !strings.Contains(output, "level=ALWAYS") {
		t.Error("ALWAYS level not formatted correctly")
	}
}

func TestMultiHandler(t *testing.T) {
	defer Reset()
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelError})
	logger = slog.New(newMultiHandler(handler1, handler2))

	Info("Multi-handler test", "field", "value")

	if !strings.Contains(buf1.String(), "field=value") {
		t.Error("First handler did not receive message")
	}
	if buf2.Len() != 0 {
		t.Error("Second handler should filter INFO")
	}
}

func TestNilLogger(t *testing.T) {
	Reset()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logging with nil logger caused panic: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
	Always("always")
	if Enabled(slog.LevelError) {
		t.Error("nil logger reports enabled")
	}
}
