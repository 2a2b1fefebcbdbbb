package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/username/bizdate/pkg/offset"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("BIZDATE_TEST_DIR", "/var/log/bizdate")
	path := writeConfig(t, `
logging:
  file: ${BIZDATE_TEST_DIR}/bizdate.log
  level: debug
offset:
  default_unit: m
export:
  snapshot_file: results.gob
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%v) error = %v", path, err)
	}

	if cfg.Logging.File != "/var/log/bizdate/bizdate.log" {
		t.Errorf("Logging.File = %v, want expanded path", cfg.Logging.File)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if got := cfg.Offset.GetDefaultUnit(); got != offset.Months {
		t.Errorf("GetDefaultUnit() = %v, want M", got)
	}
	if cfg.Offset.DateLayout != "2006-01-02" {
		t.Errorf("DateLayout = %v, want default", cfg.Offset.DateLayout)
	}
	if cfg.Export.SnapshotFile != "results.gob" {
		t.Errorf("Export.SnapshotFile = %v, want results.gob", cfg.Export.SnapshotFile)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load(absent) error = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %v, want info", cfg.Logging.Level)
	}
	if got := cfg.Offset.GetDefaultUnit(); got != offset.BusinessDays {
		t.Errorf("GetDefaultUnit() = %v, want BD", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BIZDATE_OFFSET_DEFAULT_UNIT", "Y")
	path := writeConfig(t, "offset:\n  default_unit: BD\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%v) error = %v", path, err)
	}
	if got := cfg.Offset.GetDefaultUnit(); got != offset.Years {
		t.Errorf("GetDefaultUnit() = %v, want Y from environment", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			"Valid",
			Config{Logging: LoggingConfig{Level: "info"}, Offset: OffsetConfig{DefaultUnit: "BD", DateLayout: "2006-01-02"}},
			false,
		},
		{
			"Bad unit",
			Config{Logging: LoggingConfig{Level: "info"}, Offset: OffsetConfig{DefaultUnit: "W", DateLayout: "2006-01-02"}},
			true,
		},
		{
			"Empty layout",
			Config{Logging: LoggingConfig{Level: "info"}, Offset: OffsetConfig{DefaultUnit: "BD"}},
			true,
		},
		{
			"Bad level",
			Config{Logging: LoggingConfig{Level: "loud"}, Offset: OffsetConfig{DefaultUnit: "BD", DateLayout: "2006-01-02"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
