package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/nav-landing/pkg/constants"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		create     bool
		wantError  bool
		wantFormat string
		wantDriver string
	}{
		{
			name:       "Non-existent config file yields defaults",
			create:     false,
			wantFormat: constants.OutputFormatPretty,
			wantDriver: constants.StorageDriverSQLite,
		},
		{
			name: "Explicit values",
			content: `logging:
  level: debug
  format: console
output:
  format: csv
storage:
  driver: file
  path: ./simulations
`,
			create:     true,
			wantFormat: constants.OutputFormatCSV,
			wantDriver: constants.StorageDriverFile,
		},
		{
			name: "Unsupported storage driver",
			content: `storage:
  driver: postgres
`,
			create:    true,
			wantError: true,
		},
		{
			name:      "Invalid YAML",
			content:   "logging: [unterminated",
			create:    true,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.create {
				if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
			}

			configuration, err := LoadConfiguration(path)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if configuration.Output.Format != tt.wantFormat {
				t.Errorf("Output.Format = %q, want %q", configuration.Output.Format, tt.wantFormat)
			}
			if configuration.Storage.Driver != tt.wantDriver {
				t.Errorf("Storage.Driver = %q, want %q", configuration.Storage.Driver, tt.wantDriver)
			}
		})
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	t.Setenv("NAVLANDING_OUTPUT_FORMAT", "json")
	t.Setenv("NAVLANDING_STORAGE_PATH", "/tmp/override.db")

	configuration, err := LoadConfigurationFromReader(strings.NewReader("output:\n  format: csv\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if configuration.Output.Format != constants.OutputFormatJSON {
		t.Errorf("Output.Format = %q, want env override %q", configuration.Output.Format, constants.OutputFormatJSON)
	}
	if configuration.Storage.Path != "/tmp/override.db" {
		t.Errorf("Storage.Path = %q, want env override", configuration.Storage.Path)
	}
}
