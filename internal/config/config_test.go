package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, SQLitePath: "./test.db", ExportDir: "."},
		},
		{
			name:   "valid memory config without db path",
			config: Config{Backend: BackendMemory, ExportDir: "."},
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres", SQLitePath: "./test.db", ExportDir: "."},
			wantErr: "invalid backend",
		},
		{
			name:    "sqlite backend without path",
			config:  Config{Backend: BackendSQLite, SQLitePath: "  ", ExportDir: "."},
			wantErr: "sqlite_path cannot be empty",
		},
		{
			name:    "empty export dir",
			config:  Config{Backend: BackendMemory, ExportDir: ""},
			wantErr: "export_dir cannot be empty",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "moneylog_config.json")
	want := Config{Backend: BackendSQLite, SQLitePath: "/tmp/ml.db", ExportDir: "/tmp/exports"}
	if err := want.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Backend != BackendSQLite || got.ExportDir != "." {
		t.Fatalf("defaults = %+v", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MONEYLOG_BACKEND", BackendMemory)
	t.Setenv("MONEYLOG_EXPORT_DIR", "/somewhere")

	got, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Backend != BackendMemory || got.ExportDir != "/somewhere" {
		t.Fatalf("env overrides ignored: %+v", got)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	bad := Config{Backend: "bogus", ExportDir: "."}
	if err := bad.Save(filepath.Join(t.TempDir(), "c.json")); err == nil {
		t.Fatal("expected validation error")
	}
}
