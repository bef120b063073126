package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/holon-run/propedit/pkg/resource"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "resources", "conf", "app.yaml"), "name: app\n")
	cfgPath := filepath.Join(dir, "propedit.yaml")
	writeFile(t, cfgPath, `
searchPath:
  - dir: resources
schemes: [s3, gs]
placeholders: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.SearchPath) != 1 || cfg.SearchPath[0].Dir != "resources" {
		t.Errorf("SearchPath = %+v, want one dir entry", cfg.SearchPath)
	}
	if !cfg.Placeholders {
		t.Error("Placeholders = false, want true")
	}

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		t.Fatalf("LoggerConfig() error = %v", err)
	}
	if logCfg.Level != "debug" || logCfg.Format != "json" {
		t.Errorf("LoggerConfig() = %+v", logCfg)
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry() error = %v", err)
	}

	// relative search path is anchored at the config file
	u, err := registry.Resolve(context.Background(), "classpath:conf/app.yaml")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := resource.FileURL(filepath.Join(dir, "resources", "conf", "app.yaml")).String()
	if u.String() != want {
		t.Errorf("Resolve() = %q, want %q", u, want)
	}

	if _, err := registry.Resolve(context.Background(), "s3://bucket/key"); err != nil {
		t.Errorf("Resolve(s3) error = %v", err)
	}

	t.Setenv("PROPEDIT_CONFIG_TEST", "conf")
	if _, err := registry.Resolve(context.Background(), "classpath:${PROPEDIT_CONFIG_TEST}/app.yaml"); err != nil {
		t.Errorf("Resolve(placeholder) error = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "malformed yaml",
			content: "searchPath: [",
			wantMsg: "failed to parse config",
		},
		{
			name:    "entry with both dir and archive",
			content: `
searchPath:
  - dir: a
    archive: b.zip
`,
			wantMsg: "exactly one of dir or archive",
		},
		{
			name:    "entry with neither",
			content: "searchPath:\n  - {}\n",
			wantMsg: "exactly one of dir or archive",
		},
		{
			name:    "reserved scheme",
			content: "schemes: [classpath]\n",
			wantMsg: "reserved",
		},
		{
			name:    "bad log level",
			content: "log:\n  level: loud\n",
			wantMsg: "unknown log level",
		},
		{
			name:    "bad log format",
			content: "log:\n  format: xml\n",
			wantMsg: "unknown format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "propedit.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestAddSearchPath(t *testing.T) {
	cfg := Default()
	cfg.AddSearchPath("lib/bundle.jar")
	cfg.AddSearchPath("lib/other.ZIP")
	cfg.AddSearchPath("resources")

	want := []SearchPathEntry{
		{Archive: "lib/bundle.jar"},
		{Archive: "lib/other.ZIP"},
		{Dir: "resources"},
	}
	if len(cfg.SearchPath) != len(want) {
		t.Fatalf("SearchPath = %+v, want %+v", cfg.SearchPath, want)
	}
	for i := range want {
		if cfg.SearchPath[i] != want[i] {
			t.Errorf("SearchPath[%d] = %+v, want %+v", i, cfg.SearchPath[i], want[i])
		}
	}
}

func TestBuildRegistryDefault(t *testing.T) {
	registry, err := Default().BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry() error = %v", err)
	}
	_, err = registry.Resolve(context.Background(), "gonna:/freak/in/the/morning")
	if !errors.Is(err, resource.ErrInvalidLocator) {
		t.Errorf("Resolve() error = %v, want ErrInvalidLocator", err)
	}
}
