// Package config loads propedit settings from YAML and builds the resolver
// registry they describe.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	holonlog "github.com/holon-run/propedit/pkg/log"
	"github.com/holon-run/propedit/pkg/resource"
)

const defaultTokenEnv = "GITHUB_TOKEN"

// Config is the on-disk configuration.
type Config struct {
	SearchPath   []SearchPathEntry `yaml:"searchPath,omitempty"`
	Schemes      []string          `yaml:"schemes,omitempty"`
	Placeholders bool              `yaml:"placeholders,omitempty"`
	GitHub       GitHubConfig      `yaml:"github,omitempty"`
	Log          LogConfig         `yaml:"log,omitempty"`

	// baseDir anchors relative search path entries; set by Load.
	baseDir string
}

// SearchPathEntry names exactly one of a directory or a zip archive.
type SearchPathEntry struct {
	Dir     string `yaml:"dir,omitempty"`
	Archive string `yaml:"archive,omitempty"`
}

// GitHubConfig enables github: locators.
type GitHubConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	TokenEnv string `yaml:"tokenEnv,omitempty"`
	APIURL   string `yaml:"apiURL,omitempty"`
	WebURL   string `yaml:"webURL,omitempty"`
}

// LogConfig mirrors log.Config.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns an empty configuration anchored at the working directory.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  string(holonlog.DefaultConfig().Level),
			Format: holonlog.DefaultConfig().Format,
		},
	}
}

// Load reads a YAML config file. Relative search path entries are resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.baseDir = filepath.Dir(abs)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	for i, e := range c.SearchPath {
		if (e.Dir == "") == (e.Archive == "") {
			return fmt.Errorf("searchPath[%d]: exactly one of dir or archive must be set", i)
		}
	}
	if _, err := resource.NewSchemes(c.Schemes...); err != nil {
		return fmt.Errorf("schemes: %w", err)
	}
	if _, err := holonlog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Log.Format {
	case "", holonlog.FormatConsole, holonlog.FormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

// AddSearchPath appends a search path entry, treating .zip and .jar files as
// archives.
func (c *Config) AddSearchPath(p string) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".zip", ".jar":
		c.SearchPath = append(c.SearchPath, SearchPathEntry{Archive: p})
	default:
		c.SearchPath = append(c.SearchPath, SearchPathEntry{Dir: p})
	}
}

func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// LoggerConfig returns the logger configuration.
func (c *Config) LoggerConfig() (holonlog.Config, error) {
	level, err := holonlog.ParseLevel(c.Log.Level)
	if err != nil {
		return holonlog.Config{}, err
	}
	return holonlog.Config{Level: level, Format: c.Log.Format}, nil
}

// BuildRegistry assembles the resolver registry described by c.
func (c *Config) BuildRegistry() (*resource.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	schemes, err := resource.NewSchemes(c.Schemes...)
	if err != nil {
		return nil, err
	}

	sp := make(resource.SearchPaths, 0, len(c.SearchPath))
	for _, e := range c.SearchPath {
		if e.Dir != "" {
			sp = append(sp, resource.DirSearchPath{Root: c.resolvePath(e.Dir)})
		} else {
			sp = append(sp, resource.ArchiveSearchPath{Path: c.resolvePath(e.Archive)})
		}
	}

	opts := []resource.Option{
		resource.WithSchemes(schemes),
		resource.WithSearchPath(sp),
	}
	if c.Placeholders {
		opts = append(opts, resource.WithPlaceholders(nil))
	}
	if c.GitHub.Enabled {
		tokenEnv := c.GitHub.TokenEnv
		if tokenEnv == "" {
			tokenEnv = defaultTokenEnv
		}
		token := os.Getenv(tokenEnv)
		if token == "" {
			holonlog.Warn("github locators enabled without a token; API rate limits apply", "tokenEnv", tokenEnv)
		}
		opts = append(opts, resource.WithResolver(resource.NewGitHubResolver(
			resource.WithGitHubAPIBaseURL(c.GitHub.APIURL),
			resource.WithGitHubBaseURL(c.GitHub.WebURL),
			resource.WithGitHubToken(token),
		)))
	}

	holonlog.Info("built resolver registry", "searchPath", len(sp), "schemes", schemes.Names(), "github", c.GitHub.Enabled)
	return resource.NewRegistry(opts...), nil
}
