package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdxblog/internal/config"
)

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "MDXBLOG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDXBLOG_CONFIG: config file name or path
	ContentDir string        // MDXBLOG_CONTENT_DIR: posts directory
	OutputDir  string        // MDXBLOG_OUTPUT_DIR: site output directory
	BasePath   string        // MDXBLOG_BASE_PATH: site base path
	SiteURL    string        // MDXBLOG_SITE_URL: absolute site URL
	Theme      string        // MDXBLOG_THEME: chroma style
	Drafts     bool          // MDXBLOG_DRAFTS: include drafts
	Workers    int           // MDXBLOG_WORKERS: parallel workers
	Timeout    time.Duration // MDXBLOG_TIMEOUT: PDF page load timeout
}

// knownEnvVars lists valid MDXBLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDXBLOG_CONFIG":      true,
	"MDXBLOG_CONTENT_DIR": true,
	"MDXBLOG_OUTPUT_DIR":  true,
	"MDXBLOG_BASE_PATH":   true,
	"MDXBLOG_SITE_URL":    true,
	"MDXBLOG_THEME":       true,
	"MDXBLOG_DRAFTS":      true,
	"MDXBLOG_WORKERS":     true,
	"MDXBLOG_TIMEOUT":     true,
}

// loadEnvConfig reads the MDXBLOG_* variables. Malformed numbers, booleans
// and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDXBLOG_CONFIG"),
		ContentDir: getenv("MDXBLOG_CONTENT_DIR"),
		OutputDir:  getenv("MDXBLOG_OUTPUT_DIR"),
		BasePath:   getenv("MDXBLOG_BASE_PATH"),
		SiteURL:    getenv("MDXBLOG_SITE_URL"),
		Theme:      getenv("MDXBLOG_THEME"),
	}

	if v := getenv("MDXBLOG_DRAFTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Drafts = b
		}
	}
	if v := getenv("MDXBLOG_WORKERS"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if v := getenv("MDXBLOG_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDXBLOG_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with the set variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.BasePath != "" {
		cfg.Site.BasePath = env.BasePath
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
	if env.Theme != "" {
		cfg.Code.Theme = env.Theme
	}
	if env.Drafts {
		cfg.Content.IncludeDrafts = true
	}
}
