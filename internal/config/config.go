package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdxblog/internal/dateutil"
	"github.com/alnah/go-mdxblog/internal/fileutil"
	"github.com/alnah/go-mdxblog/internal/yamlutil"
)

// AppName names the user config directory.
const AppName = "go-mdxblog"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxAuthorLength      = 100
	MaxURLLength         = 2048 // Browser limit
	MaxPathLength        = 4096
	MaxPatternLength     = 200
	MaxThemeLength       = 50
	MaxWordsPerMinute    = 2000
)

// Defaults applied by DefaultConfig.
const (
	DefaultContentDir     = "posts"
	DefaultContentPattern = "**.{md,mdx}"
	DefaultOutputDir      = "public"
	DefaultTheme          = "github"
	DefaultWordsPerMinute = 300
)

// Config holds all configuration for building the blog.
type Config struct {
	Site       SiteConfig    `yaml:"site"`
	Content    ContentConfig `yaml:"content"`
	Output     OutputConfig  `yaml:"output"`
	Code       CodeConfig    `yaml:"code"`
	Assets     AssetsConfig  `yaml:"assets"`
	DateFormat string        `yaml:"dateFormat"` // Preset or token layout (see dateutil)
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"` // Absolute site URL, used by the feed
	Author      string `yaml:"author"`
	BasePath    string `yaml:"basePath"` // Prefix of internal links, e.g. "/blog"
}

// ContentConfig selects the posts.
type ContentConfig struct {
	Dir            string `yaml:"dir"`
	Pattern        string `yaml:"pattern"` // Glob over slash separated paths
	IncludeDrafts  bool   `yaml:"includeDrafts"`
	WordsPerMinute int    `yaml:"wordsPerMinute"`
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// CodeConfig defines code block rendering.
type CodeConfig struct {
	Theme string `yaml:"theme"` // Chroma style name
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and values. Called by LoadConfig, but
// available for callers who build a Config in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.author", c.Site.Author, MaxAuthorLength},
		{"site.url", c.Site.URL, MaxURLLength},
		{"site.basePath", c.Site.BasePath, MaxURLLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"content.pattern", c.Content.Pattern, MaxPatternLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"code.theme", c.Code.Theme, MaxThemeLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.URL != "" && !fileutil.IsURL(c.Site.URL) {
		return fmt.Errorf("%w: site.url must be an absolute http(s) URL, got %q", ErrInvalidValue, c.Site.URL)
	}
	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("%w: site.basePath must start with /, got %q", ErrInvalidValue, c.Site.BasePath)
	}
	if c.Content.WordsPerMinute < 0 || c.Content.WordsPerMinute > MaxWordsPerMinute {
		return fmt.Errorf("%w: content.wordsPerMinute must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWordsPerMinute, c.Content.WordsPerMinute)
	}
	if c.DateFormat != "" {
		if _, err := dateutil.Layout(c.DateFormat); err != nil {
			return fmt.Errorf("dateFormat: %w", err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Site:    SiteConfig{Title: "Blog"},
		Content: ContentConfig{Dir: DefaultContentDir, Pattern: DefaultContentPattern, WordsPerMinute: DefaultWordsPerMinute},
		Output:  OutputConfig{Dir: DefaultOutputDir},
		Code:    CodeConfig{Theme: DefaultTheme},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdxblog/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
