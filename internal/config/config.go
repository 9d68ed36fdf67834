// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"kbsite/internal/util"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultFile is looked up in the repository root when no --config flag is given.
	DefaultFile = "kbsite.yaml"

	HelpRendererLines    = "lines"
	HelpRendererMarkdown = "markdown"
)

// flagKeys maps config keys to the CLI flag names that may override them.
var flagKeys = map[string]string{
	"root":          "root",
	"output":        "output",
	"repository":    "repository",
	"branch":        "branch",
	"help_renderer": "help-renderer",
	"theme_color":   "theme-color",
	"verbose":       "verbose",
}

// SiteConfig holds the settings for one build. The `mapstructure` tags are used by
// viper to map config keys, environment variables and flags onto fields.
type SiteConfig struct {
	Root         string `mapstructure:"root"`
	Output       string `mapstructure:"output"`
	Repository   string `mapstructure:"repository"`
	Branch       string `mapstructure:"branch"`
	HelpRenderer string `mapstructure:"help_renderer"`
	ThemeColor   string `mapstructure:"theme_color"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load resolves the configuration in increasing order of precedence: defaults, the
// config file, KBSITE_* environment variables (GITHUB_REPOSITORY for the repository),
// then any flags that were explicitly set.
func Load(configFile, root string, flags *pflag.FlagSet) (SiteConfig, error) {
	v := viper.New()

	v.SetDefault("root", root)
	v.SetDefault("output", "")
	v.SetDefault("repository", "")
	v.SetDefault("branch", "main")
	v.SetDefault("help_renderer", HelpRendererLines)
	v.SetDefault("theme_color", "#2c3e50")
	v.SetDefault("verbose", false)

	explicit := configFile != ""
	if explicit {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(root)
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("KBSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("repository", "KBSITE_REPOSITORY", "GITHUB_REPOSITORY"); err != nil {
		return SiteConfig{}, fmt.Errorf("could not bind repository env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && !explicit:
			// optional
		default:
			return SiteConfig{}, fmt.Errorf("could not read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return SiteConfig{}, fmt.Errorf("could not bind flag --%s: %w", name, err)
			}
		}
	}

	cfg := SiteConfig{}
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Root == "" {
		cfg.Root = root
	}
	if cfg.Root != "" {
		abs, err := filepath.Abs(cfg.Root)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("invalid root %q: %w", cfg.Root, err)
		}
		cfg.Root = abs
	}
	if cfg.Output == "" {
		cfg.Output = cfg.Root
	}
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func (c SiteConfig) Validate() error {
	switch c.HelpRenderer {
	case HelpRendererLines, HelpRendererMarkdown:
	default:
		return fmt.Errorf("invalid help_renderer %q: want %q or %q", c.HelpRenderer, HelpRendererLines, HelpRendererMarkdown)
	}
	if c.Root == "" {
		return errors.New("root directory is not set")
	}
	return nil
}

// SiteNameFallback derives a display name from the repository slug,
// e.g. "acme/smith-law-group" becomes "Smith Law Group".
func (c SiteConfig) SiteNameFallback() string {
	repo := strings.TrimSpace(c.Repository)
	if repo == "" {
		return "Site"
	}
	if i := strings.Index(repo, "/"); i >= 0 {
		repo = repo[i+1:]
	}
	name := strings.TrimSpace(strings.ReplaceAll(repo, "-", " "))
	if name == "" {
		return "Site"
	}
	return util.TitleCase(name)
}

// RawBaseURL is the prefix for raw file links, empty when no repository is known.
func (c SiteConfig) RawBaseURL() string {
	if c.Repository == "" {
		return ""
	}
	branch := c.Branch
	if branch == "" {
		branch = "main"
	}
	return "https://raw.githubusercontent.com/" + c.Repository + "/" + branch
}
