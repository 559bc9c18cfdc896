package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"aoctui/internal/errors"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// TokenEnv is the environment variable that overrides the configured session token.
const TokenEnv = "AOC_SESSION_TOKEN"

// DefaultBaseURL is the site the events listing is scraped from.
const DefaultBaseURL = "https://adventofcode.com"

// Config represents the application configuration structure.
type Config struct {
	Session struct {
		Token *string `yaml:"token,omitempty" toml:"token,omitempty"` // Session cookie value; nil when unset
	} `yaml:"session" toml:"session"`
	Site struct {
		BaseURL        string `yaml:"base_url" toml:"base_url"`               // Scheme and host of the events site
		UserAgent      string `yaml:"user_agent" toml:"user_agent"`           // User-Agent header sent with requests
		RequestTimeout int    `yaml:"request_timeout" toml:"request_timeout"` // Seconds; 0 waits forever
	} `yaml:"site" toml:"site"`
	Display struct {
		Title  string   `yaml:"title" toml:"title"`   // Title bar text
		FPS    int      `yaml:"fps" toml:"fps"`       // Redraw ticks per second
		Filter []string `yaml:"filter" toml:"filter"` // Globs over event labels; empty shows all
	} `yaml:"display" toml:"display"`
	Watch   bool   `yaml:"watch" toml:"watch"`       // Reload the session token when this file changes
	LogFile string `yaml:"log_file" toml:"log_file"` // Log destination; empty disables logging
	Theme   struct {
		Name     string `yaml:"name" toml:"name"`         // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary" toml:"primary"`   // Title bar and table header
		Emphasis string `yaml:"emphasis" toml:"emphasis"` // Selected row
		Error    string `yaml:"error" toml:"error"`       // Error status
		Help     string `yaml:"help" toml:"help"`         // Footer hints
		Border   string `yaml:"border" toml:"border"`     // Border color for frames
	} `yaml:"theme" toml:"theme"`
}

// DefaultPath returns ~/.config/aoctui/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "aoctui", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
// The format is picked from the extension: .toml is TOML, anything else YAML.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.resolveTheme()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// ApplyEnv overrides the session token from the environment. A variable
// that is set but empty still counts as a token.
func (c *Config) ApplyEnv() {
	if token, ok := os.LookupEnv(TokenEnv); ok {
		c.Session.Token = &token
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Site.BaseURL = DefaultBaseURL
	cfg.Site.UserAgent = "aoctui (+https://github.com/aoctui/aoctui)"
	cfg.Site.RequestTimeout = 30

	cfg.Display.Title = "AOC-TUI"
	cfg.Display.FPS = 60
	cfg.Display.Filter = []string{}

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = []byte(sb.String())
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	// The file may hold a session token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	u, err := url.Parse(c.Site.BaseURL)
	if err != nil {
		return errors.NewConfigError("invalid base url", "site.base_url", errors.InvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigError("base url must be an absolute http(s) url", "site.base_url", errors.InvalidConfig, nil)
	}

	if c.Site.RequestTimeout < 0 {
		return errors.NewConfigError("request timeout must be >= 0 seconds", "site.request_timeout", errors.InvalidConfig, nil)
	}

	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return errors.NewConfigError("fps must be between 1 and 240", "display.fps", errors.InvalidConfig, nil)
	}

	for i, pattern := range c.Display.Filter {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError(fmt.Sprintf("filter %d: bad glob", i), "display.filter", errors.InvalidConfig, err)
		}
	}

	return nil
}

// Redacted returns a copy safe to print: the token, if any, is masked.
func (c *Config) Redacted() *Config {
	cp := *c
	cp.Display.Filter = append([]string(nil), c.Display.Filter...)
	if c.Session.Token != nil {
		masked := "********"
		if *c.Session.Token == "" {
			masked = ""
		}
		cp.Session.Token = &masked
	}
	return &cp
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "#FFFF66", // Gold
			"emphasis": "#00CC00", // Green
			"error":    "196",     // Red
			"help":     "#5A9",    // Teal
			"border":   "#626262", // Grey
		},
		"dark": {
			"primary":  "105",
			"emphasis": "78",
			"error":    "160",
			"help":     "33",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"emphasis": "150",
			"error":    "210",
			"help":     "117",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"emphasis": "255",
			"error":    "232",
			"help":     "248",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Error = theme["error"]
	c.Theme.Help = theme["help"]
	c.Theme.Border = theme["border"]
}

// resolveTheme fills colors the file left at their defaults from the named theme.
func (c *Config) resolveTheme() {
	base := GetTheme("default")
	named := GetTheme(c.Theme.Name)
	pick := func(current, key string) string {
		if current == "" || current == base[key] {
			return named[key]
		}
		return current
	}
	c.Theme.Primary = pick(c.Theme.Primary, "primary")
	c.Theme.Emphasis = pick(c.Theme.Emphasis, "emphasis")
	c.Theme.Error = pick(c.Theme.Error, "error")
	c.Theme.Help = pick(c.Theme.Help, "help")
	c.Theme.Border = pick(c.Theme.Border, "border")
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
