package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given on the command line.
const DefaultPath = "ruralweb.yaml"

// Config holds all ruralweb configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Markup hooks the behaviors attach to
	Selectors SelectorsConfig `yaml:"selectors"`

	// Class names the behaviors add and remove
	Classes ClassesConfig `yaml:"classes"`

	// Viewport reveal animation
	Reveal RevealConfig `yaml:"reveal"`

	// Scroll behavior
	Scroll ScrollConfig `yaml:"scroll"`

	// Site layout
	Site SiteConfig `yaml:"site"`

	// Headless audit harness
	Check CheckConfig `yaml:"check"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SelectorsConfig names the CSS selectors the behaviors query for.
type SelectorsConfig struct {
	Navbar     string `yaml:"navbar"`
	NavToggle  string `yaml:"nav_toggle"`
	NavMenu    string `yaml:"nav_menu"`
	NavLink    string `yaml:"nav_link"`
	AnchorLink string `yaml:"anchor_link"`
	Reveal     string `yaml:"reveal"`
	Card       string `yaml:"card"`
}

// ClassesConfig names the classes the behaviors toggle.
type ClassesConfig struct {
	Active   string `yaml:"active"`
	Animated string `yaml:"animated"`
	Scrolled string `yaml:"scrolled"`
}

// RevealConfig tunes the viewport reveal animation.
type RevealConfig struct {
	// Trigger line is pulled up from the bottom viewport edge by this much
	BottomInsetPx float64 `yaml:"bottom_inset_px"`

	// Fraction of the element that must be visible to trigger
	Threshold float64 `yaml:"threshold"`

	// Each data-delay unit postpones the reveal by this many milliseconds
	DelayStepMs int `yaml:"delay_step_ms"`

	// Data attribute read for the stagger multiplier (data-<attr>)
	DelayAttr string `yaml:"delay_attr"`
}

// ScrollConfig tunes scroll-linked behavior.
type ScrollConfig struct {
	// Navbar gains the scrolled class past this offset
	ShadowOffsetPx float64 `yaml:"shadow_offset_px"`

	// Animate programmatic scrolls
	Smooth bool `yaml:"smooth"`
}

// SiteConfig describes the static site the behaviors run against.
type SiteConfig struct {
	Dir      string `yaml:"dir"`
	IndexDoc string `yaml:"index_doc"`
}

// CheckConfig configures the headless audit harness.
type CheckConfig struct {
	// Attach to a running Chrome instead of launching one
	DebuggerURL string `yaml:"debugger_url"`

	// Chrome binary plus extra flags; empty means the default launcher
	Launch []string `yaml:"launch"`

	Headless       bool     `yaml:"headless"`
	ViewportWidth  int      `yaml:"viewport_width"`
	ViewportHeight int      `yaml:"viewport_height"`
	NavTimeout     string   `yaml:"nav_timeout"`
	SettleDelay    string   `yaml:"settle_delay"`
	Concurrency    int      `yaml:"concurrency"`
	Pages          []string `yaml:"pages"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ruralweb",
		Version: "0.3.0",

		Selectors: SelectorsConfig{
			Navbar:     ".navbar",
			NavToggle:  ".nav-toggle",
			NavMenu:    ".nav-menu",
			NavLink:    ".nav-link",
			AnchorLink: `a[href^="#"]`,
			Reveal:     ".animate-on-scroll",
			Card:       ".project-card",
		},

		Classes: ClassesConfig{
			Active:   "active",
			Animated: "animated",
			Scrolled: "scrolled",
		},

		Reveal: RevealConfig{
			BottomInsetPx: 50,
			Threshold:     0.10,
			DelayStepMs:   100,
			DelayAttr:     "delay",
		},

		Scroll: ScrollConfig{
			ShadowOffsetPx: 10,
			Smooth:         true,
		},

		Site: SiteConfig{
			Dir:      "site",
			IndexDoc: "index.html",
		},

		Check: CheckConfig{
			Headless: true,
			// mobile width, the menu toggle must be visible to audit it
			ViewportWidth:  390,
			ViewportHeight: 844,
			NavTimeout:     "20s",
			SettleDelay:    "300ms",
			Concurrency:    4,
			Pages:          []string{"index.html", "projects.html", "about.html", "contact.html"},
		},

		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("RURALWEB_SITE_DIR"); dir != "" {
		c.Site.Dir = dir
	}
	if doc := os.Getenv("RURALWEB_INDEX_DOC"); doc != "" {
		c.Site.IndexDoc = doc
	}
	if level := os.Getenv("RURALWEB_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("RURALWEB_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Check.Headless = b
		}
	}
	if pages := os.Getenv("RURALWEB_PAGES"); pages != "" {
		var out []string
		for _, p := range strings.Split(pages, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			c.Check.Pages = out
		}
	}
}

// GetNavTimeout returns the page navigation timeout as a duration.
func (c *Config) GetNavTimeout() time.Duration {
	d, err := time.ParseDuration(c.Check.NavTimeout)
	if err != nil {
		return 20 * time.Second
	}
	return d
}

// GetSettleDelay returns the post-load settle delay as a duration.
func (c *Config) GetSettleDelay() time.Duration {
	d, err := time.ParseDuration(c.Check.SettleDelay)
	if err != nil {
		return 300 * time.Millisecond
	}
	return d
}

// GetDelayStep returns one reveal stagger unit as a duration.
func (c *Config) GetDelayStep() time.Duration {
	if c.Reveal.DelayStepMs < 0 {
		return 0
	}
	return time.Duration(c.Reveal.DelayStepMs) * time.Millisecond
}

// ValidLogLevels lists all supported logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Selectors.Navbar == "" || c.Selectors.NavToggle == "" || c.Selectors.NavMenu == "" {
		return fmt.Errorf("navigation selectors must not be empty")
	}
	if c.Classes.Active == "" || c.Classes.Animated == "" || c.Classes.Scrolled == "" {
		return fmt.Errorf("behavior class names must not be empty")
	}
	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("invalid reveal threshold: %v (must be within [0, 1])", c.Reveal.Threshold)
	}
	if c.Reveal.BottomInsetPx < 0 {
		return fmt.Errorf("invalid reveal bottom inset: %v (must be >= 0)", c.Reveal.BottomInsetPx)
	}
	if c.Scroll.ShadowOffsetPx < 0 {
		return fmt.Errorf("invalid shadow offset: %v (must be >= 0)", c.Scroll.ShadowOffsetPx)
	}
	if c.Site.IndexDoc == "" {
		return fmt.Errorf("site index document must not be empty")
	}
	if c.Check.Concurrency < 1 {
		return fmt.Errorf("invalid check concurrency: %d (must be >= 1)", c.Check.Concurrency)
	}
	if c.Check.ViewportWidth < 1 || c.Check.ViewportHeight < 1 {
		return fmt.Errorf("invalid check viewport: %dx%d", c.Check.ViewportWidth, c.Check.ViewportHeight)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
