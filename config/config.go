package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	ExtractorScan = "scan"
	ExtractorGrep = "grep"
)

// FolderMapping sends the icons of one source tree to scalable/<Dest> in the output.
type FolderMapping struct {
	Source string `mapstructure:"source"`
	Dest   string `mapstructure:"dest"`
}

// Template binds a palette to the source trees recolored with it.
type Template struct {
	ColorRef       string          `mapstructure:"color_ref"`
	FolderMappings []FolderMapping `mapstructure:"folder_mappings"`
}

type Config struct {
	OutputDir   string     `mapstructure:"output_dir"`
	ThemeName   string     `mapstructure:"theme_name"`
	Placeholder string     `mapstructure:"placeholder"`
	Extractor   string     `mapstructure:"extractor"`
	Workers     int        `mapstructure:"workers"`
	Extensions  []string   `mapstructure:"extensions"`
	Templates   []Template `mapstructure:"templates"`

	// single template shorthand
	ColorRef       string          `mapstructure:"color_ref"`
	FolderMappings []FolderMapping `mapstructure:"folder_mappings"`

	// Path of the file the config was read from, empty for readers.
	Path string `mapstructure:"-"`
}

// DefaultPath is ~/.config/theme/templates/icon-theme/config.yml.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("~", ".config", "theme", "templates", "icon-theme", "config.yml")
	}
	return filepath.Join(configDir, "theme", "templates", "icon-theme", "config.yml")
}

func defaultOutputDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("~", ".config", "theme", "templates", "icon-theme", "generated")
	}
	return filepath.Join(configDir, "theme", "templates", "icon-theme", "generated")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("output_dir", defaultOutputDir())
	v.SetDefault("theme_name", "{{ theme_name }}")
	v.SetDefault("placeholder", "{{ theme.colors.%s }}")
	v.SetDefault("extractor", ExtractorScan)
	v.SetDefault("workers", 1)
	v.SetDefault("extensions", []string{".svg"})

	v.SetEnvPrefix("ICON_THEME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads a YAML config file. Environment variables prefixed with ICON_THEME_ override
// scalar settings, e.g. ICON_THEME_OUTPUT_DIR. Relative paths are resolved against the
// directory of the file.
func Load(path string) (*Config, error) {
	path = ExpandHome(path)

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := decode(v, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Read parses a YAML config from r. Relative paths are resolved against baseDir.
func Read(r io.Reader, baseDir string) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return decode(v, baseDir)
}

func decode(v *viper.Viper, baseDir string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.normalize(baseDir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize(baseDir string) {
	if c.ColorRef != "" || len(c.FolderMappings) > 0 {
		c.Templates = append([]Template{{ColorRef: c.ColorRef, FolderMappings: c.FolderMappings}}, c.Templates...)
		c.ColorRef, c.FolderMappings = "", nil
	}

	c.OutputDir = resolve(baseDir, c.OutputDir)
	c.Extractor = strings.ToLower(strings.TrimSpace(c.Extractor))
	for i := range c.Extensions {
		if ext := c.Extensions[i]; ext != "" && !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}

	for i := range c.Templates {
		t := &c.Templates[i]
		t.ColorRef = resolve(baseDir, t.ColorRef)
		for j := range t.FolderMappings {
			m := &t.FolderMappings[j]
			m.Source = resolve(baseDir, m.Source)
			m.Dest = strings.Trim(m.Dest, "/")
		}
	}
}

func (c *Config) Validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("no templates configured")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers count: %d", c.Workers)
	}

	switch c.Extractor {
	case ExtractorScan, ExtractorGrep:
	default:
		return fmt.Errorf("unsupported extractor: %s", c.Extractor)
	}

	if strings.Count(c.Placeholder, "%s") != 1 {
		return fmt.Errorf("placeholder %q must contain exactly one %%s", c.Placeholder)
	}

	for i, t := range c.Templates {
		if t.ColorRef == "" {
			return fmt.Errorf("template %d: color_ref is required", i)
		}
		if len(t.FolderMappings) == 0 {
			return fmt.Errorf("template %d: no folder_mappings", i)
		}
		for j, m := range t.FolderMappings {
			if m.Source == "" {
				return fmt.Errorf("template %d mapping %d: source is required", i, j)
			}
			if m.Dest == "" || m.Dest == "." || m.Dest == ".." || strings.ContainsAny(m.Dest, `/\`) {
				return fmt.Errorf("template %d mapping %d: invalid dest %q, should be a single folder name", i, j, m.Dest)
			}
		}
	}

	return nil
}

// DestPath is the folder a mapping's icons are written to.
func (c *Config) DestPath(dest string) string {
	return filepath.Join(c.OutputDir, "scalable", dest)
}

// Directories lists every destination folder name, sorted and unique.
func (c *Config) Directories() []string {
	var dirs []string
	for _, t := range c.Templates {
		for _, m := range t.FolderMappings {
			dirs = append(dirs, m.Dest)
		}
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// ColorRefs lists the palette files the config depends on.
func (c *Config) ColorRefs() []string {
	refs := make([]string, 0, len(c.Templates))
	for _, t := range c.Templates {
		refs = append(refs, t.ColorRef)
	}
	return refs
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func resolve(baseDir, path string) string {
	if path == "" {
		return ""
	}
	path = ExpandHome(path)
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path)
}
