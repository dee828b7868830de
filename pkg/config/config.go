// Package config loads and saves graphic's settings file.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/graphic/config.toml:
//
//	[display]
//	x_dpi = 96.0
//	y_dpi = 96.0
//
//	[export]
//	use_default_resolution = true
//	default_resolution = 96.0
//	custom_resolution = 300.0
//	jpg_bg_colour = "white"
//	other_image_bg_colour = "transparent"
//
//	[style]
//	width = 2.0
//	height = 2.0
//	diameter = 0.2
//	fill = "white"
//
// Missing keys keep their defaults, so a partial file is valid. Exporters
// receive the relevant subset as an [ExportConfig] rather than reading
// settings themselves.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/style"
)

// Config is the full settings file.
type Config struct {
	Display Display      `toml:"display"`
	Export  Export       `toml:"export"`
	Style   style.Params `toml:"style"`
	Cache   Cache        `toml:"cache"`
	Server  Server       `toml:"server"`
}

// Display describes the screen the drawing is sized for.
type Display struct {
	XDPI float64 `toml:"x_dpi"`
	YDPI float64 `toml:"y_dpi"`
}

// Export holds the raster export preferences. Resolutions are in dots per
// inch.
type Export struct {
	UseDefaultResolution bool       `toml:"use_default_resolution"`
	DefaultResolution    float64    `toml:"default_resolution"`
	CustomResolution     float64    `toml:"custom_resolution"`
	JPGBgColour          Background `toml:"jpg_bg_colour"`
	OtherImageBgColour   Background `toml:"other_image_bg_colour"`
}

// Cache selects the render cache backend.
type Cache struct {
	Backend   string `toml:"backend"` // "file", "redis" or "none"
	Dir       string `toml:"dir"`     // file backend; empty for the user cache dir
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"` // Go duration, e.g. "24h"
}

// Server configures `graphic serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Display: Display{XDPI: style.DefaultDPI, YDPI: style.DefaultDPI},
		Export: Export{
			UseDefaultResolution: true,
			DefaultResolution:    style.DefaultDPI,
			CustomResolution:     300,
			JPGBgColour:          Background{Colour: colour.White},
			OtherImageBgColour:   Background{Transparent: true},
		},
		Style: style.DefaultParams(),
		Cache: Cache{Backend: CacheFile, TTL: "24h"},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default location of the settings file.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "graphic", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate home directory")
	}
	return filepath.Join(home, ".config", "graphic", "config.toml"), nil
}

// Load reads the settings at path. A missing file yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	cfg.Style.XDPI, cfg.Style.YDPI = cfg.Display.XDPI, cfg.Display.YDPI
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Display.XDPI <= 0 || c.Display.YDPI <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "display dpi must be positive")
	}
	if c.Export.DefaultResolution <= 0 || c.Export.CustomResolution <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "export resolutions must be positive")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "redis cache needs redis_addr")
	}
	if c.Cache.Dir != "" {
		if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return err
		}
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	p := c.StyleParams()
	return p.Validate()
}

// StyleParams returns the default style with the display density applied.
func (c Config) StyleParams() style.Params {
	p := c.Style
	p.XDPI, p.YDPI = c.Display.XDPI, c.Display.YDPI
	return p
}

// CacheTTL parses the cache TTL. An empty value means no expiry.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "bad cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// ExportConfig is the read-only view of the settings that exporters use.
type ExportConfig struct {
	XDPI, YDPI float64 // density of the drawing's pixel coordinates
	Resolution float64 // output density for raster formats

	JPGBackground   Background
	ImageBackground Background
}

// ExportConfig derives the exporter settings.
func (c Config) ExportConfig() ExportConfig {
	res := c.Export.CustomResolution
	if c.Export.UseDefaultResolution {
		res = c.Export.DefaultResolution
	}
	return ExportConfig{
		XDPI:            c.Display.XDPI,
		YDPI:            c.Display.YDPI,
		Resolution:      res,
		JPGBackground:   c.Export.JPGBgColour,
		ImageBackground: c.Export.OtherImageBgColour,
	}
}

// DefaultExportConfig is Default().ExportConfig().
func DefaultExportConfig() ExportConfig { return Default().ExportConfig() }

// Scale returns the factor from drawing pixels to output pixels.
func (e ExportConfig) Scale() float64 {
	if e.XDPI <= 0 || e.Resolution <= 0 {
		return 1
	}
	return e.Resolution / e.XDPI
}

// Background is an image background: a colour or transparent.
type Background struct {
	Transparent bool
	Colour      colour.RGB
}

const transparent = "transparent"

func (b Background) String() string {
	if b.Transparent {
		return transparent
	}
	return b.Colour.String()
}

// MarshalText encodes the background as "transparent" or a colour.
func (b Background) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts "transparent" or anything colour.Parse does.
func (b *Background) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if strings.EqualFold(s, transparent) {
		*b = Background{Transparent: true}
		return nil
	}
	c, err := colour.Parse(s)
	if err != nil {
		return err
	}
	*b = Background{Colour: c}
	return nil
}
