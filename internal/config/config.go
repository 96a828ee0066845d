package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Platforms
const (
	PlatformSim    = "sim"
	PlatformRPi    = "rpi"
	PlatformCdev   = "cdev"
	PlatformPeriph = "periph"
)

// Errors
var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrNoStrips        = errors.New("no strips configured")
	ErrStripName       = errors.New("strip name missing or duplicate")
	ErrStripCount      = errors.New("strip count must be positive")
	ErrStripLanes      = errors.New("strip lanes must be between 1 and 8")
	ErrStripPin        = errors.New("strip pin missing")
)

//PowerCfg is the power budget of all strips. Zero disables the limit.
type PowerCfg struct {
	Volts     uint8  `yaml:"volts"`
	Milliamps uint32 `yaml:"milliamps"`
}

//SimCfg configures the simulated board.
type SimCfg struct {
	CyclesPerUs uint32 `yaml:"cycles_per_us"`
}

//Strip is one controller.
type Strip struct {
	Name      string `yaml:"name"`
	Chipset   string `yaml:"chipset"`             // e.g. WS2812, APA102
	Pin       string `yaml:"pin,omitempty"`       // data pin, platform specific name
	ClockPin  string `yaml:"clock_pin,omitempty"` // clocked chipsets without spi_dev
	SelectPin string `yaml:"select_pin,omitempty"`
	Lanes     int    `yaml:"lanes,omitempty"` // >1 drives a parallel block on the port
	Order     string `yaml:"order,omitempty"` // overrides the chipset order
	Count     int    `yaml:"count"`           // pixels, per lane for blocks
	SPIDev    string `yaml:"spi_dev,omitempty"`
	SpeedHz   int64  `yaml:"speed_hz,omitempty"`
}

//Pixels is the number of pixels in the buffer of the strip.
func (s Strip) Pixels() int {
	if s.Lanes > 1 {
		return s.Count * s.Lanes
	}
	return s.Count
}

//Config is everything the host program needs to build its strips.
type Config struct {
	Platform       string   `yaml:"platform"` // sim | rpi | cdev | periph
	Chip           string   `yaml:"chip,omitempty"`
	Brightness     uint8    `yaml:"brightness"`
	MaxRefreshRate uint16   `yaml:"max_refresh_rate"`
	Dither         bool     `yaml:"dither"`
	Correction     string   `yaml:"correction,omitempty"`  // 0xRRGGBB or a name
	Temperature    string   `yaml:"temperature,omitempty"` // 0xRRGGBB or a name
	Power          PowerCfg `yaml:"power,omitempty"`
	Sim            SimCfg   `yaml:"sim,omitempty"`
	Strips         []Strip  `yaml:"strips"`
}

//Default returns a configuration of one simulated WS2812 strip.
func Default() *Config {
	return &Config{
		Platform:       PlatformSim,
		Brightness:     128,
		MaxRefreshRate: 60,
		Dither:         true,
		Sim:            SimCfg{CyclesPerUs: 64},
		Strips: []Strip{
			{Name: "main", Chipset: "WS2812", Pin: "data", Count: 30},
		},
	}
}

//Load reads the configuration at path. Values not in the file keep their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config load")
	}
	c := Default()
	c.Strips = nil
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrapf(err, "config parse %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

//Save writes c to path as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "config save")
	}
	return os.WriteFile(path, b, 0644)
}

//Validate checks what can be checked without hardware. Unknown chipsets are not an error:
//they end up as dark strips.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Platform) {
	case PlatformSim, PlatformRPi, PlatformCdev, PlatformPeriph:
	default:
		return errors.Wrapf(ErrUnknownPlatform, "%q", c.Platform)
	}
	if len(c.Strips) == 0 {
		return ErrNoStrips
	}
	names := make(map[string]bool, len(c.Strips))
	for i, s := range c.Strips {
		if s.Name == "" || names[s.Name] {
			return errors.Wrapf(ErrStripName, "strip %d", i)
		}
		names[s.Name] = true
		if s.Count <= 0 {
			return errors.Wrapf(ErrStripCount, "strip %s", s.Name)
		}
		if s.Lanes < 0 || s.Lanes > 8 {
			return errors.Wrapf(ErrStripLanes, "strip %s", s.Name)
		}
		if s.Lanes <= 1 && s.Pin == "" && s.SPIDev == "" {
			return errors.Wrapf(ErrStripPin, "strip %s", s.Name)
		}
	}
	return nil
}
