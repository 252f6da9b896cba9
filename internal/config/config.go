package config

import (
	"sync"

	"github.com/spf13/viper"
)

const DefaultConfigPath string = "inspector.yaml"

// Config holds the persisted application settings. The UI mutates a few
// fields at runtime, so access to those goes through the mutex.
type Config struct {
	mu sync.RWMutex

	LogMode string `mapstructure:"log_mode"`

	WindowWidth  int `mapstructure:"window_width"`
	WindowHeight int `mapstructure:"window_height"`

	LastFolder string `mapstructure:"last_folder"`

	ZoomStep float64 `mapstructure:"zoom_step"`
	MinZoom  float64 `mapstructure:"min_zoom"`
	MaxZoom  float64 `mapstructure:"max_zoom"`

	BoxThickness   int     `mapstructure:"box_thickness"`
	StrokeWidth    int     `mapstructure:"stroke_width"`
	StrokeColor    string  `mapstructure:"stroke_color"`
	EraseTolerance float64 `mapstructure:"erase_tolerance"`

	// LabelColors maps annotation labels to color names, overriding the
	// default palette.
	LabelColors map[string]string `mapstructure:"label_colors"`
}

func (c *Config) GetLastFolder() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastFolder
}

func (c *Config) SetLastFolder(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastFolder = path
}

func (c *Config) GetZoomStep() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ZoomStep
}

func (c *Config) SetZoomStep(step float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ZoomStep = step
}

func (c *Config) GetStrokeWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.StrokeWidth
}

func (c *Config) SetStrokeWidth(w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StrokeWidth = w
}

func (c *Config) GetEraseTolerance() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.EraseTolerance
}

func (c *Config) SetEraseTolerance(tol float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.EraseTolerance = tol
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_mode", "debug")
	v.SetDefault("window_width", 1200)
	v.SetDefault("window_height", 800)
	v.SetDefault("last_folder", "")
	v.SetDefault("zoom_step", 1.1)
	v.SetDefault("min_zoom", 0.05)
	v.SetDefault("max_zoom", 32.0)
	v.SetDefault("box_thickness", 3)
	v.SetDefault("stroke_width", 2)
	v.SetDefault("stroke_color", "blue")
	v.SetDefault("erase_tolerance", 5.0)
	v.SetDefault("label_colors", map[string]string{})
}

// Load reads the config file at path. A missing or unreadable file yields
// the defaults rather than an error.
func Load(path string) *Config {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	// Best effort: fall back to defaults on any read error.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return NewDefault()
	}

	return &cfg
}

// NewDefault returns a Config populated with the default values.
func NewDefault() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return &Config{}
	}
	return &cfg
}

// Save writes the config to path as YAML.
func (c *Config) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("log_mode", c.LogMode)
	v.Set("window_width", c.WindowWidth)
	v.Set("window_height", c.WindowHeight)
	v.Set("last_folder", c.LastFolder)
	v.Set("zoom_step", c.ZoomStep)
	v.Set("min_zoom", c.MinZoom)
	v.Set("max_zoom", c.MaxZoom)
	v.Set("box_thickness", c.BoxThickness)
	v.Set("stroke_width", c.StrokeWidth)
	v.Set("stroke_color", c.StrokeColor)
	v.Set("erase_tolerance", c.EraseTolerance)
	v.Set("label_colors", c.LabelColors)

	return v.WriteConfigAs(path)
}

func (c *Config) SaveByDefault() {
	_ = c.Save(DefaultConfigPath)
}
