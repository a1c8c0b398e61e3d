package colorstats

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/image-color-mcp/internal/raster"
)

// UseDefault selects the configured value for a threshold parameter.
const UseDefault = -1

// Defaults for significant gray level counting and low-gradient detection.
const (
	DefaultDarkThresh     = 20
	DefaultLightThresh    = 236
	DefaultMinFract       = 0.0001
	DefaultGradientThresh = 15
)

// Color test used to decide whether smooth regions carry color. Pixels near
// black or white are ignored; the image counts as color when at least
// MinColorShare of all sampled pixels are colorful.
const (
	ColorTestDarkThresh  = 20
	ColorTestLightThresh = 248
	ColorTestDiffThresh  = 30
	MinColorShare        = 0.00025
)

// Environment variables read by ConfigFromEnv.
const (
	EnvDarkThresh     = "IMAGE_COLOR_DARK_THRESH"
	EnvLightThresh    = "IMAGE_COLOR_LIGHT_THRESH"
	EnvMinFract       = "IMAGE_COLOR_MIN_FRACT"
	EnvGradientThresh = "IMAGE_COLOR_GRADIENT_THRESH"
)

// Config carries the defaults applied when callers pass UseDefault.
type Config struct {
	DarkThresh     int     `json:"dark_thresh"`
	LightThresh    int     `json:"light_thresh"`
	MinFract       float64 `json:"min_fract"`
	GradientThresh int     `json:"gradient_thresh"`
}

// DefaultConfig returns the package defaults.
func DefaultConfig() Config {
	return Config{
		DarkThresh:     DefaultDarkThresh,
		LightThresh:    DefaultLightThresh,
		MinFract:       DefaultMinFract,
		GradientThresh: DefaultGradientThresh,
	}
}

// Validate checks every field against its parameter domain.
func (c Config) Validate() error {
	if err := raster.CheckThreshold("dark_thresh", c.DarkThresh); err != nil {
		return err
	}
	if err := raster.CheckThreshold("light_thresh", c.LightThresh); err != nil {
		return err
	}
	if c.DarkThresh > c.LightThresh {
		return fmt.Errorf("%w: dark_thresh %d above light_thresh %d",
			raster.ErrParameterOutOfRange, c.DarkThresh, c.LightThresh)
	}
	if err := checkMinFract(c.MinFract); err != nil {
		return err
	}
	return raster.CheckThreshold("gradient_thresh", c.GradientThresh)
}

// ConfigFromEnv starts from DefaultConfig and applies any of the IMAGE_COLOR_*
// environment overrides that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	ints := []struct {
		env string
		dst *int
	}{
		{EnvDarkThresh, &cfg.DarkThresh},
		{EnvLightThresh, &cfg.LightThresh},
		{EnvGradientThresh, &cfg.GradientThresh},
	}
	for _, o := range ints {
		v, ok := os.LookupEnv(o.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s=%q: %w", o.env, v, err)
		}
		*o.dst = n
	}
	if v, ok := os.LookupEnv(EnvMinFract); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s=%q: %w", EnvMinFract, v, err)
		}
		cfg.MinFract = f
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkMinFract(f float64) error {
	if f <= 0 || f >= 1 {
		return fmt.Errorf("%w: minfract %g not in (0,1)", raster.ErrParameterOutOfRange, f)
	}
	return nil
}

// orDefault returns def when v is UseDefault. Other negative values pass
// through so parameter validation rejects them.
func orDefault(v, def int) int {
	if v == UseDefault {
		return def
	}
	return v
}
