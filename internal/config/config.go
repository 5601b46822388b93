// Package config loads pmucorr settings from defaults, an optional config
// file, PMUCORR_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PMUCORR_STRICT=true.
const EnvPrefix = "PMUCORR"

// Config holds pmucorr settings.
type Config struct {
	// Table is a YAML fit table file; empty selects the built-in fits.
	Table string
	// Strict aborts on the first out-of-range event instead of skipping it.
	Strict bool
	// Bins, Min and Max define the correction histogram.
	Bins int
	Min  float64
	Max  float64
	// Fold is the Gaussian resolution (in correction units) applied to the
	// histogram; 0 disables folding.
	Fold    float64
	Verbose bool
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("table", "")
	v.SetDefault("strict", false)
	v.SetDefault("bins", 40)
	v.SetDefault("min", -0.5)
	v.SetDefault("max", 0.5)
	v.SetDefault("fold", 0.0)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path (or $PMUCORR_CONFIG when path is
// empty) into v and returns the merged settings. A missing default file is
// not an error; a missing explicit file is.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks the histogram settings.
func (c Config) Validate() error {
	switch {
	case !finite(c.Min) || !finite(c.Max):
		return fmt.Errorf("config: min and max must be finite, got %g and %g", c.Min, c.Max)
	case !finite(c.Fold):
		return fmt.Errorf("config: fold must be finite, got %g", c.Fold)
	case c.Bins <= 0:
		return fmt.Errorf("config: bins must be positive, got %d", c.Bins)
	case !(c.Min < c.Max):
		return fmt.Errorf("config: min (%g) must be below max (%g)", c.Min, c.Max)
	case c.Fold < 0:
		return errors.New("config: fold must not be negative")
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BinWidth returns the histogram bin width.
func (c Config) BinWidth() float64 {
	return (c.Max - c.Min) / float64(c.Bins)
}
