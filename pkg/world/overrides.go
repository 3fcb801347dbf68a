package world

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"worldgen/pkg/core"
)

type setter func(c *Config, v string) error

func intSetter(dst func(c *Config) *int) setter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func int64Setter(dst func(c *Config) *int64) setter {
	return func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func floatSetter(dst func(c *Config) *float64) setter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(c) = f
		return nil
	}
}

func boolSetter(dst func(c *Config) *bool) setter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(c) = b
		return nil
	}
}

var setters = map[string]setter{
	"w": intSetter(func(c *Config) *int { return &c.Width }),
	"h": intSetter(func(c *Config) *int { return &c.Height }),
	"noise_kind": func(c *Config, v string) error {
		c.NoiseKind = strings.TrimSpace(v)
		return nil
	},
	"normalize": boolSetter(func(c *Config) *bool { return &c.Normalize }),

	"height_octaves":     intSetter(func(c *Config) *int { return &c.HeightNoise.Octaves }),
	"height_persistence": floatSetter(func(c *Config) *float64 { return &c.HeightNoise.Persistence }),
	"height_lacunarity":  floatSetter(func(c *Config) *float64 { return &c.HeightNoise.Lacunarity }),
	"height_scale":       intSetter(func(c *Config) *int { return &c.HeightNoise.Scale }),

	"falloff_a":          floatSetter(func(c *Config) *float64 { return &c.Falloff.A }),
	"falloff_b":          floatSetter(func(c *Config) *float64 { return &c.Falloff.B }),
	"falloff_multiplier": floatSetter(func(c *Config) *float64 { return &c.Falloff.Multiplier }),
	"sea_level":          floatSetter(func(c *Config) *float64 { return &c.SeaLevel }),
	"mountain_level":     floatSetter(func(c *Config) *float64 { return &c.MountainLevel }),

	"temp_a":            floatSetter(func(c *Config) *float64 { return &c.Temperature.A }),
	"temp_b":            floatSetter(func(c *Config) *float64 { return &c.Temperature.B }),
	"temp_height_ratio": floatSetter(func(c *Config) *float64 { return &c.Temperature.HeightRatio }),

	"wind_enabled":           boolSetter(func(c *Config) *bool { return &c.Wind.Enabled }),
	"wind_x":                 floatSetter(func(c *Config) *float64 { return &c.Wind.Direction.X }),
	"wind_y":                 floatSetter(func(c *Config) *float64 { return &c.Wind.Direction.Y }),
	"wind_slope_follow":      floatSetter(func(c *Config) *float64 { return &c.Wind.SlopeFollow }),
	"wind_direction_restore": floatSetter(func(c *Config) *float64 { return &c.Wind.DirectionRestore }),
	"wind_min_speed":         floatSetter(func(c *Config) *float64 { return &c.Wind.MinSpeed }),

	"rain_model": func(c *Config, v string) error {
		c.Rain.Model = RainModel(strings.TrimSpace(v))
		return nil
	},
	"rain_octaves":         intSetter(func(c *Config) *int { return &c.Rain.Noise.Octaves }),
	"rain_persistence":     floatSetter(func(c *Config) *float64 { return &c.Rain.Noise.Persistence }),
	"rain_lacunarity":      floatSetter(func(c *Config) *float64 { return &c.Rain.Noise.Lacunarity }),
	"rain_scale":           intSetter(func(c *Config) *int { return &c.Rain.Noise.Scale }),
	"rain_blur_iterations": intSetter(func(c *Config) *int { return &c.Rain.BlurIterations }),
	"rain_wind_coupling":   floatSetter(func(c *Config) *float64 { return &c.Rain.WindCoupling }),
	"rain_seed_factor":     int64Setter(func(c *Config) *int64 { return &c.Rain.SeedFactor }),
}

// OverrideKeys lists the keys accepted by Set in sorted order.
func OverrideKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a single parameter from its string form. It does not validate
// the resulting configuration.
func (c *Config) Set(key, value string) error {
	fn, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", core.ErrConfiguration, key)
	}
	if err := fn(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s=%q: %w", core.ErrConfiguration, key, value, err)
	}
	return nil
}

// ApplyOverrides sets every key of kv on a copy of base, in sorted key
// order, and validates the result.
func ApplyOverrides(base Config, kv map[string]string) (Config, error) {
	c := base
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Set(k, kv[k]); err != nil {
			return base, err
		}
	}
	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for k, v := range cfg {
		_ = c.Set(k, v)
	}
	return c
}
