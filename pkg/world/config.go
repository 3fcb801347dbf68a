package world

import (
	"fmt"
	"math"

	"worldgen/pkg/core"
	"worldgen/pkg/noise"
)

// MaxDimension bounds the width and height of a generated world.
const MaxDimension = 8192

// MinWindMagnitude is the shortest prevailing wind accepted.
const MinWindMagnitude = 1e-6

// FalloffConfig shapes the edge mask subtracted from the height noise.
type FalloffConfig struct {
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	Multiplier float64 `yaml:"multiplier"`
}

// TemperatureConfig shapes the latitude gradient and its cooling with
// elevation.
type TemperatureConfig struct {
	A           float64 `yaml:"a"`
	B           float64 `yaml:"b"`
	HeightRatio float64 `yaml:"height_ratio"`
}

// WindConfig controls the wind advection stage.
type WindConfig struct {
	Enabled bool `yaml:"enabled"`
	// Direction is the prevailing wind; x grows east, y grows with the row index.
	Direction core.Vec2 `yaml:"direction"`
	// SlopeFollow scales how strongly terrain slope deflects a particle.
	SlopeFollow float64 `yaml:"slope_follow"`
	// DirectionRestore is the per-step blend back towards Direction.
	DirectionRestore float64 `yaml:"direction_restore"`
	// MinSpeed terminates particles that slow below it.
	MinSpeed float64 `yaml:"min_speed"`
}

// RainModel selects how rainfall is derived.
type RainModel string

const (
	// RainModelNoise uses an independent noise map.
	RainModelNoise RainModel = "noise"
	// RainModelWind blends the noise map with orographic lift along the wind.
	RainModelWind RainModel = "wind"
)

// RainConfig controls the rainfall stage.
type RainConfig struct {
	Model          RainModel    `yaml:"model"`
	Noise          noise.Config `yaml:"noise"`
	BlurIterations int          `yaml:"blur_iterations"`
	WindCoupling   float64      `yaml:"wind_coupling"`
	// SeedFactor multiplies the world seed to obtain the rain sub-seed.
	SeedFactor int64 `yaml:"seed_factor"`
}

// Config holds every tunable of a world generation run.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	NoiseKind   string        `yaml:"noise_kind"`
	Normalize   bool          `yaml:"normalize"`
	HeightNoise noise.Config  `yaml:"height_noise"`
	Falloff     FalloffConfig `yaml:"falloff"`

	SeaLevel      float64 `yaml:"sea_level"`
	MountainLevel float64 `yaml:"mountain_level"`

	Temperature TemperatureConfig `yaml:"temperature"`
	Wind        WindConfig        `yaml:"wind"`
	Rain        RainConfig        `yaml:"rain"`
	Climates    ClimateConfig     `yaml:"climates"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    256,
		NoiseKind: noise.KindPerlin,
		Normalize: true,
		HeightNoise: noise.Config{
			Octaves:     5,
			Persistence: 0.5,
			Lacunarity:  2,
			Scale:       60,
		},
		Falloff: FalloffConfig{
			A:          3,
			B:          2.2,
			Multiplier: 0.8,
		},
		SeaLevel:      0.35,
		MountainLevel: 0.65,
		Temperature: TemperatureConfig{
			A:           2,
			B:           2,
			HeightRatio: 0.5,
		},
		Wind: WindConfig{
			Enabled:          true,
			Direction:        core.Vec2{X: 1, Y: 0},
			SlopeFollow:      0.5,
			DirectionRestore: 0.1,
			MinSpeed:         0.01,
		},
		Rain: RainConfig{
			Model: RainModelNoise,
			Noise: noise.Config{
				Octaves:     3,
				Persistence: 0.5,
				Lacunarity:  2,
				Scale:       80,
			},
			BlurIterations: 2,
			WindCoupling:   0.5,
			SeedFactor:     2,
		},
		Climates: DefaultClimates(),
	}
}

// Seeds holds the sub-seeds derived from a world seed.
type Seeds struct {
	Height int64
	Rain   int64
}

// rainDecorrelation is mixed into the rain seed when it would otherwise
// equal the height seed.
const rainDecorrelation = 0x5DEECE66D

// DeriveSeeds splits a world seed into per-field seeds. The rain seed is
// factor*seed and never equals the height seed.
func DeriveSeeds(seed, factor int64) Seeds {
	s := Seeds{Height: seed, Rain: factor * seed}
	if s.Rain == s.Height {
		s.Rain = seed ^ rainDecorrelation
	}
	return s
}

// Validate reports the first parameter outside its documented range.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("%w: world size %dx%d outside [1,%d]", core.ErrConfiguration, c.Width, c.Height, MaxDimension)
	}
	if _, ok := noise.Lookup(c.NoiseKind); !ok {
		return fmt.Errorf("%w: unknown noise kind %q", core.ErrConfiguration, c.NoiseKind)
	}
	if err := c.HeightNoise.Validate(); err != nil {
		return fmt.Errorf("height_noise: %w", err)
	}
	checks := []struct {
		name   string
		v      float64
		lo, hi float64
	}{
		{"falloff.a", c.Falloff.A, 0, 10},
		{"falloff.b", c.Falloff.B, 0, 10},
		{"falloff.multiplier", c.Falloff.Multiplier, 0, 1},
		{"sea_level", c.SeaLevel, 0, 1},
		{"mountain_level", c.MountainLevel, 0, 1},
		{"temperature.a", c.Temperature.A, 0, 10},
		{"temperature.b", c.Temperature.B, 0, 10},
		{"temperature.height_ratio", c.Temperature.HeightRatio, 0, 1},
		{"rain.wind_coupling", c.Rain.WindCoupling, 0, 1},
	}
	for _, chk := range checks {
		if err := inRange(chk.name, chk.v, chk.lo, chk.hi); err != nil {
			return err
		}
	}
	if c.Wind.Enabled {
		if err := c.Wind.Validate(); err != nil {
			return err
		}
	}
	switch c.Rain.Model {
	case RainModelNoise, RainModelWind:
	default:
		return fmt.Errorf("%w: unknown rain model %q", core.ErrConfiguration, c.Rain.Model)
	}
	if err := c.Rain.Noise.Validate(); err != nil {
		return fmt.Errorf("rain.noise: %w", err)
	}
	if c.Rain.BlurIterations < 0 || c.Rain.BlurIterations > 16 {
		return fmt.Errorf("%w: rain.blur_iterations %d outside [0,16]", core.ErrConfiguration, c.Rain.BlurIterations)
	}
	if _, err := c.Climates.Build(); err != nil {
		return err
	}
	return nil
}

// Validate checks the wind parameters used by DeriveWind.
func (w WindConfig) Validate() error {
	m := w.Direction.Magnitude()
	if !(m >= MinWindMagnitude) {
		return fmt.Errorf("%w: prevailing wind magnitude %v below %v", core.ErrConfiguration, m, MinWindMagnitude)
	}
	if !(w.MinSpeed > 0 && w.MinSpeed <= 1) {
		return fmt.Errorf("%w: wind.min_speed %v outside (0,1]", core.ErrConfiguration, w.MinSpeed)
	}
	if err := inRange("wind.slope_follow", w.SlopeFollow, 0, 10); err != nil {
		return err
	}
	return inRange("wind.direction_restore", w.DirectionRestore, 0, 1)
}

func inRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s %v outside [%v,%v]", core.ErrConfiguration, name, v, lo, hi)
	}
	return nil
}
