package world

import (
	"strconv"

	"worldgen/pkg/core"
)

// Parameters lists every tunable of c under the keys accepted by Set.
func (c Config) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", c.Width),
				intParam("h", "Height", c.Height),
				stringParam("noise_kind", "Noise kind", c.NoiseKind),
				boolParam("normalize", "Normalize noise", c.Normalize),
			},
		},
		{
			Name:    "Height",
			Summary: "Octave noise minus the edge falloff mask.",
			Params: []core.Parameter{
				intParam("height_octaves", "Octaves", c.HeightNoise.Octaves),
				floatParam("height_persistence", "Persistence", c.HeightNoise.Persistence),
				floatParam("height_lacunarity", "Lacunarity", c.HeightNoise.Lacunarity),
				intParam("height_scale", "Scale", c.HeightNoise.Scale),
				floatParam("falloff_a", "Falloff a", c.Falloff.A),
				floatParam("falloff_b", "Falloff b", c.Falloff.B),
				floatParam("falloff_multiplier", "Falloff multiplier", c.Falloff.Multiplier),
				floatParam("sea_level", "Sea level", c.SeaLevel),
				floatParam("mountain_level", "Mountain level", c.MountainLevel),
			},
		},
		{
			Name: "Temperature",
			Params: []core.Parameter{
				floatParam("temp_a", "Latitude falloff a", c.Temperature.A),
				floatParam("temp_b", "Latitude falloff b", c.Temperature.B),
				floatParam("temp_height_ratio", "Height cooling ratio", c.Temperature.HeightRatio),
			},
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				boolParam("wind_enabled", "Wind enabled", c.Wind.Enabled),
				floatParam("wind_x", "Prevailing wind x", c.Wind.Direction.X),
				floatParam("wind_y", "Prevailing wind y", c.Wind.Direction.Y),
				floatParam("wind_slope_follow", "Slope follow", c.Wind.SlopeFollow),
				floatParam("wind_direction_restore", "Direction restore", c.Wind.DirectionRestore),
				floatParam("wind_min_speed", "Minimum speed", c.Wind.MinSpeed),
			},
		},
		{
			Name: "Rain",
			Params: []core.Parameter{
				stringParam("rain_model", "Rain model", string(c.Rain.Model)),
				intParam("rain_octaves", "Octaves", c.Rain.Noise.Octaves),
				floatParam("rain_persistence", "Persistence", c.Rain.Noise.Persistence),
				floatParam("rain_lacunarity", "Lacunarity", c.Rain.Noise.Lacunarity),
				intParam("rain_scale", "Scale", c.Rain.Noise.Scale),
				intParam("rain_blur_iterations", "Blur iterations", c.Rain.BlurIterations),
				floatParam("rain_wind_coupling", "Wind coupling", c.Rain.WindCoupling),
				int64Param("rain_seed_factor", "Seed factor", c.Rain.SeedFactor),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
