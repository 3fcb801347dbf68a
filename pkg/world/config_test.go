package world

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"worldgen/pkg/core"
	"worldgen/pkg/noise"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"too tall", func(c *Config) { c.Height = MaxDimension + 1 }},
		{"unknown noise", func(c *Config) { c.NoiseKind = "value" }},
		{"octaves", func(c *Config) { c.HeightNoise.Octaves = 9 }},
		{"lacunarity", func(c *Config) { c.HeightNoise.Lacunarity = 0.5 }},
		{"scale", func(c *Config) { c.HeightNoise.Scale = 5 }},
		{"persistence nan", func(c *Config) { c.HeightNoise.Persistence = math.NaN() }},
		{"falloff multiplier", func(c *Config) { c.Falloff.Multiplier = 1.5 }},
		{"sea level", func(c *Config) { c.SeaLevel = -0.1 }},
		{"temperature ratio", func(c *Config) { c.Temperature.HeightRatio = 2 }},
		{"zero wind", func(c *Config) { c.Wind.Direction = core.Vec2{} }},
		{"wind min speed", func(c *Config) { c.Wind.MinSpeed = 0 }},
		{"wind restore", func(c *Config) { c.Wind.DirectionRestore = 1.1 }},
		{"rain model", func(c *Config) { c.Rain.Model = "storm" }},
		{"rain noise", func(c *Config) { c.Rain.Noise.Octaves = 0 }},
		{"rain blur", func(c *Config) { c.Rain.BlurIterations = -1 }},
		{"rain coupling", func(c *Config) { c.Rain.WindCoupling = 2 }},
		{"empty climate table", func(c *Config) { c.Climates.Table = nil }},
		{"ragged climate table", func(c *Config) { c.Climates.Table = [][]string{{"a", "b"}, {"c"}} }},
		{"missing sea climate", func(c *Config) { c.Climates.Sea = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, core.ErrConfiguration) {
				t.Fatalf("Validate() = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestDisabledWindSkipsWindValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wind.Enabled = false
	cfg.Wind.Direction = core.Vec2{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled wind should not be validated: %v", err)
	}
}

func TestDeriveSeeds(t *testing.T) {
	s := DeriveSeeds(21, 2)
	if s.Height != 21 || s.Rain != 42 {
		t.Fatalf("DeriveSeeds(21, 2) = %+v", s)
	}
	for _, tc := range []struct{ seed, factor int64 }{{0, 2}, {5, 1}, {-3, 1}} {
		s := DeriveSeeds(tc.seed, tc.factor)
		if s.Rain == s.Height {
			t.Fatalf("DeriveSeeds(%d, %d) rain seed equals height seed", tc.seed, tc.factor)
		}
		if again := DeriveSeeds(tc.seed, tc.factor); again != s {
			t.Fatalf("DeriveSeeds(%d, %d) not deterministic", tc.seed, tc.factor)
		}
	}
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "island.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 96 || cfg.Height != 64 {
		t.Fatalf("size = %dx%d, want 96x64", cfg.Width, cfg.Height)
	}
	if cfg.NoiseKind != noise.KindSimplex {
		t.Fatalf("noise kind = %q", cfg.NoiseKind)
	}
	if cfg.HeightNoise.Octaves != 3 || cfg.HeightNoise.Scale != 40 {
		t.Fatalf("height noise = %+v", cfg.HeightNoise)
	}
	def := DefaultConfig()
	if cfg.HeightNoise.Persistence != def.HeightNoise.Persistence {
		t.Fatalf("unset persistence should keep default, got %v", cfg.HeightNoise.Persistence)
	}
	if cfg.Falloff.Multiplier != 0.6 || cfg.Falloff.A != def.Falloff.A {
		t.Fatalf("falloff = %+v", cfg.Falloff)
	}
	if cfg.Wind.Direction != (core.Vec2{X: 0, Y: -1}) || !cfg.Wind.Enabled {
		t.Fatalf("wind = %+v", cfg.Wind)
	}
	if cfg.Rain.Model != RainModelWind || cfg.Rain.BlurIterations != 3 {
		t.Fatalf("rain = %+v", cfg.Rain)
	}
	table, err := cfg.Climates.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if table.TemperatureBuckets() != 2 || table.RainBuckets() != 2 {
		t.Fatalf("table is %dx%d, want 2x2", table.TemperatureBuckets(), table.RainBuckets())
	}
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "world.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig(configs/world.yaml): %v", err)
	}
	want := DefaultConfig()
	want.Rain.Model = RainModelWind
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("sample config drifted from defaults:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "typo.yaml"))
	if !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("LoadConfig(typo.yaml) = %v, want ErrConfiguration", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string]string{
		"schema range":     "sea_level: 1.5\n",
		"schema type":      "width: wide\n",
		"schema enum":      "rain:\n  model: storm\n",
		"nested unknown":   "wind:\n  speed: 3\n",
		"validation only":  "noise_kind: value\n",
		"malformed yaml":   "width: [\n",
		"non-integer size": "height: 12.5\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(doc)); !errors.Is(err, core.ErrConfiguration) {
				t.Fatalf("ParseConfig(%q) = %v, want ErrConfiguration", doc, err)
			}
		})
	}
}

func TestParseConfigEmptyDocument(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil): %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatal("empty document should yield defaults")
	}
}

func TestMarshalYAMLIsAccepted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 300
	cfg.Wind.Direction = core.Vec2{X: -0.5, Y: 0.25}
	raw, err := MarshalYAML(cfg)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	got, err := ParseConfig(raw)
	if err != nil {
		t.Fatalf("ParseConfig(MarshalYAML(cfg)): %v\n%s", err, raw)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("config changed through YAML:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestSetAndOverrides(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("sea_level", "0.42"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.SeaLevel != 0.42 {
		t.Fatalf("sea level = %v", cfg.SeaLevel)
	}
	if err := cfg.Set("wind_enabled", "false"); err != nil || cfg.Wind.Enabled {
		t.Fatalf("Set wind_enabled: %v, enabled=%v", err, cfg.Wind.Enabled)
	}
	if err := cfg.Set("nope", "1"); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("unknown key: %v", err)
	}
	if err := cfg.Set("height_octaves", "many"); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("bad value: %v", err)
	}

	base := DefaultConfig()
	got, err := ApplyOverrides(base, map[string]string{"w": "128", "rain_model": "wind"})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if got.Width != 128 || got.Rain.Model != RainModelWind {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if _, err := ApplyOverrides(base, map[string]string{"sea_level": "3"}); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("out-of-range override accepted: %v", err)
	}
}

func TestFromMapIgnoresBadValues(t *testing.T) {
	cfg := FromMap(map[string]string{"w": "64", "h": "tall", "bogus": "1"})
	if cfg.Width != 64 {
		t.Fatalf("width = %d, want 64", cfg.Width)
	}
	if cfg.Height != DefaultConfig().Height {
		t.Fatalf("height = %d, want default", cfg.Height)
	}
}

func TestParameterSnapshotKeysAreSettable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wind.Direction = core.Vec2{X: 0.3, Y: -0.7}
	cfg.Rain.SeedFactor = 5
	snap := cfg.Parameters()

	keys := snap.Keys()
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	if !slices.Equal(sorted, OverrideKeys()) {
		t.Fatalf("snapshot keys %v do not match override keys %v", sorted, OverrideKeys())
	}

	rebuilt := DefaultConfig()
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if err := rebuilt.Set(p.Key, p.Value); err != nil {
				t.Fatalf("Set(%q, %q): %v", p.Key, p.Value, err)
			}
		}
	}
	if !reflect.DeepEqual(rebuilt, cfg) {
		t.Fatalf("config rebuilt from snapshot differs:\n got %+v\nwant %+v", rebuilt, cfg)
	}
	if p, ok := snap.Find("wind_y"); !ok || p.Type != core.ParamTypeFloat || p.Value != "-0.7" {
		t.Fatalf("Find(wind_y) = %+v, %v", p, ok)
	}
}
