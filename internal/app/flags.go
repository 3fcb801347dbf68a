package app

import (
	"flag"
	"fmt"
	"runtime"
	"strings"

	"worldgen/pkg/mesh"
	"worldgen/pkg/world"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs keyed by their trimmed key. Later pairs win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// Config represents the command-line parameters of worldgen.
type Config struct {
	ConfigPath string
	Seed       int64
	Width      int
	Height     int
	Workers    int

	Mesh        bool
	MeshHeight  float64
	MaxVertices int

	Params    bool
	Verbose   bool
	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Seed:        42,
		Workers:     runtime.NumCPU(),
		MeshHeight:  30,
		MaxVertices: mesh.DefaultMaxVertices,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML world configuration (defaults when empty)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed")
	fs.IntVar(&c.Width, "w", c.Width, "world width override (0 keeps the configured value)")
	fs.IntVar(&c.Height, "h", c.Height, "world height override (0 keeps the configured value)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation stage")
	fs.BoolVar(&c.Mesh, "mesh", c.Mesh, "triangulate the height map and report mesh stats")
	fs.Float64Var(&c.MeshHeight, "mesh-height", c.MeshHeight, "mesh height multiplier")
	fs.IntVar(&c.MaxVertices, "mesh-max-vertices", c.MaxVertices, "vertex limit per mesh chunk")
	fs.BoolVar(&c.Params, "params", c.Params, "print the resolved parameters and exit")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log stage timings")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// WorldConfig loads the configured file and applies the size flags and
// overrides on top of it.
func (c *Config) WorldConfig() (world.Config, error) {
	cfg, err := world.LoadConfig(c.ConfigPath)
	if err != nil {
		return cfg, err
	}
	kv := c.Overrides.Map()
	if c.Width > 0 {
		kv["w"] = fmt.Sprint(c.Width)
	}
	if c.Height > 0 {
		kv["h"] = fmt.Sprint(c.Height)
	}
	return world.ApplyOverrides(cfg, kv)
}
