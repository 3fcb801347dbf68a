package world

import (
	"fmt"
	"log"
	"sync"

	icore "worldgen/internal/core"
	"worldgen/pkg/core"
	"worldgen/pkg/noise"
)

// Pipeline derives worlds from seeds for one validated configuration.
// Generate may be called repeatedly and concurrently; every call returns a
// new World.
type Pipeline struct {
	cfg      Config
	noise    *noise.Generator
	climates *ClimateTable
	workers  int
	logger   *log.Logger

	mu   sync.Mutex
	last []icore.StageTiming
}

// NewPipeline validates cfg and prepares the noise generator and climate
// table. Invalid configurations fail here, before any grid is allocated.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := noise.NewGenerator(cfg.NoiseKind)
	if err != nil {
		return nil, err
	}
	table, err := cfg.Climates.Build()
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, noise: gen, climates: table}, nil
}

// Generate builds a world with cfg in a single call.
func Generate(seed int64, cfg Config) (*World, error) {
	p, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return p.Generate(seed)
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Climates returns the resolved climate table.
func (p *Pipeline) Climates() *ClimateTable { return p.climates }

// SetLogger enables per-stage timing logs. A nil logger disables them.
func (p *Pipeline) SetLogger(l *log.Logger) { p.logger = l }

// SetWorkers bounds the goroutines used inside a stage; zero uses
// GOMAXPROCS. Results do not depend on the value.
func (p *Pipeline) SetWorkers(n int) {
	p.workers = n
	p.noise.Workers = n
}

// Timings reports the stage durations of the most recent Generate call.
func (p *Pipeline) Timings() []icore.StageTiming {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]icore.StageTiming, len(p.last))
	copy(out, p.last)
	return out
}

// DeriveHeight evaluates the height noise for seed and subtracts the
// falloff mask so land is surrounded by ocean.
func (p *Pipeline) DeriveHeight(seed int64) (*core.Grid[float64], error) {
	c := p.cfg
	raw, err := p.noise.NoiseMap(c.Width, c.Height, seed, c.HeightNoise, c.Normalize)
	if err != nil {
		return nil, fmt.Errorf("height noise: %w", err)
	}
	mask := noise.FalloffMap(c.Width, c.Height, c.Falloff.A, c.Falloff.B)
	return ApplyFalloff(raw, mask, c.Falloff.Multiplier)
}

// DeriveRain produces the rainfall field for the rain sub-seed.
func (p *Pipeline) DeriveRain(height *core.Grid[float64], wind *core.Grid[core.Vec2], seed int64) (*core.Grid[float64], error) {
	return DeriveRain(height, wind, seed, p.cfg.Rain, p.noise)
}

// Generate runs height, slope, wind, rain, temperature and climate in that
// order. Any failure aborts the run without returning a partial world.
func (p *Pipeline) Generate(seed int64) (*World, error) {
	c := p.cfg
	seeds := DeriveSeeds(seed, c.Rain.SeedFactor)
	timer := icore.NewStageTimer()
	w := &World{Seed: seed, Config: c, Climates: p.climates}

	var err error
	p.begin(timer, "height")
	if w.Height, err = p.DeriveHeight(seeds.Height); err != nil {
		return nil, err
	}

	p.begin(timer, "slope")
	w.Slope = DeriveSlope(w.Height, c.SeaLevel)

	if c.Wind.Enabled {
		p.begin(timer, "wind")
		if w.Wind, err = DeriveWind(w.Height, w.Slope, c.Wind, p.workers); err != nil {
			return nil, err
		}
	}

	p.begin(timer, "rain")
	if w.Rain, err = p.DeriveRain(w.Height, w.Wind, seeds.Rain); err != nil {
		return nil, err
	}

	p.begin(timer, "temperature")
	w.Temperature = DeriveTemperature(w.Height, c.Temperature, c.SeaLevel)

	p.begin(timer, "climate")
	if w.Climate, err = DeriveClimate(w.Height, w.Temperature, w.Rain, p.climates, c.SeaLevel, c.MountainLevel); err != nil {
		return nil, err
	}
	p.end(timer)

	p.mu.Lock()
	p.last = timer.Timings()
	p.mu.Unlock()
	if p.logger != nil {
		p.logger.Printf("world seed=%d size=%dx%d generated in %s", seed, c.Width, c.Height, timer.Total())
	}
	return w, nil
}

func (p *Pipeline) begin(t *icore.StageTimer, stage string) {
	p.end(t)
	t.Begin(stage)
}

func (p *Pipeline) end(t *icore.StageTimer) {
	st := t.End()
	if p.logger != nil && st.Stage != "" {
		p.logger.Printf("stage %s took %s", st.Stage, st.Duration)
	}
}
