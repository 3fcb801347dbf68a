// Package sweep evaluates grids of world parameters in parallel and ranks
// them by how close their land coverage comes to a target.
package sweep

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"worldgen/pkg/world"
)

// Candidate is one point of the parameter grid.
type Candidate struct {
	SeaLevel   float64
	Multiplier float64
	FalloffA   float64
}

func (c Candidate) String() string {
	return fmt.Sprintf("sea=%.3f falloff_multiplier=%.3f falloff_a=%.2f", c.SeaLevel, c.Multiplier, c.FalloffA)
}

// Apply returns base with the candidate's parameters.
func (c Candidate) Apply(base world.Config) world.Config {
	cfg := base
	cfg.SeaLevel = c.SeaLevel
	cfg.Falloff.Multiplier = c.Multiplier
	cfg.Falloff.A = c.FalloffA
	if cfg.MountainLevel < cfg.SeaLevel {
		cfg.MountainLevel = cfg.SeaLevel
	}
	return cfg
}

// Result summarizes a candidate over every sweep seed.
type Result struct {
	Candidate Candidate
	// Land is the mean land fraction over the seeds.
	Land float64
	// Spread is the difference between the largest and smallest land fraction.
	Spread float64
	// Score is |Land - target|; lower is better.
	Score float64
	Err   error
}

// Options controls a sweep.
type Options struct {
	Seeds   []int64
	Target  float64
	Workers int
}

// Grid builds the cartesian product of the option lists.
func Grid(seaLevels, multipliers, falloffA []float64) []Candidate {
	var sets []Candidate
	for _, sea := range seaLevels {
		for _, mult := range multipliers {
			for _, a := range falloffA {
				sets = append(sets, Candidate{SeaLevel: sea, Multiplier: mult, FalloffA: a})
			}
		}
	}
	return sets
}

// Run evaluates every candidate against base on a pool of workers and
// returns the results ordered best first. Failed candidates sort last.
func Run(base world.Config, sets []Candidate, opts Options) []Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seeds := opts.Seeds
	if len(seeds) == 0 {
		seeds = []int64{1}
	}

	jobs := make(chan Candidate)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- evaluate(base, c, seeds, opts.Target)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, c := range sets {
			jobs <- c
		}
		close(jobs)
	}()

	all := make([]Result, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	return all
}

func less(a, b Result) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.Spread != b.Spread {
		return a.Spread < b.Spread
	}
	return a.Candidate.String() < b.Candidate.String()
}

func evaluate(base world.Config, c Candidate, seeds []int64, target float64) Result {
	res := Result{Candidate: c}
	p, err := world.NewPipeline(c.Apply(base))
	if err != nil {
		res.Err = err
		res.Score = math.Inf(1)
		return res
	}
	// candidates already run in parallel
	p.SetWorkers(1)

	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, seed := range seeds {
		w, err := p.Generate(seed)
		if err != nil {
			res.Err = err
			res.Score = math.Inf(1)
			return res
		}
		land := w.LandFraction()
		sum += land
		lo = math.Min(lo, land)
		hi = math.Max(hi, land)
	}
	res.Land = sum / float64(len(seeds))
	res.Spread = hi - lo
	res.Score = math.Abs(res.Land - target)
	return res
}
