package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"worldgen/internal/sweep"
	"worldgen/pkg/world"
)

func main() {
	configPath := flag.String("config", "", "YAML base configuration (defaults when empty)")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	size := flag.Int("size", 128, "world width and height for sweep runs")
	seeds := flag.Int("seeds", 4, "seeds evaluated per parameter set")
	target := flag.Float64("target", 0.4, "desired land fraction")
	top := flag.Int("top", 5, "results to print")
	flag.Parse()

	base, err := world.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	base.Width = *size
	base.Height = *size
	base.Wind.Enabled = false

	sets := sweep.Grid(
		[]float64{0.25, 0.3, 0.35, 0.4, 0.45},
		[]float64{0.4, 0.6, 0.8, 1.0},
		[]float64{2, 3, 4},
	)
	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d seeds, %dx%d)\n", len(sets), *workers, len(seedList), *size, *size)

	start := time.Now()
	results := sweep.Run(base, sets, sweep.Options{Seeds: seedList, Target: *target, Workers: *workers})
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (target land %.2f, elapsed %s):\n", *top, *target, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		if res.Err != nil {
			fmt.Printf("%2d) error=%v params=%s\n", i+1, res.Err, res.Candidate)
			continue
		}
		fmt.Printf("%2d) land=%.3f spread=%.3f score=%.4f params=%s\n",
			i+1, res.Land, res.Spread, res.Score, res.Candidate)
	}
}
