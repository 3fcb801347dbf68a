package main

import (
	"flag"
	"log"
	"os"

	"worldgen/internal/app"
	"worldgen/pkg/mesh"
	"worldgen/pkg/world"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	worldCfg, err := cfg.WorldConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Params {
		if err := app.WriteParameters(os.Stdout, worldCfg.Parameters()); err != nil {
			log.Fatal(err)
		}
		return
	}

	pipeline, err := world.NewPipeline(worldCfg)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}
	pipeline.SetWorkers(cfg.Workers)
	if cfg.Verbose {
		pipeline.SetLogger(log.Default())
	}

	w, err := pipeline.Generate(cfg.Seed)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	report := app.Report{World: w, Timings: pipeline.Timings()}
	if cfg.Mesh {
		terrain, err := mesh.GenerateChunks(w.Height, mesh.DefaultCurve(), worldCfg.SeaLevel, cfg.MeshHeight, cfg.MaxVertices)
		if err != nil {
			log.Fatalf("mesh: %v", err)
		}
		report.Terrain = terrain
	}
	if err := app.WriteReport(os.Stdout, report); err != nil {
		log.Fatal(err)
	}
}
