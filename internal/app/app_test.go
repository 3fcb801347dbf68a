package app

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"worldgen/pkg/core"
	"worldgen/pkg/mesh"
	"worldgen/pkg/world"
)

func TestKVList(t *testing.T) {
	var l KVList
	if err := l.Set("sea_level=0.4"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set(" w = 64 "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("sea_level=0.45"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("novalue"); err == nil {
		t.Fatal("expected error for missing '='")
	}
	m := l.Map()
	if m["sea_level"] != "0.45" || m["w"] != "64" || len(m) != 2 {
		t.Fatalf("Map() = %v", m)
	}
	if l.String() != "sea_level=0.4, w = 64 ,sea_level=0.45" {
		t.Fatalf("String() = %q", l.String())
	}
}

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("worldgen", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-seed", "7", "-w", "48", "-h", "32", "-mesh", "-set", "rain_model=wind", "-set", "sea_level=0.3"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Seed != 7 || cfg.Width != 48 || cfg.Height != 32 || !cfg.Mesh {
		t.Fatalf("flags not bound: %+v", cfg)
	}

	wc, err := cfg.WorldConfig()
	if err != nil {
		t.Fatalf("WorldConfig: %v", err)
	}
	if wc.Width != 48 || wc.Height != 32 || wc.SeaLevel != 0.3 || wc.Rain.Model != world.RainModelWind {
		t.Fatalf("world config = %+v", wc)
	}
}

func TestWorldConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("width: 40\nheight: 20\nsea_level: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfig()
	cfg.ConfigPath = path
	cfg.Overrides = KVList{"sea_level=0.25"}
	wc, err := cfg.WorldConfig()
	if err != nil {
		t.Fatalf("WorldConfig: %v", err)
	}
	if wc.Width != 40 || wc.Height != 20 || wc.SeaLevel != 0.25 {
		t.Fatalf("world config = %+v", wc)
	}

	cfg.Overrides = KVList{"unknown=1"}
	if _, err := cfg.WorldConfig(); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("unknown override: %v", err)
	}
}

func TestWriteReport(t *testing.T) {
	cfg := world.DefaultConfig()
	cfg.Width, cfg.Height = 40, 30
	p, err := world.NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	w, err := p.Generate(3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	terrain, err := mesh.GenerateChunks(w.Height, mesh.DefaultCurve(), cfg.SeaLevel, 20, 0)
	if err != nil {
		t.Fatalf("GenerateChunks: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, Report{World: w, Terrain: terrain, Timings: p.Timings()}); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"World " + w.ID().String(),
		"digest=" + w.Digest(),
		"size=40x30",
		"Fields:",
		"Climates:",
		"ocean",
		"Mesh:",
		"vertices=1200",
		"Timings:",
		"climate",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteParameters(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteParameters(&buf, world.DefaultConfig().Parameters()); err != nil {
		t.Fatalf("WriteParameters: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Parameters:", "  World\n", "    w=256\n", "    rain_model=noise\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("parameters missing %q:\n%s", want, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteParametersReportsWriteError(t *testing.T) {
	if err := WriteParameters(failingWriter{}, world.DefaultConfig().Parameters()); err == nil {
		t.Fatal("expected write error")
	}
}
