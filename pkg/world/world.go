// Package world derives the physical fields and climate of a procedurally
// generated world from a seed and a Config.
package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/google/uuid"

	"worldgen/pkg/core"
)

// worldNamespace scopes the name-based UUIDs derived from world digests.
var worldNamespace = uuid.MustParse("6f1c7a52-3b0e-4d57-9a3e-2c8f1d4b5e60")

// World is the result of one generation run. All grids share the
// configured dimensions and must be treated as read-only.
type World struct {
	Seed   int64
	Config Config

	Height      *core.Grid[float64]
	Slope       *core.Grid[core.Vec2]
	Wind        *core.Grid[core.Vec2] // nil when wind is disabled
	Rain        *core.Grid[float64]
	Temperature *core.Grid[float64]
	Climate     *core.Grid[ClimateID]

	Climates *ClimateTable
}

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.Height.Size() }

// HeightAt returns the height of cell (x, y).
func (w *World) HeightAt(x, y int) float64 { return w.Height.At(x, y) }

// SlopeAt returns the downhill vector of cell (x, y).
func (w *World) SlopeAt(x, y int) core.Vec2 { return w.Slope.At(x, y) }

// WindAt returns the accumulated wind of cell (x, y), or the zero vector
// when wind is disabled.
func (w *World) WindAt(x, y int) core.Vec2 {
	if w.Wind == nil {
		return core.Vec2{}
	}
	return w.Wind.At(x, y)
}

// ClimateAt returns the climate of cell (x, y).
func (w *World) ClimateAt(x, y int) ClimateID { return w.Climate.At(x, y) }

// ClimateName returns the configured name of the climate at (x, y).
func (w *World) ClimateName(x, y int) string { return w.Climates.Name(w.Climate.At(x, y)) }

// LandFraction reports the share of cells at or above sea level.
func (w *World) LandFraction() float64 {
	if w.Height.Len() == 0 {
		return 0
	}
	land := 0
	for _, h := range w.Height.Values() {
		if h >= w.Config.SeaLevel {
			land++
		}
	}
	return float64(land) / float64(w.Height.Len())
}

// ClimateHistogram counts cells per climate name.
func (w *World) ClimateHistogram() map[string]int {
	out := map[string]int{}
	for _, id := range w.Climate.Values() {
		out[w.Climates.Name(id)]++
	}
	return out
}

// Digest hashes every grid into a hex sha256 string. Equal digests mean
// bit-identical worlds.
func (w *World) Digest() string {
	return hex.EncodeToString(w.digest())
}

// ID returns a stable name-based UUID derived from the digest.
func (w *World) ID() uuid.UUID {
	return uuid.NewSHA1(worldNamespace, w.digest())
}

func (w *World) digest() []byte {
	h := sha256.New()
	var tmp [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(tmp[:], v)
		h.Write(tmp[:])
	}
	writeFloat := func(v float64) { writeU64(math.Float64bits(v)) }

	size := w.Size()
	writeU64(uint64(w.Seed))
	writeU64(uint64(size.W))
	writeU64(uint64(size.H))
	for _, v := range w.Height.Values() {
		writeFloat(v)
	}
	for _, v := range w.Slope.Values() {
		writeFloat(v.X)
		writeFloat(v.Y)
	}
	if w.Wind != nil {
		h.Write([]byte{1})
		for _, v := range w.Wind.Values() {
			writeFloat(v.X)
			writeFloat(v.Y)
		}
	} else {
		h.Write([]byte{0})
	}
	for _, v := range w.Rain.Values() {
		writeFloat(v)
	}
	for _, v := range w.Temperature.Values() {
		writeFloat(v)
	}
	for _, n := range w.Climates.Names() {
		h.Write([]byte(n))
		h.Write([]byte{0})
	}
	for _, id := range w.Climate.Values() {
		writeU64(uint64(id))
	}
	return h.Sum(nil)
}
