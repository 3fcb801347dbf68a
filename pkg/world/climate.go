package world

import (
	"fmt"
	"math"
	"strings"

	"worldgen/pkg/core"
)

// ClimateID identifies an entry of a ClimateTable.
type ClimateID int

// quantizeCeiling keeps a field value of exactly 1 inside the last bucket.
const quantizeCeiling = 0.99

// ClimateConfig names the climates of a table. Table is indexed
// [temperature bucket][rain bucket], coldest and driest first.
type ClimateConfig struct {
	Sea      string     `yaml:"sea"`
	Mountain string     `yaml:"mountain"`
	Table    [][]string `yaml:"table"`
}

// DefaultClimates returns a 3x3 Whittaker-style table.
func DefaultClimates() ClimateConfig {
	return ClimateConfig{
		Sea:      "ocean",
		Mountain: "mountain",
		Table: [][]string{
			{"tundra", "taiga", "boreal_forest"},
			{"grassland", "temperate_forest", "temperate_rainforest"},
			{"desert", "savanna", "tropical_rainforest"},
		},
	}
}

// ClimateTable resolves quantized temperature and rainfall to climates,
// with overrides for sea and mountain cells.
type ClimateTable struct {
	names    []string
	index    map[string]ClimateID
	sea      ClimateID
	mountain ClimateID
	cells    [][]ClimateID
}

// Build resolves the configured names into a ClimateTable.
func (c ClimateConfig) Build() (*ClimateTable, error) {
	if strings.TrimSpace(c.Sea) == "" || strings.TrimSpace(c.Mountain) == "" {
		return nil, fmt.Errorf("%w: climates.sea and climates.mountain are required", core.ErrConfiguration)
	}
	if len(c.Table) == 0 || len(c.Table[0]) == 0 {
		return nil, fmt.Errorf("%w: climates.table must not be empty", core.ErrConfiguration)
	}
	t := &ClimateTable{index: map[string]ClimateID{}}
	t.sea = t.intern(c.Sea)
	t.mountain = t.intern(c.Mountain)
	rainBuckets := len(c.Table[0])
	t.cells = make([][]ClimateID, len(c.Table))
	for i, row := range c.Table {
		if len(row) != rainBuckets {
			return nil, fmt.Errorf("%w: climates.table row %d has %d entries, want %d", core.ErrConfiguration, i, len(row), rainBuckets)
		}
		t.cells[i] = make([]ClimateID, len(row))
		for j, name := range row {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("%w: climates.table[%d][%d] is empty", core.ErrConfiguration, i, j)
			}
			t.cells[i][j] = t.intern(name)
		}
	}
	return t, nil
}

func (t *ClimateTable) intern(name string) ClimateID {
	if id, ok := t.index[name]; ok {
		return id
	}
	id := ClimateID(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = id
	return id
}

// Sea returns the override used below sea level.
func (t *ClimateTable) Sea() ClimateID { return t.sea }

// Mountain returns the override used above the mountain level.
func (t *ClimateTable) Mountain() ClimateID { return t.mountain }

// TemperatureBuckets reports the number of temperature rows.
func (t *ClimateTable) TemperatureBuckets() int { return len(t.cells) }

// RainBuckets reports the number of rainfall columns.
func (t *ClimateTable) RainBuckets() int { return len(t.cells[0]) }

// Name returns the configured name of id, or "" when unknown.
func (t *ClimateTable) Name(id ClimateID) string {
	if id < 0 || int(id) >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Lookup returns the id registered for name.
func (t *ClimateTable) Lookup(name string) (ClimateID, bool) {
	id, ok := t.index[name]
	return id, ok
}

// Names lists climate names in id order.
func (t *ClimateTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Classify picks the climate of a single cell.
func (t *ClimateTable) Classify(height, temp, rain, seaLevel, mountainLevel float64) ClimateID {
	switch {
	case height < seaLevel:
		return t.sea
	case height > mountainLevel:
		return t.mountain
	}
	ti := quantize(temp, len(t.cells))
	ri := quantize(rain, len(t.cells[ti]))
	return t.cells[ti][ri]
}

// quantize floors clamp(v, 0, 0.99)*buckets into [0, buckets).
func quantize(v float64, buckets int) int {
	if math.IsNaN(v) {
		v = 0
	}
	i := int(math.Floor(core.Clamp(v, 0, quantizeCeiling) * float64(buckets)))
	if i >= buckets {
		i = buckets - 1
	}
	return i
}

// DeriveClimate classifies every cell: sea below seaLevel, mountain above
// mountainLevel, otherwise the table entry for the cell's quantized
// temperature and rainfall.
func DeriveClimate(height, temp, rain *core.Grid[float64], table *ClimateTable, seaLevel, mountainLevel float64) (*core.Grid[ClimateID], error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil climate table", core.ErrConfiguration)
	}
	if !core.SameSize(height, temp) || !core.SameSize(height, rain) {
		return nil, fmt.Errorf("%w: climate inputs differ in size", core.ErrConfiguration)
	}
	return core.Map(height, func(x, y int, h float64) ClimateID {
		return table.Classify(h, temp.At(x, y), rain.At(x, y), seaLevel, mountainLevel)
	}), nil
}
