package engine

import (
	"sort"

	"github.com/apattnay/perfcast/internal/config"
	"github.com/apattnay/perfcast/internal/model"
)

// ScaleTiles expands projection records into the multi-tile scaling
// table: throughput scales up with tile count, TTFT scales down, TPOT
// is per-token and unchanged. Insufficient records are skipped.
func ScaleTiles(records []model.ProjectionRecord, sc config.ScalingConfig) []model.TileScalingEntry {
	if !sc.Enabled || sc.BaselineTiles <= 0 || len(sc.Tiles) == 0 {
		return nil
	}

	labels := make([]string, 0, len(sc.Tiles))
	for label := range sc.Tiles {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return sc.Tiles[labels[i]] < sc.Tiles[labels[j]] })

	var out []model.TileScalingEntry
	for _, rec := range records {
		if rec.Insufficient {
			continue
		}
		for _, label := range labels {
			tiles := sc.Tiles[label]
			factor := float64(tiles) / float64(sc.BaselineTiles)
			out = append(out, model.TileScalingEntry{
				Label:        label,
				Tiles:        tiles,
				Approach:     rec.Approach,
				FrequencyMHz: rec.FrequencyMHz,
				TTFTSeconds:  rec.TTFTSeconds / factor,
				TGS:          rec.TGS * factor,
			})
		}
	}
	return out
}
