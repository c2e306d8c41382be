package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Region is a labelled panel as it appears in fixtures and diagnostic dumps.
// The ID only tracks entries through import and reporting; panels themselves
// carry no identity.
type Region struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Panel Panel  `json:"panel"`
}

// NewRegion wraps a panel with a fresh short ID. An empty label is replaced
// by the ID.
func NewRegion(label string, p Panel) Region {
	id := uuid.New().String()[:8]
	if label == "" {
		label = id
	}
	return Region{ID: id, Label: label, Panel: p}
}

func (r Region) String() string {
	return fmt.Sprintf("%s [%s] %s", r.Label, r.ID, r.Panel)
}

// Panels extracts the geometry of each region in order.
func Panels(regions []Region) []Panel {
	panels := make([]Panel, len(regions))
	for i, r := range regions {
		panels[i] = r.Panel
	}
	return panels
}

// Regions labels each panel sequentially ("Panel 1", "Panel 2", ...).
func Regions(panels []Panel) []Region {
	regions := make([]Region, len(panels))
	for i, p := range panels {
		regions[i] = NewRegion(fmt.Sprintf("Panel %d", i+1), p)
	}
	return regions
}
