package model

import "github.com/piwi3910/panelgrid/internal/grid"

// AppConfig holds application-wide preferences used by the command line tools.
type AppConfig struct {
	// Physical container the arrangement is laid out in (device-independent units)
	ContainerWidth  float64 `json:"container_width" toml:"container_width"`
	ContainerHeight float64 `json:"container_height" toml:"container_height"`

	// Application preferences
	Verbose        bool     `json:"verbose" toml:"verbose"`
	NeighborFormat string   `json:"neighbor_format" toml:"neighbor_format"` // "dot" or "svg"
	RecentFixtures []string `json:"recent_fixtures" toml:"recent_fixtures"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ContainerWidth:  1280,
		ContainerHeight: 800,
		Verbose:         false,
		NeighborFormat:  "dot",
		RecentFixtures:  []string{},
	}
}

// Container returns the configured container size.
func (c AppConfig) Container() grid.Size {
	return grid.Size{Width: c.ContainerWidth, Height: c.ContainerHeight}
}

// AddRecentFixture records path as the most recently used fixture, keeping at
// most limit entries and no duplicates.
func (c *AppConfig) AddRecentFixture(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentFixtures {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentFixtures = recent
}
