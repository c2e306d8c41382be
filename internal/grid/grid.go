// Package grid provides the fixed-resolution arithmetic every panel
// computation builds on. The unit square is divided into Resolution lines per
// axis; all stored coordinates are whole multiples of 1/Resolution so that
// independently computed panels can be compared for exact equality.
package grid

import (
	"fmt"
	"math"
)

// Resolution is the number of grid lines per axis of the unit square.
const Resolution = 1000

// Minimum physical panel extents in device-independent units.
const (
	MinPanelWidth  = 320.0
	MinPanelHeight = 320.0
)

// Axis caps for MaxRows and MaxColumns. The dominant axis of the container
// may hold up to maxDominant panels, the minor axis up to maxMinor.
const (
	maxDominant = 3
	maxMinor    = 2
)

// Line is a coordinate or extent measured in whole grid lines.
type Line int

// Factor converts the line count back to a fraction of the unit square.
func (l Line) Factor() float64 {
	return float64(l) / Resolution
}

// ToLines snaps a fractional value to the nearest grid line.
func ToLines(v float64) Line {
	return Line(math.Round(v * Resolution))
}

// Quantize returns v snapped to the grid. It is idempotent.
func Quantize(v float64) float64 {
	return ToLines(v).Factor()
}

// Size is a physical container size in device-independent units.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// IsPortrait reports whether the container is taller than it is wide.
// Square containers are treated as landscape.
func (s Size) IsPortrait() bool {
	return s.Height > s.Width
}

// MaxRows returns how many rows of at least MinPanelHeight fit in the
// container height, capped by orientation and never less than one.
func MaxRows(size Size) int {
	limit := maxMinor
	if size.IsPortrait() {
		limit = maxDominant
	}
	return capacity(size.Height, MinPanelHeight, limit)
}

// MaxColumns returns how many columns of at least MinPanelWidth fit in the
// container width, capped by orientation and never less than one.
func MaxColumns(size Size) int {
	limit := maxDominant
	if size.IsPortrait() {
		limit = maxMinor
	}
	return capacity(size.Width, MinPanelWidth, limit)
}

func capacity(extent, minimum float64, limit int) int {
	n := int(math.Floor(extent / minimum))
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// SmallestWidthFactor converts MinPanelWidth into a fraction of the given
// container width. A non-positive width yields 1, which no half panel can satisfy.
func SmallestWidthFactor(width float64) float64 {
	return smallestFactor(MinPanelWidth, width)
}

// SmallestHeightFactor converts MinPanelHeight into a fraction of the given
// container height.
func SmallestHeightFactor(height float64) float64 {
	return smallestFactor(MinPanelHeight, height)
}

func smallestFactor(minimum, container float64) float64 {
	if container <= 0 {
		return 1
	}
	return minimum / container
}

// FairSpan divides initialSpan into count consecutive sections and returns
// the span of section index. The leftover after an even split is handed out
// one grid line at a time to the leading sections, so the spans of all
// sections always add up to Quantize(initialSpan) and differ by at most one
// line. It panics if count < 1 or index is out of range.
func FairSpan(initialSpan float64, index, count int) float64 {
	return FairSpanLines(ToLines(initialSpan), index, count).Factor()
}

// FairOffset returns the distance from the start of initialSpan to the start
// of section index, i.e. the sum of the spans of all preceding sections.
func FairOffset(initialSpan float64, index, count int) float64 {
	return FairOffsetLines(ToLines(initialSpan), index, count).Factor()
}

// FairSpanLines is FairSpan expressed in whole grid lines.
func FairSpanLines(total Line, index, count int) Line {
	checkSection(index, count)
	optimal := Line(math.Round(float64(total) / float64(count)))
	leftover := total - optimal*Line(count)

	switch {
	case leftover > 0 && Line(index) < leftover:
		return optimal + 1
	case leftover < 0 && Line(index) < -leftover:
		return optimal - 1
	default:
		return optimal
	}
}

// FairOffsetLines is FairOffset expressed in whole grid lines.
func FairOffsetLines(total Line, index, count int) Line {
	if count >= 1 && index == count {
		return total
	}
	checkSection(index, count)
	var offset Line
	for i := 0; i < index; i++ {
		offset += FairSpanLines(total, i, count)
	}
	return offset
}

func checkSection(index, count int) {
	if count < 1 {
		panic(fmt.Sprintf("grid: section count must be positive, got %d", count))
	}
	if index < 0 || index >= count {
		panic(fmt.Sprintf("grid: section index %d out of range [0, %d)", index, count))
	}
}
