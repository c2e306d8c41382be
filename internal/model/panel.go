package model

import (
	"encoding/json"
	"fmt"

	"github.com/piwi3910/panelgrid/internal/grid"
)

// Point is a grid coordinate inside the unit square (0,0 is top-left).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Panel is an immutable axis-aligned rectangle inside the unit square.
// Geometry is stored in whole grid lines so that edges computed by different
// operations compare exactly. A changed panel is always a new value.
type Panel struct {
	x, y, w, h grid.Line
}

// FullPanel returns the panel covering the whole unit square.
func FullPanel() Panel {
	return Panel{w: grid.Resolution, h: grid.Resolution}
}

// NewPanel quantizes origin and extents and returns the panel, or a
// *GeometryError if the rectangle does not fit inside the unit square.
// The input is never clamped.
func NewPanel(origin Point, heightFactor, widthFactor float64) (Panel, error) {
	return fromLines(grid.ToLines(origin.X), grid.ToLines(origin.Y),
		grid.ToLines(widthFactor), grid.ToLines(heightFactor))
}

// FromLTRB builds a panel from its left, top, right and bottom edges.
func FromLTRB(left, top, right, bottom float64) (Panel, error) {
	return NewPanel(Point{X: left, Y: top}, bottom-top, right-left)
}

// MustPanel is like NewPanel but panics on invalid geometry.
func MustPanel(origin Point, heightFactor, widthFactor float64) Panel {
	p, err := NewPanel(origin, heightFactor, widthFactor)
	if err != nil {
		panic(err)
	}
	return p
}

// MustLTRB is like FromLTRB but panics on invalid geometry.
func MustLTRB(left, top, right, bottom float64) Panel {
	p, err := FromLTRB(left, top, right, bottom)
	if err != nil {
		panic(err)
	}
	return p
}

func fromLines(x, y, w, h grid.Line) (Panel, error) {
	var reason string
	switch {
	case x < 0 || y < 0:
		reason = "origin is negative"
	case w < 0 || h < 0:
		reason = "extent is negative"
	case x+w > grid.Resolution:
		reason = "right edge is past the unit square"
	case y+h > grid.Resolution:
		reason = "bottom edge is past the unit square"
	default:
		return Panel{x: x, y: y, w: w, h: h}, nil
	}
	return Panel{}, &GeometryError{
		X: x.Factor(), Y: y.Factor(), Width: w.Factor(), Height: h.Factor(),
		Reason: reason,
	}
}

// mustLines is used for results of operations on already valid panels.
func mustLines(x, y, w, h grid.Line) Panel {
	p, err := fromLines(x, y, w, h)
	if err != nil {
		panic(fmt.Sprintf("model: internal geometry error: %v", err))
	}
	return p
}

func (p Panel) Origin() Point { return Point{X: p.x.Factor(), Y: p.y.Factor()} }
func (p Panel) WidthFactor() float64 { return p.w.Factor() }
func (p Panel) HeightFactor() float64 { return p.h.Factor() }
func (p Panel) Left() float64 { return p.x.Factor() }
func (p Panel) Top() float64 { return p.y.Factor() }
func (p Panel) Right() float64 { return (p.x + p.w).Factor() }
func (p Panel) Bottom() float64 { return (p.y + p.h).Factor() }

// SizeFactor returns the panel's area as a fraction of the unit square.
func (p Panel) SizeFactor() float64 {
	return p.WidthFactor() * p.HeightFactor()
}

// Cells returns the panel's area in grid cells (Resolution² for the full square).
func (p Panel) Cells() int64 {
	return int64(p.w) * int64(p.h)
}

// IsTall reports whether the panel is taller than it is wide.
func (p Panel) IsTall() bool {
	return p.h > p.w
}

// Equal reports exact geometric equality.
func (p Panel) Equal(other Panel) bool {
	return p == other
}

// CanSplitVertically reports whether both halves of a left/right split would
// still be at least the minimum panel width in a container of the given width.
func (p Panel) CanSplitVertically(containerWidth float64) bool {
	return p.WidthFactor()/2 >= grid.SmallestWidthFactor(containerWidth)
}

// CanSplitHorizontally reports whether both halves of a top/bottom split would
// still be at least the minimum panel height in a container of the given height.
func (p Panel) CanSplitHorizontally(containerHeight float64) bool {
	return p.HeightFactor()/2 >= grid.SmallestHeightFactor(containerHeight)
}

// IsOriginAligned reports whether the origins share an x or a y coordinate.
func (p Panel) IsOriginAligned(other Panel) bool {
	return p.x == other.x || p.y == other.y
}

// IsAdjacentWithOriginAligned reports whether the panels are origin aligned
// and touch along the edge perpendicular to that alignment: stacked vertically
// with the same x, or side by side with the same y.
func (p Panel) IsAdjacentWithOriginAligned(other Panel) bool {
	if p.x == other.x && p.stackedWith(other) {
		return true
	}
	return p.y == other.y && p.besideOf(other)
}

func (p Panel) stackedWith(other Panel) bool {
	return p.y+p.h == other.y || other.y+other.h == p.y
}

func (p Panel) besideOf(other Panel) bool {
	return p.x+p.w == other.x || other.x+other.w == p.x
}

// Overlaps reports whether the rectangles share a positive-area region.
func (p Panel) Overlaps(other Panel) bool {
	width := min(p.x+p.w, other.x+other.w) - max(p.x, other.x)
	height := min(p.y+p.h, other.y+other.h) - max(p.y, other.y)
	return width > 0 && height > 0
}

// IsBelow reports whether p's top edge lies on other's bottom edge with any
// horizontal overlap. Unlike IsAdjacentWithOriginAligned the edges need not match.
func (p Panel) IsBelow(other Panel) bool {
	return p.y == other.y+other.h &&
		p.x < other.x+other.w && other.x < p.x+p.w
}

// IsRightOf reports whether p's left edge lies on other's right edge with any
// vertical overlap.
func (p Panel) IsRightOf(other Panel) bool {
	return p.x == other.x+other.w &&
		p.y < other.y+other.h && other.y < p.y+p.h
}

// Split halves the panel along its longer axis. Tall panels become a top and
// bottom half, all others a left and right half. Odd extents are divided with
// grid.FairSpanLines, which leaves the first half one line short.
func (p Panel) Split() (Panel, Panel) {
	if p.IsTall() {
		top := grid.FairSpanLines(p.h, 0, 2)
		bottom := grid.FairSpanLines(p.h, 1, 2)
		return mustLines(p.x, p.y, p.w, top), mustLines(p.x, p.y+top, p.w, bottom)
	}
	left := grid.FairSpanLines(p.w, 0, 2)
	right := grid.FairSpanLines(p.w, 1, 2)
	return mustLines(p.x, p.y, left, p.h), mustLines(p.x+left, p.y, right, p.h)
}

// Absorb merges other into p along a shared origin-aligned edge. The combined
// panel keeps p's extent across the edge; whatever part of other lies beyond
// that extent is returned as the remainder. When the panels are not adjacent,
// or other does not fully cover p's edge, Absorb returns (p, other) unchanged.
func (p Panel) Absorb(other Panel) (combined, remainder Panel) {
	if !p.IsAdjacentWithOriginAligned(other) {
		return p, other
	}

	if p.x == other.x && p.stackedWith(other) && other.w >= p.w {
		combined = mustLines(p.x, min(p.y, other.y), p.w, p.h+other.h)
		remainder = mustLines(p.x+p.w, other.y, other.w-p.w, other.h)
		return combined, remainder
	}

	if p.y == other.y && p.besideOf(other) && other.h >= p.h {
		combined = mustLines(min(p.x, other.x), p.y, p.w+other.w, p.h)
		remainder = mustLines(other.x, p.y+p.h, other.w, other.h-p.h)
		return combined, remainder
	}

	return p, other
}

// String renders the panel as origin and size for diagnostics.
func (p Panel) String() string {
	return fmt.Sprintf("Panel{origin: (%.3f, %.3f), size: %.3f x %.3f}",
		p.Left(), p.Top(), p.WidthFactor(), p.HeightFactor())
}

type panelJSON struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MarshalJSON encodes the panel as left/top/width/height factors.
func (p Panel) MarshalJSON() ([]byte, error) {
	return json.Marshal(panelJSON{
		Left:   p.Left(),
		Top:    p.Top(),
		Width:  p.WidthFactor(),
		Height: p.HeightFactor(),
	})
}

// UnmarshalJSON decodes and validates a panel.
func (p *Panel) UnmarshalJSON(data []byte) error {
	var raw panelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewPanel(Point{X: raw.Left, Y: raw.Top}, raw.Height, raw.Width)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
