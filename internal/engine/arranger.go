package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/panelgrid/internal/grid"
	"github.com/piwi3910/panelgrid/internal/model"
)

// ErrCannotSplit is returned when a split would leave a half narrower or
// shorter than the minimum panel size of the container.
var ErrCannotSplit = errors.New("panel is too small to split")

// ErrNotAbsorbed is returned by AbsorbAt when the two panels cannot be merged.
var ErrNotAbsorbed = errors.New("panels cannot be absorbed")

// Arranger applies structural operations to arrangements laid out in a
// physical container. It holds no arrangement itself: every method takes the
// current panels and returns a new slice, leaving the input untouched.
type Arranger struct {
	Container grid.Size
}

func New(container grid.Size) *Arranger {
	return &Arranger{Container: container}
}

// Tile returns the densest uniform tiling the container allows.
func (a *Arranger) Tile() []model.Panel {
	return TilingFor(a.Container)
}

// CanSplit reports whether the panel may be split in this container along the
// axis Split would choose.
func (a *Arranger) CanSplit(p model.Panel) bool {
	if p.IsTall() {
		return p.CanSplitHorizontally(a.Container.Height)
	}
	return p.CanSplitVertically(a.Container.Width)
}

// SplitAt replaces panels[i] with its two halves, which are inserted in its
// place. The result is verified to still cover the unit square.
func (a *Arranger) SplitAt(panels []model.Panel, i int) ([]model.Panel, error) {
	if err := checkIndex(panels, i); err != nil {
		return nil, err
	}
	if !a.CanSplit(panels[i]) {
		return nil, fmt.Errorf("%w: %s in %.0fx%.0f container",
			ErrCannotSplit, panels[i], a.Container.Width, a.Container.Height)
	}

	first, second := panels[i].Split()
	result := make([]model.Panel, 0, len(panels)+1)
	result = append(result, panels[:i]...)
	result = append(result, first, second)
	result = append(result, panels[i+1:]...)

	if err := VerifyFullCoverage(result); err != nil {
		return nil, err
	}
	return result, nil
}

// AbsorbAt merges panels[j] into panels[i]. The combined panel takes the
// place of panels[i]; a remainder with area takes the place of panels[j] and
// an empty one is dropped. ErrNotAbsorbed is returned when Absorb is a no-op.
func (a *Arranger) AbsorbAt(panels []model.Panel, i, j int) ([]model.Panel, error) {
	if err := checkIndex(panels, i); err != nil {
		return nil, err
	}
	if err := checkIndex(panels, j); err != nil {
		return nil, err
	}
	if i == j {
		return nil, fmt.Errorf("%w: a panel cannot absorb itself", ErrNotAbsorbed)
	}

	combined, remainder := panels[i].Absorb(panels[j])
	if combined.Equal(panels[i]) && remainder.Equal(panels[j]) {
		return nil, fmt.Errorf("%w: %s and %s", ErrNotAbsorbed, panels[i], panels[j])
	}

	result := make([]model.Panel, 0, len(panels))
	for k, p := range panels {
		switch k {
		case i:
			result = append(result, combined)
		case j:
			if remainder.Cells() > 0 {
				result = append(result, remainder)
			}
		default:
			result = append(result, p)
		}
	}

	if err := VerifyFullCoverage(result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkIndex(panels []model.Panel, i int) error {
	if i < 0 || i >= len(panels) {
		return fmt.Errorf("panel index %d out of range [0, %d)", i, len(panels))
	}
	return nil
}

// TilingFor returns the uniform tiling with as many rows and columns as size
// can hold at the minimum panel size.
func TilingFor(size grid.Size) []model.Panel {
	return UniformTiling(grid.MaxRows(size), grid.MaxColumns(size))
}

// UniformTiling divides the unit square into rows x cols panels, row by row
// from the top-left. Rows and columns are sized with grid.FairSpan so the
// tiling is grid exact. Counts below one are treated as one.
func UniformTiling(rows, cols int) []model.Panel {
	rows = max(rows, 1)
	cols = max(cols, 1)

	full := grid.Line(grid.Resolution)
	panels := make([]model.Panel, 0, rows*cols)
	for r := 0; r < rows; r++ {
		top := grid.FairOffsetLines(full, r, rows)
		height := grid.FairSpanLines(full, r, rows)
		for c := 0; c < cols; c++ {
			left := grid.FairOffsetLines(full, c, cols)
			width := grid.FairSpanLines(full, c, cols)
			panels = append(panels, model.MustPanel(
				model.Point{X: left.Factor(), Y: top.Factor()},
				height.Factor(), width.Factor()))
		}
	}
	return panels
}
