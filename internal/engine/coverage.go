package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/panelgrid/internal/grid"
	"github.com/piwi3910/panelgrid/internal/model"
)

// FullCoverageCells is the area of the unit square in grid cells.
const FullCoverageCells = int64(grid.Resolution) * int64(grid.Resolution)

// ErrCoverage is matched by every CoverageError.
var ErrCoverage = errors.New("arrangement does not tile the unit square")

// CoverageKind identifies which check of VerifyFullCoverage failed.
type CoverageKind int

const (
	KindOverlap CoverageKind = iota // Two panels share a positive area
	KindArea                        // Panel areas do not add up to the unit square
)

func (k CoverageKind) String() string {
	switch k {
	case KindOverlap:
		return "overlap"
	case KindArea:
		return "area"
	default:
		return "unknown"
	}
}

// CoverageError reports a broken tiling together with the full arrangement.
type CoverageError struct {
	Kind   CoverageKind
	First  int   // Index of the first overlapping panel (KindOverlap)
	Second int   // Index of the second overlapping panel (KindOverlap)
	Cells  int64 // Summed area in grid cells (KindArea)
	Panels []model.Panel
}

func (e *CoverageError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindOverlap:
		fmt.Fprintf(&b, "%v: panels %d and %d overlap", ErrCoverage, e.First, e.Second)
	case KindArea:
		fmt.Fprintf(&b, "%v: total area is %d cells, want %d", ErrCoverage, e.Cells, FullCoverageCells)
	default:
		b.WriteString(ErrCoverage.Error())
	}
	for i, p := range e.Panels {
		fmt.Fprintf(&b, "\n  [%d] %s", i, p)
	}
	return b.String()
}

func (e *CoverageError) Unwrap() error {
	return ErrCoverage
}

// VerifyFullCoverage checks that no two panels overlap and that their areas
// add up to exactly the unit square. It is quadratic in the number of panels
// and meant as a consistency check after structural changes, not a hot path.
func VerifyFullCoverage(panels []model.Panel) error {
	for i := 0; i < len(panels); i++ {
		for j := i + 1; j < len(panels); j++ {
			if panels[i].Overlaps(panels[j]) {
				return &CoverageError{Kind: KindOverlap, First: i, Second: j, Panels: clonePanels(panels)}
			}
		}
	}

	var cells int64
	for _, p := range panels {
		cells += p.Cells()
	}
	if cells != FullCoverageCells {
		return &CoverageError{Kind: KindArea, Cells: cells, Panels: clonePanels(panels)}
	}
	return nil
}

// MustVerifyFullCoverage panics with the CoverageError if the arrangement is broken.
func MustVerifyFullCoverage(panels []model.Panel) {
	if err := VerifyFullCoverage(panels); err != nil {
		panic(err)
	}
}

func clonePanels(panels []model.Panel) []model.Panel {
	out := make([]model.Panel, len(panels))
	copy(out, panels)
	return out
}
