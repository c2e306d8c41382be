package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/panelgrid/internal/model"
)

func quadrants() []model.Panel {
	return []model.Panel{
		model.MustPanel(model.Point{X: 0, Y: 0}, 0.5, 0.5),
		model.MustPanel(model.Point{X: 0.5, Y: 0}, 0.5, 0.5),
		model.MustPanel(model.Point{X: 0, Y: 0.5}, 0.5, 0.5),
		model.MustPanel(model.Point{X: 0.5, Y: 0.5}, 0.5, 0.5),
	}
}

func TestVerifyFullCoverage_Quadrants(t *testing.T) {
	assert.NoError(t, VerifyFullCoverage(quadrants()))
}

func TestVerifyFullCoverage_FullPanel(t *testing.T) {
	assert.NoError(t, VerifyFullCoverage([]model.Panel{model.FullPanel()}))
}

func TestVerifyFullCoverage_ShrunkQuadrantFailsArea(t *testing.T) {
	panels := quadrants()
	panels[3] = model.MustPanel(model.Point{X: 0.5, Y: 0.5}, 0.5, 0.4)

	err := VerifyFullCoverage(panels)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoverage))

	var covErr *CoverageError
	require.True(t, errors.As(err, &covErr))
	assert.Equal(t, KindArea, covErr.Kind)
	assert.Equal(t, int64(950000), covErr.Cells)
	assert.Len(t, covErr.Panels, 4)
}

func TestVerifyFullCoverage_Overlap(t *testing.T) {
	panels := quadrants()
	panels = append(panels, model.MustLTRB(0.25, 0.25, 0.75, 0.75))

	err := VerifyFullCoverage(panels)
	var covErr *CoverageError
	require.True(t, errors.As(err, &covErr))
	assert.Equal(t, KindOverlap, covErr.Kind)
	assert.Equal(t, 0, covErr.First)
	assert.Equal(t, 4, covErr.Second)
}

func TestVerifyFullCoverage_OverlapWithCorrectArea(t *testing.T) {
	// Same total area as the unit square, but two panels share a region.
	panels := []model.Panel{
		model.MustLTRB(0, 0, 0.75, 1),
		model.MustLTRB(0.5, 0, 0.75, 1),
	}
	err := VerifyFullCoverage(panels)
	var covErr *CoverageError
	require.True(t, errors.As(err, &covErr))
	assert.Equal(t, KindOverlap, covErr.Kind)
}

func TestVerifyFullCoverage_Empty(t *testing.T) {
	err := VerifyFullCoverage(nil)
	var covErr *CoverageError
	require.True(t, errors.As(err, &covErr))
	assert.Equal(t, KindArea, covErr.Kind)
	assert.Zero(t, covErr.Cells)
}

func TestCoverageError_DumpsEveryPanel(t *testing.T) {
	panels := quadrants()[:3]
	err := VerifyFullCoverage(panels)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "750000 cells")
	for i := range panels {
		assert.Contains(t, msg, panels[i].String())
	}
	assert.Equal(t, 3, strings.Count(msg, "\n"))
}

func TestCoverageError_DoesNotAliasInput(t *testing.T) {
	panels := quadrants()[:3]
	err := VerifyFullCoverage(panels)
	var covErr *CoverageError
	require.True(t, errors.As(err, &covErr))

	panels[0] = model.FullPanel()
	assert.NotEqual(t, model.FullPanel(), covErr.Panels[0])
}

func TestMustVerifyFullCoverage(t *testing.T) {
	assert.NotPanics(t, func() { MustVerifyFullCoverage(quadrants()) })
	assert.Panics(t, func() { MustVerifyFullCoverage(quadrants()[:2]) })
}

func TestCoverageKindString(t *testing.T) {
	assert.Equal(t, "overlap", KindOverlap.String())
	assert.Equal(t, "area", KindArea.String())
	assert.Equal(t, "unknown", CoverageKind(7).String())
}
