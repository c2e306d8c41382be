package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/panelgrid/internal/model"
)

// bounds is an axis-aligned box in drawing units (Y up).
type bounds struct {
	minX, minY, maxX, maxY float64
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

func (b bounds) union(o bounds) bounds {
	return bounds{
		minX: math.Min(b.minX, o.minX),
		minY: math.Min(b.minY, o.minY),
		maxX: math.Max(b.maxX, o.maxX),
		maxY: math.Max(b.maxY, o.maxY),
	}
}

// ImportDXF imports regions from a DXF file. Each LWPOLYLINE contributes its
// bounding box; the boxes are scaled into the unit square by the extent of
// all of them together, with the top-left corner of the drawing as origin.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var boxes []bounds
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			// Unsupported entity types are silently skipped
			continue
		}
		box, warning, ok := polylineBounds(lw)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if ok {
			boxes = append(boxes, box)
		}
	}

	if len(boxes) == 0 {
		result.Errors = append(result.Errors, "No rectangles found in DXF file")
		return result
	}

	regions, errs := normalizeBoxes(boxes)
	result.Regions = regions
	result.Errors = append(result.Errors, errs...)
	return result
}

// polylineBounds returns the bounding box of a polyline. Shapes that are not
// plain four-corner rectangles are still imported by their bounding box with
// a warning; polylines with fewer than three vertices are skipped.
func polylineBounds(lw *entity.LwPolyline) (bounds, string, bool) {
	if len(lw.Vertices) < 3 {
		return bounds{}, "Skipped LWPOLYLINE with fewer than 3 vertices", false
	}

	box := bounds{
		minX: lw.Vertices[0][0], minY: lw.Vertices[0][1],
		maxX: lw.Vertices[0][0], maxY: lw.Vertices[0][1],
	}
	for _, v := range lw.Vertices[1:] {
		box = box.union(bounds{minX: v[0], minY: v[1], maxX: v[0], maxY: v[1]})
	}

	if box.width() < 1e-9 || box.height() < 1e-9 {
		return bounds{}, "Skipped degenerate LWPOLYLINE", false
	}

	var warning string
	if len(lw.Vertices) != 4 || hasBulge(lw.Bulges) {
		warning = fmt.Sprintf("Shape with %d vertices imported by its bounding box", len(lw.Vertices))
	}
	return box, warning, true
}

func hasBulge(bulges []float64) bool {
	for _, b := range bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

// normalizeBoxes maps drawing boxes into the unit square. DXF uses Y up, so
// the top of the overall extent becomes y = 0.
func normalizeBoxes(boxes []bounds) ([]model.Region, []string) {
	extent := boxes[0]
	for _, b := range boxes[1:] {
		extent = extent.union(b)
	}

	var regions []model.Region
	var errs []string
	for i, b := range boxes {
		left := (b.minX - extent.minX) / extent.width()
		right := (b.maxX - extent.minX) / extent.width()
		top := (extent.maxY - b.maxY) / extent.height()
		bottom := (extent.maxY - b.minY) / extent.height()

		panel, err := model.FromLTRB(left, top, right, bottom)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Shape %d: %v", i+1, err))
			continue
		}
		regions = append(regions, model.NewRegion(fmt.Sprintf("DXF Panel %d", i+1), panel))
	}
	return regions, errs
}
