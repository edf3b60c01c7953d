package scene

import (
	"github.com/vtilecore/vtile/internal/outline"
	"github.com/vtilecore/vtile/internal/stroke"
)

// AddStroke expands o by style (flattened to tolerance) into its
// equivalent fill outline and appends it as a KindStroke path object,
// "stroke width baked by prior stroke-to-fill expansion
// before reaching the tiler" contract.
func (s *Scene) AddStroke(o *outline.Outline, style stroke.Style, paint PaintId, rule FillRule, name string, tolerance float32) int {
	filled := stroke.Expand(o, style, tolerance)
	s.Objects = append(s.Objects, PathObject{
		Outline: filled, Paint: paint, Kind: KindStroke, FillRule: rule, Name: name,
	})
	return len(s.Objects) - 1
}
