// Package refraster is a test-only reference oracle: it rasterizes a
// scene with golang.org/x/image/vector's independent analytic coverage
// rasterizer so the tiler's per-pixel coverage can be cross-checked
// against a second implementation instead of only against itself.
//
// This package is the only consumer of golang.org/x/image in this
// module; it uses only the vector sub-package.
package refraster

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

// Coverage rasterizes o's fill coverage into a w x h 8-bit alpha
// buffer using the nonzero winding rule, matching the tiler's default
// fill rule.
func Coverage(o *outline.Outline, w, h int) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	for _, c := range o.Contours {
		if len(c.Points) == 0 {
			continue
		}
		r.MoveTo(c.Points[0].X, c.Points[0].Y)
		c.Segments(func(seg geom.Segment) bool {
			switch seg.Kind {
			case geom.SegmentQuadratic:
				r.QuadTo(seg.Ctrl0.X, seg.Ctrl0.Y, seg.To.X, seg.To.Y)
			case geom.SegmentCubic:
				r.CubeTo(seg.Ctrl0.X, seg.Ctrl0.Y, seg.Ctrl1.X, seg.Ctrl1.Y, seg.To.X, seg.To.Y)
			default:
				r.LineTo(seg.To.X, seg.To.Y)
			}
			return true
		})
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// At returns the coverage fraction in [0, 1] for pixel (x, y) of a
// buffer produced by Coverage.
func At(dst *image.Alpha, x, y int) float64 {
	if x < 0 || y < 0 || x >= dst.Rect.Dx() || y >= dst.Rect.Dy() {
		return 0
	}
	return float64(dst.AlphaAt(x, y).A) / 255
}
