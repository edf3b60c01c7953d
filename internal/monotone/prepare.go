package monotone

import (
	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

// PreparedContour is a contour reduced to a cyclic loop of Y-monotonic
// edges: edges[i].From is vertex i, edges[i].To is vertex (i+1 mod n).
// Horizontal edges (From.Y == To.Y) remain in the loop for adjacency
// bookkeeping but are never added as active edges by the tiler — a
// perfectly horizontal edge contributes no winding and is discarded.
type PreparedContour struct {
	Edges []geom.Segment
}

// PreparedOutline is the tiler's input: an outline whose every segment
// is monotonic in Y.
type PreparedOutline struct {
	Contours []PreparedContour
	Bounds   geom.Rect
}

// Prepare runs the monotonic preparer (this package's Split) over
// every segment of every non-degenerate contour of o, producing the
// closed-loop edge lists the tiler sweeps. Contours that are not
// explicitly closed are implicitly closed here for fill purposes (an
// open contour has no well-defined interior to fill otherwise).
func Prepare(o *outline.Outline) PreparedOutline {
	var out PreparedOutline
	out.Bounds = geom.EmptyRect()

	for ci := range o.Contours {
		c := &o.Contours[ci]
		if c.IsDegenerate() {
			continue
		}

		var edges []geom.Segment
		c.Segments(func(s geom.Segment) bool {
			edges = append(edges, Split(s)...)
			return true
		})
		if len(edges) == 0 {
			continue
		}
		if edges[len(edges)-1].To != edges[0].From {
			edges = append(edges, geom.LineOf(edges[len(edges)-1].To, edges[0].From))
		}

		out.Contours = append(out.Contours, PreparedContour{Edges: edges})
		out.Bounds = out.Bounds.Union(c.Bounds)
	}
	return out
}
