package scene

import (
	"context"
	"runtime"

	"github.com/vtilecore/vtile/internal/flatten"
	"github.com/vtilecore/vtile/internal/tiler"
	"github.com/vtilecore/vtile/internal/workpool"
	"github.com/vtilecore/vtile/internal/zbuffer"
)

// BuildConfig carries the per-render parameters: no global state,
// everything passed by value into the top-level render call.
type BuildConfig struct {
	// Tolerance is the flattening tolerance in device pixels (default
	// flatten.DefaultTolerance if <= 0).
	Tolerance float32
	// Threads is the worker-pool size (default runtime.GOMAXPROCS(0) if
	// <= 0).
	Threads int
}

// Build tiles every object in sc concurrently,
// then runs the serial assembly pass and returns the finished
// BuiltScene.
func Build(sc *Scene, cfg BuildConfig) *BuiltScene {
	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = flatten.DefaultTolerance
	}

	sceneTileRect := tiler.NewTileRect(sc.ViewBox, sc.ViewBox, tiler.TileSize, tiler.TileSize)
	zb := zbuffer.New(sceneTileRect.MinX, sceneTileRect.MinY, sceneTileRect.Width(), sceneTileRect.Height())

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	tilerPool := tiler.NewPool(tolerance, threads)
	defer tilerPool.Close(context.Background())

	pool := workpool.New(threads, tilerPool, zb)
	defer pool.Close()

	jobs := make([]workpool.Job, len(sc.Objects))
	for i, obj := range sc.Objects {
		jobs[i] = workpool.Job{
			Outline:     obj.Outline,
			ViewBox:     sc.ViewBox,
			ObjectIndex: i,
			Shader:      uint16(obj.Paint),
			Rule:        windingRuleOf(obj.FillRule),
		}
	}
	built := pool.TileAll(jobs)

	return assemble(sc, built, zb, sceneTileRect)
}

// windingRuleOf maps a PathObject's FillRule to the tiler's winding
// rule; scene and tiler can't import each other, so the conversion
// lives here at their boundary.
func windingRuleOf(r FillRule) tiler.WindingRule {
	if r == FillEvenOdd {
		return tiler.WindingEvenOdd
	}
	return tiler.WindingNonZero
}
