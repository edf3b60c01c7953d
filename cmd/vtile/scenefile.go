package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/vtilecore/vtile/config"
	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
	"github.com/vtilecore/vtile/internal/stroke"
	"github.com/vtilecore/vtile/internal/vtilerr"
	"github.com/vtilecore/vtile/scene"
)

// sceneFile is a minimal host-supplied scene description: a view-box
// plus a flat list of rectangles, each with an optional affine
// transform and a solid fill and/or stroke paint.
type sceneFile struct {
	ViewBox [4]float32 `json:"viewBox"`
	Rects   []rectNode `json:"rects"`
}

type rectNode struct {
	X         float32     `json:"x"`
	Y         float32     `json:"y"`
	W         float32     `json:"w"`
	H         float32     `json:"h"`
	Transform *[6]float32 `json:"transform,omitempty"`
	Fill      *colorSpec  `json:"fill,omitempty"`
	Stroke    *strokeSpec `json:"stroke,omitempty"`
	FillRule  string      `json:"fillRule,omitempty"`
	Name      string      `json:"name,omitempty"`
}

type colorSpec struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type strokeSpec struct {
	Color      colorSpec `json:"color"`
	Width      float32   `json:"width"`
	Cap        string    `json:"cap,omitempty"`
	Join       string    `json:"join,omitempty"`
	MiterLimit float32   `json:"miterLimit,omitempty"`
}

// parseScene decodes JSON scene description r into a scene.Scene,
// resolving per-object defaults from cfg.
func parseScene(r io.Reader, cfg config.Config) (*scene.Scene, error) {
	var sf sceneFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&sf); err != nil {
		return nil, vtilerr.Wrap(vtilerr.InputInvalid, "parse scene JSON", err)
	}

	vb := geom.RectFromPoints(
		geom.Pt(sf.ViewBox[0], sf.ViewBox[1]),
		geom.Pt(sf.ViewBox[0]+sf.ViewBox[2], sf.ViewBox[1]+sf.ViewBox[3]),
	)
	sc := scene.New(vb)

	for i, rn := range sf.Rects {
		o := rectOutline(rn)
		if rn.Transform != nil {
			t := *rn.Transform
			o.Transform(geom.Affine2D{A: t[0], B: t[1], C: t[2], D: t[3], E: t[4], F: t[5]})
			o.RecomputeBounds()
		}

		name := rn.Name
		if name == "" {
			name = rectDefaultName(i)
		}
		ruleName := rn.FillRule
		if ruleName == "" {
			ruleName = cfg.FillRule
		}
		rule := config.ParseFillRule(ruleName)

		if rn.Fill != nil {
			paint := sc.Paints.Intern(scene.Paint{R: rn.Fill.R, G: rn.Fill.G, B: rn.Fill.B, A: rn.Fill.A})
			sc.AddFill(o, paint, rule, name)
		}
		if rn.Stroke != nil {
			paint := sc.Paints.Intern(scene.Paint{R: rn.Stroke.Color.R, G: rn.Stroke.Color.G, B: rn.Stroke.Color.B, A: rn.Stroke.Color.A})
			style := stroke.DefaultStyle()
			style.Width = rn.Stroke.Width
			if rn.Stroke.MiterLimit > 0 {
				style.MiterLimit = rn.Stroke.MiterLimit
			}
			style.Cap = parseCap(rn.Stroke.Cap)
			style.Join = parseJoin(rn.Stroke.Join)
			sc.AddStroke(o, style, paint, rule, name+"-stroke", float32(cfg.Tolerance))
		}
	}
	return sc, nil
}

func rectOutline(rn rectNode) *outline.Outline {
	o := outline.New()
	_ = o.MoveTo(geom.Pt(rn.X, rn.Y))
	_ = o.LineTo(geom.Pt(rn.X+rn.W, rn.Y))
	_ = o.LineTo(geom.Pt(rn.X+rn.W, rn.Y+rn.H))
	_ = o.LineTo(geom.Pt(rn.X, rn.Y+rn.H))
	_ = o.Close()
	o.RecomputeBounds()
	return o
}

func rectDefaultName(i int) string {
	return "rect" + strconv.Itoa(i)
}

func parseCap(name string) stroke.LineCap {
	switch name {
	case "round":
		return stroke.CapRound
	case "square":
		return stroke.CapSquare
	default:
		return stroke.CapButt
	}
}

func parseJoin(name string) stroke.LineJoin {
	switch name {
	case "round":
		return stroke.JoinRound
	case "bevel":
		return stroke.JoinBevel
	default:
		return stroke.JoinMiter
	}
}
