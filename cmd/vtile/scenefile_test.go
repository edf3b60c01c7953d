package main

import (
	"strings"
	"testing"

	"github.com/vtilecore/vtile/config"
)

func TestParseSceneUnitSquare(t *testing.T) {
	const doc = `{
		"viewBox": [0, 0, 16, 16],
		"rects": [
			{"x": 0, "y": 0, "w": 16, "h": 16, "fill": {"r": 255, "g": 0, "b": 0, "a": 255}}
		]
	}`
	sc, err := parseScene(strings.NewReader(doc), config.Default())
	if err != nil {
		t.Fatalf("parseScene: %v", err)
	}
	if len(sc.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(sc.Objects))
	}
	if sc.ViewBox.Max.X != 16 || sc.ViewBox.Max.Y != 16 {
		t.Fatalf("unexpected view box: %+v", sc.ViewBox)
	}
}

func TestParseSceneFillAndStroke(t *testing.T) {
	const doc = `{
		"viewBox": [0, 0, 32, 32],
		"rects": [
			{"x": 4, "y": 4, "w": 8, "h": 8,
			 "fill": {"r": 0, "g": 255, "b": 0, "a": 255},
			 "stroke": {"color": {"r": 0, "g": 0, "b": 0, "a": 255}, "width": 2, "join": "round"}}
		]
	}`
	sc, err := parseScene(strings.NewReader(doc), config.Default())
	if err != nil {
		t.Fatalf("parseScene: %v", err)
	}
	if len(sc.Objects) != 2 {
		t.Fatalf("expected 2 objects (fill + stroke), got %d", len(sc.Objects))
	}
}

func TestParseSceneRejectsMalformedJSON(t *testing.T) {
	_, err := parseScene(strings.NewReader("not json"), config.Default())
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestParseSceneAppliesTransform(t *testing.T) {
	const doc = `{
		"viewBox": [0, 0, 32, 32],
		"rects": [
			{"x": 0, "y": 0, "w": 4, "h": 4,
			 "transform": [1, 0, 10, 0, 1, 10],
			 "fill": {"r": 255, "g": 255, "b": 255, "a": 255}}
		]
	}`
	sc, err := parseScene(strings.NewReader(doc), config.Default())
	if err != nil {
		t.Fatalf("parseScene: %v", err)
	}
	b := sc.Objects[0].Outline.Bounds
	if b.Min.X != 10 || b.Min.Y != 10 {
		t.Fatalf("expected translated bounds starting at (10,10), got %+v", b)
	}
}
