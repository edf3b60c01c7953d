package config

import (
	"path/filepath"
	"testing"

	"github.com/vtilecore/vtile/scene"
)

func TestDefaultPassesValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsWrongTileSize(t *testing.T) {
	c := Default()
	c.TileWidth = 32
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for a non-16 tile_width")
	}
}

func TestValidateRejectsUnknownFillRule(t *testing.T) {
	c := Default()
	c.FillRule = "winding-odd"
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognized fill_rule")
	}
}

func TestParseFillRule(t *testing.T) {
	if ParseFillRule("evenodd") != scene.FillEvenOdd {
		t.Fatal("expected evenodd to map to FillEvenOdd")
	}
	if ParseFillRule("nonzero") != scene.FillNonZero {
		t.Fatal("expected nonzero to map to FillNonZero")
	}
	if ParseFillRule("") != scene.FillNonZero {
		t.Fatal("expected an empty fill rule to default to FillNonZero")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".vtile.toml")

	want := Default()
	want.Tolerance = 0.1
	want.Output = "out.pf3s"
	want.Threads = 4

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("expected an error loading a missing config file")
	}
}
