// Package config holds the flat render-configuration struct: no global
// state, every run parameter travels in one value passed into the
// top-level render call.
//
// Config round-trips through an on-disk .vtile.toml sidecar via
// BurntSushi/toml.
package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vtilecore/vtile/internal/tiler"
	"github.com/vtilecore/vtile/internal/vtilerr"
	"github.com/vtilecore/vtile/scene"
)

// Config is the full set of run-time parameters for a render. The zero
// value passes Validate; Default returns the populated baseline.
type Config struct {
	// TileWidth, TileHeight must equal internal/tiler.TileSize (16);
	// the sweep-line tiler is built around a single fixed tile size, so
	// these fields exist for file-format completeness and are validated
	// against the constant rather than used to parameterize it.
	TileWidth  int `toml:"tile_width"`
	TileHeight int `toml:"tile_height"`

	// Tolerance is the curve-flattening tolerance in device pixels.
	Tolerance float64 `toml:"tolerance"`

	// FillRule is the default fill rule applied to objects that don't
	// specify their own ("nonzero" or "evenodd").
	FillRule string `toml:"fill_rule"`

	// Output is the destination path for the rendered .pf3s stream. An
	// empty value means stdout.
	Output string `toml:"output"`

	// Threads is the worker-pool size; 0 means host-chosen
	// (runtime.GOMAXPROCS(0), applied by internal/workpool.New).
	Threads int `toml:"threads"`

	// Runs repeats the render this many times (for benchmarking); 0 and
	// 1 both mean a single run.
	Runs int `toml:"runs"`
}

// Default returns the baseline configuration: 16x16 tiles, a 0.333px
// flattening tolerance (matching default), nonzero fill, one
// run, host-chosen thread count, stdout output.
func Default() Config {
	return Config{
		TileWidth:  tiler.TileSize,
		TileHeight: tiler.TileSize,
		Tolerance:  0.333,
		FillRule:   "nonzero",
		Threads:    0,
		Runs:       1,
	}
}

// Load reads a .vtile.toml sidecar from path, starting from Default()
// so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, vtilerr.Wrap(vtilerr.IOFailure, "load config "+path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as a .vtile.toml sidecar.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return vtilerr.Wrap(vtilerr.IOFailure, "encode config", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return vtilerr.Wrap(vtilerr.IOFailure, "write config "+path, err)
	}
	return nil
}

// Validate checks field invariants: the tile dimensions must match the tiler's fixed tile size, and the
// fill rule name must be recognized.
func (c Config) Validate() error {
	if c.TileWidth != 0 && c.TileWidth != tiler.TileSize {
		return vtilerr.New(vtilerr.InputInvalid, "tile_width must equal the fixed tile size (16)")
	}
	if c.TileHeight != 0 && c.TileHeight != tiler.TileSize {
		return vtilerr.New(vtilerr.InputInvalid, "tile_height must equal the fixed tile size (16)")
	}
	switch c.FillRule {
	case "", "nonzero", "evenodd":
	default:
		return vtilerr.New(vtilerr.InputInvalid, "fill_rule must be \"nonzero\" or \"evenodd\"")
	}
	return nil
}

// ParseFillRule maps a config fill-rule name to the scene package's
// FillRule enum, defaulting to FillNonZero for an empty/unrecognized
// value (Validate should be called first to reject the latter).
func ParseFillRule(name string) scene.FillRule {
	if name == "evenodd" {
		return scene.FillEvenOdd
	}
	return scene.FillNonZero
}

// BuildConfig projects the render-relevant fields of cfg into the
// scene package's build parameters.
func (c Config) BuildConfig() scene.BuildConfig {
	return scene.BuildConfig{
		Tolerance: float32(c.Tolerance),
		Threads:   c.Threads,
	}
}
