// Command vtile is the reference driver for the renderer: it reads a
// scene description, tiles and assembles it, and writes the
// RIFF-chunked command stream produced by package wire.
//
// Flag parsing uses the stdlib flag package rather than a third-party
// CLI framework — a driver this small doesn't need one.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/vtilecore/vtile/config"
	"github.com/vtilecore/vtile/internal/tiler"
	"github.com/vtilecore/vtile/scene"
	"github.com/vtilecore/vtile/wire"
)

// dumpSummary is what -dump prints via spew: the counts an operator
// checks first when a render looks wrong, without dumping every
// primitive.
type dumpSummary struct {
	ViewBoxTileRect tiler.TileRect
	ShaderCount     int
	SolidTileCount  int
	BatchCount      int
}

type cliOpts struct {
	input   string
	output  string
	runs    int
	jobs    int
	verbose bool
	dump    bool
}

func parseCLIOpts(args []string) (cliOpts, error) {
	var opt cliOpts
	fs := flag.NewFlagSet("vtile", flag.ContinueOnError)
	fs.IntVar(&opt.runs, "r", 1, "number of times to run the render (for benchmarking)")
	fs.IntVar(&opt.runs, "runs", 1, "number of times to run the render (for benchmarking)")
	fs.IntVar(&opt.jobs, "j", 0, "worker thread count (0 = host-chosen)")
	fs.IntVar(&opt.jobs, "jobs", 0, "worker thread count (0 = host-chosen)")
	fs.BoolVar(&opt.verbose, "v", false, "verbose logging")
	fs.BoolVar(&opt.dump, "dump", false, "dump the built scene's primitive counts to stderr")
	// Parse flags in a loop so that flags may follow the positional
	// arguments, as the usage line shows.
	var rest []string
	for {
		if err := fs.Parse(args); err != nil {
			return cliOpts{}, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		rest = append(rest, args[0])
		args = args[1:]
	}
	if len(rest) < 1 {
		return cliOpts{}, fmt.Errorf("usage: vtile INPUT [OUTPUT] [-r N] [-j N]")
	}
	opt.input = rest[0]
	if len(rest) > 1 {
		opt.output = rest[1]
	}
	return opt, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opt, err := parseCLIOpts(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !opt.verbose {
		log.SetOutput(os.Stderr)
	}

	in, err := os.Open(opt.input)
	if err != nil {
		log.Printf("open input: %v", err)
		return 1
	}
	defer in.Close()

	cfg := config.Default()
	cfg.Threads = opt.jobs

	sc, err := parseScene(in, cfg)
	if err != nil {
		log.Printf("parse scene: %v", err)
		return 1
	}

	out := os.Stdout
	if opt.output != "" {
		f, err := os.Create(opt.output)
		if err != nil {
			log.Printf("create output: %v", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	runs := opt.runs
	if runs <= 0 {
		runs = 1
	}

	var built *scene.BuiltScene
	start := time.Now()
	for i := 0; i < runs; i++ {
		built = scene.Build(sc, cfg.BuildConfig())
	}
	if opt.verbose {
		log.Printf("built %d run(s) in %v", runs, time.Since(start))
	}
	if opt.dump {
		spew.Fdump(os.Stderr, dumpSummary{
			ViewBoxTileRect: built.ViewBoxTileRect,
			ShaderCount:     len(built.Shaders),
			SolidTileCount:  len(built.SolidTiles),
			BatchCount:      len(built.Batches),
		})
	}

	if err := wire.Write(out, built); err != nil {
		log.Printf("write output: %v", err)
		return 1
	}
	return 0
}
