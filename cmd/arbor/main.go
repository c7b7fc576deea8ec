package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"

	"github.com/arborchess/arbor/pkg/engine"
	"github.com/arborchess/arbor/pkg/engine/book"
	"github.com/arborchess/arbor/pkg/engine/storage"
	"github.com/arborchess/arbor/pkg/engine/uci"
)

var (
	hash    = flag.Uint("hash", 32, "Transposition table size in MB (zero disables it)")
	depth   = flag.Uint("depth", 0, "Search depth limit (zero is unlimited)")
	noise   = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
	bookBin = flag.String("book", "", "Path to a Polyglot .bin opening book (optional)")
	dataDir = flag.String("datadir", "", "Directory for persisted options/telemetry (optional)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: arbor [options]

arbor is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	var opts []engine.Option
	opts = append(opts, engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}))

	if *bookBin != "" {
		b, err := book.Load(*bookBin)
		if err != nil {
			logw.Exitf(ctx, "Failed to load book %v: %v", *bookBin, err)
		}
		opts = append(opts, engine.WithBook(engine.NewPolyglotBook(b)))
	}

	if *dataDir != "" {
		s, err := storage.Open(*dataDir)
		if err != nil {
			logw.Exitf(ctx, "Failed to open storage %v: %v", *dataDir, err)
		}
		defer s.Close()
		opts = append(opts, engine.WithStorage(s))
	}

	e := engine.New(ctx, "arbor", "arborchess", opts...)
	defer e.Close()

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
