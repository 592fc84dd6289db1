package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kestrelchess/kestrel/pkg/config"
	"github.com/kestrelchess/kestrel/pkg/engine"
	"github.com/kestrelchess/kestrel/pkg/engine/uci"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/seekerror/logw"
)

var (
	cfgPath = flag.String("config", "kestrel.toml", "Optional TOML config file with engine-tuning overrides")
	depth   = flag.Uint("depth", 0, "Default search depth limit in plies (zero means no limit)")
	hash    = flag.Uint("hash", 0, "Transposition table size in MB (zero uses the config default)")
	noise   = flag.Uint("noise", 0, "Evaluation noise in millipawns (zero uses the config default)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: kestrel [options]

kestrel is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg := config.Load(*cfgPath)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			cfg.Depth = *depth
		case "hash":
			if *hash > 0 {
				cfg.Hash = *hash
			}
		case "noise":
			if *noise > 0 {
				cfg.Noise = *noise
			}
		}
	})
	eval.EndgamePhaseThreshold = int32(cfg.EndgamePhaseThreshold)

	s := search.NegaMax{
		// Explore is left unset: NegaMax defaults to transposition-table-aware
		// ordering against whatever table the engine hands it per search.
		Quiesce: search.Quiescence{
			Explore: search.NoisyOrdering(),
			Eval:    search.StaticEvaluator{},
		},
	}

	e := engine.New(ctx, "kestrel", "the kestrel authors", s, engine.WithTable(search.NewTranspositionTable), engine.WithOptions(engine.Options{
		Depth: cfg.Depth,
		Hash:  cfg.Hash,
		Noise: cfg.Noise,
	}))

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
