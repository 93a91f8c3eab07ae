package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/ymatsux/quantum-reversi/pkg/dialog"
	"github.com/ymatsux/quantum-reversi/pkg/solver"
)

func main() {
	seed := flag.Uint("seed", 0, "PRNG seed (0 = derive from OS entropy)")
	budget := flag.Duration("budget", solver.InitialBudget, "total match time budget")
	logLevel := flag.String("log-level", "info", "zerolog level: debug, info, warn, error")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	var sv *solver.Solver
	if *seed == 0 {
		sv = solver.NewFromEntropy()
	} else {
		sv = solver.New(uint32(*seed))
	}
	sv.RemainingTime = *budget

	loop := dialog.New(os.Stdin, os.Stdout, sv, logger)
	if err := loop.Run(); err != nil {
		logger.Error().Err(err).Msg("dialog loop exited with an error")
		os.Exit(1)
	}
}
