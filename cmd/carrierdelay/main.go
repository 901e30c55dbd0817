package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/ab180/carrierdelay/config"
	"github.com/ab180/carrierdelay/delayjob"
	"github.com/ab180/carrierdelay/internal/util"
	"github.com/ab180/carrierdelay/report"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path of a JSON config file")
		inputPath   = flag.String("input", "", "path of the flight data CSV (.gz, .bz2 and .lz4 are decompressed)")
		format      = flag.String("format", "", "output format: text or json")
		dumpMetrics = flag.Bool("metrics", false, "print pipeline metrics to stderr")
		verbose     = flag.Bool("v", false, "enable debug logs")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = c
	}
	if flag.NArg() > 0 {
		cfg.InputPath = flag.Arg(0)
	}
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *format != "" {
		cfg.Format = config.Format(*format)
	}

	ctx, cancel := util.ContextWithSignal(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *dumpMetrics); err != nil {
		log.Error().Err(err).Msg("failed to compute delays by carrier")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dumpMetrics bool) error {
	s, err := delayjob.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if s.Warnings != nil {
		log.Warn().Err(s.Warnings).Msg("some lines were skipped")
	}
	if dumpMetrics {
		fmt.Fprint(os.Stderr, s.Metrics.String())
	}
	if cfg.Format == config.JSONFormat {
		return report.WriteJSON(os.Stdout, s.Carriers, s.Took)
	}
	return report.WriteText(os.Stdout, s.Carriers, s.Took)
}
