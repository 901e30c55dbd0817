package delayjob

import (
	"context"
	"time"

	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/config"
	"github.com/ab180/carrierdelay/flight"
	"github.com/ab180/carrierdelay/metric"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const jobName = "carrierdelay"

// Summary is the result of a run.
type Summary struct {
	Carriers []flight.CarrierAggregate
	Took     time.Duration
	Metrics  metric.Metrics

	// Warnings holds the first errors of skipped malformed lines, or nil.
	Warnings error
}

// Build creates the pipeline computing delays by carrier:
// DecodeEvents, DelayedOnly, ProjectDelay, SumDelays and ByCarrier (when SortOutput is set).
func Build(cfg *config.Config, opts ...carrierdelay.PipelineOption) *carrierdelay.Pipeline {
	opts = append([]carrierdelay.PipelineOption{carrierdelay.WithName(jobName)}, opts...)

	p := carrierdelay.FromLocalFile(cfg.InputPath, opts...).
		FlatMap(&DecodeEvents{MalformedRows: cfg.MalformedRows}).
		Filter(&DelayedOnly{UnparsableDelay: cfg.UnparsableDelay, IncludeOnTime: cfg.IncludeOnTime}).
		Map(&ProjectDelay{}).
		GroupByKey().
		Repartition(cfg.Partitions).
		Reduce(&SumDelays{})

	if cfg.SortOutput {
		p = p.Sort(&ByCarrier{})
	}
	return p
}

// Run computes delays by carrier of the input file.
func Run(ctx context.Context, cfg *config.Config, opts ...carrierdelay.PipelineOption) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	log.Info().
		Str("input", cfg.InputPath).
		Str("malformed_rows", string(cfg.MalformedRows)).
		Int("partitions", cfg.Partitions).
		Msg("computing delays by carrier")

	w := newWarnings(cfg.MaxReportedErrors)
	res, err := Build(cfg, opts...).
		Broadcast(warningsKey, w).
		RunAndCollect(ctx)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Carriers: make([]flight.CarrierAggregate, len(res.Outputs)),
		Took:     res.Took(),
		Metrics:  res.Metrics,
		Warnings: w.errorOrNil(),
	}
	for i, row := range res.Outputs {
		s.Carriers[i] = row.Value.(flight.CarrierAggregate)
	}
	log.Info().
		Int("carriers", len(s.Carriers)).
		Int("skipped", w.skipped).
		Dur("took", s.Took).
		Msg("computed delays by carrier")
	return s, nil
}
