package carrierdelay

import (
	"time"

	"github.com/creasty/defaults"
)

type PipelineOptions struct {
	Name string

	// BatchSize is the number of input rows pushed through the stages at once.
	BatchSize int `default:"1000"`

	// Timeout limits the whole run. Zero means no limit.
	Timeout time.Duration `default:"0s"`
}

type PipelineOption func(o *PipelineOptions)

func WithName(n string) PipelineOption {
	return func(o *PipelineOptions) {
		o.Name = n
	}
}

func WithBatchSize(n int) PipelineOption {
	return func(o *PipelineOptions) {
		o.BatchSize = n
	}
}

func WithTimeout(d time.Duration) PipelineOption {
	return func(o *PipelineOptions) {
		o.Timeout = d
	}
}

func buildPipelineOptions(opts []PipelineOption) (o PipelineOptions) {
	if err := defaults.Set(&o); err != nil {
		panic(err)
	}
	for _, optFn := range opts {
		optFn(&o)
	}
	return o
}
