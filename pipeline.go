package carrierdelay

import (
	"context"
	"fmt"

	"github.com/ab180/carrierdelay/driver"
	"github.com/ab180/carrierdelay/input"
	"github.com/ab180/carrierdelay/internal/util"
	"github.com/ab180/carrierdelay/job"
	"github.com/ab180/carrierdelay/job/stage"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/partitions"
	"github.com/ab180/carrierdelay/transformation"
	"github.com/pkg/errors"
)

// ErrEmptyPipeline is returned when running a pipeline without any stage.
var ErrEmptyPipeline = errors.New("pipeline has no stages")

type Pipeline struct {
	input  input.Feeder
	stages []*stage.Stage

	// len(plans) == len(stages) (the input stage included)
	plans         []partitions.Plan
	nextStagePlan partitions.Plan

	broadcasts driver.Broadcast
	options    PipelineOptions
}

func NewPipeline(in input.Feeder, opts ...PipelineOption) *Pipeline {
	return &Pipeline{
		input: in,
		stages: []*stage.Stage{
			stage.New("_input", transformation.Identity),
		},
		plans: []partitions.Plan{
			{DesiredCount: 1},
		},
		broadcasts: make(driver.Broadcast),
		options:    buildPipelineOptions(opts),
	}
}

// FromLocalFile creates a pipeline reading lines of a local file.
// Each row holds an input.Line. Compressed files are decompressed by their extension.
func FromLocalFile(path string, opts ...PipelineOption) *Pipeline {
	return NewPipeline(input.NewLineFeeder(path), opts...)
}

// Parallelize creates a pipeline from given values. See lrdd.From for supported types.
func Parallelize(values interface{}, opts ...PipelineOption) *Pipeline {
	return NewPipeline(&input.RowsFeeder{Rows: lrdd.From(values)}, opts...)
}

// Broadcast shares given value with every stage of the pipeline.
// Transformations read it with Context.Broadcast.
func (p *Pipeline) Broadcast(key string, val interface{}) *Pipeline {
	p.broadcasts[key] = val
	return p
}

// AddStage adds a transformation to the pipeline. The factory is called once for each partition.
func (p *Pipeline) AddStage(name string, fn transformation.Factory) *Pipeline {
	lastStage := p.stages[len(p.stages)-1]

	newStage := stage.New(fmt.Sprintf("%s%d", name, len(p.stages)), fn, stage.InputFrom(lastStage))
	lastStage.SetOutputTo(newStage)

	p.stages = append(p.stages, newStage)
	p.plans = append(p.plans, p.nextStagePlan)
	p.nextStagePlan = partitions.Plan{}
	return p
}

func (p *Pipeline) Map(m Mapper) *Pipeline {
	return p.AddStage(util.NameOfType(m), func() transformation.Transformation {
		return &mapTransformation{mapper: m}
	})
}

func (p *Pipeline) FlatMap(fm FlatMapper) *Pipeline {
	return p.AddStage(util.NameOfType(fm), func() transformation.Transformation {
		return &flatMapTransformation{flatMapper: fm}
	})
}

func (p *Pipeline) Filter(f Filter) *Pipeline {
	return p.AddStage(util.NameOfType(f), func() transformation.Transformation {
		return &filterTransformation{filter: f}
	})
}

// Reduce reduces rows by key within each partition. Call GroupByKey beforehand
// to have every row of a key in the same partition.
func (p *Pipeline) Reduce(r Reducer) *Pipeline {
	return p.AddStage(util.NameOfType(r), func() transformation.Transformation {
		return &reduceTransformation{reducerPrototype: r}
	})
}

// Sort gathers every row into a single partition and sorts them.
func (p *Pipeline) Sort(s Sorter) *Pipeline {
	p.nextStagePlan.DesiredCount = 1
	return p.AddStage(util.NameOfType(s), func() transformation.Transformation {
		return &sortTransformation{sorter: s}
	})
}

// GroupByKey routes rows of the last stage by the hash of their keys.
func (p *Pipeline) GroupByKey() *Pipeline {
	return p.PartitionedBy(partitions.NewHashKeyPartitioner())
}

// GroupByKnownKeys gives each of the keys its own partition in the next stage.
// Rows with other keys are dropped.
func (p *Pipeline) GroupByKnownKeys(knownKeys []string) *Pipeline {
	return p.PartitionedBy(partitions.NewFiniteKeyPartitioner(knownKeys))
}

func (p *Pipeline) Shuffle() *Pipeline {
	return p.PartitionedBy(partitions.NewShuffledPartitioner())
}

// Repartition sets the partition count of the next stage.
func (p *Pipeline) Repartition(n int) *Pipeline {
	p.nextStagePlan.DesiredCount = n
	return p
}

func (p *Pipeline) PartitionedBy(partitioner partitions.Partitioner) *Pipeline {
	p.plans[len(p.plans)-1].Partitioner = partitioner
	return p
}

func (p *Pipeline) createJob() *job.Job {
	name := p.options.Name
	if name == "" {
		name = p.stages[len(p.stages)-1].Name
	}
	return job.Create(util.GenerateID("J"), name, p.stages, p.plans)
}

// RunAndCollect runs the pipeline on the calling goroutine and returns the rows emitted by the last stage.
func (p *Pipeline) RunAndCollect(ctx context.Context) (*driver.CollectResult, error) {
	if len(p.stages) < 2 {
		return nil, ErrEmptyPipeline
	}
	if p.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.options.Timeout)
		defer cancel()
	}
	j := p.createJob()
	drv := driver.NewLocal(j, p.input, p.broadcasts, p.options.BatchSize)

	result, err := drv.RunSync(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "run job %s", j.Name)
	}
	return result, nil
}
