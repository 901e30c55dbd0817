package driver

import (
	"context"
	"time"

	"github.com/ab180/carrierdelay/input"
	"github.com/ab180/carrierdelay/internal/logutils"
	"github.com/ab180/carrierdelay/job"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/metric"
	"github.com/ab180/carrierdelay/output"
	"github.com/ab180/carrierdelay/partitions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultBatchSize = 1000

// Broadcast is a set of values shared by every task of a job.
type Broadcast map[string]interface{}

type Driver interface {
	RunSync(context.Context) (*CollectResult, error)
}

type CollectResult struct {
	Outputs []*lrdd.Row
	Metrics metric.Metrics
	Status  *job.Status
}

// Took returns the wall-clock time taken by the job.
func (c *CollectResult) Took() time.Duration {
	return c.Status.Elapsed()
}

// Local runs a job on the calling goroutine. Input rows are fed in batches and
// each batch is pushed through the stages before the next one is read.
// Stages are torn down in order after the input is drained, which is where
// reducing and sorting stages emit their rows.
type Local struct {
	Job       *job.Job
	Input     input.Feeder
	Broadcast Broadcast
	BatchSize int
}

func NewLocal(j *job.Job, in input.Feeder, broadcast Broadcast, batchSize int) Driver {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Local{
		Job:       j,
		Input:     in,
		Broadcast: broadcast,
		BatchSize: batchSize,
	}
}

func (l *Local) RunSync(ctx context.Context) (result *CollectResult, err error) {
	metric.RunningJobsGauge.Inc()
	defer metric.RunningJobsGauge.Dec()

	status := job.NewStatus()
	status.Status = job.Running
	metrics := metric.NewRepository()
	collected := &collector{}

	log.Debug().
		Str("job_id", l.Job.ID).
		Str("job_name", l.Job.Name).
		Int("stages", len(l.Job.Stages)-1).
		Msg("starting job")

	defer func() {
		if panicErr := logutils.WrapRecover(recover()); panicErr != nil {
			log.Debug().
				Str("job_id", l.Job.ID).
				Str("stack", panicErr.Stack).
				Msg("recovered panic")
			err = errors.Wrap(panicErr, "job panicked")
		}
		if err != nil {
			status.Fail(causeOf(l.Job, err), err)
			log.Debug().
				Str("job_id", l.Job.ID).
				Str("caused_by", status.Errors[0].Task).
				Msg("job failed")
			return
		}
		status.Complete(job.Succeeded)
		metric.JobDurationSummary.Observe(status.Elapsed().Seconds())
		log.Debug().
			Str("job_id", l.Job.ID).
			Dur("took", status.Elapsed()).
			Msg("job succeeded")
		result = &CollectResult{
			Outputs: collected.rows,
			Metrics: metrics.Collect(),
			Status:  status,
		}
	}()

	stages, err := l.buildTasks(ctx, metrics, collected)
	if err != nil {
		return nil, err
	}
	for _, tasks := range stages {
		for _, t := range tasks {
			if err := t.setup(); err != nil {
				return nil, err
			}
		}
	}

	if err := l.feedInput(ctx, stages[0]); err != nil {
		return nil, err
	}

	for _, tasks := range stages {
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := t.teardown(); err != nil {
				return nil, err
			}
		}
	}
	return
}

// buildTasks creates tasks of every stage except the input stage, connecting outputs reversely
// so that each task can write to the tasks of its next stage.
func (l *Local) buildTasks(ctx context.Context, metrics metric.Repository, collected *collector) ([][]*task, error) {
	j := l.Job
	stages := make([][]*task, len(j.Stages)-1)

	var next map[string]output.Output
	for i := len(j.Stages) - 1; i >= 1; i-- {
		st := j.Stages[i]
		if st.Function == nil {
			return nil, errors.Errorf("stage %s has no function", st.Name)
		}
		current := make(map[string]output.Output, len(j.Partitions[i]))
		for _, p := range j.Partitions[i] {
			var out output.Output = collected
			if i < len(j.Stages)-1 {
				out = output.NewWriter(p.ID, st.Output.Partitioner, next)
			}
			t := &task{
				id: job.TaskID{
					JobID:       j.ID,
					StageName:   st.Name,
					PartitionID: p.ID,
				},
				fn:  st.Function(),
				out: out,
			}
			t.ctx = newTaskContext(ctx, t.id, l.Broadcast, metrics)
			stages[i-1] = append(stages[i-1], t)
			current[p.ID] = t
		}
		next = current
	}
	return stages, nil
}

func (l *Local) feedInput(ctx context.Context, firstStage []*task) error {
	targets := make(map[string]output.Output, len(firstStage))
	for _, t := range firstStage {
		targets[t.id.PartitionID] = t
	}
	writer := output.NewWriter(partitions.InputPartitionID, l.Job.Stages[0].Output.Partitioner, targets)
	buffered := output.NewBufferedOutput(&cancelableOutput{ctx: ctx, Output: writer}, l.BatchSize)

	// rows left in the buffer of a failed feed are not flushed
	if err := l.Input.FeedInput(buffered); err != nil {
		return err
	}
	return errors.Wrap(buffered.Close(), "flush input")
}

// causeOf finds the task which caused the error.
func causeOf(j *job.Job, err error) job.TaskID {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return taskErr.Task
	}
	return job.TaskID{
		JobID:       j.ID,
		StageName:   j.Stages[0].Name,
		PartitionID: partitions.InputPartitionID,
	}
}

type collector struct {
	rows []*lrdd.Row
}

func (c *collector) Write(rows ...*lrdd.Row) error {
	c.rows = append(c.rows, rows...)
	return nil
}

func (c *collector) Close() error {
	return nil
}

// cancelableOutput stops feeding when the job context is done.
type cancelableOutput struct {
	output.Output
	ctx context.Context
}

func (c *cancelableOutput) Write(rows ...*lrdd.Row) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	return c.Output.Write(rows...)
}
