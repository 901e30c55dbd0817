package driver

import (
	"fmt"

	"github.com/ab180/carrierdelay/job"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/metric"
	"github.com/ab180/carrierdelay/output"
	"github.com/ab180/carrierdelay/transformation"
	"github.com/pkg/errors"
)

// TaskError is an error occurred while running a task.
type TaskError struct {
	Task job.TaskID
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// task runs a partition of a stage. As an output.Output it receives rows from the previous stage.
type task struct {
	id  job.TaskID
	ctx *taskContext
	fn  transformation.Transformation
	out output.Output
}

func (t *task) setup() error {
	return t.wrapErr(t.fn.Setup(t.ctx))
}

func (t *task) Write(rows ...*lrdd.Row) error {
	if len(rows) == 0 {
		return nil
	}
	metric.StageRowsCounter.WithLabelValues(t.id.StageName).Add(float64(len(rows)))
	return t.wrapErr(t.fn.Apply(t.ctx, rows, t.out))
}

func (t *task) teardown() error {
	return t.wrapErr(t.fn.Teardown(t.ctx, t.out))
}

func (t *task) Close() error {
	return nil
}

// wrapErr wraps an error with the task ID, unless the error is already from a (downstream) task.
func (t *task) wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return err
	}
	return &TaskError{Task: t.id, Err: err}
}
