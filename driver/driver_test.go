package driver

import (
	"context"
	"testing"

	"github.com/ab180/carrierdelay/input"
	"github.com/ab180/carrierdelay/job"
	"github.com/ab180/carrierdelay/job/stage"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/output"
	"github.com/ab180/carrierdelay/partitions"
	"github.com/ab180/carrierdelay/transformation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// recorder counts rows and emits them on teardown.
type recorder struct {
	rows   []*lrdd.Row
	events *[]string
	name   string
}

func (r *recorder) Setup(c transformation.Context) error {
	*r.events = append(*r.events, "setup "+r.name+"/"+c.PartitionID())
	return nil
}

func (r *recorder) Apply(c transformation.Context, rows []*lrdd.Row, _ output.Output) error {
	c.AddMetric("Rows", len(rows))
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *recorder) Teardown(c transformation.Context, out output.Output) error {
	*r.events = append(*r.events, "teardown "+r.name+"/"+c.PartitionID())
	return out.Write(r.rows...)
}

type failing struct {
	transformation.Simple
	panics bool
}

func (f *failing) Apply(transformation.Context, []*lrdd.Row, output.Output) error {
	if f.panics {
		panic("boom")
	}
	return errors.New("boom")
}

func newJob(fns ...transformation.Factory) *job.Job {
	ss := []*stage.Stage{stage.New("_input", transformation.Identity)}
	plans := []partitions.Plan{{}}
	for i, fn := range fns {
		s := stage.New("Stage"+string(rune('1'+i)), fn, stage.InputFrom(ss[len(ss)-1]))
		ss[len(ss)-1].SetOutputTo(s)
		ss = append(ss, s)
		plans = append(plans, partitions.Plan{})
	}
	return job.Create("J1", "test", ss, plans)
}

func TestLocal_RunSync(t *testing.T) {
	defer goleak.VerifyNone(t)

	var events []string
	rec := func(name string) transformation.Factory {
		return func() transformation.Transformation {
			return &recorder{name: name, events: &events}
		}
	}
	j := newJob(rec("a"), rec("b"))
	in := &input.RowsFeeder{Rows: lrdd.From([]int{1, 2, 3, 4, 5})}

	res, err := NewLocal(j, in, nil, 2).RunSync(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Outputs, 5)
	assert.Equal(t, 1, res.Outputs[0].Value)
	assert.Equal(t, uint64(5), res.Metrics["Stage1/Rows"])
	assert.Equal(t, uint64(5), res.Metrics["Stage2/Rows"])
	assert.Equal(t, job.Succeeded, res.Status.Status)
	assert.GreaterOrEqual(t, int64(res.Took()), int64(0))

	assert.Equal(t, []string{
		"setup a/0", "setup b/0",
		"teardown a/0", "teardown b/0",
	}, events)
}

func TestLocal_RunSync_Errors(t *testing.T) {
	in := &input.RowsFeeder{Rows: lrdd.From([]int{1})}

	t.Run("ReturnsTaskError", func(t *testing.T) {
		j := newJob(transformation.Identity, func() transformation.Transformation { return &failing{} })

		_, err := NewLocal(j, in, nil, 0).RunSync(context.Background())
		var taskErr *TaskError
		require.True(t, errors.As(err, &taskErr))
		assert.Equal(t, "Stage2", taskErr.Task.StageName)
		assert.Contains(t, err.Error(), "run J1/Stage2/0: boom")
	})

	t.Run("RecoversPanic", func(t *testing.T) {
		j := newJob(func() transformation.Transformation { return &failing{panics: true} })

		res, err := NewLocal(j, in, nil, 0).RunSync(context.Background())
		assert.Nil(t, res)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "job panicked")
	})

	t.Run("StopsOnCanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewLocal(newJob(transformation.Identity), in, nil, 0).RunSync(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("RequiresFunction", func(t *testing.T) {
		j := newJob(transformation.Identity)
		j.Stages[1].Function = nil

		_, err := NewLocal(j, in, nil, 0).RunSync(context.Background())
		assert.Error(t, err)
	})
}

func TestTaskContext(t *testing.T) {
	broadcast := Broadcast{"key": "value"}
	id := job.TaskID{JobID: "J1", StageName: "Stage1", PartitionID: "3"}

	var c transformation.Context = newTaskContext(context.Background(), id, broadcast, nil)
	assert.Equal(t, "value", c.Broadcast("key"))
	assert.Nil(t, c.Broadcast("missing"))
	assert.Equal(t, "3", c.PartitionID())
}
