package driver

import (
	"context"

	"github.com/ab180/carrierdelay/job"
	"github.com/ab180/carrierdelay/metric"
)

type taskContext struct {
	context.Context
	task      job.TaskID
	broadcast Broadcast
	metrics   metric.Repository
}

func newTaskContext(ctx context.Context, id job.TaskID, broadcast Broadcast, metrics metric.Repository) *taskContext {
	return &taskContext{
		Context:   ctx,
		task:      id,
		broadcast: broadcast,
		metrics:   metrics,
	}
}

func (c *taskContext) Broadcast(key string) interface{} {
	return c.broadcast[key]
}

func (c *taskContext) PartitionID() string {
	return c.task.PartitionID
}

// AddMetric adds the delta to the metric. The metric name is prefixed with the stage name.
func (c *taskContext) AddMetric(name string, delta int) {
	c.metrics.AddMetric(c.task.StageName+"/"+name, int64(delta))
}

func (c *taskContext) SetMetric(name string, val int) {
	c.metrics.SetMetric(c.task.StageName+"/"+name, int64(val))
}
