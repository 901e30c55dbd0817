package test

import (
	"time"

	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
	"go.uber.org/atomic"
)

var processed atomic.Int64

// SlowStage sleeps for the broadcast "delay" on every row.
type SlowStage struct{}

func (s SlowStage) Map(c carrierdelay.Context, row *lrdd.Row) (*lrdd.Row, error) {
	time.Sleep(c.Broadcast("delay").(time.Duration))
	processed.Inc()
	return row, nil
}

func ContextCancel(delay time.Duration) *carrierdelay.Pipeline {
	data := make([]int, 100)
	return carrierdelay.Parallelize(data, carrierdelay.WithBatchSize(1)).
		Broadcast("delay", delay).
		Map(SlowStage{})
}
