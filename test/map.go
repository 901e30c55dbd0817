package test

import (
	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/test/testutils"
)

// Multiply multiplies input.
type Multiply struct{}

func (m *Multiply) Map(ctx carrierdelay.Context, row *lrdd.Row) (*lrdd.Row, error) {
	return lrdd.Value(testutils.IntValue(row) * 2), nil
}

func Map(opts ...carrierdelay.PipelineOption) *carrierdelay.Pipeline {
	data := make([]int, 1000)
	for i := 0; i < len(data); i++ {
		data[i] = i + 1
	}
	return carrierdelay.Parallelize(data, opts...).
		Map(&Multiply{}).
		Map(&Multiply{}).
		Map(&Multiply{})
}
