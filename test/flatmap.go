package test

import (
	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/test/testutils"
)

// MultiplyAndDouble doubles number of inputs each multiplied by 2.
type MultiplyAndDouble struct{}

func (m *MultiplyAndDouble) FlatMap(ctx carrierdelay.Context, row *lrdd.Row) ([]*lrdd.Row, error) {
	n := testutils.IntValue(row)
	return lrdd.From([]int{n * 2, n * 2}), nil
}

// EvenOnly passes even numbers.
type EvenOnly struct{}

func (EvenOnly) Filter(row *lrdd.Row) bool {
	return testutils.IntValue(row)%2 == 0
}

func FlatMap() *carrierdelay.Pipeline {
	data := make([]int, 1000)
	for i := 0; i < len(data); i++ {
		data[i] = i + 1
	}
	return carrierdelay.Parallelize(data).
		Filter(EvenOnly{}).
		FlatMap(&MultiplyAndDouble{}).
		FlatMap(&MultiplyAndDouble{}).
		FlatMap(&MultiplyAndDouble{})
}
