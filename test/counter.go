package test

import (
	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
)

// Counter counts rows of each key.
type Counter struct {
	value int
}

func Count() carrierdelay.Reducer {
	return &Counter{}
}

func (cnt *Counter) InitialValue(string) interface{} {
	return 0
}

func (cnt *Counter) Reduce(c carrierdelay.Context, prev interface{}, cur *lrdd.Row) (next interface{}, err error) {
	c.AddMetric("Events", 1)
	cnt.value = prev.(int) + 1
	return cnt.value, nil
}
