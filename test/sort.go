package test

import (
	"strconv"

	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/test/testutils"
)

type Ascending struct{}

func (a2 Ascending) IsLessThan(a, b *lrdd.Row) bool {
	return testutils.IntValue(a) < testutils.IntValue(b)
}

// Concat concatenates values of each key in the order they arrive.
type Concat struct{}

func (cc Concat) InitialValue(string) interface{} {
	return ""
}

func (cc Concat) Reduce(c carrierdelay.Context, prev interface{}, cur *lrdd.Row) (next interface{}, err error) {
	return prev.(string) + strconv.Itoa(testutils.IntValue(cur)), nil
}

func Sort() *carrierdelay.Pipeline {
	data := map[string][]int{
		"foo": {9, 8, 7, 6},
		"bar": {5, 4, 3, 2},
		"baz": {9, 5, 1, 3},
	}
	return carrierdelay.Parallelize(data).
		Sort(&Ascending{}).
		Reduce(&Concat{})
}
