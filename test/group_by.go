package test

import (
	"github.com/ab180/carrierdelay"
)

func SimpleCount() *carrierdelay.Pipeline {
	d := map[string][]string{
		"foo": {"goo", "hoo"},
		"bar": {"baz"},
	}
	return carrierdelay.Parallelize(d).
		GroupByKey().
		Reduce(Count())
}

func CountWithKnownKeys() *carrierdelay.Pipeline {
	d := map[string][]string{
		"AA": {"1", "2", "3"},
		"DL": {"4"},
		"WN": {"5", "6"},
	}
	return carrierdelay.Parallelize(d).
		GroupByKnownKeys([]string{"AA", "DL"}).
		Reduce(Count())
}

func GroupByWithPartitionsWithNoInput() *carrierdelay.Pipeline {
	d := map[string][]string{
		"foo": {"goo"},
	}
	return carrierdelay.Parallelize(d).
		Repartition(10).
		GroupByKey().
		Reduce(Count())
}
