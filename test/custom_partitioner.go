package test

import (
	"strings"

	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/partitions"
)

func CustomPartitionerTest() *carrierdelay.Pipeline {
	in := map[string]string{
		"key1-1": "",
		"key1-2": "",
		"key2-1": "",
		"key2-2": "",
	}
	return carrierdelay.Parallelize(in).
		PartitionedBy(&groupNoPartitioner{}).
		Map(&partitionIDMapper{})
}

// groupNoPartitioner routes "key<N>-*" to partition N.
type groupNoPartitioner struct{}

func (groupNoPartitioner) PlanNext(int) []partitions.Partition {
	return []partitions.Partition{{ID: "1"}, {ID: "2"}}
}

func (groupNoPartitioner) DeterminePartition(_ partitions.Context, r *lrdd.Row, _ int) (string, error) {
	group := strings.TrimPrefix(r.Key, "key")
	return group[:strings.Index(group, "-")], nil
}

type partitionIDMapper struct{}

func (d *partitionIDMapper) Map(ctx carrierdelay.Context, row *lrdd.Row) (*lrdd.Row, error) {
	return lrdd.KeyValue(ctx.PartitionID(), row.Key), nil
}
