package carrierdelay

import (
	"context"
	"testing"
	"time"

	"github.com/ab180/carrierdelay/lrdd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPipelineOptions(t *testing.T) {
	o := buildPipelineOptions(nil)
	assert.Equal(t, 1000, o.BatchSize)
	assert.Equal(t, time.Duration(0), o.Timeout)
	assert.Empty(t, o.Name)

	o = buildPipelineOptions([]PipelineOption{WithName("delays"), WithBatchSize(10), WithTimeout(time.Second)})
	assert.Equal(t, "delays", o.Name)
	assert.Equal(t, 10, o.BatchSize)
	assert.Equal(t, time.Second, o.Timeout)
}

// keyCollector records the partition key given to each reducer instance.
type keyCollector struct {
	seen string
}

func (k *keyCollector) InitialValue(key string) interface{} {
	return "init:" + key
}

func (k *keyCollector) Reduce(c Context, prev interface{}, cur *lrdd.Row) (interface{}, error) {
	key, ok := PartitionKeyOf(c)
	if !ok || key != cur.Key {
		return nil, assert.AnError
	}
	if k.seen != "" && k.seen != key {
		return nil, assert.AnError
	}
	k.seen = key
	return prev.(string) + "," + cur.Value.(string), nil
}

func TestReduce_ClonesReducerForEachKey(t *testing.T) {
	in := []*lrdd.Row{
		lrdd.KeyValue("AA", "1"),
		lrdd.KeyValue("DL", "2"),
		lrdd.KeyValue("AA", "3"),
	}
	res, err := Parallelize(in).
		GroupByKey().
		Reduce(&keyCollector{}).
		RunAndCollect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []*lrdd.Row{
		lrdd.KeyValue("AA", "init:AA,1,3"),
		lrdd.KeyValue("DL", "init:DL,2"),
	}, res.Outputs)
}

func TestPartitionKeyOf_OutsideReducer(t *testing.T) {
	var c Context
	_, ok := PartitionKeyOf(c)
	assert.False(t, ok)
}

func TestSort_IsStable(t *testing.T) {
	in := []*lrdd.Row{
		lrdd.KeyValue("WN", "first"),
		lrdd.KeyValue("AA", "a"),
		lrdd.KeyValue("WN", "second"),
	}
	res, err := Parallelize(in).Sort(byKey{}).RunAndCollect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "first", "second"}, []string{
		res.Outputs[0].Value.(string),
		res.Outputs[1].Value.(string),
		res.Outputs[2].Value.(string),
	})
}

type byKey struct{}

func (byKey) IsLessThan(a, b *lrdd.Row) bool {
	return a.Key < b.Key
}
