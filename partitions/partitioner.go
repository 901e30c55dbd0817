package partitions

import (
	"sort"
	"strconv"

	"github.com/ab180/carrierdelay/lrdd"
	"github.com/pkg/errors"
	"github.com/segmentio/fasthash/fnv1a"
	"go.uber.org/atomic"
)

// ErrNoOutput is returned by Partitioner.DeterminePartition when there's no
// corresponding partition found with the key of given row.
var ErrNoOutput = errors.New("no output")

type Partitioner interface {
	PlanNext(numPartitions int) []Partition
	DeterminePartition(c Context, r *lrdd.Row, numOutputs int) (id string, err error)
}

// FiniteKeyPartitioner routes each of a predefined set of keys to its own partition.
type FiniteKeyPartitioner struct {
	KeySet map[string]struct{}
}

func NewFiniteKeyPartitioner(keys []string) Partitioner {
	keySet := make(map[string]struct{})
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	return &FiniteKeyPartitioner{keySet}
}

// PlanNext creates partitions for the number of keys. Uses row key as partition ID.
func (f *FiniteKeyPartitioner) PlanNext(int) []Partition {
	keys := make([]string, 0, len(f.KeySet))
	for key := range f.KeySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	partitions := make([]Partition, len(keys))
	for i, key := range keys {
		partitions[i] = Partition{ID: key}
	}
	return partitions
}

func (f *FiniteKeyPartitioner) DeterminePartition(_ Context, r *lrdd.Row, _ int) (id string, err error) {
	if _, ok := f.KeySet[r.Key]; !ok {
		return "", ErrNoOutput
	}
	return r.Key, nil
}

type hashKeyPartitioner struct{}

func NewHashKeyPartitioner() Partitioner {
	return &hashKeyPartitioner{}
}

func (h *hashKeyPartitioner) PlanNext(numPartitions int) []Partition {
	return PlanForNumberOf(numPartitions)
}

func (h *hashKeyPartitioner) DeterminePartition(_ Context, r *lrdd.Row, numOutputs int) (id string, err error) {
	// uses Fowler–Noll–Vo hash to determine output partition
	slot := fnv1a.HashString64(r.Key) % uint64(numOutputs)
	return strconv.FormatUint(slot, 10), nil
}

// ShuffledPartitioner distributes rows to partitions in round-robin manner.
type ShuffledPartitioner struct {
	sentEvents atomic.Uint64
}

func NewShuffledPartitioner() Partitioner {
	return &ShuffledPartitioner{}
}

func (f *ShuffledPartitioner) PlanNext(numPartitions int) []Partition {
	return PlanForNumberOf(numPartitions)
}

func (f *ShuffledPartitioner) DeterminePartition(_ Context, _ *lrdd.Row, numOutputs int) (id string, err error) {
	slot := (f.sentEvents.Inc() - 1) % uint64(numOutputs)
	return strconv.FormatUint(slot, 10), nil
}

// PreservePartitioner keeps rows in the partition they came from.
type PreservePartitioner struct{}

func NewPreservePartitioner() Partitioner {
	return &PreservePartitioner{}
}

func (p PreservePartitioner) PlanNext(numPartitions int) []Partition {
	return PlanForNumberOf(numPartitions)
}

func (p PreservePartitioner) DeterminePartition(c Context, _ *lrdd.Row, _ int) (id string, err error) {
	return c.PartitionID(), nil
}
