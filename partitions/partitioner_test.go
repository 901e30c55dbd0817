package partitions

import (
	"testing"

	"github.com/ab180/carrierdelay/lrdd"
	"github.com/stretchr/testify/require"
)

func TestPartitioner_PlanNext(t *testing.T) {
	tcs := []struct {
		Name        string
		Partitioner Partitioner
		Expected    []string
	}{
		{
			Name:        "hash",
			Partitioner: NewHashKeyPartitioner(),
			Expected:    []string{"0", "1", "2"},
		},
		{
			Name:        "shuffled",
			Partitioner: NewShuffledPartitioner(),
			Expected:    []string{"0", "1", "2"},
		},
		{
			Name:        "preserve",
			Partitioner: NewPreservePartitioner(),
			Expected:    []string{"0", "1", "2"},
		},
		{
			Name:        "finite key",
			Partitioner: NewFiniteKeyPartitioner([]string{"WN", "AA", "DL"}),
			Expected:    []string{"AA", "DL", "WN"},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			require.Equal(t, tc.Expected, IDs(tc.Partitioner.PlanNext(3)))
		})
	}
}

func TestHashKeyPartitioner_IsStable(t *testing.T) {
	p := NewHashKeyPartitioner()
	c := NewContext("0")

	first, err := p.DeterminePartition(c, lrdd.KeyValue("AA", nil), 4)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		id, err := p.DeterminePartition(c, lrdd.KeyValue("AA", i), 4)
		require.NoError(t, err)
		require.Equal(t, first, id)
	}
}

func TestFiniteKeyPartitioner_UnknownKey(t *testing.T) {
	p := NewFiniteKeyPartitioner([]string{"AA"})

	id, err := p.DeterminePartition(NewContext("0"), lrdd.KeyValue("AA", nil), 1)
	require.NoError(t, err)
	require.Equal(t, "AA", id)

	_, err = p.DeterminePartition(NewContext("0"), lrdd.KeyValue("UA", nil), 1)
	require.ErrorIs(t, err, ErrNoOutput)
}

func TestShuffledPartitioner_RoundRobin(t *testing.T) {
	p := NewShuffledPartitioner()
	c := NewContext(InputPartitionID)

	var ids []string
	for i := 0; i < 4; i++ {
		id, err := p.DeterminePartition(c, lrdd.Value(i), 3)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.Equal(t, []string{"0", "1", "2", "0"}, ids)
}

func TestPreservePartitioner(t *testing.T) {
	id, err := NewPreservePartitioner().DeterminePartition(NewContext("2"), lrdd.Value(1), 3)
	require.NoError(t, err)
	require.Equal(t, "2", id)
}
