package partitions

import "strconv"

const (
	// Auto makes a stage inherit the partition count of its previous stage.
	Auto = 0

	InputPartitionID   = "_input"
	CollectPartitionID = "_collect"
)

// Partition is a bucket of rows in a stage. Each partition is processed by its own task.
type Partition struct {
	ID string
}

// Plan describes how a stage is partitioned.
// Partitioner decides where the stage's output rows go, DesiredCount is the number of
// partitions of the stage itself.
type Plan struct {
	Partitioner  Partitioner
	DesiredCount int
}

// PlanForNumberOf creates partitions for the given count.
// It uses its index number for each partition's ID.
func PlanForNumberOf(n int) []Partition {
	pp := make([]Partition, n)
	for i := 0; i < n; i++ {
		pp[i] = Partition{ID: strconv.Itoa(i)}
	}
	return pp
}

// IDs returns partition IDs in order.
func IDs(pp []Partition) []string {
	ids := make([]string, len(pp))
	for i, p := range pp {
		ids[i] = p.ID
	}
	return ids
}
