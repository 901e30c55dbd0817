package job

import (
	"time"

	"github.com/ab180/carrierdelay/job/stage"
	"github.com/ab180/carrierdelay/partitions"
	"github.com/rs/zerolog/log"
)

// Create creates a new job. The first stage is the input stage which has a single partition.
// Stages with partitions.Auto count inherit the partition count of their previous stage.
// The output partitioner of a stage defaults to preserving partitions when the next stage is
// partitioned identically, and to shuffling otherwise.
func Create(id, name string, stages []*stage.Stage, plans []partitions.Plan) *Job {
	pp := make([][]partitions.Partition, len(stages))
	pp[0] = []partitions.Partition{{ID: partitions.InputPartitionID}}

	for i := 1; i < len(stages); i++ {
		count := plans[i].DesiredCount
		if count <= partitions.Auto {
			count = len(pp[i-1])
		}
		if p := plans[i-1].Partitioner; p != nil {
			pp[i] = p.PlanNext(count)
		} else {
			pp[i] = partitions.PlanForNumberOf(count)
		}
	}

	for i, s := range stages {
		s.Output.Partitioner = plans[i].Partitioner
		if s.Output.Partitioner != nil || i == len(stages)-1 {
			continue
		}
		if samePartitions(pp[i], pp[i+1]) {
			s.Output.Partitioner = partitions.NewPreservePartitioner()
		} else {
			s.Output.Partitioner = partitions.NewShuffledPartitioner()
		}
	}

	j := &Job{
		ID:          id,
		Name:        name,
		Stages:      stages,
		Partitions:  pp,
		SubmittedAt: time.Now(),
	}
	log.Debug().
		Str("job_id", id).
		Str("plan", j.Describe()).
		Msg("planned job")
	return j
}

func samePartitions(a, b []partitions.Partition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
