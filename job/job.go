package job

import (
	"fmt"
	"time"

	"github.com/ab180/carrierdelay/job/stage"
	"github.com/ab180/carrierdelay/partitions"
	jsoniter "github.com/json-iterator/go"
)

type Job struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Stages []*stage.Stage `json:"stages"`

	// Partitions are partitions of each stage; len(Partitions) == len(Stages).
	Partitions [][]partitions.Partition `json:"partitions"`

	SubmittedAt time.Time `json:"submittedAt"`
}

func (j *Job) GetStage(name string) *stage.Stage {
	for _, s := range j.Stages {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (j *Job) GetPartitionsOfStage(name string) []partitions.Partition {
	for i, s := range j.Stages {
		if s.Name == name {
			return j.Partitions[i]
		}
	}
	return nil
}

// Describe returns a compact JSON description of the job plan, for logging.
func (j *Job) Describe() string {
	type stageDesc struct {
		Name        string   `json:"name"`
		Partitions  []string `json:"partitions"`
		Partitioner string   `json:"partitioner,omitempty"`
	}
	desc := make([]stageDesc, len(j.Stages))
	for i, s := range j.Stages {
		desc[i] = stageDesc{
			Name:       s.Name,
			Partitions: partitions.IDs(j.Partitions[i]),
		}
		if s.Output.Partitioner != nil {
			desc[i].Partitioner = fmt.Sprintf("%T", s.Output.Partitioner)
		}
	}
	str, err := jsoniter.MarshalToString(desc)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return str
}

// TaskID identifies a partition of a stage in a job.
type TaskID struct {
	JobID       string
	StageName   string
	PartitionID string
}

func (t TaskID) String() string {
	return fmt.Sprintf("%s/%s/%s", t.JobID, t.StageName, t.PartitionID)
}
