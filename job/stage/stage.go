package stage

import (
	"github.com/ab180/carrierdelay/partitions"
	"github.com/ab180/carrierdelay/transformation"
)

type Stage struct {
	Name string `json:"name"`

	// Input is the stage needs to be executed before this stage.
	Input *Input `json:"input,omitempty"`

	// Function creates the transformation the stage executes, one for each partition.
	Function transformation.Factory `json:"-"`

	Output Output `json:"output"`
}

// New creates a new stage.
func New(name string, fn transformation.Factory, in ...*Input) *Stage {
	s := &Stage{
		Name:     name,
		Function: fn,
	}
	if len(in) > 0 {
		s.Input = in[0]
	}
	return s
}

func (s *Stage) SetOutputTo(dest *Stage) {
	s.Output.Stage = dest.Name
}

type Input struct {
	Stage string `json:"stage"`
}

func InputFrom(s *Stage) *Input {
	return &Input{
		Stage: s.Name,
	}
}

type Output struct {
	Stage string `json:"stage"`

	Partitioner partitions.Partitioner `json:"-"`
}
