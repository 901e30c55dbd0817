package transformation

import (
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/output"
)

// Transformation processes rows of a partition.
//
// Setup is called once before the first Apply, Apply is called for every batch of input rows
// and Teardown is called after all input rows have been applied. A transformation which needs to
// see all rows before emitting (e.g. reduce, sort) writes its output in Teardown.
type Transformation interface {
	Setup(c Context) error
	Apply(c Context, rows []*lrdd.Row, out output.Output) error
	Teardown(c Context, out output.Output) error
}

// Simple implements Setup and Teardown with no-op. Embed it into stateless transformations.
type Simple struct{}

func (s *Simple) Setup(Context) error {
	return nil
}

func (s *Simple) Teardown(Context, output.Output) error {
	return nil
}
