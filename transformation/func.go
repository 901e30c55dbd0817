package transformation

import (
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/output"
)

// Factory creates a new instance of a transformation. Each partition of a stage owns an instance.
type Factory func() Transformation

// Identity passes rows through. It is used by the input stage.
func Identity() Transformation {
	return &identity{}
}

type identity struct {
	Simple
}

func (identity) Apply(_ Context, rows []*lrdd.Row, out output.Output) error {
	return out.Write(rows...)
}
