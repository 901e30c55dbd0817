package input

import (
	"github.com/ab180/carrierdelay/output"
)


// Feeder produces the rows of a pipeline's input stage.
type Feeder interface {
	FeedInput(out output.Output) error
}
