package output

import "github.com/ab180/carrierdelay/lrdd"

// Output is a destination of rows emitted by a stage.
// Implementations must not retain the given slice after Write returns; rows can be retained.
type Output interface {
	Write(rows ...*lrdd.Row) error
	Close() error
}

// Nothing returns an output discarding every row.
func Nothing() Output {
	return noneOutput{}
}

type noneOutput struct{}

func (noneOutput) Write(...*lrdd.Row) error { return nil }

func (noneOutput) Close() error { return nil }
