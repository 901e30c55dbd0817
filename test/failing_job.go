package test

import (
	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/pkg/errors"
)

var ErrStation = errors.New("station")

type PanickingStage struct{}

func (f PanickingStage) Map(carrierdelay.Context, *lrdd.Row) (*lrdd.Row, error) {
	panic("station")
}

type FailingStage struct{}

func (f FailingStage) Map(_ carrierdelay.Context, row *lrdd.Row) (*lrdd.Row, error) {
	return nil, errors.Wrapf(ErrStation, "map %v", row.Value)
}

func PanickingJob() *carrierdelay.Pipeline {
	return carrierdelay.Parallelize([]int{1, 2, 3, 4, 5}).Map(PanickingStage{})
}

func FailingJob() *carrierdelay.Pipeline {
	return carrierdelay.Parallelize([]int{1, 2, 3, 4, 5}).Map(FailingStage{})
}
