package output

import (
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/ab180/carrierdelay/partitions"
	"github.com/pkg/errors"
)

// Writer routes rows to the outputs of the next stage's partitions using a partitioner.
type Writer struct {
	context     partitions.Context
	partitioner partitions.Partitioner
	outputs     map[string]Output
	buffers     map[string][]*lrdd.Row

	// Dropped counts rows which the partitioner had no partition for.
	Dropped int
}

func NewWriter(partitionID string, p partitions.Partitioner, outputs map[string]Output) *Writer {
	return &Writer{
		context:     partitions.NewContext(partitionID),
		partitioner: p,
		outputs:     outputs,
		buffers:     make(map[string][]*lrdd.Row, len(outputs)),
	}
}

// Write groups rows by destination partition and writes each group at once,
// keeping the relative order of rows within a partition.
func (w *Writer) Write(rows ...*lrdd.Row) error {
	var order []string
	for _, row := range rows {
		id, err := w.partitioner.DeterminePartition(w.context, row, len(w.outputs))
		if err != nil {
			if errors.Is(err, partitions.ErrNoOutput) {
				w.Dropped++
				continue
			}
			return errors.Wrapf(err, "determine partition of %s", row.Key)
		}
		if _, ok := w.outputs[id]; !ok {
			return errors.Errorf("unknown partition %s", id)
		}
		if len(w.buffers[id]) == 0 {
			order = append(order, id)
		}
		w.buffers[id] = append(w.buffers[id], row)
	}
	for _, id := range order {
		if err := w.outputs[id].Write(w.buffers[id]...); err != nil {
			return err
		}
		w.buffers[id] = w.buffers[id][:0]
	}
	return nil
}

func (w *Writer) NumOutputs() int {
	return len(w.outputs)
}

// Close does not close the underlying outputs; they are owned by the tasks of the next stage.
func (w *Writer) Close() error {
	return nil
}
