package delayjob

import (
	"github.com/ab180/carrierdelay"
	"github.com/ab180/carrierdelay/config"
	"github.com/ab180/carrierdelay/flight"
	"github.com/ab180/carrierdelay/input"
	"github.com/ab180/carrierdelay/lrdd"
	"github.com/pkg/errors"
)

// DecodeEvents parses each input line into a *flight.Event. The header line is dropped.
type DecodeEvents struct {
	MalformedRows config.MalformedRowPolicy
}

func (d *DecodeEvents) FlatMap(c carrierdelay.Context, row *lrdd.Row) ([]*lrdd.Row, error) {
	line := row.Value.(input.Line)
	c.AddMetric("Lines", 1)

	event, err := flight.ParseEvent(line.Text)
	if err != nil {
		err = errors.WithMessagef(err, "line %d", line.Number)
		if d.MalformedRows == config.FailOnMalformed {
			return nil, err
		}
		c.AddMetric("Malformed", 1)
		if w, ok := c.Broadcast(warningsKey).(*warnings); ok {
			w.add(err)
		}
		return nil, nil
	}
	if flight.IsHeader(event) {
		return nil, nil
	}
	return []*lrdd.Row{lrdd.Value(event)}, nil
}

// DelayedOnly passes flights which arrived late. With IncludeOnTime every flight
// having an arrival delay passes, and flights without one pass only under config.ZeroDelay.
type DelayedOnly struct {
	UnparsableDelay config.UnparsableDelayPolicy
	IncludeOnTime   bool
}

func (f *DelayedOnly) Filter(row *lrdd.Row) bool {
	event := row.Value.(*flight.Event)
	if !f.IncludeOnTime {
		return flight.IsDelayed(event)
	}
	_, ok := flight.ArrivalDelay(event)
	return ok || f.UnparsableDelay == config.ZeroDelay
}

// ProjectDelay keys a *flight.DelayRecord by its carrier.
type ProjectDelay struct{}

func (ProjectDelay) Map(c carrierdelay.Context, row *lrdd.Row) (*lrdd.Row, error) {
	record := flight.Project(row.Value.(*flight.Event))
	c.AddMetric("Records", 1)
	return lrdd.KeyValue(record.Carrier, record), nil
}

// SumDelays reduces delay records of a carrier into a flight.CarrierAggregate.
type SumDelays struct{}

func (SumDelays) InitialValue(carrier string) interface{} {
	return flight.NewCarrierAggregate(carrier)
}

func (SumDelays) Reduce(c carrierdelay.Context, prev interface{}, cur *lrdd.Row) (interface{}, error) {
	record, ok := cur.Value.(*flight.DelayRecord)
	if !ok {
		return nil, errors.Errorf("unexpected value %T", cur.Value)
	}
	c.AddMetric("Records", 1)
	return prev.(flight.CarrierAggregate).Plus(flight.FromRecord(record)), nil
}

// ByCarrier orders rows by carrier code.
type ByCarrier struct{}

func (ByCarrier) IsLessThan(a, b *lrdd.Row) bool {
	return a.Key < b.Key
}
