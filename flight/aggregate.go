package flight

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyAggregate is returned when averaging an aggregate with no flights.
var ErrEmptyAggregate = errors.New("no flights aggregated")

// CarrierAggregate is the running total of arrival delays of a carrier.
type CarrierAggregate struct {
	Carrier   string
	TotalMins int
	Count     int
}

func NewCarrierAggregate(carrier string) CarrierAggregate {
	return CarrierAggregate{Carrier: carrier}
}

// FromRecord creates an aggregate of a single flight.
func FromRecord(r *DelayRecord) CarrierAggregate {
	return CarrierAggregate{
		Carrier:   r.Carrier,
		TotalMins: r.ArrDelayMins,
		Count:     1,
	}
}

// Plus adds totals and counts. The carrier of the receiver is kept.
func (a CarrierAggregate) Plus(o CarrierAggregate) CarrierAggregate {
	return CarrierAggregate{
		Carrier:   a.Carrier,
		TotalMins: a.TotalMins + o.TotalMins,
		Count:     a.Count + o.Count,
	}
}

// Average returns the mean delay in minutes, truncated toward zero.
func (a CarrierAggregate) Average() (int, error) {
	if a.Count == 0 {
		return 0, errors.Wrapf(ErrEmptyAggregate, "carrier %s", a.Carrier)
	}
	return a.TotalMins / a.Count, nil
}

// String formats the aggregate as a report line. An empty aggregate reports 0 average minutes.
func (a CarrierAggregate) String() string {
	avg, _ := a.Average()
	return fmt.Sprintf("Delays for carrier %s: %d average mins, %d delayed flights", a.Carrier, avg, a.Count)
}
