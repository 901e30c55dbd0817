package report

import (
	"fmt"
	"io"
	"time"

	"github.com/ab180/carrierdelay/flight"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// WriteText writes a line for each carrier followed by the elapsed time:
//
//	Delays for carrier AA: 15 average mins, 2 delayed flights
//	Took: 1234 millis
func WriteText(w io.Writer, carriers []flight.CarrierAggregate, took time.Duration) error {
	for _, c := range carriers {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	if _, err := fmt.Fprintf(w, "Took: %d millis\n", took.Milliseconds()); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

type carrierDoc struct {
	Carrier        string `json:"carrier"`
	AverageMins    int    `json:"averageMins"`
	TotalMins      int    `json:"totalMins"`
	DelayedFlights int    `json:"delayedFlights"`
}

type reportDoc struct {
	Carriers   []carrierDoc `json:"carriers"`
	TookMillis int64        `json:"tookMillis"`
}

// WriteJSON writes the report as a single JSON document.
func WriteJSON(w io.Writer, carriers []flight.CarrierAggregate, took time.Duration) error {
	doc := reportDoc{
		Carriers: lo.Map(carriers, func(c flight.CarrierAggregate, _ int) carrierDoc {
			avg, _ := c.Average()
			return carrierDoc{
				Carrier:        c.Carrier,
				AverageMins:    avg,
				TotalMins:      c.TotalMins,
				DelayedFlights: c.Count,
			}
		}),
		TookMillis: took.Milliseconds(),
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}
