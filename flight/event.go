package flight

import (
	"strings"

	"github.com/pkg/errors"
)

// NumFields is the number of columns of the on-time performance dataset.
const NumFields = 29

// ErrMalformedRecord is returned when a line has fewer columns than NumFields.
var ErrMalformedRecord = errors.New("malformed record")

// Event is a row of the on-time performance dataset. Every column is kept as text.
type Event struct {
	Year              string
	Month             string
	DayofMonth        string
	DayOfWeek         string
	DepTime           string
	CRSDepTime        string
	ArrTime           string
	CRSArrTime        string
	UniqueCarrier     string
	FlightNum         string
	TailNum           string
	ActualElapsedTime string
	CRSElapsedTime    string
	AirTime           string
	ArrDelay          string
	DepDelay          string
	Origin            string
	Dest              string
	Distance          string
	TaxiIn            string
	TaxiOut           string
	Cancelled         string
	CancellationCode  string
	Diverted          string
	CarrierDelay      string
	WeatherDelay      string
	NASDelay          string
	SecurityDelay     string
	LateAircraftDelay string
}

// IsHeader reports whether the event is the header line of the dataset.
func IsHeader(e *Event) bool {
	return e.Year == "Year"
}

// ParseEvent splits a CSV line into an Event. Quoted fields are not supported,
// so a comma inside a field shifts the columns after it. Columns after NumFields are ignored.
func ParseEvent(line string) (*Event, error) {
	f := strings.Split(line, ",")
	if len(f) < NumFields {
		return nil, errors.Wrapf(ErrMalformedRecord, "expected %d fields, got %d", NumFields, len(f))
	}
	return &Event{
		Year:              f[0],
		Month:             f[1],
		DayofMonth:        f[2],
		DayOfWeek:         f[3],
		DepTime:           f[4],
		CRSDepTime:        f[5],
		ArrTime:           f[6],
		CRSArrTime:        f[7],
		UniqueCarrier:     f[8],
		FlightNum:         f[9],
		TailNum:           f[10],
		ActualElapsedTime: f[11],
		CRSElapsedTime:    f[12],
		AirTime:           f[13],
		ArrDelay:          f[14],
		DepDelay:          f[15],
		Origin:            f[16],
		Dest:              f[17],
		Distance:          f[18],
		TaxiIn:            f[19],
		TaxiOut:           f[20],
		Cancelled:         f[21],
		CancellationCode:  f[22],
		Diverted:          f[23],
		CarrierDelay:      f[24],
		WeatherDelay:      f[25],
		NASDelay:          f[26],
		SecurityDelay:     f[27],
		LateAircraftDelay: f[28],
	}, nil
}
