package flight

import (
	"math"
	"strconv"
)

// ParseIntOrDefault parses a base-10 integer. It returns def if the text is empty,
// "NA", not a number or out of range.
func ParseIntOrDefault(text string, def int) int {
	n, err := strconv.Atoi(text)
	if err != nil {
		return def
	}
	return n
}

// ArrivalDelay returns the arrival delay in minutes. ok is false if the column is missing or not a number.
func ArrivalDelay(e *Event) (mins int, ok bool) {
	mins = ParseIntOrDefault(e.ArrDelay, math.MinInt)
	return mins, mins != math.MinInt
}

// IsDelayed reports whether the flight arrived late. Unparsable delays are not delayed.
func IsDelayed(e *Event) bool {
	return ParseIntOrDefault(e.ArrDelay, 0) > 0
}

// DelayRecord is the part of an Event needed to aggregate delays.
type DelayRecord struct {
	Year         string
	Month        string
	DayOfMonth   string
	FlightNum    string
	Carrier      string
	ArrDelayMins int
}

// Project extracts a DelayRecord. An unparsable delay becomes 0.
func Project(e *Event) *DelayRecord {
	return &DelayRecord{
		Year:         e.Year,
		Month:        e.Month,
		DayOfMonth:   e.DayofMonth,
		FlightNum:    e.FlightNum,
		Carrier:      e.UniqueCarrier,
		ArrDelayMins: ParseIntOrDefault(e.ArrDelay, 0),
	}
}
