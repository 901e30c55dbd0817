package testutils

import (
	"fmt"
	"strconv"

	"github.com/ab180/carrierdelay/lrdd"
)

func StringValue(row *lrdd.Row) string {
	if s, ok := row.Value.(string); ok {
		return s
	}
	return fmt.Sprint(row.Value)
}

// IntValue reads an int value of the row. String values are parsed.
func IntValue(row *lrdd.Row) int {
	switch v := row.Value.(type) {
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		return n
	}
	panic(fmt.Sprintf("%v is not an int", row.Value))
}

func StringValues(rows []*lrdd.Row) (ss []string) {
	for _, row := range rows {
		ss = append(ss, StringValue(row))
	}
	return
}

func GroupRowsByKey(rows []*lrdd.Row) map[string][]*lrdd.Row {
	return lrdd.GroupByKey(rows)
}
