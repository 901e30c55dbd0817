package lrdd

import "fmt"

// Row is a unit of data flowing through a pipeline.
// The key is used by partitioners (e.g. GroupByKey) to route the row.
type Row struct {
	Key   string
	Value interface{}
}

func KeyValue(key string, value interface{}) *Row {
	return &Row{
		Key:   key,
		Value: value,
	}
}

func Value(value interface{}) *Row {
	return &Row{Value: value}
}

func (r *Row) String() string {
	if r.Key == "" {
		return fmt.Sprintf("%v", r.Value)
	}
	return fmt.Sprintf("%s: %v", r.Key, r.Value)
}
