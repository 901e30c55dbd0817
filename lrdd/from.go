package lrdd

import (
	"reflect"

	"github.com/samber/lo"
)

// From converts a value into rows. Slices and arrays become one row per element,
// maps become key-value rows (one per element when the map value is a slice).
func From(values interface{}) (rows []*Row) {
	if rr, ok := values.([]*Row); ok {
		return rr
	}
	inputVal := reflect.ValueOf(values)
	switch inputVal.Kind() {
	case reflect.Slice:
		fallthrough
	case reflect.Array:
		for i := 0; i < inputVal.Len(); i++ {
			rows = append(rows, Value(inputVal.Index(i).Interface()))
		}
	case reflect.Map:
		iter := inputVal.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			v := iter.Value()
			if v.Kind() == reflect.Interface {
				v = v.Elem()
			}
			if v.Kind() == reflect.Array || v.Kind() == reflect.Slice {
				for i := 0; i < v.Len(); i++ {
					rows = append(rows, KeyValue(k, v.Index(i).Interface()))
				}
			} else {
				rows = append(rows, KeyValue(k, v.Interface()))
			}
		}
	default:
		rows = append(rows, Value(values))
	}
	return
}

// GroupByKey groups rows by their keys, keeping the order of rows within a key.
func GroupByKey(rows []*Row) map[string][]*Row {
	return lo.GroupBy(rows, func(r *Row) string {
		return r.Key
	})
}

// Keys returns the distinct keys of the rows in order of first appearance.
func Keys(rows []*Row) []string {
	return lo.Uniq(lo.Map(rows, func(r *Row, _ int) string {
		return r.Key
	}))
}
