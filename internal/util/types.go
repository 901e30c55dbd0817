package util

import (
	"reflect"
)

// NameOfType returns the name of the (pointed) type of v. Anonymous types return an empty string.
func NameOfType(v interface{}) string {
	if v == nil {
		return "nil"
	}
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ.Name()
}
