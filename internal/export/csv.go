// Package export renders record lists as CSV text for download.
package export

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrSinDatos = errors.New("No hay datos para exportar")

var stringerType = reflect.TypeFor[fmt.Stringer]()

// CSV renders rows with a header taken from the first record's exported
// fields. Values are joined with commas as-is: embedded commas or newlines
// are not quoted.
func CSV[T any](rows []T) (string, error) {
	if len(rows) == 0 {
		return "", ErrSinDatos
	}

	first := reflect.Indirect(reflect.ValueOf(rows[0]))
	if first.Kind() != reflect.Struct {
		return "", fmt.Errorf("export: %s is not a struct", first.Type())
	}
	fields := columns(first.Type())

	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.name
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		v := reflect.Indirect(reflect.ValueOf(row))
		values := make([]string, len(fields))
		if v.IsValid() {
			for i, f := range fields {
				values[i] = format(v.FieldByIndex(f.index))
			}
		}
		lines = append(lines, strings.Join(values, ","))
	}
	return strings.Join(lines, "\n"), nil
}

type column struct {
	name  string
	index []int
}

func columns(t reflect.Type) []column {
	cols := make([]column, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := tagName(f.Tag.Get("csv"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = tagName(f.Tag.Get("json"))
			if name == "-" {
				continue
			}
		}
		if name == "" {
			name = f.Name
		}
		cols = append(cols, column{name: name, index: f.Index})
	}
	return cols
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func format(v reflect.Value) string {
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		v = v.Elem()
	}
	if v.Type().Implements(stringerType) {
		return v.Interface().(fmt.Stringer).String()
	}
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range v.Len() {
			parts[i] = format(v.Index(i))
		}
		return strings.Join(parts, " | ")
	}
	return fmt.Sprint(v.Interface())
}
