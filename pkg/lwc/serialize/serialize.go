// Package serialize turns chart objects into the camelCase maps the lightweight-charts
// frontend consumes.
//
// Struct fields are keyed by their `lwc` tag name, or by the Go field name in lowerCamel.
// Nil pointers, empty strings and empty collections are dropped; zero numbers and false
// booleans are kept because the frontend treats them as explicit settings.
//
// Tag options:
//
//	lwc:"-"            skip the field
//	lwc:"name"         use name as the key
//	lwc:",flatten"     merge the nested object's keys into the parent
//	lwc:",keep"        keep the field even when empty
//	lwc:",omitempty"   also drop zero numbers and false booleans
package serialize

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// Valuer is implemented by values whose frontend representation differs from their Go value.
type Valuer interface {
	FrontendValue() any
}

// Serializable is implemented by objects that build their own frontend dictionary.
type Serializable interface {
	AsDict() map[string]any
}

const tagName = "lwc"

var (
	valuerType       = reflect.TypeOf((*Valuer)(nil)).Elem()
	serializableType = reflect.TypeOf((*Serializable)(nil)).Elem()
	timeType         = reflect.TypeOf(time.Time{})
)

// ToMap serializes a struct (or pointer to struct) into a frontend dictionary.
// Non-struct values yield an empty map.
func ToMap(v any) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	if s, ok := v.(Serializable); ok {
		if out := s.AsDict(); out != nil {
			return out
		}
		return map[string]any{}
	}
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return map[string]any{}
	}
	out := make(map[string]any, rv.NumField())
	writeStruct(out, rv)
	return out
}

// StructFields serializes a struct without consulting its own AsDict method.
// Types implementing Serializable use it to get the reflective base they then extend.
func StructFields(v any) map[string]any {
	rv := indirect(reflect.ValueOf(v))
	out := map[string]any{}
	if rv.IsValid() && rv.Kind() == reflect.Struct {
		writeStruct(out, rv)
	}
	return out
}

// Value converts any supported value to its frontend representation.
func Value(v any) any {
	if v == nil {
		return nil
	}
	return convert(reflect.ValueOf(v))
}

// ToJSON encodes the frontend representation of v.
func ToJSON(v any) ([]byte, error) {
	converted := Value(v)
	b, err := json.Marshal(converted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontend json: %w", err)
	}
	return b, nil
}

type fieldTag struct {
	name    string
	skip    bool
	flatten bool
	keep    bool
	omitRaw bool
}

func parseTag(f reflect.StructField) fieldTag {
	raw, ok := f.Tag.Lookup(tagName)
	if !ok {
		return fieldTag{name: LowerCamel(f.Name), flatten: f.Anonymous}
	}
	if raw == "-" {
		return fieldTag{skip: true}
	}
	parts := strings.Split(raw, ",")
	tag := fieldTag{name: parts[0], flatten: f.Anonymous}
	if tag.name == "" {
		tag.name = LowerCamel(f.Name)
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "flatten":
			tag.flatten = true
		case "keep":
			tag.keep = true
		case "omitempty":
			tag.omitRaw = true
		}
	}
	return tag
}

func writeStruct(out map[string]any, rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() && !f.Anonymous {
			continue
		}
		tag := parseTag(f)
		if tag.skip {
			continue
		}
		fv := rv.Field(i)

		if tag.flatten {
			inner := indirect(fv)
			if !inner.IsValid() {
				continue
			}
			if nested, ok := convert(fv).(map[string]any); ok {
				for k, v := range nested {
					if _, exists := out[k]; !exists {
						out[k] = v
					}
				}
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if !tag.keep && isEmpty(fv) {
			continue
		}
		if tag.omitRaw && fv.IsZero() {
			continue
		}
		converted := convert(fv)
		if !tag.keep && emptyConverted(converted) {
			continue
		}
		out[tag.name] = converted
	}
}

// emptyConverted reports values that converted to nothing, such as an AsDict returning {}.
func emptyConverted(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(c) == 0
	case []any:
		return len(c) == 0
	}
	return false
}

func convert(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil
	}
	if rv.Type().Implements(serializableType) && rv.CanInterface() {
		return rv.Interface().(Serializable).AsDict()
	}
	if rv.Type().Implements(valuerType) && rv.CanInterface() {
		return Value(rv.Interface().(Valuer).FrontendValue())
	}
	if rv.Type() == timeType {
		t := rv.Interface().(time.Time)
		if t.IsZero() {
			return nil
		}
		return t.Unix()
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return convert(rv.Elem())
	case reflect.Struct:
		if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(serializableType) {
			return rv.Addr().Interface().(Serializable).AsDict()
		}
		out := make(map[string]any, rv.NumField())
		writeStruct(out, rv)
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		items := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, convert(rv.Index(i)))
		}
		return items
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = convert(iter.Value())
		}
		return out
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return float64(0)
		}
		return f
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil
	}
	if rv.CanInterface() {
		return rv.Interface()
	}
	return nil
}

func mapKey(k reflect.Value) string {
	k = indirect(k)
	if k.Kind() == reflect.String {
		return SnakeToCamel(k.String())
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return ""
}

func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Func, reflect.Chan:
		return true
	case reflect.Struct:
		if rv.Type() == timeType {
			return rv.Interface().(time.Time).IsZero()
		}
	}
	return false
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
