// FILE: lixenwraith/settings/value.go
package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// coerce converts value into the canonical Go type of the option:
// bool, int64, float64, string, []string or [2]int64.
func coerce(o OptionSpec, value any) (any, error) {
	switch o.Type {
	case TypeBool:
		return coerceBool(value)
	case TypeInt:
		return coerceInt(value)
	case TypeFloat:
		return coerceFloat(value)
	case TypeString:
		return coerceString(value)
	case TypeEnum:
		return coerceEnum(value, o.Choices)
	case TypeStringList:
		return coerceStringList(value)
	case TypeIntPair:
		return coerceIntPair(value)
	default:
		return nil, fmt.Errorf("unsupported option type %v", o.Type)
	}
}

func coerceBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("cannot convert string %q to bool", v)
		}
		return b, nil
	}
	return nil, fmt.Errorf("expected bool, got %T", value)
}

// maxInt64Float is 2^63, the smallest float64 above math.MaxInt64.
const maxInt64Float = 9.223372036854775808e18

func coerceInt(value any) (any, error) {
	if n, ok := value.(json.Number); ok {
		value = n.String()
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("unsigned integer %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// Decoders hand back whole numbers as floats; fractional values are rejected
		f := v.Float()
		if f != math.Trunc(f) || f >= maxInt64Float || f < math.MinInt64 {
			return nil, fmt.Errorf("expected integer, got %v", f)
		}
		return int64(f), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert string %q to integer", s)
		}
		return i, nil
	}
	return nil, fmt.Errorf("expected integer, got %T", value)
}

func coerceFloat(value any) (any, error) {
	if n, ok := value.(json.Number); ok {
		value = n.String()
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert string %q to float", s)
		}
		return f, nil
	}
	return nil, fmt.Errorf("expected number, got %T", value)
}

func coerceString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, fmt.Errorf("expected string, got %T", value)
}

func coerceEnum(value any, choices []string) (any, error) {
	s, err := coerceString(value)
	if err != nil {
		return nil, err
	}
	for _, choice := range choices {
		if strings.EqualFold(choice, s.(string)) {
			return choice, nil
		}
	}
	return nil, fmt.Errorf("must be one of: %s", strings.Join(choices, ", "))
}

// coerceStringList accepts string slices, generic slices of strings from
// decoded documents, and comma-separated strings from env vars and flags.
func coerceStringList(value any) (any, error) {
	var out []string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &out,
		DecodeHook: mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(value); err != nil {
		return nil, fmt.Errorf("expected list of strings, got %T", value)
	}

	list := make([]string, 0, len(out))
	for _, item := range out {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list, nil
}

// coerceIntPair accepts two-element arrays or slices, and "WxH" or "W,H" strings.
func coerceIntPair(value any) (any, error) {
	if s, ok := value.(string); ok {
		sep := ","
		if strings.ContainsAny(s, "xX") {
			sep = "x"
			s = strings.ReplaceAll(s, "X", "x")
		}
		parts := strings.Split(s, sep)
		if len(parts) != 2 {
			return nil, fmt.Errorf("cannot convert string %q to integer pair", s)
		}
		value = []any{parts[0], parts[1]}
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected integer pair, got %T", value)
	}
	if v.Len() != 2 {
		return nil, fmt.Errorf("expected 2 elements, got %d", v.Len())
	}

	var pair [2]int64
	for i := 0; i < 2; i++ {
		n, err := coerceInt(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		pair[i] = n.(int64)
	}
	return pair, nil
}

// cloneValue copies canonical values that share backing memory.
func cloneValue(v any) any {
	if list, ok := v.([]string); ok {
		return slices.Clone(list)
	}
	return v
}

// equalValues compares canonical values.
func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
