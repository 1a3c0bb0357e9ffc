package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// RegisterStruct registers one option per exported field of a struct holding defaults.
// The option key comes from the `toml` tag (or the field name), the type is inferred
// from the field type, and a pointer field makes the option optional.
// Constraints are read from the `settings` tag:
//
//	settings:"hidden"            not shown in preference listings
//	settings:"range=1:10"        integer range
//	settings:"enum=dark|light"   enum choices
//	settings:"locale"            locale code validator
//
// A `desc` tag sets the description.
func (s *Schema) RegisterStruct(section Section, structWithDefaults any) error {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("RegisterStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	var errors []string
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}

		key := field.Name
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				key = parts[0]
			}
		}

		spec, err := specFromField(section, key, field, v.Field(i))
		if err == nil {
			err = s.Register(spec)
		}
		if err != nil {
			errors = append(errors, fmt.Sprintf("field %s (option %s.%s): %v", field.Name, section, key, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to register %d field(s): %s", len(errors), strings.Join(errors, "; "))
	}

	return nil
}

// specFromField builds an OptionSpec from a struct field and its default value.
func specFromField(section Section, key string, field reflect.StructField, value reflect.Value) (OptionSpec, error) {
	spec := OptionSpec{
		Section:     section,
		Key:         key,
		Description: field.Tag.Get("desc"),
	}

	fieldType := field.Type
	if fieldType.Kind() == reflect.Ptr {
		spec.Optional = true
		fieldType = fieldType.Elem()
		if !value.IsNil() {
			spec.Default = value.Elem().Interface()
		}
	} else {
		spec.Default = value.Interface()
	}

	optType, err := inferType(fieldType)
	if err != nil {
		return spec, err
	}
	spec.Type = optType

	var validators []Validator
	for _, opt := range strings.Split(field.Tag.Get("settings"), ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch name {
		case "":
		case "hidden":
			spec.Hidden = true
		case "locale":
			validators = append(validators, LocaleCode())
		case "enum":
			if spec.Type != TypeString {
				return spec, fmt.Errorf("enum tag requires a string field")
			}
			spec.Type = TypeEnum
			spec.Choices = strings.Split(arg, "|")
		case "range":
			lo, hi, ok := strings.Cut(arg, ":")
			min, err1 := strconv.ParseInt(lo, 10, 64)
			max, err2 := strconv.ParseInt(hi, 10, 64)
			if !ok || err1 != nil || err2 != nil {
				return spec, fmt.Errorf("invalid range %q", arg)
			}
			validators = append(validators, Range(min, max))
		default:
			return spec, fmt.Errorf("unknown settings tag option %q", name)
		}
	}

	switch len(validators) {
	case 0:
	case 1:
		spec.Validator = validators[0]
	default:
		spec.Validator = All(validators...)
	}

	return spec, nil
}

// inferType maps a Go field type to an option type.
func inferType(t reflect.Type) (OptionType, error) {
	switch t.Kind() {
	case reflect.Bool:
		return TypeBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TypeInt, nil
	case reflect.Float32, reflect.Float64:
		return TypeFloat, nil
	case reflect.String:
		return TypeString, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return TypeStringList, nil
		}
	case reflect.Array:
		switch t.Elem().Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if t.Len() == 2 {
				return TypeIntPair, nil
			}
		}
	}
	return 0, fmt.Errorf("unsupported field type %s", t)
}
