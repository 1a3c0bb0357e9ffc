package settings

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator checks a canonical option value. It returns an error describing
// why the value is rejected.
type Validator func(value any) error

// Range accepts integers in [min, max].
func Range(min, max int64) Validator {
	return func(value any) error {
		n, ok := value.(int64)
		if !ok {
			return fmt.Errorf("expected integer, got %T", value)
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

// FloatRange accepts floats in [min, max].
func FloatRange(min, max float64) Validator {
	return func(value any) error {
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		if f < min || f > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}

// OneOf accepts strings equal to one of the given values.
func OneOf(values ...string) Validator {
	return func(value any) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		for _, v := range values {
			if v == s {
				return nil
			}
		}
		return fmt.Errorf("must be one of: %s", strings.Join(values, ", "))
	}
}

// Pattern accepts strings matching the regular expression.
func Pattern(expr string) Validator {
	re := regexp.MustCompile(expr)
	return func(value any) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		if !re.MatchString(s) {
			return fmt.Errorf("must match pattern %s", expr)
		}
		return nil
	}
}

// MinLen accepts strings or string lists with at least n elements (runes for strings).
func MinLen(n int) Validator {
	return func(value any) error {
		var got int
		switch v := value.(type) {
		case string:
			got = utf8.RuneCountInString(v)
		case []string:
			got = len(v)
		default:
			return fmt.Errorf("expected string or list, got %T", value)
		}
		if got < n {
			return fmt.Errorf("must have at least %d elements, got %d", n, got)
		}
		return nil
	}
}

// NonNegative accepts int pairs or integers with no negative component.
func NonNegative() Validator {
	return func(value any) error {
		switch v := value.(type) {
		case int64:
			if v < 0 {
				return fmt.Errorf("must not be negative")
			}
		case [2]int64:
			if v[0] < 0 || v[1] < 0 {
				return fmt.Errorf("components must not be negative")
			}
		default:
			return fmt.Errorf("expected integer or integer pair, got %T", value)
		}
		return nil
	}
}

// LocaleCode accepts language codes such as "en", "fr", "pt_BR" or "zh-Hans".
func LocaleCode() Validator {
	return Pattern(`^[a-z]{2,3}([_-][A-Za-z0-9]{2,8})?$`)
}

// All chains validators, stopping at the first failure.
func All(validators ...Validator) Validator {
	return func(value any) error {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if err := v(value); err != nil {
				return err
			}
		}
		return nil
	}
}
