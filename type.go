// File: lixenwraith/settings/type.go
package settings

import (
	"fmt"
	"strconv"
)

// String retrieves a string option using a dotted path.
// Numbers and booleans are formatted; unset optional options return "".
func (st *Store) String(path string) (string, error) {
	val, err := st.GetPath(path)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil // Treat nil as empty string for convenience
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// Int64 retrieves an integer option using a dotted path.
func (st *Store) Int64(path string) (int64, error) {
	val, err := st.GetPath(path)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil // Truncate
	case nil:
		return 0, fmt.Errorf("value for path %s is unset, cannot convert to int64", path)
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, path)
}

// Bool retrieves a boolean option using a dotted path.
func (st *Store) Bool(path string) (bool, error) {
	val, err := st.GetPath(path)
	if err != nil {
		return false, err
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case nil:
		return false, fmt.Errorf("value for path %s is unset, cannot convert to bool", path)
	}
	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
}

// Float64 retrieves a numeric option using a dotted path.
func (st *Store) Float64(path string) (float64, error) {
	val, err := st.GetPath(path)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("value for path %s is unset, cannot convert to float64", path)
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
}

// StringSlice retrieves a string list option using a dotted path.
func (st *Store) StringSlice(path string) ([]string, error) {
	val, err := st.GetPath(path)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []string for path %s", val, path)
}

// IntPair retrieves an integer pair option. ok is false when the option is unset.
func (st *Store) IntPair(path string) (pair [2]int64, ok bool, err error) {
	val, err := st.GetPath(path)
	if err != nil {
		return pair, false, err
	}

	switch v := val.(type) {
	case [2]int64:
		return v, true, nil
	case nil:
		return pair, false, nil
	}
	return pair, false, fmt.Errorf("cannot convert type %T to integer pair for path %s", val, path)
}

// Level retrieves a notification level option using a dotted path.
func (st *Store) Level(path string) (NotificationLevel, error) {
	name, err := st.String(path)
	if err != nil {
		return DefaultNotificationLevel, err
	}
	return ParseNotificationLevel(name)
}

// Language returns the current display language code (application.language).
// The translation runtime loads the matching language pack and handles fallback.
func (st *Store) Language() string {
	lang, err := st.String(string(SectionApplication) + ".language")
	if err != nil || lang == "" {
		return DefaultLanguage
	}
	return lang
}

// OnLanguageChange calls fn with the new language code whenever application.language changes.
func (st *Store) OnLanguageChange(fn func(code string)) *Subscription {
	return st.notifier.Subscribe(SectionApplication, "language", func(ev ChangeEvent) {
		code, _ := ev.New.(string)
		fn(code)
	})
}

// Subscribe registers an observer on the store's notifier. See Notifier.Subscribe.
func (st *Store) Subscribe(section Section, key string, observer Observer) *Subscription {
	return st.notifier.Subscribe(section, key, observer)
}
