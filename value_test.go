// FILE: lixenwraith/settings/value_test.go
package settings

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		spec    OptionSpec
		input   any
		want    any
		wantErr bool
	}{
		{"BoolNative", OptionSpec{Type: TypeBool}, true, true, false},
		{"BoolString", OptionSpec{Type: TypeBool}, "false", false, false},
		{"BoolBad", OptionSpec{Type: TypeBool}, 1, nil, true},
		{"IntFromInt", OptionSpec{Type: TypeInt}, 5, int64(5), false},
		{"IntFromUint8", OptionSpec{Type: TypeInt}, uint8(7), int64(7), false},
		{"IntFromWholeFloat", OptionSpec{Type: TypeInt}, 3.0, int64(3), false},
		{"IntFromFraction", OptionSpec{Type: TypeInt}, 3.5, nil, true},
		{"IntFromFloatOverflow", OptionSpec{Type: TypeInt}, float64(1 << 63), nil, true},
		{"IntFromMinFloat", OptionSpec{Type: TypeInt}, float64(math.MinInt64), int64(math.MinInt64), false},
		{"IntFromString", OptionSpec{Type: TypeInt}, " 42 ", int64(42), false},
		{"IntFromHex", OptionSpec{Type: TypeInt}, "0x10", int64(16), false},
		{"IntFromJSONNumber", OptionSpec{Type: TypeInt}, json.Number("12"), int64(12), false},
		{"IntFromBool", OptionSpec{Type: TypeInt}, true, nil, true},
		{"FloatFromInt", OptionSpec{Type: TypeFloat}, 2, 2.0, false},
		{"FloatFromString", OptionSpec{Type: TypeFloat}, "0.25", 0.25, false},
		{"String", OptionSpec{Type: TypeString}, "fr", "fr", false},
		{"StringFromInt", OptionSpec{Type: TypeString}, 3, nil, true},
		{"EnumCaseInsensitive", OptionSpec{Type: TypeEnum, Choices: []string{"dark", "light"}}, "LIGHT", "light", false},
		{"EnumUnknown", OptionSpec{Type: TypeEnum, Choices: []string{"dark", "light"}}, "blue", nil, true},
		{"ListFromSlice", OptionSpec{Type: TypeStringList}, []string{"a", "b"}, []string{"a", "b"}, false},
		{"ListFromAnySlice", OptionSpec{Type: TypeStringList}, []any{"a", "b"}, []string{"a", "b"}, false},
		{"ListFromCSV", OptionSpec{Type: TypeStringList}, "a, b,,c", []string{"a", "b", "c"}, false},
		{"ListFromEmpty", OptionSpec{Type: TypeStringList}, "", []string{}, false},
		{"ListFromInt", OptionSpec{Type: TypeStringList}, 4, nil, true},
		{"PairFromString", OptionSpec{Type: TypeIntPair}, "800x600", [2]int64{800, 600}, false},
		{"PairFromComma", OptionSpec{Type: TypeIntPair}, "10,20", [2]int64{10, 20}, false},
		{"PairFromSlice", OptionSpec{Type: TypeIntPair}, []any{1, 2.0}, [2]int64{1, 2}, false},
		{"PairFromArray", OptionSpec{Type: TypeIntPair}, [2]int{3, 4}, [2]int64{3, 4}, false},
		{"PairWrongLength", OptionSpec{Type: TypeIntPair}, []int{1, 2, 3}, nil, true},
		{"PairBadString", OptionSpec{Type: TypeIntPair}, "wide", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(tt.spec, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionValidate(t *testing.T) {
	required := OptionSpec{Section: "ui", Key: "size", Type: TypeInt, Validator: Range(1, 10)}
	optional := OptionSpec{Section: "ui", Key: "geometry", Type: TypeIntPair, Optional: true}

	t.Run("ValidatorRuns", func(t *testing.T) {
		got, err := required.Validate("5")
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)

		_, err = required.Validate(0)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, Section("ui"), verr.Section)
		assert.Equal(t, "size", verr.Key)
		assert.Equal(t, 0, verr.Value)
		assert.Contains(t, verr.Reason, "between 1 and 10")
	})

	t.Run("Unset", func(t *testing.T) {
		got, err := optional.Validate(Unset)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = optional.Validate(nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = required.Validate(Unset)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestValidators(t *testing.T) {
	assert.NoError(t, Range(1, 3)(int64(3)))
	assert.Error(t, Range(1, 3)(int64(4)))
	assert.Error(t, Range(1, 3)("2"))

	assert.NoError(t, FloatRange(0, 1)(0.5))
	assert.Error(t, FloatRange(0, 1)(1.5))

	assert.NoError(t, OneOf("a", "b")("b"))
	assert.Error(t, OneOf("a", "b")("c"))

	assert.NoError(t, MinLen(2)("né"))
	assert.Error(t, MinLen(3)("né"))
	assert.NoError(t, MinLen(1)([]string{"a"}))
	assert.Error(t, MinLen(1)([]string{}))
	assert.Error(t, MinLen(1)(int64(1)))

	assert.NoError(t, NonNegative()([2]int64{0, 10}))
	assert.Error(t, NonNegative()([2]int64{-1, 10}))
	assert.Error(t, NonNegative()(int64(-2)))
	assert.Error(t, NonNegative()("x"))

	for _, code := range []string{"en", "fr", "pt_BR", "zh-Hans", "fil"} {
		assert.NoError(t, LocaleCode()(code), code)
	}
	for _, code := range []string{"", "EN", "english", "e", "en_"} {
		assert.Error(t, LocaleCode()(code), code)
	}

	chained := All(Range(0, 100), nil, func(v any) error {
		if v.(int64)%2 != 0 {
			return assert.AnError
		}
		return nil
	})
	assert.NoError(t, chained(int64(4)))
	assert.ErrorIs(t, chained(int64(5)), assert.AnError)
	assert.Error(t, chained(int64(200)))
}

func TestNotificationLevel(t *testing.T) {
	level, err := ParseNotificationLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, level)

	_, err = ParseNotificationLevel("loud")
	assert.Error(t, err)

	assert.True(t, LevelWarning.Shows(LevelError))
	assert.False(t, LevelWarning.Shows(LevelInfo))
	assert.False(t, LevelNone.Shows(LevelError))
	assert.Equal(t, "info", NotificationLevel(99).String())
}
