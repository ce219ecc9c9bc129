package validation

import (
	"testing"

	"github.com/freekieb7/calcd/test"
)

func TestValidateNumeric(t *testing.T) {
	valid := []string{"0", "3", "-4", "+12", "3.25", "1E10", "1.5E-3", "-2.0E+7"}
	for _, value := range valid {
		if !ValidateNumeric(value) {
			t.Errorf("ValidateNumeric(%q) = false, want true", value)
		}
	}

	invalid := []string{"", "abc", ".5", "5.", "1e10", "1E", "--1", "1,5", " 1", "Infinity", "NaN", "0x10"}
	for _, value := range invalid {
		if ValidateNumeric(value) {
			t.Errorf("ValidateNumeric(%q) = true, want false", value)
		}
	}
}

func TestValidateMap(t *testing.T) {
	rules := map[string][]string{
		"op": {"required", "in:add,subtract"},
		"a":  {"required", "numeric"},
		"b":  {"numeric", "max:3"},
	}

	tests := []struct {
		name    string
		data    map[string]string
		invalid []string
	}{
		{"valid", map[string]string{"op": "add", "a": "1", "b": "2"}, nil},
		{"optional absent", map[string]string{"op": "add", "a": "1"}, nil},
		{"missing required", map[string]string{"b": "2"}, []string{"op", "a"}},
		{"not in set", map[string]string{"op": "modulo", "a": "1"}, []string{"op"}},
		{"not numeric", map[string]string{"op": "add", "a": "one", "b": "x"}, []string{"a", "b"}},
		{"too long", map[string]string{"op": "add", "a": "1", "b": "1234"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := ValidateMap(tt.data, rules)

			test.Equal(t, len(tt.invalid) == 0, violations.IsEmpty())
			test.Equal(t, len(tt.invalid), len(violations.Errors))
			for _, name := range tt.invalid {
				if _, found := violations.Errors[name]; !found {
					t.Errorf("expected violation for %s, got %v", name, violations)
				}
			}
		})
	}
}

func TestUnknownRule(t *testing.T) {
	violations := ValidateMap(map[string]string{"a": "1"}, map[string][]string{"a": {"uuid"}})

	test.Equal(t, false, violations.IsEmpty())
	test.Equal(t, "invalid validation rule :: uuid", violations.Error())
}

func TestViolationsErrorIsSorted(t *testing.T) {
	violations := ValidateMap(map[string]string{}, map[string][]string{
		"b": {"required"},
		"a": {"required"},
	})

	test.Equal(t, "a is required; b is required", violations.Error())
}
