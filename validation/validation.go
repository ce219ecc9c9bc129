package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// numberPattern accepts an optional sign, digits, an optional fraction and an
// optional upper-case exponent.
var numberPattern = regexp.MustCompile(`^[+-]?[0-9]+([.][0-9]+)?(E[+-]?[0-9]+)?$`)

type Violations struct {
	Errors map[string][]error
}

func (violations Violations) IsEmpty() bool {
	return len(violations.Errors) == 0
}

func (violations Violations) Error() string {
	names := make([]string, 0, len(violations.Errors))
	for name := range violations.Errors {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		for _, err := range violations.Errors[name] {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(err.Error())
		}
	}
	return b.String()
}

// ValidateMap checks data against rules, keyed by attribute name. Supported
// rules are "required", "numeric", "in:a,b,c" and "max:n" (length in bytes).
// Rules other than "required" are skipped for absent attributes.
func ValidateMap(data map[string]string, rules map[string][]string) Violations {
	var violations Violations
	violations.Errors = make(map[string][]error)

	for attributeName, attributeRules := range rules {
		attributeValue, present := data[attributeName]

		var errorCollection []error
		for _, attributeRule := range attributeRules {
			if err := validate(attributeRule, attributeName, attributeValue, present); err != nil {
				errorCollection = append(errorCollection, err)
			}
		}

		if len(errorCollection) != 0 {
			violations.Errors[attributeName] = errorCollection
		}
	}

	return violations
}

func validate(rule string, name string, value string, present bool) error {
	rule, argument, _ := strings.Cut(rule, ":")

	if rule == "required" {
		if !present {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}

	if !present {
		return nil
	}

	switch rule {
	case "numeric":
		if !ValidateNumeric(value) {
			return fmt.Errorf("%s must be a number", name)
		}
	case "in":
		if !ValidateIn(value, strings.Split(argument, ",")) {
			return fmt.Errorf("%s must be one of %s", name, argument)
		}
	case "max":
		size, err := strconv.Atoi(argument)
		if err != nil {
			return fmt.Errorf("invalid validation rule :: max:%s", argument)
		}
		if len(value) > size {
			return fmt.Errorf("%s may not be longer than %d", name, size)
		}
	default:
		return fmt.Errorf("invalid validation rule :: %s", rule)
	}

	return nil
}

// Numeric operations
func ValidateNumeric(value string) bool {
	return numberPattern.MatchString(value)
}

// String operations
func ValidateIn(value string, options []string) bool {
	return slices.Contains(options, value)
}
