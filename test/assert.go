package test

import (
	"strings"
	"testing"
)

func Equal[T comparable](t *testing.T, expected, actual T) bool {
	t.Helper()

	if expected != actual {
		t.Errorf(""+
			"Not equal: \n"+
			"Expected: %v\n"+
			"Actual: %v", expected, actual)
		return false
	}

	return true
}

func Contains(t *testing.T, s, substr string) bool {
	t.Helper()

	if !strings.Contains(s, substr) {
		t.Errorf(""+
			"Missing substring: \n"+
			"Expected to find: %q\n"+
			"In: %q", substr, s)
		return false
	}

	return true
}

func NoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
