package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMalformedQuery = errors.New("http: malformed query string")

// ParseQuery splits rawQuery on '&' and each field on its first '='. Values
// are percent-decoded, keys are kept raw. Fields without '=' are dropped and
// a repeated key keeps its last value.
func ParseQuery(rawQuery string) (map[string]string, error) {
	query := make(map[string]string)
	if rawQuery == "" {
		return query, nil
	}

	for _, field := range strings.Split(rawQuery, "&") {
		key, value, found := strings.Cut(field, "=")
		if !found {
			continue
		}

		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedQuery, key, err)
		}

		query[key] = decoded
	}

	return query, nil
}
