package http

import "strings"

type Header struct {
	Name  string
	Value string
}

// Headers keeps request headers in arrival order.
type Headers []Header

func (headers Headers) Get(name string) (string, bool) {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value, true
		}
	}

	return "", false
}

// Set replaces the value of an existing header in place, or appends it.
func (headers *Headers) Set(name, value string) {
	for i := range *headers {
		if strings.EqualFold((*headers)[i].Name, name) {
			(*headers)[i].Value = value
			return
		}
	}

	*headers = append(*headers, Header{Name: name, Value: value})
}

func (headers Headers) Len() int {
	return len(headers)
}
