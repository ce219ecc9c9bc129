package http

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrMalformedRequestLine = errors.New("http: malformed request line")
	ErrMalformedHeader      = errors.New("http: malformed header line")
	ErrTooManyHeaders       = errors.New("http: too many header lines")
	ErrLineTooLong          = errors.New("http: line too long")
)

// Request is built once per connection from the request line and, for
// routes that ask for them, the header lines that follow it.
type Request struct {
	Line    string
	Method  string
	Target  string
	Version string

	Path     string
	RawQuery string
	HasQuery bool

	Query   map[string]string
	Headers Headers
}

// ReadRequest reads the request line from br. It returns io.EOF when the
// peer closed the connection without sending anything.
func ReadRequest(br *bufio.Reader) (Request, error) {
	line, err := readLine(br)
	if err != nil {
		return Request{}, err
	}

	return ParseRequestLine(line)
}

// ParseRequestLine splits line into method, target and version and the
// target into path and raw query on the first '?'.
func ParseRequestLine(line string) (Request, error) {
	req := Request{Line: line}

	parts := strings.Fields(line)
	if len(parts) != 3 {
		return req, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	req.Method, req.Target, req.Version = parts[0], parts[1], parts[2]
	req.Path, req.RawQuery, req.HasQuery = strings.Cut(req.Target, "?")

	return req, nil
}

// ReadHeaders consumes header lines up to and including the blank line.
// In lenient mode lines without a colon are skipped and end of input counts
// as the end of the header block.
func (req *Request) ReadHeaders(br *bufio.Reader, strict bool) error {
	for {
		line, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if strict {
					return fmt.Errorf("%w: missing blank line", ErrMalformedHeader)
				}
				return nil
			}
			return err
		}

		if line == "" {
			return nil // end of headers
		}

		if req.Headers.Len() >= MaxRequestHeaders {
			return ErrTooManyHeaders
		}

		name, value, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			if strict {
				return fmt.Errorf("%w: %q", ErrMalformedHeader, line)
			}
			continue
		}

		req.Headers.Set(name, strings.TrimSpace(value))
	}
}

func (req *Request) QueryParam(name string) (string, bool) {
	value, found := req.Query[name]
	return value, found
}

// readLine returns the next line without its "\n" or "\r\n" terminator. A
// final line cut short by end of input is returned as is.
func readLine(br *bufio.Reader) (string, error) {
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if len(line)+len(chunk) > MaxLineSize {
			return "", ErrLineTooLong
		}
		line = append(line, chunk...)

		switch {
		case err == nil:
			return string(trimEOL(line)), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(line) > 0:
			return string(trimEOL(line)), nil
		default:
			return "", err
		}
	}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}
