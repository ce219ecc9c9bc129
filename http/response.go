package http

import (
	"bufio"
	"strconv"
	"time"
)

type Response struct {
	Status      uint16
	ContentType string
	Headers     []string // raw "Name: value" lines written after the fixed headers
	Body        string
}

type WriteOptions struct {
	Server   string
	Date     time.Time
	OmitBody bool
}

func NewResponse() Response {
	return Response{
		Status:      StatusOK,
		ContentType: ContentTypeText,
	}
}

func (res *Response) WithStatus(status uint16) *Response {
	res.Status = status
	return res
}

func (res *Response) WithText(body string) *Response {
	res.ContentType = ContentTypeText
	res.Body = body
	return res
}

func (res *Response) WithJSON(body []byte) *Response {
	res.ContentType = ContentTypeJSON
	res.Body = string(body)
	return res
}

func (res *Response) WithHeader(name, value string) *Response {
	res.Headers = append(res.Headers, name+": "+value)
	return res
}

func (res *Response) Redirect(location string) *Response {
	res.Status = StatusMovedPermanently
	return res.WithHeader("Location", location)
}

// Finalize makes the response writable: a status outside the catalog becomes
// 500, and a non-200 response without a body gets the reason phrase as body.
// It reports whether the status had to be replaced.
func (res *Response) Finalize() bool {
	_, known := StatusText(res.Status)
	if !known {
		res.Status = StatusInternalServerError
		res.ContentType = ContentTypeText
		res.Body = ""
	}

	if res.Status != StatusOK && res.Body == "" {
		res.Body, _ = StatusText(res.Status)
	}

	if res.ContentType == "" {
		res.ContentType = ContentTypeText
	}

	return !known
}

// Write frames the response onto bw and flushes it. Content-length always
// reflects the body, also when the body itself is omitted.
func (res *Response) Write(bw *bufio.Writer, opts WriteOptions) error {
	reason, _ := StatusText(res.Status)

	bw.WriteString(ProtocolHTTP11)
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(int(res.Status)))
	bw.WriteByte(' ')
	bw.WriteString(reason)
	bw.WriteString("\r\n")

	writeHeader(bw, "Server", opts.Server)
	writeHeader(bw, "Date", opts.Date.UTC().Format(TimeFormat))
	writeHeader(bw, "Content-type", res.ContentType)
	writeHeader(bw, "Content-length", strconv.Itoa(len(res.Body)))
	writeHeader(bw, "Connection", "close")
	for _, line := range res.Headers {
		bw.WriteString(line)
		bw.WriteString("\r\n")
	}
	bw.WriteString("\r\n")

	if !opts.OmitBody {
		bw.WriteString(res.Body)
	}

	return bw.Flush()
}

func writeHeader(bw *bufio.Writer, name, value string) {
	bw.WriteString(name)
	bw.WriteString(": ")
	bw.WriteString(value)
	bw.WriteString("\r\n")
}
