package http

import (
	"math"
	"time"
)

const (
	MethodGet  = "GET"
	MethodHead = "HEAD"

	ProtocolHTTP11 = "HTTP/1.1"

	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"

	DefaultReadBufferSize  = 4096 // 4kB
	DefaultWriteBufferSize = 4096 // 4kB
	MaxLineSize            = 8 * 1024
	MaxRequestHeaders      = math.MaxUint8

	DefaultLingerTimeout = 500 * time.Millisecond

	// TimeFormat is the IMF-fixdate layout used for the Date header.
	TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

type Handler func(ctx *RequestCtx)

type Middleware func(next Handler) Handler
