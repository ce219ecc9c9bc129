package http

const (
	StatusContinue           uint16 = 100 // RFC 7231, 6.2.1
	StatusSwitchingProtocols uint16 = 101 // RFC 7231, 6.2.2

	StatusOK                   uint16 = 200 // RFC 7231, 6.3.1
	StatusCreated              uint16 = 201 // RFC 7231, 6.3.2
	StatusAccepted             uint16 = 202 // RFC 7231, 6.3.3
	StatusNonAuthoritativeInfo uint16 = 203 // RFC 7231, 6.3.4
	StatusNoContent            uint16 = 204 // RFC 7231, 6.3.5
	StatusResetContent         uint16 = 205 // RFC 7231, 6.3.6
	StatusPartialContent       uint16 = 206 // RFC 7233, 4.1

	StatusMultipleChoices  uint16 = 300 // RFC 7231, 6.4.1
	StatusMovedPermanently uint16 = 301 // RFC 7231, 6.4.2
	StatusMovedTemporarily uint16 = 302 // RFC 7231, 6.4.3
	StatusSeeOther         uint16 = 303 // RFC 7231, 6.4.4
	StatusNotModified      uint16 = 304 // RFC 7232, 4.1
	StatusUseProxy         uint16 = 305 // RFC 7231, 6.4.5

	StatusBadRequest            uint16 = 400 // RFC 7231, 6.5.1
	StatusUnauthorized          uint16 = 401 // RFC 7235, 3.1
	StatusPaymentRequired       uint16 = 402 // RFC 7231, 6.5.2
	StatusForbidden             uint16 = 403 // RFC 7231, 6.5.3
	StatusNotFound              uint16 = 404 // RFC 7231, 6.5.4
	StatusMethodNotAllowed      uint16 = 405 // RFC 7231, 6.5.5
	StatusNotAcceptable         uint16 = 406 // RFC 7231, 6.5.6
	StatusProxyAuthRequired     uint16 = 407 // RFC 7235, 3.2
	StatusRequestTimeout        uint16 = 408 // RFC 7231, 6.5.7
	StatusConflict              uint16 = 409 // RFC 7231, 6.5.8
	StatusGone                  uint16 = 410 // RFC 7231, 6.5.9
	StatusLengthRequired        uint16 = 411 // RFC 7231, 6.5.10
	StatusPreconditionFailed    uint16 = 412 // RFC 7232, 4.2
	StatusRequestEntityTooLarge uint16 = 413 // RFC 7231, 6.5.11
	StatusRequestURITooLong     uint16 = 414 // RFC 7231, 6.5.12
	StatusUnsupportedMediaType  uint16 = 415 // RFC 7231, 6.5.13

	StatusInternalServerError     uint16 = 500 // RFC 7231, 6.6.1
	StatusNotImplemented          uint16 = 501 // RFC 7231, 6.6.2
	StatusBadGateway              uint16 = 502 // RFC 7231, 6.6.3
	StatusServiceUnavailable      uint16 = 503 // RFC 7231, 6.6.4
	StatusGatewayTimeout          uint16 = 504 // RFC 7231, 6.6.5
	StatusHTTPVersionNotSupported uint16 = 505 // RFC 7231, 6.6.6
)

// statusMessages is indexed by status code. Codes without an entry are not
// part of the catalog and are never written to the wire.
var statusMessages = []string{
	StatusContinue:           "HTTP CONTINUE",
	StatusSwitchingProtocols: "SWITCHING PROTOCOLS",

	StatusOK:                   "OK",
	StatusCreated:              "CREATED",
	StatusAccepted:             "ACCEPTED",
	StatusNonAuthoritativeInfo: "NON AUTHORITATIVE INFORMATION",
	StatusNoContent:            "NO CONTENT",
	StatusResetContent:         "RESET CONTENT",
	StatusPartialContent:       "PARTIAL CONTENT",

	StatusMultipleChoices:  "MULTIPLE CHOICES",
	StatusMovedPermanently: "MOVED PERMANENTLY",
	StatusMovedTemporarily: "MOVED TEMPORARILY",
	StatusSeeOther:         "SEE OTHER",
	StatusNotModified:      "NOT MODIFIED",
	StatusUseProxy:         "USE PROXY",

	StatusBadRequest:            "BAD REQUEST",
	StatusUnauthorized:          "UNAUTHORIZED",
	StatusPaymentRequired:       "PAYMENT REQUIRED",
	StatusForbidden:             "FORBIDDEN",
	StatusNotFound:              "NOT FOUND",
	StatusMethodNotAllowed:      "METHOD NOT ALLOWED",
	StatusNotAcceptable:         "NOT ACCEPTABLE",
	StatusProxyAuthRequired:     "PROXY AUTHENTICATION REQUIRED",
	StatusRequestTimeout:        "REQUEST TIME OUT",
	StatusConflict:              "CONFLICT",
	StatusGone:                  "GONE",
	StatusLengthRequired:        "LENGTH REQUIRED",
	StatusPreconditionFailed:    "PRECONDITION FAILED",
	StatusRequestEntityTooLarge: "REQUEST ENTITY TOO LARGE",
	StatusRequestURITooLong:     "REQUEST URI TOO LARGE",
	StatusUnsupportedMediaType:  "UNSUPPORTED MEDIA TYPE",

	StatusInternalServerError:     "INTERNAL SERVER ERROR",
	StatusNotImplemented:          "NOT IMPLEMENTED",
	StatusBadGateway:              "BAD GATEWAY",
	StatusServiceUnavailable:      "SERVICE UNAVAILABLE",
	StatusGatewayTimeout:          "GATEWAY TIME OUT",
	StatusHTTPVersionNotSupported: "HTTP VERSION NOT SUPPORTED",
}

// StatusText returns the reason phrase for code and whether code is in the catalog.
func StatusText(code uint16) (string, bool) {
	if int(code) >= len(statusMessages) {
		return "", false
	}

	text := statusMessages[code]
	return text, text != ""
}
