package handlers

import (
	"bufio"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/freekieb7/calcd/http"
	"github.com/freekieb7/calcd/test"
)

var testNow = time.Date(2021, time.September, 23, 15, 40, 29, 0, time.FixedZone("EDT", -4*60*60))

func newRouter(legacy bool) http.Router {
	router := http.NewRouter(http.MethodGet, http.MethodHead)
	Register(&router, Options{
		Now:             func() time.Time { return testNow },
		LegacyRedirects: legacy,
	})

	return router
}

func serve(t *testing.T, router http.Router, raw string) http.Response {
	t.Helper()

	br := bufio.NewReader(strings.NewReader(raw))
	req, err := http.ReadRequest(br)
	test.NoError(t, err)

	ctx := http.NewRequestCtx(context.Background(), "test", nil)
	ctx.Request = req
	router.Serve(ctx, br)
	ctx.Response.Finalize()

	return ctx.Response
}

func TestRoot(t *testing.T) {
	res := serve(t, newRouter(true), "GET / HTTP/1.1\r\n\r\n")

	test.Equal(t, http.StatusOK, res.Status)
	test.Equal(t, http.ContentTypeText, res.ContentType)
	test.Equal(t, "Hello! Welcome to this Server.", res.Body)
}

func TestTime(t *testing.T) {
	res := serve(t, newRouter(true), "GET /gettime HTTP/1.1\r\n\r\n")

	test.Equal(t, http.StatusOK, res.Status)
	test.Equal(t, "Thu Sep 23 15:40:29 EDT 2021", res.Body)
}

func TestQueryEcho(t *testing.T) {
	tests := []struct {
		target string
		body   string
	}{
		{"/qs?key1=value1&key2=value%20two", `{"key1":"value1","key2":"value two"}`},
		{"/qs?b=2&a=1", `{"a":"1","b":"2"}`},
		{"/qs?a=1&a=2", `{"a":"2"}`},
		{"/qs?flag&a=1", `{"a":"1"}`},
		{"/qs?", `{}`},
		{"/qs", `{}`},
		{"/qs?q=%22quoted%22", `{"q":"\"quoted\""}`},
	}

	router := newRouter(true)

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			res := serve(t, router, "GET "+tt.target+" HTTP/1.1\r\n\r\n")

			test.Equal(t, http.StatusOK, res.Status)
			test.Equal(t, http.ContentTypeJSON, res.ContentType)
			test.Equal(t, tt.body, res.Body)
		})
	}
}

func TestHeaderEcho(t *testing.T) {
	raw := "GET /headers HTTP/1.1\r\nHost: localhost:8080\r\nUser-Agent: curl/8.0\r\nAccept: */*\r\n\r\n"

	res := serve(t, newRouter(true), raw)

	test.Equal(t, http.StatusOK, res.Status)
	test.Equal(t, http.ContentTypeJSON, res.ContentType)
	test.Equal(t, `{"Host":"localhost:8080","User-Agent":"curl/8.0","Accept":"*/*"}`, res.Body)
}

func TestHeaderEchoWithoutHeaders(t *testing.T) {
	res := serve(t, newRouter(true), "GET /headers HTTP/1.1\r\n\r\n")

	test.Equal(t, http.StatusOK, res.Status)
	test.Equal(t, `{}`, res.Body)
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status uint16
		body   string
	}{
		{"add", "/calc?op=add&a=3&b=4", http.StatusOK, "7.0"},
		{"subtract", "/calc?op=subtract&a=3&b=4.5", http.StatusOK, "-1.5"},
		{"multiply", "/calc?op=multiply&a=2.5&b=4", http.StatusOK, "10.0"},
		{"divide", "/calc?op=divide&a=1&b=4", http.StatusOK, "0.25"},
		{"divide by zero", "/calc?op=divide&a=1&b=0", http.StatusOK, "Infinity"},
		{"zero by zero", "/calc?op=divide&a=0&b=0", http.StatusOK, "NaN"},
		{"power", "/calc?op=power&a=2&b=10", http.StatusOK, "1024.0"},
		{"exponent literal", "/calc?op=multiply&a=1E3&b=2", http.StatusOK, "2000.0"},
		{"signed operands", "/calc?op=add&a=-1&b=%2B2", http.StatusOK, "1.0"},
		{"large result", "/calc?op=power&a=10&b=10", http.StatusOK, "1.0E10"},
		{"missing b", "/calc?op=add&a=1", http.StatusBadRequest, "BAD REQUEST"},
		{"missing op", "/calc?a=1&b=2", http.StatusBadRequest, "BAD REQUEST"},
		{"unknown op", "/calc?op=modulo&a=1&b=2", http.StatusBadRequest, "BAD REQUEST"},
		{"non numeric", "/calc?op=add&a=one&b=2", http.StatusBadRequest, "BAD REQUEST"},
		{"lowercase exponent", "/calc?op=add&a=1e3&b=2", http.StatusBadRequest, "BAD REQUEST"},
		{"trailing dot", "/calc?op=add&a=1.&b=2", http.StatusBadRequest, "BAD REQUEST"},
		{"no query", "/calc", http.StatusBadRequest, "BAD REQUEST"},
	}

	router := newRouter(true)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := serve(t, router, "GET "+tt.target+" HTTP/1.1\r\n\r\n")

			test.Equal(t, tt.status, res.Status)
			test.Equal(t, tt.body, res.Body)
		})
	}
}

func TestLegacyRedirects(t *testing.T) {
	for _, op := range Operations {
		t.Run(op, func(t *testing.T) {
			res := serve(t, newRouter(true), "GET /"+op+"?a=1&b=2 HTTP/1.1\r\n\r\n")

			test.Equal(t, http.StatusMovedPermanently, res.Status)
			test.Equal(t, 1, len(res.Headers))
			test.Equal(t, "Location: /calc?op="+op+"&a=1&b=2", res.Headers[0])
		})
	}

	res := serve(t, newRouter(false), "GET /add?a=1&b=2 HTTP/1.1\r\n\r\n")
	test.Equal(t, http.StatusNotFound, res.Status)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		op   string
		a, b float64
		want float64
	}{
		{"add", 3, 4, 7},
		{"subtract", 3, 4, -1},
		{"multiply", 3, 4, 12},
		{"divide", 3, 4, 0.75},
		{"power", 3, 4, 81},
		{"divide", -1, 0, math.Inf(-1)},
	}

	for _, tt := range tests {
		got, err := Calculate(tt.op, tt.a, tt.b)
		test.NoError(t, err)
		test.Equal(t, tt.want, got)
	}

	if _, err := Calculate("modulo", 1, 2); err == nil {
		t.Error("expected an error for an unknown operation")
	}
}

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{7, "7.0"},
		{1024, "1024.0"},
		{-1.5, "-1.5"},
		{0.25, "0.25"},
		{0.001, "0.001"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{9999999, "9999999.0"},
		{1e7, "1.0E7"},
		{1e10, "1.0E10"},
		{1.5e-4, "1.5E-4"},
		{-2.5e21, "-2.5E21"},
		{123456.789, "123456.789"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			test.Equal(t, tt.want, FormatDouble(tt.in))
		})
	}
}

func BenchmarkCalc(b *testing.B) {
	router := newRouter(true)
	raw := "GET /calc?op=power&a=2&b=10 HTTP/1.1\r\n\r\n"

	for b.Loop() {
		br := bufio.NewReader(strings.NewReader(raw))
		req, err := http.ReadRequest(br)
		if err != nil {
			b.Fatal(err)
		}

		ctx := http.NewRequestCtx(context.Background(), "bench", nil)
		ctx.Request = req
		router.Serve(ctx, br)
	}
}
