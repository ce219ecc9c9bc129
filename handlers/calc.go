package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/freekieb7/calcd/http"
	"github.com/freekieb7/calcd/validation"
)

var Operations = []string{"add", "subtract", "multiply", "divide", "power"}

var ErrUnknownOperation = errors.New("handlers: unknown operation")

var calcRules = map[string][]string{
	"op": {"required", "in:" + strings.Join(Operations, ",")},
	"a":  {"required", "numeric"},
	"b":  {"required", "numeric"},
}

// Calc answers /calc?op=&a=&b= with the result of the operation. Missing or
// invalid parameters yield 400 without a body.
func Calc(ctx *http.RequestCtx) {
	query := ctx.Request.Query

	if violations := validation.ValidateMap(query, calcRules); !violations.IsEmpty() {
		ctx.Logger.Debug("rejecting calculation", "violations", violations.Error())
		ctx.Response.WithStatus(http.StatusBadRequest)
		return
	}

	a, err := parseNumber(query["a"])
	if err != nil {
		ctx.Response.WithStatus(http.StatusBadRequest)
		return
	}

	b, err := parseNumber(query["b"])
	if err != nil {
		ctx.Response.WithStatus(http.StatusBadRequest)
		return
	}

	result, err := Calculate(query["op"], a, b)
	if err != nil {
		ctx.Fail(err)
		return
	}

	ctx.Response.WithText(FormatDouble(result))
}

// Calculate applies op with IEEE 754 semantics: dividing by zero yields an
// infinity or NaN instead of an error.
func Calculate(op string, a, b float64) (float64, error) {
	switch op {
	case "add":
		return a + b, nil
	case "subtract":
		return a - b, nil
	case "multiply":
		return a * b, nil
	case "divide":
		return a / b, nil
	case "power":
		return math.Pow(a, b), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}

// parseNumber accepts out of range literals as the infinity or zero they
// round to.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// FormatDouble renders the shortest decimal that round-trips f, always with a
// fraction digit and in E notation outside [1e-3, 1e7): "7.0", "1024.0",
// "1.0E10", "1.5E-4", "Infinity", "NaN".
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(f); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}

	sign := ""
	if exponent[0] == '-' {
		sign = "-"
	}

	return mantissa + "E" + sign + strings.TrimLeft(exponent[1:], "0")
}
