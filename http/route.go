package http

import "strings"

type MatchKind uint8

const (
	MatchExact MatchKind = iota
	MatchPrefix
)

type Route struct {
	Method       string
	Path         string
	Match        MatchKind
	Handler      Handler
	ReadsHeaders bool
}

func (route Route) Matches(path string) bool {
	if route.Match == MatchPrefix {
		return strings.HasPrefix(path, route.Path)
	}
	return route.Path == path
}

// Serves reports whether route answers method. GET routes also answer HEAD.
func (route Route) Serves(method string) bool {
	return route.Method == method || (method == MethodHead && route.Method == MethodGet)
}

// Redirect rewrites a legacy endpoint name into a query parameter of a
// canonical location, e.g. "/add?a=1" to "/calc?op=add&a=1".
type Redirect struct {
	Path     string
	Location string
	Param    string
}

func (redirect Redirect) Target(rawQuery string) string {
	name := strings.TrimPrefix(redirect.Path, "/")
	return redirect.Location + "?" + redirect.Param + "=" + name + "&" + rawQuery
}

var NotFoundHandler Handler = func(ctx *RequestCtx) {
	ctx.Response.WithStatus(StatusNotFound)
}
