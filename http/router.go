package http

import (
	"bufio"
	"slices"
	"strings"
)

// Router holds the route table. It is filled at startup and only read once
// the server is serving.
type Router struct {
	Methods       []string
	StrictHeaders bool
	Routes        []Route
	Redirects     []Redirect
	Middleware    []Middleware
}

// NewRouter returns a router advertising methods, GET when none are given.
func NewRouter(methods ...string) Router {
	if len(methods) == 0 {
		methods = []string{MethodGet}
	}

	return Router{
		Methods: methods,
		Routes:  make([]Route, 0),
	}
}

func (router *Router) GET(path string, handler Handler, middleware ...Middleware) {
	router.Handle(Route{Method: MethodGet, Path: path, Handler: handler}, middleware...)
}

func (router *Router) Prefix(method, path string, handler Handler, middleware ...Middleware) {
	router.Handle(Route{Method: method, Path: path, Match: MatchPrefix, Handler: handler}, middleware...)
}

func (router *Router) Handle(route Route, middleware ...Middleware) {
	for _, middleware := range middleware {
		route.Handler = middleware(route.Handler)
	}

	router.Routes = append(router.Routes, route)
}

func (router *Router) Redirect(path, location, param string) {
	router.Redirects = append(router.Redirects, Redirect{
		Path:     path,
		Location: location,
		Param:    param,
	})
}

func (router *Router) Allows(method string) bool {
	return slices.Contains(router.Methods, method)
}

// Lookup finds the route for method and path. Exact routes win over prefix
// routes, and the longest prefix wins among prefix routes.
func (router *Router) Lookup(method, path string) (Route, bool) {
	for _, route := range router.Routes {
		if route.Match == MatchExact && route.Matches(path) && route.Serves(method) {
			return route, true
		}
	}

	var best Route
	found := false
	for _, route := range router.Routes {
		if route.Match != MatchPrefix || !route.Serves(method) || !route.Matches(path) {
			continue
		}
		if !found || len(route.Path) > len(best.Path) {
			best, found = route, true
		}
	}

	return best, found
}

// Serve answers ctx.Request. The checks run in order and the first failing
// one decides the status: method (501), version (505), legacy redirect (301),
// route (404), headers and query (400). br supplies the header lines for
// routes that read them.
func (router *Router) Serve(ctx *RequestCtx, br *bufio.Reader) {
	req := &ctx.Request

	if !router.Allows(req.Method) {
		ctx.Response.WithStatus(StatusNotImplemented)
		return
	}

	if req.Version != ProtocolHTTP11 {
		ctx.Response.WithStatus(StatusHTTPVersionNotSupported)
		return
	}

	if req.HasQuery {
		for _, redirect := range router.Redirects {
			if redirect.Path == req.Path {
				ctx.Response.Redirect(redirect.Target(req.RawQuery))
				return
			}
		}
	}

	route, found := router.Lookup(req.Method, req.Path)
	if !found {
		NotFoundHandler(ctx)
		return
	}

	if route.ReadsHeaders {
		if br == nil {
			br = bufio.NewReader(strings.NewReader(""))
		}
		if err := req.ReadHeaders(br, router.StrictHeaders); err != nil {
			ctx.Logger.Warn("rejecting request headers", "error", err)
			ctx.Response.WithStatus(StatusBadRequest)
			return
		}
	}

	query, err := ParseQuery(req.RawQuery)
	if err != nil {
		ctx.Logger.Warn("rejecting query string", "error", err)
		ctx.Response.WithStatus(StatusBadRequest)
		return
	}
	req.Query = query

	handler := route.Handler
	for _, middleware := range router.Middleware {
		handler = middleware(handler)
	}
	RecoverMiddleware()(handler)(ctx)

	if err := ctx.Err(); err != nil {
		ctx.Logger.Error("handler failed", "path", req.Path, "error", err)
		ctx.Response = NewResponse()
		ctx.Response.WithStatus(StatusInternalServerError)
	}
}
