// Package handlers holds the endpoints served by calcd.
package handlers

import (
	"time"

	"github.com/freekieb7/calcd/http"
	"github.com/freekieb7/calcd/json"
)

const (
	Greeting = "Hello! Welcome to this Server."

	// TimeLayout renders times like "Thu Sep 23 15:40:29 EDT 2021".
	TimeLayout = "Mon Jan 02 15:04:05 MST 2006"
)

type Options struct {
	Now             func() time.Time
	LegacyRedirects bool
}

// Register adds every endpoint to router.
func Register(router *http.Router, opts Options) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	router.GET("/", Root)
	router.GET("/gettime", Time(opts.Now))
	router.GET("/qs", QueryEcho)
	router.Handle(http.Route{
		Method:       http.MethodGet,
		Path:         "/headers",
		Handler:      HeaderEcho,
		ReadsHeaders: true,
	})
	router.GET("/calc", Calc)

	if opts.LegacyRedirects {
		for _, op := range Operations {
			router.Redirect("/"+op, "/calc", "op")
		}
	}
}

func Root(ctx *http.RequestCtx) {
	ctx.Response.WithText(Greeting)
}

func Time(now func() time.Time) http.Handler {
	return func(ctx *http.RequestCtx) {
		ctx.Response.WithText(now().Format(TimeLayout))
	}
}

func QueryEcho(ctx *http.RequestCtx) {
	ctx.Response.WithJSON(json.MarshalMap(ctx.Request.Query))
}

func HeaderEcho(ctx *http.RequestCtx) {
	members := make([]json.Member, 0, ctx.Request.Headers.Len())
	for _, header := range ctx.Request.Headers {
		members = append(members, json.Member{Name: header.Name, Value: header.Value})
	}

	ctx.Response.WithJSON(json.MarshalObject(members))
}
