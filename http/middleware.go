package http

import (
	"fmt"
	"runtime/debug"
)

// RecoverMiddleware turns a handler panic into a failed request.
func RecoverMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx *RequestCtx) {
			defer func() {
				if recovered := recover(); recovered != nil {
					ctx.Logger.Debug("handler panicked", "stack", string(debug.Stack()))
					ctx.Fail(fmt.Errorf("http: handler panic: %v", recovered))
				}
			}()

			next(ctx)
		}
	}
}
