package http

import (
	"context"
	"log/slog"
)

// RequestCtx carries one connection's request and response through the
// router and its handler.
type RequestCtx struct {
	ConnID string
	Logger *slog.Logger

	Request  Request
	Response Response

	ctx context.Context
	err error
}

func NewRequestCtx(ctx context.Context, connID string, logger *slog.Logger) *RequestCtx {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &RequestCtx{
		ConnID:   connID,
		Logger:   logger,
		Response: NewResponse(),
		ctx:      ctx,
	}
}

func (reqCtx *RequestCtx) Context() context.Context {
	if reqCtx.ctx == nil {
		return context.Background()
	}
	return reqCtx.ctx
}

// Fail records an internal error. The router answers 500 once the handler
// returns, whatever the handler wrote before or after.
func (reqCtx *RequestCtx) Fail(err error) {
	if err == nil {
		return
	}
	reqCtx.err = err
}

func (reqCtx *RequestCtx) Err() error {
	return reqCtx.err
}
