package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freekieb7/calcd/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/freekieb7/calcd/http"

	maxAcceptDelay = time.Second
	maxLingerBytes = 256 * 1024
)

var ErrServerClosed = errors.New("http: server closed")

type Server struct {
	Name   string
	Router Router

	logger        *slog.Logger
	tracer        trace.Tracer
	now           func() time.Time
	lingerTimeout time.Duration

	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
	workers  sync.WaitGroup
}

type Option func(*options)

type options struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	now            func() time.Time
	lingerTimeout  time.Duration
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = provider }
}

func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = provider }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLingerTimeout bounds how long a closing TCP connection drains unread
// input. Zero closes immediately.
func WithLingerTimeout(timeout time.Duration) Option {
	return func(o *options) { o.lingerTimeout = timeout }
}

// NewServer returns a server answering with router. The server name is sent
// in the Server header of every response.
func NewServer(name string, router Router, opts ...Option) (*Server, error) {
	o := options{
		logger:         slog.New(slog.DiscardHandler),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
		now:            time.Now,
		lingerTimeout:  DefaultLingerTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	meter := o.meterProvider.Meter(instrumentationName)

	requests, err := meter.Int64Counter("calcd.server.requests",
		metric.WithDescription("Number of answered requests by method and status code"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, fmt.Errorf("http: create request counter: %w", err)
	}

	duration, err := meter.Float64Histogram("calcd.server.duration",
		metric.WithDescription("Time from accepting a connection to closing it"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("http: create duration histogram: %w", err)
	}

	active, err := meter.Int64UpDownCounter("calcd.server.active_connections",
		metric.WithDescription("Number of connections currently being served"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("http: create active connection counter: %w", err)
	}

	return &Server{
		Name:          name,
		Router:        router,
		logger:        o.logger,
		tracer:        o.tracerProvider.Tracer(instrumentationName),
		now:           o.now,
		lingerTimeout: o.lingerTimeout,
		requests:      requests,
		duration:      duration,
		active:        active,
	}, nil
}

func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http: listen on %s: %w", addr, err)
	}

	return s.Serve(listener)
}

// Serve accepts connections on listener and serves each one on its own
// goroutine. It returns ErrServerClosed after Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		listener.Close()
		return ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", listener.Addr().String())

	var delay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			delay = nextAcceptDelay(delay)
			s.logger.Error("failed to accept connection", "error", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		s.mu.Lock()
		if s.closed.Load() {
			s.mu.Unlock()
			conn.Close()
			return ErrServerClosed
		}
		s.workers.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.workers.Done()
			s.ServeConn(conn)
		}()
	}
}

// ServeConn answers the single request on conn and closes it.
func (s *Server) ServeConn(conn net.Conn) {
	start := s.now()
	connID := uuid.NewV4().String()
	remote := remoteAddr(conn)
	logger := s.logger.With("conn", connID, "remote", remote)

	// Closing comes last so the span and instruments are done once the
	// client sees the end of the response.
	logger.Debug("connected")
	defer func() {
		s.closeConn(conn)
		logger.Debug("disconnected")
	}()

	ctx, span := s.tracer.Start(context.Background(), "calcd.connection",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(semconv.ClientAddress(remote)))
	defer span.End()

	s.active.Add(ctx, 1)
	defer s.active.Add(ctx, -1)

	br := bufio.NewReaderSize(conn, DefaultReadBufferSize)
	bw := bufio.NewWriterSize(conn, DefaultWriteBufferSize)

	reqCtx := NewRequestCtx(ctx, connID, logger)

	req, err := ReadRequest(br)
	reqCtx.Request = req
	switch {
	case errors.Is(err, io.EOF):
		logger.Debug("connection closed before a request line arrived")
		return
	case err != nil:
		logger.Warn("rejecting request line", "error", err)
		reqCtx.Response.WithStatus(StatusBadRequest)
	default:
		s.Router.Serve(reqCtx, br)
	}

	res := &reqCtx.Response
	requested := res.Status
	if res.Finalize() {
		logger.Error("status code outside the catalog", "status", int(requested))
	}

	writeErr := res.Write(bw, WriteOptions{
		Server:   s.Name,
		Date:     s.now(),
		OmitBody: req.Method == MethodHead,
	})
	if writeErr != nil {
		logger.Warn("failed to write response", "error", writeErr)
		span.RecordError(writeErr)
	}

	attrs := []attribute.KeyValue{semconv.HTTPResponseStatusCode(int(res.Status))}
	if req.Method != "" {
		attrs = append(attrs, semconv.HTTPRequestMethodKey.String(req.Method))
	}
	span.SetAttributes(append(attrs, semconv.URLPath(req.Path))...)
	if res.Status >= StatusInternalServerError {
		reason, _ := StatusText(res.Status)
		span.SetStatus(codes.Error, reason)
	}

	s.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	s.duration.Record(ctx, s.now().Sub(start).Seconds(), metric.WithAttributes(attrs...))

	logger.Info("request served", "status", int(res.Status), "request", req.Line)
}

// Shutdown stops accepting connections and waits for in-flight connections
// to finish, or for ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed.Store(true)
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	if errors.Is(err, net.ErrClosed) {
		err = nil
	}

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the address the server is listening on, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// closeConn half-closes TCP connections and drains what the client still
// sends, so a client that is still writing headers reads the response
// instead of a reset.
func (s *Server) closeConn(conn net.Conn) {
	if tcpConn, ok := conn.(*net.TCPConn); ok && s.lingerTimeout > 0 {
		tcpConn.CloseWrite()
		tcpConn.SetReadDeadline(time.Now().Add(s.lingerTimeout))
		io.Copy(io.Discard, io.LimitReader(tcpConn, maxLingerBytes))
	}

	conn.Close()
}

func nextAcceptDelay(delay time.Duration) time.Duration {
	if delay == 0 {
		return 5 * time.Millisecond
	}
	return min(delay*2, maxAcceptDelay)
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
