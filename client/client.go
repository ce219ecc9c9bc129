// Package client talks to a calcd server, either with a raw request line or
// with an instrumented HTTP client.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultTimeout = 10 * time.Second

var ErrEmptyResponse = errors.New("client: server closed the connection without a response")

// SendLine writes line followed by CRLF to addr and returns the first line
// of the reply.
func SendLine(ctx context.Context, addr, line string) (string, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("client: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, line+"\r\n"); err != nil {
		return "", fmt.Errorf("client: send request: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("client: read response: %w", err)
		}
		if reply == "" {
			return "", ErrEmptyResponse
		}
	}

	return strings.TrimRight(reply, "\r\n"), nil
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type Response struct {
	Status int
	Header http.Header
	Body   string
}

// New returns a client for the server at addr ("host:port"). Requests are
// traced through otelhttp and follow redirects.
func New(addr string) *Client {
	return &Client{
		BaseURL: "http://" + addr,
		HTTP: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
	}
}

func (c *Client) Get(ctx context.Context, target string) (Response, error) {
	return c.do(ctx, http.MethodGet, target)
}

func (c *Client) Head(ctx context.Context, target string) (Response, error) {
	return c.do(ctx, http.MethodHead, target)
}

func (c *Client) do(ctx context.Context, method, target string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+target, nil)
	if err != nil {
		return Response{}, fmt.Errorf("client: build request: %w", err)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("client: %s %s: %w", method, target, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("client: read body: %w", err)
	}

	return Response{
		Status: res.StatusCode,
		Header: res.Header,
		Body:   string(body),
	}, nil
}
