package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aulaschool/aula/pkg/domain"
)

// maxBodySize caps how much of a response body is read, success or failure.
const maxBodySize = 10 << 20 // 10 MB

// Client is the aula API gateway client. It is the only network boundary
// between the front-end and the backend.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
	logger     *slog.Logger
	roles      domain.RoleSet
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger enables one debug line per request.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRoles sets the role IDs used by ListTeachers and ListStudents.
func WithRoles(r domain.RoleSet) Option {
	return func(c *Client) {
		c.roles = r
	}
}

// New creates a new API client bound to session. A nil session is replaced
// with an empty one, so requests go out unauthenticated.
//
// The default http.Client has no timeout: a hung request is bounded only by
// the transport and by ctx.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession("")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		roles:      domain.DefaultRoles,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the credential slot the client reads on every request.
func (c *Client) Session() *Session {
	return c.session
}

// Request describes one call to the backend.
type Request struct {
	Method string // defaults to GET
	Path   string // relative, e.g. "api/users"
	Query  Params
	Body   any
	Header http.Header
}

// Do performs req against the backend and normalizes the response.
// Any non-2xx status, or a transport failure, is returned as *RequestError.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return Result{}, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.url(req.Path, req.Query), reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if tok := c.session.Token(); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", req.Path, "error", err)
		return Result{}, &RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.logger.Debug("request", "method", method, "path", req.Path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if readErr != nil {
			return Result{}, &RequestError{StatusCode: resp.StatusCode, Message: statusText(resp.StatusCode), Err: readErr}
		}
		return Result{}, &RequestError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}

	if resp.StatusCode == http.StatusNoContent {
		return Result{kind: ResultEmpty}, nil
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Result{}, &RequestError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}
	return parseResult(respBody), nil
}

// url joins the relative path to the base URL with exactly one slash.
func (c *Client) url(path string, q Params) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, q Params, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// doJSON runs a request and decodes a JSON result into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, q Params, body any, out any) error {
	res, err := c.Do(ctx, Request{Method: method, Path: path, Query: q, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return res.Decode(out)
}
