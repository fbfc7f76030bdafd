package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/internal/apierrors"
	"github.com/jrsteele09/go-microblog-client/token"
)

const (
	contentTypeJSON = "application/json"

	// DefaultRequestTimeout bounds every call wall-clock, matching the
	// 30s the web client configures.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of additional attempts for
	// transient failures.
	DefaultMaxRetries = 2
)

// transientStatuses are retried automatically, for all methods alike.
var transientStatuses = map[int]bool{
	http.StatusRequestTimeout:        true,
	http.StatusRequestEntityTooLarge: true,
	http.StatusTooManyRequests:       true,
	http.StatusInternalServerError:   true,
	http.StatusBadGateway:            true,
	http.StatusServiceUnavailable:    true,
	http.StatusGatewayTimeout:        true,
}

// Request describes one outgoing call as the response hooks see it,
// with the body buffered so it can be replayed.
type Request struct {
	Method      string
	Path        string
	Body        []byte
	ContentType string
}

// RequestHook mutates an outgoing request before it is sent.
type RequestHook func(req *http.Request) error

// ResponseHook inspects a received response and may replace it, for
// example by re-issuing the original request after recovery.
type ResponseHook func(ctx context.Context, req Request, res *http.Response) (*http.Response, error)

// Client is the HTTP pipeline every API call goes through. It attaches
// the bearer credential, recovers from 401s with a one-shot refresh and
// retry, and retries transient failures up to a fixed limit.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        *token.Manager
	timeout       time.Duration
	maxRetries    int
	logger        zerolog.Logger
	onAuthFailure func()
	requestHooks  []RequestHook
	responseHooks []ResponseHook
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request wall-clock timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxRetries sets the transient-failure retry limit.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithLogger sets the pipeline logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithOnAuthFailure sets the callback invoked when token refresh fails
// and the stored session is cleared.
func WithOnAuthFailure(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// WithRequestHook appends a request hook after the built-in ones.
func WithRequestHook(h RequestHook) Option {
	return func(c *Client) { c.requestHooks = append(c.requestHooks, h) }
}

// WithResponseHook appends a response hook after the built-in ones.
func WithResponseHook(h ResponseHook) Option {
	return func(c *Client) { c.responseHooks = append(c.responseHooks, h) }
}

// New creates a pipeline client for the given API base URL.
func New(baseURL string, tokens *token.Manager, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[transport.New] baseURL is required")
	}
	if tokens == nil {
		return nil, errors.New("[transport.New] token manager is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		timeout:    DefaultRequestTimeout,
		maxRetries: DefaultMaxRetries,
		logger:     log.Logger,
	}

	for _, opt := range options {
		opt(c)
	}

	c.requestHooks = append([]RequestHook{c.attachBearer}, c.requestHooks...)
	c.responseHooks = append([]ResponseHook{c.recoverUnauthorized}, c.responseHooks...)

	return c, nil
}

// OnAuthFailure registers the auth-failure callback after construction,
// for callers that are built on top of the client itself.
func (c *Client) OnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// Do sends one request through the pipeline: transient retry first,
// then the response hooks (401 recovery included). The returned
// response body is fully buffered.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	var res *http.Response
	var err error

	for attempt := 0; ; attempt++ {
		res, err = c.send(ctx, req)
		if err != nil {
			if errors.Is(err, apierrors.ErrTimeout) || attempt >= c.maxRetries {
				return nil, err
			}
			c.logger.Debug().Err(err).Str("path", req.Path).Int("attempt", attempt+1).Msg("retrying after transport error")
			continue
		}
		if transientStatuses[res.StatusCode] && attempt < c.maxRetries {
			c.logger.Debug().Int("status", res.StatusCode).Str("path", req.Path).Int("attempt", attempt+1).Msg("retrying transient status")
			continue
		}
		break
	}

	for _, hook := range c.responseHooks {
		res, err = hook(ctx, req, res)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// DoJSON marshals body (when non-nil), sends the request, and decodes a
// successful response into out. Non-success statuses come back as
// *api.Error.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.DoJSON] marshal body")
		}
		payload = data
	}

	res, err := c.Do(ctx, Request{Method: method, Path: path, Body: payload, ContentType: contentTypeJSON})
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	return decodeResponse(res, out)
}

// DoMultipart sends a multipart form body, used for micropost image
// uploads, and decodes the response like DoJSON.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return errors.Wrap(err, "[Client.DoMultipart] write field")
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return errors.Wrap(err, "[Client.DoMultipart] create form file")
		}
		if _, err := io.Copy(part, file); err != nil {
			return errors.Wrap(err, "[Client.DoMultipart] copy file")
		}
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "[Client.DoMultipart] close writer")
	}

	res, err := c.Do(ctx, Request{Method: method, Path: path, Body: buf.Bytes(), ContentType: w.FormDataContentType()})
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	return decodeResponse(res, out)
}

// send performs a single attempt with no retry or recovery. The
// response body is buffered so the caller can read it after the request
// context is released.
func (c *Client) send(ctx context.Context, req Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apierrors.Wrapf(apierrors.ErrTimeout, "[Client.send] %s %s", req.Method, req.Path)
		}
		return nil, errors.Wrapf(err, "[Client.send] %s %s", req.Method, req.Path)
	}

	data, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.send] read body %s %s", req.Method, req.Path)
	}
	res.Body = io.NopCloser(bytes.NewReader(data))
	return res, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+"/"+req.Path, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.newHTTPRequest] build request")
	}

	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("x-lang", "EN")
	if len(req.Body) > 0 && req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	for _, hook := range c.requestHooks {
		if err := hook(httpReq); err != nil {
			return nil, errors.Wrap(err, "[Client.newHTTPRequest] request hook")
		}
	}
	return httpReq, nil
}

func decodeResponse(res *http.Response, out any) error {
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "[decodeResponse] read body")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return api.ParseError(res.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierrors.Wrapf(apierrors.ErrMalformedResponse, "[decodeResponse] %v", err)
	}
	return nil
}
