// Package http executes declared API endpoints against the provider's REST surface.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/now-client/internal/constants"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// Static errors for err113 compliance.
var (
	ErrInvalidBaseURL   = errors.New("invalid base URL")
	ErrInvalidPathParam = errors.New("invalid path parameter")
	ErrMissingPathParam = errors.New("missing path parameter")
	ErrNilCall          = errors.New("call is required")
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Endpoint is an HTTP method and a path template relative to the base URL.
// Placeholders are written as {name}.
type Endpoint struct {
	Method string
	Path   string
	// Body marks endpoints that always send a JSON body. A nil Call.Body, including
	// a typed nil map or pointer, is then sent as {}.
	Body bool
}

// Call is a single execution of an endpoint.
type Call struct {
	Endpoint   Endpoint
	PathParams map[string]string
	// Body is JSON-encoded when non-nil.
	Body interface{}
	// Stream leaves the body of a successful response unread in Response.Stream.
	Stream bool
}

// Response is the raw outcome of a call.
type Response struct {
	StatusCode int
	// Status is the reason phrase, e.g. "Not Found".
	Status string
	Header http.Header
	Body   []byte
	// Stream is set instead of Body for successful streaming calls. The caller closes it.
	Stream io.ReadCloser
	// Duration is the time spent on the round trip.
	Duration time.Duration
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= constants.HTTPStatusSuccessMin && r.StatusCode <= constants.HTTPStatusSuccessMax
}

// ResponseInterceptor observes every completed or failed round trip. resp is nil
// when err is set.
type ResponseInterceptor func(ctx context.Context, req Request, resp *Response, err error)

// Client executes calls. It is configured once and is safe for concurrent use.
type Client struct {
	baseURL      *url.URL
	httpClient   *retryablehttp.Client
	decorators   *DecoratorChain
	interceptors []ResponseInterceptor
	logger       now.Logger
	debug        bool
	userAgent    string
	timeout      time.Duration
	semaphore    chan struct{}
	metricsErr   error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled client requests are sent through.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of the underlying client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger now.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithDecorators appends request decorators, applied in the given order.
func WithDecorators(decorators ...RequestDecorator) Option {
	return func(c *Client) {
		for _, decorator := range decorators {
			c.decorators.Add(decorator)
		}
	}
}

// WithResponseInterceptor adds a response interceptor.
func WithResponseInterceptor(interceptor ResponseInterceptor) Option {
	return func(c *Client) {
		if interceptor != nil {
			c.interceptors = append(c.interceptors, interceptor)
		}
	}
}

// WithMaxConcurrency bounds the number of callback calls running at once.
// A value below one selects constants.DefaultConcurrencyLimit.
func WithMaxConcurrency(limit int) Option {
	return func(c *Client) {
		if limit < 1 {
			limit = constants.DefaultConcurrencyLimit
		}

		c.semaphore = make(chan struct{}, limit)
	}
}

// NewClient creates a client sending requests under baseURL. Requests are sent
// exactly once: retries are disabled.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = nil
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:    parsed,
		httpClient: retryClient,
		decorators: NewDecoratorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	// A caller-supplied client keeps its own timeout unless one is set explicitly.
	if retryClient.HTTPClient == nil {
		retryClient.HTTPClient = cleanhttp.DefaultPooledClient()
		retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	}

	if client.timeout > 0 {
		retryClient.HTTPClient.Timeout = client.timeout
	}

	if client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}

		if client.debug {
			client.interceptors = append([]ResponseInterceptor{LoggingInterceptor(client.logger)}, client.interceptors...)
		}
	}

	if client.metricsErr != nil {
		return nil, client.metricsErr
	}

	return client, nil
}

// BaseURL returns the root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do executes call once and returns the raw response. Non-2xx responses are not
// errors at this level; err is only set when no response could be obtained.
func (c *Client) Do(ctx context.Context, call *Call) (*Response, error) {
	if call == nil {
		return nil, ErrNilCall
	}

	req, err := c.newRequest(call)
	if err != nil {
		return nil, err
	}

	req = c.decorators.Apply(req)

	resp, err := c.send(ctx, req, call.Stream)
	c.observe(ctx, req, resp, err)

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Go runs fn on its own goroutine, waiting for a concurrency slot when a limit is set.
// It never blocks the caller.
func (c *Client) Go(fn func()) {
	go func() {
		if c.semaphore != nil {
			c.semaphore <- struct{}{}

			defer func() { <-c.semaphore }()
		}

		fn()
	}()
}

func (c *Client) newRequest(call *Call) (Request, error) {
	path, err := expandPath(call.Endpoint.Path, call.PathParams)
	if err != nil {
		return Request{}, err
	}

	target, err := c.baseURL.Parse("./" + path)
	if err != nil {
		return Request{}, fmt.Errorf("building URL for %s: %w", call.Endpoint.Path, err)
	}

	req := Request{
		Method: call.Endpoint.Method,
		URL:    target,
		Header: make(http.Header),
		Route:  call.Endpoint.Path,
	}

	if c.userAgent != "" {
		req.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	payload := call.Body
	if isNil(payload) {
		payload = nil

		if call.Endpoint.Body {
			payload = struct{}{}
		}
	}

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return Request{}, fmt.Errorf("encoding request body: %w", err)
		}

		req.Body = body
	}

	return req, nil
}

func (c *Client) send(ctx context.Context, req Request, stream bool) (*Response, error) {
	var body interface{}
	if len(req.Body) > 0 {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Header {
		httpReq.Header[key] = values
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil && httpResp.Body != nil {
			_ = httpResp.Body.Close()
		}

		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Route, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     reasonPhrase(httpResp),
		Header:     httpResp.Header,
	}

	if stream && resp.IsSuccess() {
		resp.Stream = httpResp.Body
		resp.Duration = time.Since(start)

		return resp, nil
	}

	defer func() { _ = httpResp.Body.Close() }()

	resp.Body, err = io.ReadAll(httpResp.Body)
	resp.Duration = time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp, nil
}

func (c *Client) observe(ctx context.Context, req Request, resp *Response, err error) {
	for _, interceptor := range c.interceptors {
		interceptor(ctx, req, resp, err)
	}
}

// expandPath substitutes every {name} placeholder with its path-escaped value.
// The dot segments "." and ".." are rejected since resolution would drop them.
func expandPath(template string, params map[string]string) (string, error) {
	var missing, invalid []string

	path := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]

		value, ok := params[name]
		if !ok {
			missing = append(missing, name)

			return match
		}

		if value == "." || value == ".." {
			invalid = append(invalid, fmt.Sprintf("%s=%q", name, value))

			return match
		}

		return url.PathEscape(value)
	})

	if len(invalid) > 0 {
		return "", fmt.Errorf("%w: %s in %s", ErrInvalidPathParam, strings.Join(invalid, ", "), template)
	}

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s in %s", ErrMissingPathParam, strings.Join(missing, ", "), template)
	}

	return path, nil
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}

	switch rv := reflect.ValueOf(value); rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// reasonPhrase strips the numeric code from resp.Status.
func reasonPhrase(resp *http.Response) string {
	status := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if status == "" {
		return http.StatusText(resp.StatusCode)
	}

	return status
}

// noRetry reports every outcome as final.
func noRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// LoggingInterceptor logs each request and its response. Headers are never logged.
func LoggingInterceptor(logger now.Logger) ResponseInterceptor {
	return func(ctx context.Context, req Request, resp *Response, err error) {
		logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    redact(req.URL),
		})

		if err != nil {
			logger.Error("HTTP Request Failed", map[string]interface{}{
				"method": req.Method,
				"route":  req.Route,
				"error":  err.Error(),
			})

			return
		}

		logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"route":       req.Route,
			"status_code": resp.StatusCode,
			"duration":    resp.Duration.String(),
		})
	}
}

func redact(u *url.URL) string {
	if u == nil {
		return ""
	}

	return u.Redacted()
}

// leveledLogger adapts now.Logger to retryablehttp.LeveledLogger. Per-request debug
// lines are dropped since LoggingInterceptor covers them.
type leveledLogger struct {
	logger now.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
