// Package nowclient provides the main entry point for creating Now API clients
package nowclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/fivetwenty-io/now-client/internal/client"
	"github.com/fivetwenty-io/now-client/internal/constants"
	"github.com/fivetwenty-io/now-client/internal/credentials"
	nowhttp "github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

type options struct {
	baseURL        string
	logger         now.Logger
	debug          bool
	timeout        time.Duration
	userAgent      string
	maxConcurrency int
	registerer     prometheus.Registerer

	// credential discovery
	fs       afero.Fs
	homeDir  func() (string, error)
	property func(string) string
	env      func(string) string
}

// Option configures a client.
type Option func(*options)

// WithBaseURL sends requests to baseURL instead of the public API.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithLogger sets the logger used by the transport.
func WithLogger(logger now.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebug logs every request and response through the logger.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithMaxConcurrency bounds how many callback-form calls run at once.
func WithMaxConcurrency(limit int) Option {
	return func(o *options) {
		o.maxConcurrency = limit
	}
}

// WithMetrics records request counts and latencies in registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

// WithCredentialsFs reads the credentials file from fs.
func WithCredentialsFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithHomeDir sets the directory the credentials file is looked up in.
func WithHomeDir(homeDir func() (string, error)) Option {
	return func(o *options) {
		o.homeDir = homeDir
	}
}

// WithPropertyLookup replaces the process-level property source, viper by default.
func WithPropertyLookup(lookup func(key string) string) Option {
	return func(o *options) {
		o.property = lookup
	}
}

// WithEnvLookup replaces the environment source.
func WithEnvLookup(lookup func(key string) string) Option {
	return func(o *options) {
		o.env = lookup
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		baseURL: constants.DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) resolver() *credentials.Resolver {
	resolver := credentials.NewResolver()
	resolver.Fs = o.fs
	resolver.HomeDir = o.homeDir

	if o.property != nil {
		resolver.Property = o.property
	}

	if o.env != nil {
		resolver.Env = o.env
	}

	return resolver
}

func (o *options) transportOptions() []nowhttp.Option {
	var httpOpts []nowhttp.Option

	if o.logger != nil {
		httpOpts = append(httpOpts, nowhttp.WithLogger(o.logger))
	}

	if o.debug {
		httpOpts = append(httpOpts, nowhttp.WithDebug(true))
	}

	if o.timeout > 0 {
		httpOpts = append(httpOpts, nowhttp.WithTimeout(o.timeout))
	}

	if o.userAgent != "" {
		httpOpts = append(httpOpts, nowhttp.WithUserAgent(o.userAgent))
	}

	if o.maxConcurrency > 0 {
		httpOpts = append(httpOpts, nowhttp.WithMaxConcurrency(o.maxConcurrency))
	}

	if o.registerer != nil {
		httpOpts = append(httpOpts, nowhttp.WithMetrics(o.registerer))
	}

	return httpOpts
}

func build(creds credentials.Credentials, o *options) (now.Client, error) {
	c, err := client.New(creds, o.baseURL, o.transportOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// New creates a client from discovered credentials: ~/.now.json, then the NOW_TOKEN
// and NOW_TEAM properties, then the environment variables of the same names.
func New(opts ...Option) (now.Client, error) {
	o := newOptions(opts)

	creds, err := o.resolver().Resolve()
	if err != nil {
		return nil, err
	}

	return build(creds, o)
}

// NewWithToken creates a client authenticating with token and no team scope.
func NewWithToken(token string, opts ...Option) (now.Client, error) {
	return NewWithTeam(token, "", opts...)
}

// NewWithTeam creates a client authenticating with token and scoped to team.
// A blank team means no team scope.
func NewWithTeam(token, team string, opts ...Option) (now.Client, error) {
	creds, err := credentials.Explicit(token, team)
	if err != nil {
		return nil, err
	}

	return build(creds, newOptions(opts))
}

// NewWithHTTPClient creates a client sending requests through httpClient as is.
// No authentication or team scoping is added; httpClient is expected to carry them.
func NewWithHTTPClient(httpClient *http.Client, opts ...Option) (now.Client, error) {
	if httpClient == nil {
		return nil, &now.ConfigurationError{Err: now.ErrNilHTTPClient}
	}

	o := newOptions(opts)

	httpOpts := append([]nowhttp.Option{nowhttp.WithHTTPClient(httpClient)}, o.transportOptions()...)

	transport, err := nowhttp.NewClient(o.baseURL, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	c, err := client.NewWithTransport(transport)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}
