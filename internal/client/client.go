package client

import (
	"errors"
	"fmt"

	"github.com/fivetwenty-io/now-client/internal/credentials"
	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// Static errors for err113 compliance.
var (
	ErrTransportRequired = errors.New("transport is required")
)

// Client implements the now.Client interface.
type Client struct {
	transport *http.Client
	team      string

	// Resource clients
	deployments  now.DeploymentsClient
	domains      now.DomainsClient
	certificates now.CertificatesClient
	aliases      now.AliasesClient
	secrets      now.SecretsClient
}

// New creates a client authenticating with creds against baseURL. The header, auth
// and team decorators are installed ahead of any decorators passed in opts.
func New(creds credentials.Credentials, baseURL string, opts ...http.Option) (*Client, error) {
	httpOpts := make([]http.Option, 0, len(opts)+1)
	httpOpts = append(httpOpts, http.WithDecorators(http.DefaultDecorators(creds.Token, creds.Team)...))
	httpOpts = append(httpOpts, opts...)

	transport, err := http.NewClient(baseURL, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}

	client := &Client{
		transport: transport,
		team:      creds.Team,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTransport creates a client over a pre-configured transport. No decorators
// are added: requests carry whatever the transport already applies.
func NewWithTransport(transport *http.Client) (*Client, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}

	client := &Client{
		transport: transport,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.deployments = NewDeploymentsClient(c.transport)
	c.domains = NewDomainsClient(c.transport)
	c.certificates = NewCertificatesClient(c.transport)
	c.aliases = NewAliasesClient(c.transport)
	c.secrets = NewSecretsClient(c.transport)
}

// Team implements now.Client.Team.
func (c *Client) Team() string {
	return c.team
}

// BaseURL implements now.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// Deployments implements now.Client.Deployments.
func (c *Client) Deployments() now.DeploymentsClient {
	return c.deployments
}

// Domains implements now.Client.Domains.
func (c *Client) Domains() now.DomainsClient {
	return c.domains
}

// Certificates implements now.Client.Certificates.
func (c *Client) Certificates() now.CertificatesClient {
	return c.certificates
}

// Aliases implements now.Client.Aliases.
func (c *Client) Aliases() now.AliasesClient {
	return c.aliases
}

// Secrets implements now.Client.Secrets.
func (c *Client) Secrets() now.SecretsClient {
	return c.secrets
}
