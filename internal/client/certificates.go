package client

import (
	"context"

	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// CertificatesClient implements now.CertificatesClient.
type CertificatesClient struct {
	transport *http.Client
}

// NewCertificatesClient creates a new certificates client.
func NewCertificatesClient(transport *http.Client) *CertificatesClient {
	return &CertificatesClient{
		transport: transport,
	}
}

func certificatesOf(list now.CertificatesList) []now.Certificate { return list.Certs }

func certificateUID(result now.CertificateResult) string { return result.UID }

func certificateCreatedAt(result now.CertificateResult) string { return result.CreatedAt }

func byCommonName(commonName string) request {
	return request{params: map[string]string{"commonName": commonName}}
}

func certificateRequest(body *now.CertificateRequest) request {
	if body.Domains == nil {
		body.Domains = []string{}
	}

	return request{body: body}
}

// List implements now.CertificatesClient.List.
func (c *CertificatesClient) List(ctx context.Context, commonName string) ([]now.Certificate, error) {
	return execute(ctx, c.transport, OpListCertificates, byCommonName(commonName), listOf(certificatesOf))
}

// ListAsync implements now.CertificatesClient.ListAsync.
func (c *CertificatesClient) ListAsync(ctx context.Context, commonName string, callback now.Callback[[]now.Certificate]) {
	executeAsync(ctx, c.transport, OpListCertificates, byCommonName(commonName), listOf(certificatesOf), callback)
}

// Create implements now.CertificatesClient.Create.
func (c *CertificatesClient) Create(ctx context.Context, domains []string) (string, error) {
	req := certificateRequest(&now.CertificateRequest{Domains: domains})

	return execute(ctx, c.transport, OpCreateCertificate, req, field(certificateUID, true))
}

// CreateAsync implements now.CertificatesClient.CreateAsync.
func (c *CertificatesClient) CreateAsync(ctx context.Context, domains []string, callback now.Callback[string]) {
	req := certificateRequest(&now.CertificateRequest{Domains: domains})

	executeAsync(ctx, c.transport, OpCreateCertificate, req, field(certificateUID, true), callback)
}

// Renew implements now.CertificatesClient.Renew.
func (c *CertificatesClient) Renew(ctx context.Context, domains []string) (string, error) {
	req := certificateRequest(&now.CertificateRequest{Domains: domains, Renew: true})

	return execute(ctx, c.transport, OpUpdateCertificate, req, field(certificateUID, true))
}

// RenewAsync implements now.CertificatesClient.RenewAsync.
func (c *CertificatesClient) RenewAsync(ctx context.Context, domains []string, callback now.Callback[string]) {
	req := certificateRequest(&now.CertificateRequest{Domains: domains, Renew: true})

	executeAsync(ctx, c.transport, OpUpdateCertificate, req, field(certificateUID, true), callback)
}

// Replace implements now.CertificatesClient.Replace.
func (c *CertificatesClient) Replace(ctx context.Context, domains []string, ca, cert, key string) (string, error) {
	req := certificateRequest(&now.CertificateRequest{Domains: domains, CA: ca, Cert: cert, Key: key})

	return execute(ctx, c.transport, OpUpdateCertificate, req, field(certificateCreatedAt, true))
}

// ReplaceAsync implements now.CertificatesClient.ReplaceAsync.
func (c *CertificatesClient) ReplaceAsync(
	ctx context.Context,
	domains []string,
	ca, cert, key string,
	callback now.Callback[string],
) {
	req := certificateRequest(&now.CertificateRequest{Domains: domains, CA: ca, Cert: cert, Key: key})

	executeAsync(ctx, c.transport, OpUpdateCertificate, req, field(certificateCreatedAt, true), callback)
}

// Delete implements now.CertificatesClient.Delete.
func (c *CertificatesClient) Delete(ctx context.Context, commonName string) error {
	_, err := execute(ctx, c.transport, OpDeleteCertificate, byCommonName(commonName), noResult)

	return err
}

// DeleteAsync implements now.CertificatesClient.DeleteAsync.
func (c *CertificatesClient) DeleteAsync(ctx context.Context, commonName string, callback now.Callback[now.NoResult]) {
	executeAsync(ctx, c.transport, OpDeleteCertificate, byCommonName(commonName), noResult, callback)
}
