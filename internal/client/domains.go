package client

import (
	"context"

	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// DomainsClient implements now.DomainsClient.
type DomainsClient struct {
	transport *http.Client
}

// NewDomainsClient creates a new domains client.
func NewDomainsClient(transport *http.Client) *DomainsClient {
	return &DomainsClient{
		transport: transport,
	}
}

// uidResult is the body returned when a domain is removed.
type uidResult struct {
	UID string `json:"uid"`
}

func domainsOf(list now.DomainsList) []now.Domain { return list.Domains }

func recordsOf(list now.DomainRecordsList) []now.DomainRecord { return list.Records }

func uidOf(result uidResult) string { return result.UID }

func byDomain(name string) request {
	return request{params: map[string]string{"name": name}}
}

func createDomainRequest(name string, isExternal bool) request {
	return request{body: &now.DomainCreateRequest{Name: name, IsExternal: isExternal}}
}

func createRecordRequest(name string, record *now.DomainRecord) request {
	req := request{params: map[string]string{"name": name}}
	if record != nil {
		req.body = &now.DomainRecordCreateRequest{Data: record}
	}

	return req
}

func byDomainRecord(name, recordID string) request {
	return request{params: map[string]string{"name": name, "recordId": recordID}}
}

// List implements now.DomainsClient.List.
func (c *DomainsClient) List(ctx context.Context) ([]now.Domain, error) {
	return execute(ctx, c.transport, OpListDomains, request{}, listOf(domainsOf))
}

// ListAsync implements now.DomainsClient.ListAsync.
func (c *DomainsClient) ListAsync(ctx context.Context, callback now.Callback[[]now.Domain]) {
	executeAsync(ctx, c.transport, OpListDomains, request{}, listOf(domainsOf), callback)
}

// Create implements now.DomainsClient.Create.
func (c *DomainsClient) Create(ctx context.Context, name string, isExternal bool) (*now.Domain, error) {
	return execute(ctx, c.transport, OpCreateDomain, createDomainRequest(name, isExternal), entity[now.Domain](true))
}

// CreateAsync implements now.DomainsClient.CreateAsync.
func (c *DomainsClient) CreateAsync(ctx context.Context, name string, isExternal bool, callback now.Callback[*now.Domain]) {
	executeAsync(ctx, c.transport, OpCreateDomain, createDomainRequest(name, isExternal), entity[now.Domain](true), callback)
}

// Delete implements now.DomainsClient.Delete.
func (c *DomainsClient) Delete(ctx context.Context, name string) (string, error) {
	return execute(ctx, c.transport, OpDeleteDomain, byDomain(name), field(uidOf, false))
}

// DeleteAsync implements now.DomainsClient.DeleteAsync.
func (c *DomainsClient) DeleteAsync(ctx context.Context, name string, callback now.Callback[string]) {
	executeAsync(ctx, c.transport, OpDeleteDomain, byDomain(name), field(uidOf, false), callback)
}

// ListRecords implements now.DomainsClient.ListRecords.
func (c *DomainsClient) ListRecords(ctx context.Context, name string) ([]now.DomainRecord, error) {
	return execute(ctx, c.transport, OpListDomainRecords, byDomain(name), listOf(recordsOf))
}

// ListRecordsAsync implements now.DomainsClient.ListRecordsAsync.
func (c *DomainsClient) ListRecordsAsync(ctx context.Context, name string, callback now.Callback[[]now.DomainRecord]) {
	executeAsync(ctx, c.transport, OpListDomainRecords, byDomain(name), listOf(recordsOf), callback)
}

// CreateRecord implements now.DomainsClient.CreateRecord.
func (c *DomainsClient) CreateRecord(ctx context.Context, name string, record *now.DomainRecord) (*now.DomainRecord, error) {
	return execute(ctx, c.transport, OpCreateDomainRecord, createRecordRequest(name, record), entity[now.DomainRecord](true))
}

// CreateRecordAsync implements now.DomainsClient.CreateRecordAsync.
func (c *DomainsClient) CreateRecordAsync(
	ctx context.Context,
	name string,
	record *now.DomainRecord,
	callback now.Callback[*now.DomainRecord],
) {
	executeAsync(ctx, c.transport, OpCreateDomainRecord, createRecordRequest(name, record), entity[now.DomainRecord](true), callback)
}

// DeleteRecord implements now.DomainsClient.DeleteRecord.
func (c *DomainsClient) DeleteRecord(ctx context.Context, name, recordID string) error {
	_, err := execute(ctx, c.transport, OpDeleteDomainRecord, byDomainRecord(name, recordID), noResult)

	return err
}

// DeleteRecordAsync implements now.DomainsClient.DeleteRecordAsync.
func (c *DomainsClient) DeleteRecordAsync(ctx context.Context, name, recordID string, callback now.Callback[now.NoResult]) {
	executeAsync(ctx, c.transport, OpDeleteDomainRecord, byDomainRecord(name, recordID), noResult, callback)
}
