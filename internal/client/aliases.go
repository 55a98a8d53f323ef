package client

import (
	"context"

	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// AliasesClient implements now.AliasesClient.
type AliasesClient struct {
	transport *http.Client
}

// NewAliasesClient creates a new aliases client.
func NewAliasesClient(transport *http.Client) *AliasesClient {
	return &AliasesClient{
		transport: transport,
	}
}

func aliasesOf(list now.AliasesList) []now.Alias { return list.Aliases }

func aliasStatus(result now.AliasDeleteResult) string { return result.Status }

func byAlias(aliasID string) request {
	return request{params: map[string]string{"aliasId": aliasID}}
}

func createAliasRequest(deploymentID, alias string) request {
	return request{
		params: map[string]string{"id": deploymentID},
		body:   &now.AliasCreateRequest{Alias: alias},
	}
}

// List implements now.AliasesClient.List.
func (c *AliasesClient) List(ctx context.Context) ([]now.Alias, error) {
	return execute(ctx, c.transport, OpListAliases, request{}, listOf(aliasesOf))
}

// ListAsync implements now.AliasesClient.ListAsync.
func (c *AliasesClient) ListAsync(ctx context.Context, callback now.Callback[[]now.Alias]) {
	executeAsync(ctx, c.transport, OpListAliases, request{}, listOf(aliasesOf), callback)
}

// Delete implements now.AliasesClient.Delete.
func (c *AliasesClient) Delete(ctx context.Context, aliasID string) (string, error) {
	return execute(ctx, c.transport, OpDeleteAlias, byAlias(aliasID), field(aliasStatus, true))
}

// DeleteAsync implements now.AliasesClient.DeleteAsync.
func (c *AliasesClient) DeleteAsync(ctx context.Context, aliasID string, callback now.Callback[string]) {
	executeAsync(ctx, c.transport, OpDeleteAlias, byAlias(aliasID), field(aliasStatus, true), callback)
}

// ListForDeployment implements now.AliasesClient.ListForDeployment.
func (c *AliasesClient) ListForDeployment(ctx context.Context, deploymentID string) ([]now.Alias, error) {
	return execute(ctx, c.transport, OpListDeploymentAliases, byDeployment(deploymentID), listOf(aliasesOf))
}

// ListForDeploymentAsync implements now.AliasesClient.ListForDeploymentAsync.
func (c *AliasesClient) ListForDeploymentAsync(ctx context.Context, deploymentID string, callback now.Callback[[]now.Alias]) {
	executeAsync(ctx, c.transport, OpListDeploymentAliases, byDeployment(deploymentID), listOf(aliasesOf), callback)
}

// CreateForDeployment implements now.AliasesClient.CreateForDeployment.
func (c *AliasesClient) CreateForDeployment(ctx context.Context, deploymentID, alias string) (*now.Alias, error) {
	return execute(ctx, c.transport, OpCreateDeploymentAlias, createAliasRequest(deploymentID, alias), entity[now.Alias](false))
}

// CreateForDeploymentAsync implements now.AliasesClient.CreateForDeploymentAsync.
func (c *AliasesClient) CreateForDeploymentAsync(ctx context.Context, deploymentID, alias string, callback now.Callback[*now.Alias]) {
	executeAsync(ctx, c.transport, OpCreateDeploymentAlias, createAliasRequest(deploymentID, alias), entity[now.Alias](false), callback)
}
