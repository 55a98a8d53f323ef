package client

import (
	"context"

	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// SecretsClient implements now.SecretsClient.
type SecretsClient struct {
	transport *http.Client
}

// NewSecretsClient creates a new secrets client.
func NewSecretsClient(transport *http.Client) *SecretsClient {
	return &SecretsClient{
		transport: transport,
	}
}

func secretsOf(list now.SecretsList) []now.Secret { return list.Secrets }

func bySecret(uidOrName string) request {
	return request{params: map[string]string{"uidOrName": uidOrName}}
}

func createSecretRequest(name, value string) request {
	return request{body: &now.SecretCreateRequest{Name: name, Value: value}}
}

func renameSecretRequest(uidOrName, newName string) request {
	return request{
		params: map[string]string{"uidOrName": uidOrName},
		body:   &now.SecretRenameRequest{Name: newName},
	}
}

// List implements now.SecretsClient.List.
func (c *SecretsClient) List(ctx context.Context) ([]now.Secret, error) {
	return execute(ctx, c.transport, OpListSecrets, request{}, listOf(secretsOf))
}

// ListAsync implements now.SecretsClient.ListAsync.
func (c *SecretsClient) ListAsync(ctx context.Context, callback now.Callback[[]now.Secret]) {
	executeAsync(ctx, c.transport, OpListSecrets, request{}, listOf(secretsOf), callback)
}

// Create implements now.SecretsClient.Create.
func (c *SecretsClient) Create(ctx context.Context, name, value string) (*now.Secret, error) {
	return execute(ctx, c.transport, OpCreateSecret, createSecretRequest(name, value), entity[now.Secret](false))
}

// CreateAsync implements now.SecretsClient.CreateAsync.
func (c *SecretsClient) CreateAsync(ctx context.Context, name, value string, callback now.Callback[*now.Secret]) {
	executeAsync(ctx, c.transport, OpCreateSecret, createSecretRequest(name, value), entity[now.Secret](false), callback)
}

// Rename implements now.SecretsClient.Rename.
func (c *SecretsClient) Rename(ctx context.Context, uidOrName, newName string) (*now.Secret, error) {
	return execute(ctx, c.transport, OpRenameSecret, renameSecretRequest(uidOrName, newName), entity[now.Secret](false))
}

// RenameAsync implements now.SecretsClient.RenameAsync.
func (c *SecretsClient) RenameAsync(ctx context.Context, uidOrName, newName string, callback now.Callback[*now.Secret]) {
	executeAsync(ctx, c.transport, OpRenameSecret, renameSecretRequest(uidOrName, newName), entity[now.Secret](false), callback)
}

// Delete implements now.SecretsClient.Delete.
func (c *SecretsClient) Delete(ctx context.Context, uidOrName string) (*now.Secret, error) {
	return execute(ctx, c.transport, OpDeleteSecret, bySecret(uidOrName), entity[now.Secret](false))
}

// DeleteAsync implements now.SecretsClient.DeleteAsync.
func (c *SecretsClient) DeleteAsync(ctx context.Context, uidOrName string, callback now.Callback[*now.Secret]) {
	executeAsync(ctx, c.transport, OpDeleteSecret, bySecret(uidOrName), entity[now.Secret](false), callback)
}
