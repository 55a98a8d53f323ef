package client

import (
	"context"
	"io"

	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// DeploymentsClient implements now.DeploymentsClient.
type DeploymentsClient struct {
	transport *http.Client
}

// NewDeploymentsClient creates a new deployments client.
func NewDeploymentsClient(transport *http.Client) *DeploymentsClient {
	return &DeploymentsClient{
		transport: transport,
	}
}

func deploymentsOf(list now.DeploymentsList) []now.Deployment { return list.Deployments }

func byDeployment(deploymentID string) request {
	return request{params: map[string]string{"id": deploymentID}}
}

func byDeploymentFile(deploymentID, fileID string, stream bool) request {
	return request{params: map[string]string{"id": deploymentID, "fileId": fileID}, stream: stream}
}

// List implements now.DeploymentsClient.List.
func (c *DeploymentsClient) List(ctx context.Context) ([]now.Deployment, error) {
	return execute(ctx, c.transport, OpListDeployments, request{}, listOf(deploymentsOf))
}

// ListAsync implements now.DeploymentsClient.ListAsync.
func (c *DeploymentsClient) ListAsync(ctx context.Context, callback now.Callback[[]now.Deployment]) {
	executeAsync(ctx, c.transport, OpListDeployments, request{}, listOf(deploymentsOf), callback)
}

// Get implements now.DeploymentsClient.Get.
func (c *DeploymentsClient) Get(ctx context.Context, deploymentID string) (*now.Deployment, error) {
	return execute(ctx, c.transport, OpGetDeployment, byDeployment(deploymentID), entity[now.Deployment](false))
}

// GetAsync implements now.DeploymentsClient.GetAsync.
func (c *DeploymentsClient) GetAsync(ctx context.Context, deploymentID string, callback now.Callback[*now.Deployment]) {
	executeAsync(ctx, c.transport, OpGetDeployment, byDeployment(deploymentID), entity[now.Deployment](false), callback)
}

// Create implements now.DeploymentsClient.Create. The body is sent as given.
func (c *DeploymentsClient) Create(ctx context.Context, body map[string]interface{}) (*now.Deployment, error) {
	return execute(ctx, c.transport, OpCreateDeployment, request{body: body}, entity[now.Deployment](false))
}

// CreateAsync implements now.DeploymentsClient.CreateAsync.
func (c *DeploymentsClient) CreateAsync(ctx context.Context, body map[string]interface{}, callback now.Callback[*now.Deployment]) {
	executeAsync(ctx, c.transport, OpCreateDeployment, request{body: body}, entity[now.Deployment](false), callback)
}

// Delete implements now.DeploymentsClient.Delete.
func (c *DeploymentsClient) Delete(ctx context.Context, deploymentID string) error {
	_, err := execute(ctx, c.transport, OpDeleteDeployment, byDeployment(deploymentID), noResult)

	return err
}

// DeleteAsync implements now.DeploymentsClient.DeleteAsync.
func (c *DeploymentsClient) DeleteAsync(ctx context.Context, deploymentID string, callback now.Callback[now.NoResult]) {
	executeAsync(ctx, c.transport, OpDeleteDeployment, byDeployment(deploymentID), noResult, callback)
}

// ListFiles implements now.DeploymentsClient.ListFiles.
func (c *DeploymentsClient) ListFiles(ctx context.Context, deploymentID string) ([]now.DeploymentFile, error) {
	return execute(ctx, c.transport, OpListDeploymentFiles, byDeployment(deploymentID), arrayOf[now.DeploymentFile]())
}

// ListFilesAsync implements now.DeploymentsClient.ListFilesAsync.
func (c *DeploymentsClient) ListFilesAsync(ctx context.Context, deploymentID string, callback now.Callback[[]now.DeploymentFile]) {
	executeAsync(ctx, c.transport, OpListDeploymentFiles, byDeployment(deploymentID), arrayOf[now.DeploymentFile](), callback)
}

// GetFile implements now.DeploymentsClient.GetFile.
func (c *DeploymentsClient) GetFile(ctx context.Context, deploymentID, fileID string) (string, error) {
	return execute(ctx, c.transport, OpGetDeploymentFile, byDeploymentFile(deploymentID, fileID, false), text)
}

// GetFileAsync implements now.DeploymentsClient.GetFileAsync.
func (c *DeploymentsClient) GetFileAsync(ctx context.Context, deploymentID, fileID string, callback now.Callback[string]) {
	executeAsync(ctx, c.transport, OpGetDeploymentFile, byDeploymentFile(deploymentID, fileID, false), text, callback)
}

// GetFileStream implements now.DeploymentsClient.GetFileStream.
func (c *DeploymentsClient) GetFileStream(ctx context.Context, deploymentID, fileID string) (io.ReadCloser, error) {
	return execute(ctx, c.transport, OpGetDeploymentFile, byDeploymentFile(deploymentID, fileID, true), stream)
}

// GetFileStreamAsync implements now.DeploymentsClient.GetFileStreamAsync.
func (c *DeploymentsClient) GetFileStreamAsync(ctx context.Context, deploymentID, fileID string, callback now.Callback[io.ReadCloser]) {
	executeAsync(ctx, c.transport, OpGetDeploymentFile, byDeploymentFile(deploymentID, fileID, true), stream, callback)
}
