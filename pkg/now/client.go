package now

import (
	"context"
	"io"
)

// Callback receives the outcome of a non-blocking call. Exactly one of OnSuccess or
// OnFailure is invoked, once, on a goroutine other than the caller's.
//
// Setting both handlers is the caller's responsibility. A nil handler is skipped,
// so a nil OnFailure discards the error of a failed call; leave it nil only when
// failures are observed some other way.
type Callback[T any] struct {
	OnSuccess func(result T)
	OnFailure func(err error)
}

// Complete delivers a result or an error to the matching handler.
func (c Callback[T]) Complete(result T, err error) {
	if err != nil {
		if c.OnFailure != nil {
			c.OnFailure(err)
		}

		return
	}

	if c.OnSuccess != nil {
		c.OnSuccess(result)
	}
}

// NoResult is the result type of calls that only report success or failure.
type NoResult = struct{}

// DeploymentsClient exposes deployment operations.
type DeploymentsClient interface {
	List(ctx context.Context) ([]Deployment, error)
	ListAsync(ctx context.Context, callback Callback[[]Deployment])
	Get(ctx context.Context, deploymentID string) (*Deployment, error)
	GetAsync(ctx context.Context, deploymentID string, callback Callback[*Deployment])
	Create(ctx context.Context, body map[string]interface{}) (*Deployment, error)
	CreateAsync(ctx context.Context, body map[string]interface{}, callback Callback[*Deployment])
	Delete(ctx context.Context, deploymentID string) error
	DeleteAsync(ctx context.Context, deploymentID string, callback Callback[NoResult])
	ListFiles(ctx context.Context, deploymentID string) ([]DeploymentFile, error)
	ListFilesAsync(ctx context.Context, deploymentID string, callback Callback[[]DeploymentFile])
	GetFile(ctx context.Context, deploymentID, fileID string) (string, error)
	GetFileAsync(ctx context.Context, deploymentID, fileID string, callback Callback[string])
	// GetFileStream returns the raw file content. The caller must close the reader.
	GetFileStream(ctx context.Context, deploymentID, fileID string) (io.ReadCloser, error)
	GetFileStreamAsync(ctx context.Context, deploymentID, fileID string, callback Callback[io.ReadCloser])
}

// DomainsClient exposes domain and DNS record operations.
type DomainsClient interface {
	List(ctx context.Context) ([]Domain, error)
	ListAsync(ctx context.Context, callback Callback[[]Domain])
	Create(ctx context.Context, name string, isExternal bool) (*Domain, error)
	CreateAsync(ctx context.Context, name string, isExternal bool, callback Callback[*Domain])
	// Delete removes a domain and returns its uid.
	Delete(ctx context.Context, name string) (string, error)
	DeleteAsync(ctx context.Context, name string, callback Callback[string])
	ListRecords(ctx context.Context, name string) ([]DomainRecord, error)
	ListRecordsAsync(ctx context.Context, name string, callback Callback[[]DomainRecord])
	CreateRecord(ctx context.Context, name string, record *DomainRecord) (*DomainRecord, error)
	CreateRecordAsync(ctx context.Context, name string, record *DomainRecord, callback Callback[*DomainRecord])
	DeleteRecord(ctx context.Context, name, recordID string) error
	DeleteRecordAsync(ctx context.Context, name, recordID string, callback Callback[NoResult])
}

// CertificatesClient exposes TLS certificate operations.
type CertificatesClient interface {
	List(ctx context.Context, commonName string) ([]Certificate, error)
	ListAsync(ctx context.Context, commonName string, callback Callback[[]Certificate])
	// Create issues a certificate for domains and returns its uid.
	Create(ctx context.Context, domains []string) (string, error)
	CreateAsync(ctx context.Context, domains []string, callback Callback[string])
	// Renew renews the certificate for domains and returns its uid.
	Renew(ctx context.Context, domains []string) (string, error)
	RenewAsync(ctx context.Context, domains []string, callback Callback[string])
	// Replace uploads a certificate for domains and returns its creation timestamp.
	Replace(ctx context.Context, domains []string, ca, cert, key string) (string, error)
	ReplaceAsync(ctx context.Context, domains []string, ca, cert, key string, callback Callback[string])
	Delete(ctx context.Context, commonName string) error
	DeleteAsync(ctx context.Context, commonName string, callback Callback[NoResult])
}

// AliasesClient exposes alias operations.
type AliasesClient interface {
	List(ctx context.Context) ([]Alias, error)
	ListAsync(ctx context.Context, callback Callback[[]Alias])
	// Delete removes an alias and returns the status reported by the server.
	Delete(ctx context.Context, aliasID string) (string, error)
	DeleteAsync(ctx context.Context, aliasID string, callback Callback[string])
	ListForDeployment(ctx context.Context, deploymentID string) ([]Alias, error)
	ListForDeploymentAsync(ctx context.Context, deploymentID string, callback Callback[[]Alias])
	CreateForDeployment(ctx context.Context, deploymentID, alias string) (*Alias, error)
	CreateForDeploymentAsync(ctx context.Context, deploymentID, alias string, callback Callback[*Alias])
}

// SecretsClient exposes secret operations.
type SecretsClient interface {
	List(ctx context.Context) ([]Secret, error)
	ListAsync(ctx context.Context, callback Callback[[]Secret])
	Create(ctx context.Context, name, value string) (*Secret, error)
	CreateAsync(ctx context.Context, name, value string, callback Callback[*Secret])
	Rename(ctx context.Context, uidOrName, newName string) (*Secret, error)
	RenameAsync(ctx context.Context, uidOrName, newName string, callback Callback[*Secret])
	Delete(ctx context.Context, uidOrName string) (*Secret, error)
	DeleteAsync(ctx context.Context, uidOrName string, callback Callback[*Secret])
}

// ResourceClients provides access to all resource-specific clients. Every *Async
// method reports its outcome only through its Callback, whose handlers the caller
// must set.
type ResourceClients interface {
	Deployments() DeploymentsClient
	Domains() DomainsClient
	Certificates() CertificatesClient
	Aliases() AliasesClient
	Secrets() SecretsClient
}

// Client is the entry point to the API. A Client is safe for concurrent use.
type Client interface {
	ResourceClients

	// Team returns the team every request is scoped to, or "" for personal scope.
	Team() string
	// BaseURL returns the API root requests are sent to.
	BaseURL() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
