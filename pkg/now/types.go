package now

import (
	"time"
)

// DeploymentState is the lifecycle state reported for a deployment.
type DeploymentState string

// Deployment states.
const (
	DeploymentStateDeploying       DeploymentState = "DEPLOYING"
	DeploymentStateBooted          DeploymentState = "BOOTED"
	DeploymentStateBuilding        DeploymentState = "BUILDING"
	DeploymentStateBuildError      DeploymentState = "BUILD_ERROR"
	DeploymentStateReady           DeploymentState = "READY"
	DeploymentStateFrozen          DeploymentState = "FROZEN"
	DeploymentStateDeploymentError DeploymentState = "DEPLOYMENT_ERROR"
)

// Deployment represents a deployment.
type Deployment struct {
	UID     string          `json:"uid"               yaml:"uid"`
	Name    string          `json:"name,omitempty"    yaml:"name,omitempty"`
	URL     string          `json:"url,omitempty"     yaml:"url,omitempty"`
	Host    string          `json:"host,omitempty"    yaml:"host,omitempty"`
	State   DeploymentState `json:"state,omitempty"   yaml:"state,omitempty"`
	StateTs string          `json:"stateTs,omitempty" yaml:"stateTs,omitempty"`
	Created string          `json:"created,omitempty" yaml:"created,omitempty"`
}

// Equal reports whether both values identify the same deployment.
func (d Deployment) Equal(other Deployment) bool {
	return d.UID == other.UID
}

// DeploymentFile is one node of a deployment's file tree.
type DeploymentFile struct {
	Type     string           `json:"type"               yaml:"type"`
	Name     string           `json:"name"               yaml:"name"`
	UID      string           `json:"uid,omitempty"      yaml:"uid,omitempty"`
	Children []DeploymentFile `json:"children,omitempty" yaml:"children,omitempty"`
}

// Equal reports whether both values identify the same file.
func (f DeploymentFile) Equal(other DeploymentFile) bool {
	return f.UID == other.UID
}

// Domain represents a domain registered with the provider.
type Domain struct {
	UID         string     `json:"uid"                   yaml:"uid"`
	Name        string     `json:"name"                  yaml:"name"`
	Created     *time.Time `json:"created,omitempty"     yaml:"created,omitempty"`
	IsExternal  bool       `json:"isExternal"            yaml:"isExternal"`
	Verified    *bool      `json:"verified,omitempty"    yaml:"verified,omitempty"`
	VerifyToken string     `json:"verifyToken,omitempty" yaml:"verifyToken,omitempty"`
	Aliases     []string   `json:"aliases,omitempty"     yaml:"aliases,omitempty"`
}

// Equal reports whether both values identify the same domain.
func (d Domain) Equal(other Domain) bool {
	return d.UID == other.UID
}

// DomainRecord is a DNS record of a domain. Created and Updated are epoch milliseconds.
type DomainRecord struct {
	ID         string `json:"id,omitempty"         yaml:"id,omitempty"`
	Slug       string `json:"slug,omitempty"       yaml:"slug,omitempty"`
	Type       string `json:"type"                 yaml:"type"`
	Name       string `json:"name"                 yaml:"name"`
	Value      string `json:"value"                yaml:"value"`
	Created    int64  `json:"created,omitempty"    yaml:"created,omitempty"`
	Updated    int64  `json:"updated,omitempty"    yaml:"updated,omitempty"`
	MXPriority *int64 `json:"mxPriority,omitempty" yaml:"mxPriority,omitempty"`
}

// Equal reports whether both values identify the same record.
func (r DomainRecord) Equal(other DomainRecord) bool {
	return r.ID == other.ID
}

// Certificate represents a TLS certificate.
type Certificate struct {
	UID        string `json:"uid"                  yaml:"uid"`
	CN         string `json:"cn"                   yaml:"cn"`
	Created    string `json:"created,omitempty"    yaml:"created,omitempty"`
	Expiration string `json:"expiration,omitempty" yaml:"expiration,omitempty"`
	AutoRenew  bool   `json:"autoRenew"            yaml:"autoRenew"`
}

// Equal reports whether both values identify the same certificate.
func (c Certificate) Equal(other Certificate) bool {
	return c.UID == other.UID
}

// AliasDeployment is the deployment an alias points to.
type AliasDeployment struct {
	ID  string `json:"id"            yaml:"id"`
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Alias represents an alias.
type Alias struct {
	UID          string           `json:"uid,omitempty"          yaml:"uid,omitempty"`
	Alias        string           `json:"alias"                  yaml:"alias"`
	Created      string           `json:"created,omitempty"      yaml:"created,omitempty"`
	OldID        string           `json:"oldId,omitempty"        yaml:"oldId,omitempty"`
	DeploymentID string           `json:"deploymentId,omitempty" yaml:"deploymentId,omitempty"`
	Deployment   *AliasDeployment `json:"deployment,omitempty"   yaml:"deployment,omitempty"`
}

// Equal reports whether both values identify the same alias.
func (a Alias) Equal(other Alias) bool {
	return a.UID == other.UID
}

// Secret represents a secret. Values are never returned by the API.
type Secret struct {
	UID     string `json:"uid"               yaml:"uid"`
	Name    string `json:"name"              yaml:"name"`
	Created string `json:"created,omitempty" yaml:"created,omitempty"`
}

// Equal reports whether both values identify the same secret.
func (s Secret) Equal(other Secret) bool {
	return s.UID == other.UID
}

// Request bodies.

// DomainCreateRequest is the body of a create domain call.
type DomainCreateRequest struct {
	Name       string `json:"name"`
	IsExternal bool   `json:"isExternal"`
}

// DomainRecordCreateRequest is the body of a create domain record call.
type DomainRecordCreateRequest struct {
	Data *DomainRecord `json:"data"`
}

// CertificateRequest is the body of the issue, renew and replace certificate calls.
type CertificateRequest struct {
	Domains []string `json:"domains"`
	Renew   bool     `json:"renew,omitempty"`
	CA      string   `json:"ca,omitempty"`
	Cert    string   `json:"cert,omitempty"`
	Key     string   `json:"key,omitempty"`
}

// AliasCreateRequest is the body of a create deployment alias call.
type AliasCreateRequest struct {
	Alias string `json:"alias"`
}

// SecretCreateRequest is the body of a create secret call. An empty value is sent as "".
type SecretCreateRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SecretRenameRequest is the body of a rename secret call.
type SecretRenameRequest struct {
	Name string `json:"name"`
}

// Response envelopes.

// DeploymentsList wraps the list deployments response.
type DeploymentsList struct {
	Deployments []Deployment `json:"deployments"`
}

// DomainsList wraps the list domains response.
type DomainsList struct {
	Domains []Domain `json:"domains"`
}

// DomainRecordsList wraps the list domain records response.
type DomainRecordsList struct {
	Records []DomainRecord `json:"records"`
}

// CertificatesList wraps the list certificates response.
type CertificatesList struct {
	Certs []Certificate `json:"certs"`
}

// CertificateResult is returned by the issue, renew and replace certificate calls.
type CertificateResult struct {
	UID       string `json:"uid"`
	CreatedAt string `json:"created_at"`
}

// AliasesList wraps the list aliases responses.
type AliasesList struct {
	Aliases []Alias `json:"aliases"`
}

// AliasDeleteResult is returned by the delete alias call.
type AliasDeleteResult struct {
	Status string `json:"status"`
}

// SecretsList wraps the list secrets response.
type SecretsList struct {
	Secrets []Secret `json:"secrets"`
}
