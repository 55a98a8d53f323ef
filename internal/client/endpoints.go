package client

import (
	nethttp "net/http"

	"github.com/fivetwenty-io/now-client/internal/http"
)

// Operation identifies one remote API operation.
type Operation string

// Operations.
const (
	OpListDeployments       Operation = "listDeployments"
	OpGetDeployment         Operation = "getDeployment"
	OpCreateDeployment      Operation = "createDeployment"
	OpDeleteDeployment      Operation = "deleteDeployment"
	OpListDeploymentFiles   Operation = "listDeploymentFiles"
	OpGetDeploymentFile     Operation = "getDeploymentFile"
	OpListDomains           Operation = "listDomains"
	OpCreateDomain          Operation = "createDomain"
	OpDeleteDomain          Operation = "deleteDomain"
	OpListDomainRecords     Operation = "listDomainRecords"
	OpCreateDomainRecord    Operation = "createDomainRecord"
	OpDeleteDomainRecord    Operation = "deleteDomainRecord"
	OpListCertificates      Operation = "listCertificates"
	OpCreateCertificate     Operation = "createCertificate"
	OpUpdateCertificate     Operation = "updateCertificate"
	OpDeleteCertificate     Operation = "deleteCertificate"
	OpListAliases           Operation = "listAliases"
	OpDeleteAlias           Operation = "deleteAlias"
	OpListDeploymentAliases Operation = "listDeploymentAliases"
	OpCreateDeploymentAlias Operation = "createDeploymentAlias"
	OpListSecrets           Operation = "listSecrets"
	OpCreateSecret          Operation = "createSecret"
	OpRenameSecret          Operation = "renameSecret"
	OpDeleteSecret          Operation = "deleteSecret"
)

var endpoints = map[Operation]http.Endpoint{
	OpListDeployments:       {Method: nethttp.MethodGet, Path: "now/deployments"},
	OpGetDeployment:         {Method: nethttp.MethodGet, Path: "now/deployments/{id}"},
	OpCreateDeployment:      {Method: nethttp.MethodPost, Path: "now/deployments", Body: true},
	OpDeleteDeployment:      {Method: nethttp.MethodDelete, Path: "now/deployments/{id}"},
	OpListDeploymentFiles:   {Method: nethttp.MethodGet, Path: "now/deployments/{id}/files"},
	OpGetDeploymentFile:     {Method: nethttp.MethodGet, Path: "now/deployments/{id}/files/{fileId}"},
	OpListDomains:           {Method: nethttp.MethodGet, Path: "domains"},
	OpCreateDomain:          {Method: nethttp.MethodPost, Path: "domains", Body: true},
	OpDeleteDomain:          {Method: nethttp.MethodDelete, Path: "domains/{name}"},
	OpListDomainRecords:     {Method: nethttp.MethodGet, Path: "domains/{name}/records"},
	OpCreateDomainRecord:    {Method: nethttp.MethodPost, Path: "domains/{name}/records", Body: true},
	OpDeleteDomainRecord:    {Method: nethttp.MethodDelete, Path: "domains/{name}/records/{recordId}"},
	OpListCertificates:      {Method: nethttp.MethodGet, Path: "now/certs/{commonName}"},
	OpCreateCertificate:     {Method: nethttp.MethodPost, Path: "now/certs", Body: true},
	OpUpdateCertificate:     {Method: nethttp.MethodPut, Path: "now/certs", Body: true},
	OpDeleteCertificate:     {Method: nethttp.MethodDelete, Path: "now/certs/{commonName}"},
	OpListAliases:           {Method: nethttp.MethodGet, Path: "now/aliases"},
	OpDeleteAlias:           {Method: nethttp.MethodDelete, Path: "now/aliases/{aliasId}"},
	OpListDeploymentAliases: {Method: nethttp.MethodGet, Path: "deployments/{id}/aliases"},
	OpCreateDeploymentAlias: {Method: nethttp.MethodPost, Path: "deployments/{id}/aliases", Body: true},
	OpListSecrets:           {Method: nethttp.MethodGet, Path: "now/secrets"},
	OpCreateSecret:          {Method: nethttp.MethodPost, Path: "now/secrets", Body: true},
	OpRenameSecret:          {Method: nethttp.MethodPatch, Path: "now/secrets/{uidOrName}", Body: true},
	OpDeleteSecret:          {Method: nethttp.MethodDelete, Path: "now/secrets/{uidOrName}"},
}

// Endpoint returns the declaration of op.
func Endpoint(op Operation) (http.Endpoint, bool) {
	endpoint, ok := endpoints[op]

	return endpoint, ok
}
