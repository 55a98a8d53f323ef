// Package now provides types, interfaces, and helpers for working with the
// Now (ZEIT) REST API.
//
// # Overview
//
// The now package defines the domain types (Deployment, Domain, DomainRecord,
// Certificate, Alias, Secret) and the interfaces for resource-oriented clients
// (DeploymentsClient, DomainsClient, CertificatesClient, AliasesClient,
// SecretsClient). A concrete implementation is provided by the nowclient
// package, which wires credential discovery, request decoration and transport.
//
//	cli, err := nowclient.New()
//	if err != nil { log.Fatal(err) }
//
//	aliases, err := cli.Aliases().List(ctx)
//
// # Call forms
//
// Each operation exists in a blocking form returning (result, error) and in a
// callback form (the Async suffix) that returns immediately and later completes
// a Callback exactly once. Both forms share the same interpretation rules: list
// operations yield an empty, non-nil slice when the server sends no collection.
//
// # Errors
//
// ConfigurationError is only returned while constructing a client.
// UnsuccessfulResponseError carries the status code and reason phrase of any
// response outside the 2xx range. TransportError wraps connection failures,
// timeouts, cancellation and undecodable responses. Helpers such as IsNotFound,
// IsUnauthorized and IsForbidden branch on common cases.
package now
