// Package nowclient provides the primary entry point for constructing a
// Now API client that implements the now.Client interface.
//
// Four construction paths are offered. Each returns a client that is fully
// configured and safe for concurrent use.
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/now-client/pkg/nowclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Discover credentials from ~/.now.json, the NOW_TOKEN / NOW_TEAM
//	  // properties, or the environment.
//	  cli, err := nowclient.New()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or pass a token, optionally scoped to a team:
//	  cli, err = nowclient.NewWithToken("my-token")
//	  cli, err = nowclient.NewWithTeam("my-token", "my-team")
//	  if err != nil { log.Fatal(err) }
//
//	  deployments, err := cli.Deployments().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = deployments
//	}
//
// # Credential discovery
//
// New evaluates the sources in order and stops at the first one holding a
// non-blank token: the "token" and "team" fields of ~/.now.json, the NOW_TOKEN
// and NOW_TEAM process properties (the global viper registry), then the
// environment variables of the same names. The team is taken from that same
// source only. A missing token is reported as a now.ConfigurationError at
// construction time.
//
// # Pre-configured transport
//
// NewWithHTTPClient sends requests through the given *http.Client exactly as
// configured. No authorization header, identification header or team parameter
// is added; the caller's client is expected to carry them.
//
// # Callback form
//
// Every operation has an Async variant taking a now.Callback. The call returns
// immediately and exactly one of OnSuccess or OnFailure runs later on another
// goroutine. Errors are delivered only to OnFailure: a callback without one
// discards them, so set both handlers. WithMaxConcurrency bounds how many such
// calls run at once.
package nowclient
