package constants

import "time"

// API endpoint.
const (
	// DefaultBaseURL is the root of the provider's versioned REST surface.
	DefaultBaseURL = "https://api.zeit.co/"

	// ClientID identifies this client implementation in the X-Requested-By header.
	ClientID = "github.com/fivetwenty-io/now-client"
)

// Request headers and parameters.
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestedBy   = "X-Requested-By"
	HeaderUserAgent     = "User-Agent"

	// ContentTypeJSON is sent with every request.
	ContentTypeJSON = "application/json"

	// TeamQueryParam scopes a request to a team.
	TeamQueryParam = "team"
)

// Credential discovery.
const (
	// CredentialsFileName is looked up in the user's home directory.
	CredentialsFileName = ".now.json"

	// TokenKey and TeamKey are the field names inside the credentials file.
	TokenKey = "token"
	TeamKey  = "team"

	// EnvToken and EnvTeam name both the process property and the environment variable.
	EnvToken = "NOW_TOKEN"
	EnvTeam  = "NOW_TEAM"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit bounds in-flight callback calls when a limit is requested
	// without an explicit value.
	DefaultConcurrencyLimit = 16
)

// HTTP status code range considered successful.
const (
	HTTPStatusSuccessMin = 200
	HTTPStatusSuccessMax = 299
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// DownloadFilePerm is the permission for files written by the CLI.
	DownloadFilePerm = 0600
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// DateFormat is used when rendering timestamps in tables.
const DateFormat = "2006-01-02 15:04"
