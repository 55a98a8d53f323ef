// Package credentials resolves the API token and optional team scope used by a client.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/now-client/internal/constants"
	"github.com/fivetwenty-io/now-client/pkg/now"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Credentials is the token and optional team a client authenticates with.
// An empty Team means no team scoping.
type Credentials struct {
	Token string
	Team  string
}

// Lookup returns the value stored under key, or "" when it is unset.
type Lookup func(key string) string

// Explicit validates caller-supplied credentials. A blank team is treated as absent.
func Explicit(token, team string) (Credentials, error) {
	if isBlank(token) {
		return Credentials{}, &now.ConfigurationError{Err: now.ErrBlankToken}
	}

	if isBlank(team) {
		team = ""
	}

	return Credentials{Token: token, Team: team}, nil
}

// Resolver discovers credentials from the credentials file, process properties and
// the environment, in that order. Zero-value fields fall back to the real sources.
type Resolver struct {
	// Fs is the filesystem the credentials file is read from.
	Fs afero.Fs
	// HomeDir returns the directory holding the credentials file.
	HomeDir func() (string, error)
	// Property reads process-level properties. Defaults to the global viper registry.
	Property Lookup
	// Env reads environment variables.
	Env Lookup
}

// NewResolver returns a resolver bound to the OS filesystem, viper and the environment.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve evaluates every source once and stops at the first one holding a non-blank
// token. The team comes from that same source; a blank team there means no team.
func (r *Resolver) Resolve() (Credentials, error) {
	fileToken, fileTeam, err := r.readFile()
	if err != nil {
		return Credentials{}, &now.ConfigurationError{Err: err}
	}

	property, env := r.lookups()

	sources := []Credentials{
		{Token: fileToken, Team: fileTeam},
		{Token: property(constants.EnvToken), Team: property(constants.EnvTeam)},
		{Token: env(constants.EnvToken), Team: env(constants.EnvTeam)},
	}

	for _, source := range sources {
		if isBlank(source.Token) {
			continue
		}

		return Explicit(source.Token, source.Team)
	}

	return Credentials{}, &now.ConfigurationError{Err: now.ErrTokenNotFound}
}

// Path returns the location of the credentials file.
func (r *Resolver) Path() (string, error) {
	homeDir := r.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}

	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, constants.CredentialsFileName), nil
}

// readFile returns the token and team stored in the credentials file. A missing file
// yields empty values.
func (r *Resolver) readFile() (string, string, error) {
	path, err := r.Path()
	if err != nil {
		return "", "", err
	}

	filesystem := r.Fs
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}

	data, err := afero.ReadFile(filesystem, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", nil
		}

		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}

	var fields map[string]interface{}

	err = json.Unmarshal(data, &fields)
	if err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", path, err)
	}

	return stringField(fields, constants.TokenKey), stringField(fields, constants.TeamKey), nil
}

func (r *Resolver) lookups() (Lookup, Lookup) {
	property := r.Property
	if property == nil {
		property = viper.GetString
	}

	env := r.Env
	if env == nil {
		env = os.Getenv
	}

	return property, env
}

func stringField(fields map[string]interface{}, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
