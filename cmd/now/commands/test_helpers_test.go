package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

// cliResult holds what a command wrote.
type cliResult struct {
	stdout string
	stderr string
}

// runCLI executes group under a root carrying the global flags, against server.
func runCLI(t *testing.T, server *httptest.Server, group *cobra.Command, args ...string) (cliResult, error) {
	t.Helper()

	root := &cobra.Command{Use: "now", SilenceUsage: true, SilenceErrors: true}
	AddGlobalFlags(root.PersistentFlags())
	root.AddCommand(group)

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)

	flags := []string{"--token", "test-token"}
	if server != nil {
		flags = append(flags, "--api", server.URL)
	}

	root.SetArgs(append(flags, args...))

	err := root.Execute()

	return cliResult{stdout: stdout.String(), stderr: stderr.String()}, err
}

// jsonServer answers every request with status and body after handing it to inspect.
func jsonServer(t *testing.T, status int, body string, inspect func(r *http.Request, body []byte)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var received bytes.Buffer
		_, _ = received.ReadFrom(request.Body)

		if inspect != nil {
			inspect(request, received.Bytes())
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

// failingServer fails the test when any request reaches it.
func failingServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
	}))
	t.Cleanup(server.Close)

	return server
}

// useMemFs swaps the command filesystem for an in-memory one for the test's duration.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()

	previous := appFs
	appFs = afero.NewMemMapFs()

	t.Cleanup(func() { appFs = previous })

	return appFs
}
