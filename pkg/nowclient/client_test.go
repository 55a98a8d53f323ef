package nowclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/now-client/pkg/now"
	"github.com/fivetwenty-io/now-client/pkg/nowclient"
)

func noLookup(string) string { return "" }

func homeDir() (string, error) { return "/home/user", nil }

// isolated keeps discovery away from the real home directory, viper and environment.
func isolated(fs afero.Fs) []nowclient.Option {
	return []nowclient.Option{
		nowclient.WithCredentialsFs(fs),
		nowclient.WithHomeDir(homeDir),
		nowclient.WithPropertyLookup(noLookup),
		nowclient.WithEnvLookup(noLookup),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("uses the credentials file", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "Bearer file-token", request.Header.Get("Authorization"))
			assert.Equal(t, "team=file-team", request.URL.RawQuery)

			_, _ = writer.Write([]byte(`{"secrets": []}`))
		}))
		defer server.Close()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/user/.now.json", []byte(`{"token": "file-token", "team": "file-team"}`), 0o600))

		client, err := nowclient.New(append(isolated(fs), nowclient.WithBaseURL(server.URL))...)
		require.NoError(t, err)
		assert.Equal(t, "file-team", client.Team())

		secrets, err := client.Secrets().List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, secrets)
	})

	t.Run("falls back to the environment", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{"NOW_TOKEN": "env-token"}

		client, err := nowclient.New(
			nowclient.WithCredentialsFs(afero.NewMemMapFs()),
			nowclient.WithHomeDir(homeDir),
			nowclient.WithPropertyLookup(noLookup),
			nowclient.WithEnvLookup(func(key string) string { return env[key] }),
		)
		require.NoError(t, err)
		assert.Empty(t, client.Team())
		assert.Equal(t, "https://api.zeit.co/", client.BaseURL())
	})

	t.Run("no token is a configuration error", func(t *testing.T) {
		t.Parallel()

		client, err := nowclient.New(isolated(afero.NewMemMapFs())...)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, now.IsConfigurationError(err))
		assert.ErrorIs(t, err, now.ErrTokenNotFound)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := nowclient.NewWithToken("test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Empty(t, client.Team())

	_, err = nowclient.NewWithToken("  ")
	require.Error(t, err)
	assert.True(t, now.IsConfigurationError(err))
	assert.ErrorIs(t, err, now.ErrBlankToken)
}

func TestNewWithTeam(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/domains", request.URL.Path)
		assert.Equal(t, "team=myteam", request.URL.RawQuery)
		assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))

		_, _ = writer.Write([]byte(`{"domains": []}`))
	}))
	defer server.Close()

	client, err := nowclient.NewWithTeam("test-token", "myteam", nowclient.WithBaseURL(server.URL))
	require.NoError(t, err)
	assert.Equal(t, "myteam", client.Team())

	domains, err := client.Domains().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []now.Domain{}, domains)
}

func TestNewWithHTTPClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Empty(t, request.Header.Get("Authorization"))
		assert.Empty(t, request.URL.RawQuery)

		_, _ = writer.Write([]byte(`{"uid": "abc123"}`))
	}))
	defer server.Close()

	client, err := nowclient.NewWithHTTPClient(server.Client(), nowclient.WithBaseURL(server.URL))
	require.NoError(t, err)

	uid, err := client.Domains().Delete(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", uid)

	_, err = nowclient.NewWithHTTPClient(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, now.ErrNilHTTPClient)
}

func TestAsyncDelivery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := nowclient.NewWithToken("test-token", nowclient.WithBaseURL(server.URL), nowclient.WithMaxConcurrency(2))
	require.NoError(t, err)

	failures := make(chan error, 1)

	client.Deployments().GetAsync(context.Background(), "dpl-1", now.Callback[*now.Deployment]{
		OnSuccess: func(*now.Deployment) { t.Error("unexpected success") },
		OnFailure: func(err error) { failures <- err },
	})

	err = <-failures
	assert.True(t, now.IsNotFound(err))
	assert.Contains(t, err.Error(), "Not Found")
}
