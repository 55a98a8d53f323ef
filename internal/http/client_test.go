package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nowhttp "github.com/fivetwenty-io/now-client/internal/http"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func newClient(t *testing.T, serverURL string, opts ...nowhttp.Option) *nowhttp.Client {
	t.Helper()

	client, err := nowhttp.NewClient(serverURL, opts...)
	require.NoError(t, err)

	return client
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/now/deployments/dpl-1", request.URL.Path)
			assert.Equal(t, "GET", request.Method)

			_ = json.NewEncoder(writer).Encode(map[string]string{"uid": "dpl-1"})
		}))
		defer server.Close()

		client := newClient(t, server.URL)

		resp, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint:   nowhttp.Endpoint{Method: "GET", Path: "now/deployments/{id}"},
			PathParams: map[string]string{"id": "dpl-1"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "OK", resp.Status)
		assert.True(t, resp.IsSuccess())

		var result map[string]string

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Equal(t, "dpl-1", result["uid"])
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "example.com", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := newClient(t, server.URL)

		resp, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "POST", Path: "domains"},
			Body:     map[string]string{"name": "example.com"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("nil body on a body endpoint", func(t *testing.T) {
		t.Parallel()

		var nilMap map[string]interface{}

		tests := []struct {
			name     string
			endpoint nowhttp.Endpoint
			body     interface{}
			expected string
		}{
			{name: "untyped nil", endpoint: nowhttp.Endpoint{Method: "POST", Path: "now/deployments", Body: true}, expected: "{}"},
			{name: "nil map", endpoint: nowhttp.Endpoint{Method: "POST", Path: "now/deployments", Body: true}, body: nilMap, expected: "{}"},
			{name: "nil pointer", endpoint: nowhttp.Endpoint{Method: "POST", Path: "domains", Body: true}, body: (*struct{})(nil), expected: "{}"},
			{name: "no body endpoint", endpoint: nowhttp.Endpoint{Method: "DELETE", Path: "domains/x"}, body: nilMap, expected: ""},
		}

		for _, testCase := range tests {
			t.Run(testCase.name, func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
					received, err := io.ReadAll(request.Body)
					assert.NoError(t, err)
					assert.Equal(t, testCase.expected, string(received))
					writer.WriteHeader(http.StatusOK)
				}))
				defer server.Close()

				client := newClient(t, server.URL)

				_, err := client.Do(context.Background(), &nowhttp.Call{Endpoint: testCase.endpoint, Body: testCase.body})
				require.NoError(t, err)
			})
		}
	})

	t.Run("non 2xx is a response, not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newClient(t, server.URL)

		resp, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "GET", Path: "domains"},
		})
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "Not Found", resp.Status)
		assert.False(t, resp.IsSuccess())
	})

	t.Run("path parameters are escaped", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/now/secrets/a%2Fb", request.URL.EscapedPath())
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newClient(t, server.URL)

		_, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint:   nowhttp.Endpoint{Method: "DELETE", Path: "now/secrets/{uidOrName}"},
			PathParams: map[string]string{"uidOrName": "a/b"},
		})
		require.NoError(t, err)
	})

	t.Run("dot segment path parameters are rejected", func(t *testing.T) {
		t.Parallel()

		var paths []string

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			paths = append(paths, request.URL.EscapedPath())
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newClient(t, server.URL)

		for _, value := range []string{".", ".."} {
			_, err := client.Do(context.Background(), &nowhttp.Call{
				Endpoint:   nowhttp.Endpoint{Method: "DELETE", Path: "now/secrets/{uidOrName}"},
				PathParams: map[string]string{"uidOrName": value},
			})
			require.ErrorIs(t, err, nowhttp.ErrInvalidPathParam, value)
		}

		_, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint:   nowhttp.Endpoint{Method: "DELETE", Path: "now/secrets/{uidOrName}"},
			PathParams: map[string]string{"uidOrName": "..."},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"/now/secrets/..."}, paths)
	})

	t.Run("missing path parameter", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, "http://127.0.0.1:1")

		_, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "GET", Path: "now/deployments/{id}/files/{fileId}"},
			PathParams: map[string]string{
				"id": "dpl-1",
			},
		})
		require.ErrorIs(t, err, nowhttp.ErrMissingPathParam)
		assert.Contains(t, err.Error(), "fileId")
	})

	t.Run("streaming response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("file content"))
		}))
		defer server.Close()

		client := newClient(t, server.URL)

		resp, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "GET", Path: "now/deployments/x/files/y"},
			Stream:   true,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Stream)
		assert.Nil(t, resp.Body)

		defer resp.Stream.Close()

		content, err := io.ReadAll(resp.Stream)
		require.NoError(t, err)
		assert.Equal(t, "file content", string(content))
	})

	t.Run("connection failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := newClient(t, serverURL)

		resp, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "GET", Path: "domains"},
		})
		require.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := newClient(t, server.URL, nowhttp.WithLogger(logger), nowhttp.WithDebug(true))

		_, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "GET", Path: "domains"},
		})
		require.NoError(t, err)

		// Should have logged request and response
		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "now-cli/1.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newClient(t, server.URL, nowhttp.WithUserAgent("now-cli/1.0"))

		_, err := client.Do(context.Background(), &nowhttp.Call{
			Endpoint: nowhttp.Endpoint{Method: "GET", Path: "domains"},
		})
		require.NoError(t, err)
	})
}

func TestClient_NoRetry(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			var attempts int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				atomic.AddInt32(&attempts, 1)
				writer.WriteHeader(status)
			}))
			defer server.Close()

			client := newClient(t, server.URL)

			resp, err := client.Do(context.Background(), &nowhttp.Call{
				Endpoint: nowhttp.Endpoint{Method: "GET", Path: "now/deployments"},
			})
			require.NoError(t, err)
			assert.Equal(t, status, resp.StatusCode)
			assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
		})
	}
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := newClient(t, server.URL)

			resp, err := client.Do(context.Background(), &nowhttp.Call{
				Endpoint: nowhttp.Endpoint{Method: method, Path: "test"},
			})
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_BaseURL(t *testing.T) {
	t.Parallel()

	client := newClient(t, "https://api.example.com/v2")
	assert.Equal(t, "https://api.example.com/v2/", client.BaseURL())

	_, err := nowhttp.NewClient("not a url")
	require.ErrorIs(t, err, nowhttp.ErrInvalidBaseURL)
}

func TestClient_ResponseInterceptor(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	var (
		observedRoute  string
		observedStatus int
	)

	client := newClient(t, server.URL, nowhttp.WithResponseInterceptor(
		func(ctx context.Context, req nowhttp.Request, resp *nowhttp.Response, err error) {
			observedRoute = req.Route
			observedStatus = resp.StatusCode
		}))

	_, err := client.Do(context.Background(), &nowhttp.Call{
		Endpoint:   nowhttp.Endpoint{Method: "GET", Path: "domains/{name}/records"},
		PathParams: map[string]string{"name": "example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "domains/{name}/records", observedRoute)
	assert.Equal(t, http.StatusAccepted, observedStatus)
}

func TestClient_GoRespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	client := newClient(t, "http://127.0.0.1:1", nowhttp.WithMaxConcurrency(2))

	var (
		running int32
		peak    int32
		wg      sync.WaitGroup
	)

	for range 6 {
		wg.Add(1)

		client.Go(func() {
			defer wg.Done()

			current := atomic.AddInt32(&running, 1)
			for {
				observed := atomic.LoadInt32(&peak)
				if current <= observed || atomic.CompareAndSwapInt32(&peak, observed, current) {
					break
				}
			}

			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		})
	}

	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}
