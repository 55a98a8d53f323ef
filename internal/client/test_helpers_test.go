package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/now-client/internal/client"
	"github.com/fivetwenty-io/now-client/internal/credentials"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

const callbackTimeout = 5 * time.Second

// TestOperation describes one exchange with the API and the result it should produce.
type TestOperation[T any] struct {
	Name         string
	ExpectedPath string
	Method       string
	// ExpectedBody is compared as JSON. Empty means the request must have no body.
	ExpectedBody string
	StatusCode   int
	Response     string
	Want         T
	// WantStatus is the code of the expected unsuccessful response error.
	WantStatus int
	// WantTransportErr expects a transport error.
	WantTransportErr bool
}

// OperationForms binds an operation's blocking and callback forms.
type OperationForms[T any] struct {
	Sync  func(ctx context.Context, c *client.Client) (T, error)
	Async func(ctx context.Context, c *client.Client, callback now.Callback[T])
}

// NewTestClient creates a client with token "test-token" and team against server.
func NewTestClient(t *testing.T, server *httptest.Server, team string) *client.Client {
	t.Helper()

	c, err := client.New(credentials.Credentials{Token: "test-token", Team: team}, server.URL)
	require.NoError(t, err)

	return c
}

// awaitCallback invokes an async form and waits for its single completion.
func awaitCallback[T any](
	t *testing.T,
	call func(callback now.Callback[T]),
) (T, error) {
	t.Helper()

	type outcome struct {
		result T
		err    error
	}

	done := make(chan outcome, 2)

	call(now.Callback[T]{
		OnSuccess: func(result T) { done <- outcome{result: result} },
		OnFailure: func(err error) { done <- outcome{err: err} },
	})

	select {
	case got := <-done:
		select {
		case <-done:
			t.Fatal("callback completed more than once")
		case <-time.After(20 * time.Millisecond):
		}

		return got.result, got.err
	case <-time.After(callbackTimeout):
		t.Fatal("callback was never completed")
	}

	var zero T

	return zero, nil
}

// RunOperationTests runs every case through both forms of the operation and checks
// that they agree.
func RunOperationTests[T any](t *testing.T, tests []TestOperation[T], forms OperationForms[T]) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.EscapedPath())
				assert.Equal(t, testCase.Method, request.Method)
				assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))

				body, err := io.ReadAll(request.Body)
				assert.NoError(t, err)

				if testCase.ExpectedBody == "" {
					assert.Empty(t, body)
				} else {
					assert.JSONEq(t, testCase.ExpectedBody, string(body))
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)
				_, _ = writer.Write([]byte(testCase.Response))
			}))
			defer server.Close()

			c := NewTestClient(t, server, "")

			syncResult, syncErr := forms.Sync(context.Background(), c)
			asyncResult, asyncErr := awaitCallback(t, func(callback now.Callback[T]) {
				forms.Async(context.Background(), c, callback)
			})

			for _, outcome := range []struct {
				form   string
				result T
				err    error
			}{
				{form: "sync", result: syncResult, err: syncErr},
				{form: "async", result: asyncResult, err: asyncErr},
			} {
				switch {
				case testCase.WantStatus != 0:
					require.Error(t, outcome.err, outcome.form)
					assert.Equal(t, testCase.WantStatus, now.StatusCode(outcome.err), outcome.form)
				case testCase.WantTransportErr:
					require.Error(t, outcome.err, outcome.form)
					assert.True(t, now.IsTransportError(outcome.err), outcome.form)
				default:
					require.NoError(t, outcome.err, outcome.form)
					assert.Equal(t, testCase.Want, outcome.result, outcome.form)
				}
			}
		})
	}
}
