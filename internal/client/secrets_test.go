package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/now-client/internal/client"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

func TestSecretsClient_List(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[[]now.Secret]{
		{
			Name:         "list secrets",
			ExpectedPath: "/now/secrets",
			Method:       "GET",
			StatusCode:   http.StatusOK,
			Response:     `{"secrets": [{"uid": "sec-1", "name": "db-password", "created": "2018-01-01T00:00:00.000Z"}]}`,
			Want:         []now.Secret{{UID: "sec-1", Name: "db-password", Created: "2018-01-01T00:00:00.000Z"}},
		},
		{
			Name:         "empty body is an empty list",
			ExpectedPath: "/now/secrets",
			Method:       "GET",
			StatusCode:   http.StatusOK,
			Want:         []now.Secret{},
		},
		{
			Name:         "server error",
			ExpectedPath: "/now/secrets",
			Method:       "GET",
			StatusCode:   http.StatusInternalServerError,
			WantStatus:   http.StatusInternalServerError,
		},
	}

	RunOperationTests(t, tests, OperationForms[[]now.Secret]{
		Sync: func(ctx context.Context, c *client.Client) ([]now.Secret, error) {
			return c.Secrets().List(ctx)
		},
		Async: func(ctx context.Context, c *client.Client, callback now.Callback[[]now.Secret]) {
			c.Secrets().ListAsync(ctx, callback)
		},
	})
}

func TestSecretsClient_Create(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[*now.Secret]{
		{
			Name:         "create secret",
			ExpectedPath: "/now/secrets",
			Method:       "POST",
			ExpectedBody: `{"name": "db-password", "value": "hunter2"}`,
			StatusCode:   http.StatusOK,
			Response:     `{"uid": "sec-1", "name": "db-password"}`,
			Want:         &now.Secret{UID: "sec-1", Name: "db-password"},
		},
		{
			Name:         "empty body is no secret",
			ExpectedPath: "/now/secrets",
			Method:       "POST",
			ExpectedBody: `{"name": "db-password", "value": "hunter2"}`,
			StatusCode:   http.StatusOK,
		},
	}

	RunOperationTests(t, tests, OperationForms[*now.Secret]{
		Sync: func(ctx context.Context, c *client.Client) (*now.Secret, error) {
			return c.Secrets().Create(ctx, "db-password", "hunter2")
		},
		Async: func(ctx context.Context, c *client.Client, callback now.Callback[*now.Secret]) {
			c.Secrets().CreateAsync(ctx, "db-password", "hunter2", callback)
		},
	})
}

func TestSecretsClient_CreateEmptyValue(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[*now.Secret]{
		{
			Name:         "empty value is sent",
			ExpectedPath: "/now/secrets",
			Method:       "POST",
			ExpectedBody: `{"name": "feature-flag", "value": ""}`,
			StatusCode:   http.StatusOK,
			Response:     `{"uid": "sec-2", "name": "feature-flag"}`,
			Want:         &now.Secret{UID: "sec-2", Name: "feature-flag"},
		},
	}

	RunOperationTests(t, tests, OperationForms[*now.Secret]{
		Sync: func(ctx context.Context, c *client.Client) (*now.Secret, error) {
			return c.Secrets().Create(ctx, "feature-flag", "")
		},
		Async: func(ctx context.Context, c *client.Client, callback now.Callback[*now.Secret]) {
			c.Secrets().CreateAsync(ctx, "feature-flag", "", callback)
		},
	})
}

func TestSecretsClient_Rename(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[*now.Secret]{
		{
			Name:         "rename secret",
			ExpectedPath: "/now/secrets/db-password",
			Method:       "PATCH",
			ExpectedBody: `{"name": "database-password"}`,
			StatusCode:   http.StatusOK,
			Response:     `{"uid": "sec-1", "name": "database-password"}`,
			Want:         &now.Secret{UID: "sec-1", Name: "database-password"},
		},
		{
			Name:         "unknown secret",
			ExpectedPath: "/now/secrets/db-password",
			Method:       "PATCH",
			ExpectedBody: `{"name": "database-password"}`,
			StatusCode:   http.StatusNotFound,
			WantStatus:   http.StatusNotFound,
		},
	}

	RunOperationTests(t, tests, OperationForms[*now.Secret]{
		Sync: func(ctx context.Context, c *client.Client) (*now.Secret, error) {
			return c.Secrets().Rename(ctx, "db-password", "database-password")
		},
		Async: func(ctx context.Context, c *client.Client, callback now.Callback[*now.Secret]) {
			c.Secrets().RenameAsync(ctx, "db-password", "database-password", callback)
		},
	})
}

func TestSecretsClient_Delete(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[*now.Secret]{
		{
			Name:         "delete secret",
			ExpectedPath: "/now/secrets/sec-1",
			Method:       "DELETE",
			StatusCode:   http.StatusOK,
			Response:     `{"uid": "sec-1", "name": "db-password"}`,
			Want:         &now.Secret{UID: "sec-1", Name: "db-password"},
		},
		{
			Name:         "empty body is no secret",
			ExpectedPath: "/now/secrets/sec-1",
			Method:       "DELETE",
			StatusCode:   http.StatusOK,
		},
	}

	RunOperationTests(t, tests, OperationForms[*now.Secret]{
		Sync: func(ctx context.Context, c *client.Client) (*now.Secret, error) {
			return c.Secrets().Delete(ctx, "sec-1")
		},
		Async: func(ctx context.Context, c *client.Client, callback now.Callback[*now.Secret]) {
			c.Secrets().DeleteAsync(ctx, "sec-1", callback)
		},
	})
}

func TestSecretsClient_DeleteRejectsDotSegments(t *testing.T) {
	t.Parallel()

	for _, uidOrName := range []string{".", ".."} {
		tests := []TestOperation[*now.Secret]{
			{
				Name:             "dot segment " + uidOrName,
				WantTransportErr: true,
			},
		}

		RunOperationTests(t, tests, OperationForms[*now.Secret]{
			Sync: func(ctx context.Context, c *client.Client) (*now.Secret, error) {
				return c.Secrets().Delete(ctx, uidOrName)
			},
			Async: func(ctx context.Context, c *client.Client, callback now.Callback[*now.Secret]) {
				c.Secrets().DeleteAsync(ctx, uidOrName, callback)
			},
		})
	}
}
