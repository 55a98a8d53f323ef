package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/now-client/internal/http"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// Static errors for err113 compliance.
var (
	ErrUnknownOperation = errors.New("unknown operation")
)

// request carries the per-call inputs of an operation.
type request struct {
	params map[string]string
	body   interface{}
	stream bool
}

// interpreter turns a successful response into the operation's result.
type interpreter[T any] func(resp *http.Response) (T, error)

// execute runs op once and interprets the outcome. Both call forms go through here.
func execute[T any](ctx context.Context, transport *http.Client, op Operation, req request, interpret interpreter[T]) (T, error) {
	var zero T

	endpoint, ok := Endpoint(op)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}

	resp, err := transport.Do(ctx, &http.Call{
		Endpoint:   endpoint,
		PathParams: req.params,
		Body:       req.body,
		Stream:     req.stream,
	})
	if err != nil {
		return zero, &now.TransportError{Op: string(op), Err: err}
	}

	if !resp.IsSuccess() {
		return zero, unsuccessful(resp)
	}

	result, err := interpret(resp)
	if err != nil {
		if now.IsUnsuccessfulResponse(err) {
			return zero, err
		}

		return zero, &now.TransportError{Op: string(op), Err: err}
	}

	return result, nil
}

// executeAsync runs execute on the transport's worker and delivers the outcome to callback.
func executeAsync[T any](
	ctx context.Context,
	transport *http.Client,
	op Operation,
	req request,
	interpret interpreter[T],
	callback now.Callback[T],
) {
	transport.Go(func() {
		callback.Complete(execute(ctx, transport, op, req, interpret))
	})
}

func unsuccessful(resp *http.Response) error {
	return &now.UnsuccessfulResponseError{StatusCode: resp.StatusCode, Message: resp.Status}
}

func isEmpty(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}

func decode(body []byte, target interface{}) error {
	err := json.Unmarshal(body, target)
	if err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	return nil
}

// listOf unwraps the collection held by envelope L. An empty body or a null
// collection yields an empty slice.
func listOf[L any, E any](extract func(L) []E) interpreter[[]E] {
	return func(resp *http.Response) ([]E, error) {
		items := []E{}

		if isEmpty(resp.Body) {
			return items, nil
		}

		var envelope L

		err := decode(resp.Body, &envelope)
		if err != nil {
			return nil, err
		}

		if extracted := extract(envelope); extracted != nil {
			items = extracted
		}

		return items, nil
	}
}

// arrayOf decodes a bare JSON array.
func arrayOf[E any]() interpreter[[]E] {
	return func(resp *http.Response) ([]E, error) {
		items := []E{}

		if isEmpty(resp.Body) {
			return items, nil
		}

		var decoded []E

		err := decode(resp.Body, &decoded)
		if err != nil {
			return nil, err
		}

		if decoded != nil {
			items = decoded
		}

		return items, nil
	}
}

// entity decodes a single object. An empty or null body gives nil, or an
// unsuccessful response error when required is set.
func entity[T any](required bool) interpreter[*T] {
	return func(resp *http.Response) (*T, error) {
		var result *T

		if !isEmpty(resp.Body) {
			err := decode(resp.Body, &result)
			if err != nil {
				return nil, err
			}
		}

		if result == nil && required {
			return nil, unsuccessful(resp)
		}

		return result, nil
	}
}

// field decodes envelope L and returns one string member of it.
func field[L any](extract func(L) string, required bool) interpreter[string] {
	return func(resp *http.Response) (string, error) {
		envelope, err := entity[L](required)(resp)
		if err != nil {
			return "", err
		}

		if envelope == nil {
			return "", nil
		}

		return extract(*envelope), nil
	}
}

// noResult discards the body.
func noResult(*http.Response) (now.NoResult, error) {
	return now.NoResult{}, nil
}

// text returns the body unparsed.
func text(resp *http.Response) (string, error) {
	return string(resp.Body), nil
}

// stream hands the open body to the caller.
func stream(resp *http.Response) (io.ReadCloser, error) {
	if resp.Stream != nil {
		return resp.Stream, nil
	}

	return io.NopCloser(bytes.NewReader(resp.Body)), nil
}
