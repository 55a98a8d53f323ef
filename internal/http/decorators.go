package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/now-client/internal/constants"
)

// NoTeam is the team value meaning "no team scoping".
const NoTeam = ""

// Request is an outbound request as seen by decorators.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
	// Route is the endpoint path template the request was built from.
	Route string
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	clone := r

	if r.URL != nil {
		u := *r.URL
		clone.URL = &u
	}

	clone.Header = r.Header.Clone()
	if clone.Header == nil {
		clone.Header = make(http.Header)
	}

	return clone
}

// RequestDecorator transforms a request before it is sent. Decorators return a new
// value and never modify the request they are given.
type RequestDecorator func(req Request) Request

// DecoratorChain applies an ordered list of decorators.
type DecoratorChain struct {
	decorators []RequestDecorator
}

// NewDecoratorChain creates a chain applying decorators in the given order.
func NewDecoratorChain(decorators ...RequestDecorator) *DecoratorChain {
	chain := &DecoratorChain{
		decorators: make([]RequestDecorator, 0, len(decorators)),
	}

	for _, decorator := range decorators {
		chain.Add(decorator)
	}

	return chain
}

// Add appends a decorator to the chain.
func (c *DecoratorChain) Add(decorator RequestDecorator) {
	if decorator != nil {
		c.decorators = append(c.decorators, decorator)
	}
}

// Len returns the number of decorators in the chain.
func (c *DecoratorChain) Len() int {
	return len(c.decorators)
}

// Apply threads req through every decorator and returns the result.
func (c *DecoratorChain) Apply(req Request) Request {
	for _, decorator := range c.decorators {
		req = decorator(req)
	}

	return req
}

// HeaderDecorator sets the JSON content type and the client identification header.
func HeaderDecorator() RequestDecorator {
	return func(req Request) Request {
		out := req.Clone()
		out.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
		out.Header.Set(constants.HeaderRequestedBy, constants.ClientID)

		return out
	}
}

// AuthDecorator sets the bearer token captured at construction.
func AuthDecorator(token string) RequestDecorator {
	value := "Bearer " + token

	return func(req Request) Request {
		out := req.Clone()
		out.Header.Set(constants.HeaderAuthorization, value)

		return out
	}
}

// TeamDecorator appends the team query parameter. A blank team, or NoTeam, leaves
// requests unchanged.
func TeamDecorator(team string) RequestDecorator {
	team = strings.TrimSpace(team)

	return func(req Request) Request {
		if team == NoTeam || req.URL == nil {
			return req
		}

		out := req.Clone()
		query := out.URL.Query()
		query.Add(constants.TeamQueryParam, team)
		out.URL.RawQuery = query.Encode()

		return out
	}
}

// DefaultDecorators returns the header, auth and team decorators in that order.
func DefaultDecorators(token, team string) []RequestDecorator {
	return []RequestDecorator{
		HeaderDecorator(),
		AuthDecorator(token),
		TeamDecorator(team),
	}
}
