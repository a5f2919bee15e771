package client

import "net/http"

// Auth applies a credential to an outgoing request. Implementations are
// opaque to the client; they are invoked once per request, after default
// and per-request headers have been set.
type Auth interface {
	Apply(req *http.Request)
}

// BasicAuth is an Auth that sets HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

// Apply sets the Authorization header using basic auth.
func (a BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

// BearerToken is an Auth that sets a bearer token Authorization header.
type BearerToken string

// Apply sets the Authorization header to "Bearer <token>".
func (t BearerToken) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+string(t))
}
