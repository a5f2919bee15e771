// Package client provides a thin, configurable HTTP API client on top of
// net/http: base-URL handling, default headers and auth, verb helpers,
// and typed errors for network failures and non-success responses.
//
// This package is designed for programmatic use and provides:
//   - A configurable client with functional options
//   - A fluent request builder pattern
//   - Response parsing utilities with lazy body decoding
//   - Typed errors (RequestError, ResponseError) with safe body previews
//
// Basic Usage:
//
//	c := client.NewClient("https://api.example.com",
//	    client.WithTimeout(30*time.Second),
//	    client.WithHeader("X-Api-Key", "abc"),
//	)
//	defer c.Close()
//
//	resp, err := c.Get(context.Background(), "/users",
//	    client.Query("limit", "10"),
//	)
//	if err != nil {
//	    var respErr *client.ResponseError
//	    if errors.As(err, &respErr) {
//	        log.Fatalf("HTTP %d from %s", respErr.StatusCode, respErr.URL)
//	    }
//	    log.Fatal(err)
//	}
//
//	var users []User
//	if err := resp.GetBodyAsJSON(&users); err != nil {
//	    log.Fatal(err)
//	}
//
// Auth Example:
//
//	c := client.NewClient("https://api.example.com",
//	    client.WithAuth(client.BearerToken("token")),
//	)
//
// Thread Safety:
//
// Client is safe for concurrent use. Multiple goroutines may invoke
// methods on a Client simultaneously, to the extent the underlying
// net/http transport is.
package client
