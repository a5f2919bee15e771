// Package logging wraps a client.Client with structured, redacted
// observability output: one log record per call with method, path,
// elapsed time, status code, and optional header and body previews.
//
// Sensitive values never reach the log sink: authorization headers and
// well-known credential fields in JSON payloads are replaced with a
// fixed redaction marker, preserving the key.
//
// Basic Usage:
//
//	c := logging.Wrap(
//	    client.NewClient("https://api.example.com"),
//	    logging.WithLogger(zerolog.New(os.Stderr)),
//	)
//	defer c.Close()
//
//	resp, err := c.Post(ctx, "/items", client.JSON(item))
//
// The decorator never alters the wrapped client's success/failure
// contract: errors are logged and returned unchanged, and preview
// extraction failures are replaced with a placeholder field rather
// than propagated.
package logging
