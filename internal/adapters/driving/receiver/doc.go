// Package receiver is a reference endpoint for the relay. It accepts the
// v1, v2 and v2-urlpath schemas, checks that every payload is base64 of a
// packed item, verifies v1 hashes and answers 409 for duplicates, which
// the relay reports as already delivered. Held records can be listed,
// counted and fetched by time through the archive server's GET routes.
package receiver
