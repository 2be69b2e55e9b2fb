// Package httpclient delivers envelopes over HTTP.
//
// Each Post makes a single attempt: there are no retries. A token bucket
// from golang.org/x/time/rate optionally limits the request rate. A 429 is
// reported like any other non-2xx status and does not delay later calls.
package httpclient
