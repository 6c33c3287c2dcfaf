// Package httputil provides the low-level HTTP plumbing shared by the
// registry client: retry with exponential backoff for transient failures
// and a fixed-interval limiter that paces outbound requests.
//
// Retries only apply to errors wrapped in [RetryableError]; everything else
// (missing packages, decode errors, cancellation) fails fast. The limiter is
// a courtesy mechanism for public APIs, not adaptive backoff: it guarantees
// a minimum spacing between consecutive requests and nothing more.
package httputil
