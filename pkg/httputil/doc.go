// Package httputil provides the HTTP plumbing shared by the checksum finder
// and the content repository client.
//
// # Overview
//
//   - [Client]: GET with a per-request timeout, default headers and
//     observability hooks
//   - [Retry]: Automatic retry with exponential backoff
//
// # Absence
//
// [Client.Fetch] treats HTTP 404 as a normal outcome and reports it through
// its ok result rather than an error. Every other non-2xx status becomes a
// [*StatusError], so callers can map it onto their own error codes while
// keeping the status:
//
//	body, ok, err := client.Fetch(ctx, url)
//	switch {
//	case err != nil:
//	    return errors.Wrap(errors.ErrCodeLookup, err, "search").WithStatus(httputil.StatusCode(err))
//	case !ok:
//	    return nil // no match
//	}
//
// # Retry
//
// [Retry] wraps an operation with automatic retry for transient failures:
//
//   - Network errors and timeouts
//   - 5xx server errors
//   - 429 rate limit responses
//
// A [Client] retries nothing by default. [WithRetries] enables extra attempts.
package httputil
