// Package httputil provides HTTP helpers shared by the topic provider client
// and the server.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for errors
// the caller marked as transient with [Retryable]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// Typical transient failures are connection errors, timeouts and 5xx
// responses. A 404 or a decode error is returned immediately.
//
// # Status Codes
//
// [CheckStatus] turns an HTTP status into nil, a permanent error or a
// retryable one, so clients classify responses the same way.
package httputil
