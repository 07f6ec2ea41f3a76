// Package source fetches the topic graph that feeds the layout engine.
//
// Two providers are available. [Client] talks to the content API's
// /analytics/thoughts/topics endpoint; it caches raw responses through a
// [cache.Cache], retries transient failures with exponential backoff and
// stops calling a failing upstream through a circuit breaker.
// [FileProvider] reads the same JSON from disk for offline use.
//
//	c, err := source.NewClient("https://api.example.com", cache.NewNullCache())
//	if err != nil {
//		return err
//	}
//	g, cached, err := c.FetchTopics(ctx, false)
//
// Both providers return coded errors from pkg/errors so callers can map
// failures to exit codes or HTTP statuses.
package source
