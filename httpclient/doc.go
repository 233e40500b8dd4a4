// Package httpclient fetches resources addressed by parsed URL values.
//
// It sits downstream of the parser: Fetch takes a url.URL whose scheme,
// hostname, port, path and query were already validated and normalized, and
// turns it into an HTTP request. The client retries 5xx responses and
// transient network failures, never 4xx; a per-host circuit breaker stops
// hammering hosts that keep failing, and an optional per-host rate limiter
// caps request throughput. Prometheus metrics cover request durations,
// totals, errors and breaker state.
//
//	cfg := httpclient.DefaultConfig()
//	client := httpclient.New(cfg)
//
//	u, err := parser.Parse("https://example.com/api?limit=10")
//	if err != nil {
//		return err
//	}
//	resp, err := client.Fetch(ctx, u)
//
// Configuration can also be loaded from a YAML file with LoadConfig.
package httpclient
