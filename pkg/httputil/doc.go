// Package httputil fetches remote job inputs.
//
// Layer sources and font files may be given as http or https URLs. They are
// downloaded with a [Client], which sets a maplabel User-Agent, maps HTTP
// status codes onto project error codes, and retries transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Retries use [Retry], which doubles the delay after every failed attempt:
//
//	c := httputil.NewClient()
//	data, err := c.Get(ctx, "https://example.org/roads.geojson")
//
// Downloaded bytes are not cached here. A run's rendered output is cached
// as a whole by the pipeline, keyed by a digest that includes these bytes.
package httputil
