// Package parser converts raw URL text into url.URL values with a single
// left-to-right pass over the input.
//
// The grammar is a simplified URL dialect, not WHATWG: a scheme followed by
// "://", then hostname, optional ":port", optional "/path", optional
// "#fragment" and optional "?query". Path, fragment and query are captured
// raw, without percent-decoding, and the hostname is normalized to its
// ASCII-compatible form before the result is returned.
//
// The one-shot entry points are all most callers need:
//
//	u, err := parser.Parse("https://example.com/docs#intro")
//
//	ok, reason := parser.IsValid("https://inval!d.com")
//
// A Parser can be reused across sequential calls to avoid the per-call
// allocation, but a single Parser must not be shared between goroutines.
// Failures are reported as *ParseError carrying one of the Kind constants.
package parser
