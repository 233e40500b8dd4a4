// Package hostname normalizes hostnames into their ASCII-compatible form and
// validates the character set the rest of the library relies on.
//
// Encoding is applied per dot-separated label: labels that are already ASCII
// pass through unchanged, labels with non-ASCII code points are punycoded and
// gain the "xn--" prefix. Running Encode over already-encoded output is a
// no-op, so it is safe to encode exactly once per parse.
package hostname

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Encode returns the ASCII-compatible form of host. ASCII input is returned
// as-is without touching the idna machinery.
func Encode(host string) (string, error) {
	if isASCII(host) {
		return host, nil
	}
	encoded, err := idna.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("hostname encoding failed: %w", err)
	}
	return encoded, nil
}

// Validate checks that every byte of an encoded hostname is one of
// a-z, 0-9, '-' or '.'. It reports the first offending byte.
func Validate(host string) error {
	for i := 0; i < len(host); i++ {
		c := host[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '.' {
			continue
		}
		return fmt.Errorf("invalid character %q in hostname", c)
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
