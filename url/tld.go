package url

import "strings"

// TLD returns the hostname suffix from the first dot (inclusive) to the end
// of the string, or "" when the hostname has no dot. The rule is purely
// textual: "a.gov.in" yields ".gov.in" with no public-suffix-list lookup, so
// multi-label suffixes come back verbatim.
func (u URL) TLD() string {
	if i := strings.IndexByte(u.Hostname, '.'); i >= 0 {
		return u.Hostname[i:]
	}
	return ""
}
