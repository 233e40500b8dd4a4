// Package browser launches parsed URLs in the user's web browser. The
// actual launching is delegated to github.com/pkg/browser, which knows the
// platform-specific commands; this package adds target handling and the
// scheme restriction that keeps non-web URLs out of the browser.
package browser

import (
	"fmt"

	"github.com/pkg/browser"

	"github.com/ferus-web/sanchar/url"
)

// Target represents the browser target for launching URLs.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetSystem uses the system default browser (alias for TargetDefault)
	TargetSystem Target = "system"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetSystem, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	t := Target(target)
	for _, valid := range ValidTargets() {
		if t == valid {
			return true
		}
	}
	return false
}

// Launch opens a parsed URL in the browser named by target. Only http and
// https URLs are launched; TargetNone is a no-op.
func Launch(u url.URL, target Target) error {
	if !IsValid(string(target)) {
		return fmt.Errorf("unsupported browser target: %s", target)
	}
	if target == TargetNone {
		return nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q URL in a browser", u.Scheme)
	}
	return browser.OpenURL(u.String())
}
