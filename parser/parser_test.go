package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/ferus-web/sanchar/url"
)

func TestParseComponents(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantScheme   string
		wantHostname string
		wantPort     uint16
		wantPortRaw  string
		wantPath     string
		wantFragment string
		wantQuery    string
	}{
		{
			name:         "host only",
			input:        "https://example.com",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
		},
		{
			name:         "path",
			input:        "https://example.com/this/is/a/path",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPath:     "this/is/a/path",
		},
		{
			name:         "explicit port",
			input:        "http://example.com:8080/app",
			wantScheme:   "http",
			wantHostname: "example.com",
			wantPort:     8080,
			wantPortRaw:  "8080",
			wantPath:     "app",
		},
		{
			name:         "explicit default port keeps raw text",
			input:        "https://example.com:443/",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPortRaw:  "443",
		},
		{
			name:         "fragment",
			input:        "https://example.com/docs#intro",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPath:     "docs",
			wantFragment: "intro",
		},
		{
			name:         "query",
			input:        "https://example.com/search?q=term&lang=en",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPath:     "search",
			wantQuery:    "q=term&lang=en",
		},
		{
			name:         "fragment then query",
			input:        "https://example.com/p#section?a=1",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPath:     "p",
			wantFragment: "section",
			wantQuery:    "a=1",
		},
		{
			name:         "fragment directly after host",
			input:        "https://example.com#top",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantFragment: "top",
		},
		{
			name:         "query directly after host",
			input:        "https://example.com?q=1",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantQuery:    "q=1",
		},
		{
			name:         "repeated hash is a stray separator",
			input:        "https://example.com/p#one#two",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPath:     "p",
			wantFragment: "onetwo",
		},
		{
			name:         "colon with no digits falls back to default",
			input:        "https://example.com:/p",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
			wantPath:     "p",
		},
		{
			name:         "port terminated by fragment",
			input:        "http://example.com:81#f",
			wantScheme:   "http",
			wantHostname: "example.com",
			wantPort:     81,
			wantPortRaw:  "81",
			wantFragment: "f",
		},
		{
			name:         "uppercase scheme is lowered",
			input:        "HTTPS://example.com",
			wantScheme:   "https",
			wantHostname: "example.com",
			wantPort:     443,
		},
		{
			name:         "unknown scheme has no default port",
			input:        "gopher://example.com/menu",
			wantScheme:   "gopher",
			wantHostname: "example.com",
			wantPort:     0,
			wantPath:     "menu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error = %v", tt.input, err)
			}

			if u.Scheme != tt.wantScheme {
				t.Errorf("scheme = %q, want %q", u.Scheme, tt.wantScheme)
			}
			if u.Hostname != tt.wantHostname {
				t.Errorf("hostname = %q, want %q", u.Hostname, tt.wantHostname)
			}
			if u.Port != tt.wantPort {
				t.Errorf("port = %d, want %d", u.Port, tt.wantPort)
			}
			if u.PortRaw != tt.wantPortRaw {
				t.Errorf("portRaw = %q, want %q", u.PortRaw, tt.wantPortRaw)
			}
			if u.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", u.Path, tt.wantPath)
			}
			if u.Fragment != tt.wantFragment {
				t.Errorf("fragment = %q, want %q", u.Fragment, tt.wantFragment)
			}
			if u.Query != tt.wantQuery {
				t.Errorf("query = %q, want %q", u.Query, tt.wantQuery)
			}
			if u.Blob != "" {
				t.Errorf("blob = %q, the text parser must never set it", u.Blob)
			}
		})
	}
}

func TestParseDefaultPorts(t *testing.T) {
	tests := []struct {
		input string
		want  uint16
	}{
		{"ftp://x", 20},
		{"http://x", 80},
		{"https://x", 443},
		{"gemini://x", 1965},
	}

	for _, tt := range tests {
		u, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error = %v", tt.input, err)
		}
		if u.Port != tt.want {
			t.Errorf("Parse(%q).Port = %d, want %d", tt.input, u.Port, tt.want)
		}
		if u.PortRaw != "" {
			t.Errorf("Parse(%q).PortRaw = %q, want empty for an inferred port", tt.input, u.PortRaw)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		errMsg   string
	}{
		{
			name:     "missing scheme",
			input:    "://nothing",
			wantKind: KindMissingScheme,
			errMsg:   "missing scheme",
		},
		{
			name:     "empty input",
			input:    "",
			wantKind: KindMissingScheme,
			errMsg:   "missing scheme",
		},
		{
			name:     "single slash after scheme",
			input:    "https:/example.com",
			wantKind: KindSchemeSeparator,
			errMsg:   "scheme must be followed by //",
		},
		{
			name:     "nothing after colon",
			input:    "https:",
			wantKind: KindSchemeSeparator,
			errMsg:   "scheme must be followed by //",
		},
		{
			name:     "letter in port",
			input:    "https://example.com:9a9/",
			wantKind: KindPortCharacter,
			errMsg:   "invalid character 'a' in port",
		},
		{
			name:     "query delimiter in port",
			input:    "https://example.com:?q",
			wantKind: KindPortCharacter,
			errMsg:   "invalid character '?' in port",
		},
		{
			name:     "port above 16 bits",
			input:    "https://example.com:70000/",
			wantKind: KindPortOutOfRange,
			errMsg:   "port 70000 out of range",
		},
		{
			name:     "absurdly long port",
			input:    "https://example.com:99999999999999999999/",
			wantKind: KindPortOutOfRange,
			errMsg:   "out of range",
		},
		{
			name:     "invalid hostname character",
			input:    "https://inval!d.com",
			wantKind: KindInvalidHostname,
			errMsg:   "invalid character '!' in hostname",
		},
		{
			name:     "uppercase hostname",
			input:    "https://Example.com",
			wantKind: KindInvalidHostname,
			errMsg:   "invalid character 'E' in hostname",
		},
		{
			name:     "underscore in hostname",
			input:    "https://my_host.com",
			wantKind: KindInvalidHostname,
			errMsg:   "invalid character '_' in hostname",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error but got nil", tt.input)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Parse(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
			if perr.Kind != tt.wantKind {
				t.Errorf("Parse(%q) kind = %d, want %d", tt.input, perr.Kind, tt.wantKind)
			}
		})
	}
}

func TestParseHostnameEncoding(t *testing.T) {
	encoded, err := Parse("https://xn--80aswg.xn--p1ai/")
	if err != nil {
		t.Fatalf("Parse(encoded) unexpected error = %v", err)
	}
	if encoded.Hostname != "xn--80aswg.xn--p1ai" {
		t.Errorf("encoded hostname round-trip = %q, want %q", encoded.Hostname, "xn--80aswg.xn--p1ai")
	}

	unicode, err := Parse("https://сайт.рф")
	if err != nil {
		t.Fatalf("Parse(unicode) unexpected error = %v", err)
	}
	if unicode.Hostname != encoded.Hostname {
		t.Errorf("unicode hostname = %q, want same as encoded form %q", unicode.Hostname, encoded.Hostname)
	}
}

func TestParseTLD(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://a.gov.in", ".gov.in"},
		{"https://a.com", ".com"},
		{"https://localhost", ""},
	}

	for _, tt := range tests {
		u, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error = %v", tt.input, err)
		}
		if got := u.TLD(); got != tt.want {
			t.Errorf("Parse(%q).TLD() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Serializing a parsed URL and parsing the result must yield identical
// fields, for inputs without non-ASCII hostname content.
func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"https://example.com",
		"https://example.com/",
		"https://example.com/a/b/c",
		"http://example.com:8080/a?k=v",
		"https://example.com/p#frag",
		"https://example.com/p#frag?k=v",
		"ftp://files.example.com:2121/pub",
		"gemini://example.com/capsule",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error = %v", input, err)
			}
			second, err := Parse(first.String())
			if err != nil {
				t.Fatalf("reparse of %q unexpected error = %v", first.String(), err)
			}
			if first != second {
				t.Errorf("round trip mismatch:\n first = %#v\nsecond = %#v", first, second)
			}
		})
	}
}

func TestParserReuse(t *testing.T) {
	p := New()

	u, err := p.Parse("https://example.com/a")
	if err != nil {
		t.Fatalf("first Parse unexpected error = %v", err)
	}
	if u.Path != "a" {
		t.Errorf("first Parse path = %q, want %q", u.Path, "a")
	}

	// A failed parse must also leave the parser reusable.
	if _, err := p.Parse("://broken"); err == nil {
		t.Fatal("second Parse expected error but got nil")
	}

	u, err = p.Parse("http://other.example.com:81/b#f")
	if err != nil {
		t.Fatalf("third Parse unexpected error = %v", err)
	}
	if u.Hostname != "other.example.com" || u.Port != 81 || u.Path != "b" || u.Fragment != "f" {
		t.Errorf("third Parse leaked state from earlier calls: %#v", u)
	}
}

// The port is finalized once, at a delimiter or end of input, never from a
// partial digit run. These cases pin down that intermediate digit states
// have no observable effect.
func TestPortFinalizationTiming(t *testing.T) {
	tests := []struct {
		input    string
		wantPort uint16
	}{
		// Digits keep accumulating across the whole run; "8" then "80" then
		// "808" then "8080" must not latch an intermediate value.
		{"http://x:8080/", 8080},
		// End of input directly after digits.
		{"http://x:65535", 65535},
		// Delimiter directly after a single digit.
		{"http://x:9/", 9},
	}

	for _, tt := range tests {
		u, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error = %v", tt.input, err)
		}
		if u.Port != tt.wantPort {
			t.Errorf("Parse(%q).Port = %d, want %d", tt.input, u.Port, tt.wantPort)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOK     bool
		wantReason string
	}{
		{"valid", "https://example.com/a", true, ""},
		{"missing scheme", "://nothing", false, "missing scheme"},
		{"bad separator", "https:example.com", false, "scheme must be followed by //"},
		{"bad hostname", "https://inval!d.com", false, "invalid character '!' in hostname"},
		{"bad port", "https://example.com:70000", false, "port 70000 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := IsValid(tt.input)
			if ok != tt.wantOK {
				t.Errorf("IsValid(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if (reason == "") != (tt.wantReason == "") {
				t.Errorf("IsValid(%q) reason = %q, want empty iff ok", tt.input, reason)
			}
			if tt.wantReason != "" && !strings.Contains(reason, tt.wantReason) {
				t.Errorf("IsValid(%q) reason = %q, want containing %q", tt.input, reason, tt.wantReason)
			}
		})
	}
}

func TestParseLongInput(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("a/", 50000)
	u, err := Parse(long)
	if err != nil {
		t.Fatalf("Parse(long) unexpected error = %v", err)
	}
	if len(u.Path) != len(long)-len("https://example.com/") {
		t.Errorf("path length = %d, want %d", len(u.Path), len(long)-len("https://example.com/"))
	}
}

func BenchmarkParse(b *testing.B) {
	p := New()
	for i := 0; i < b.N; i++ {
		if _, err := p.Parse("https://example.com:8080/some/long/path#frag?k=v&x=y"); err != nil {
			b.Fatal(err)
		}
	}
}

// Text parsing and direct construction must agree on equivalent inputs.
func TestParseMatchesFromComponents(t *testing.T) {
	parsed, err := Parse("https://example.com/a#f")
	if err != nil {
		t.Fatalf("Parse unexpected error = %v", err)
	}
	built, err := url.FromComponents("https", "example.com", "a", "f", 0)
	if err != nil {
		t.Fatalf("FromComponents unexpected error = %v", err)
	}
	if parsed != built {
		t.Errorf("parsed = %#v, built = %#v", parsed, built)
	}
}
