package url

import (
	"fmt"
	"strconv"
	"strings"
)

// URL is a parsed, validated URL. Path, Fragment and Query hold the raw
// substrings between delimiters, without any percent-decoding.
type URL struct {
	// Scheme is the lowercase protocol token, e.g. "https". Never empty on a
	// successfully constructed URL.
	Scheme string

	// Hostname is the dot-separated label sequence. After hostname encoding
	// every byte is one of a-z, 0-9, '-' or '.'.
	Hostname string

	// Port is the effective port, either as written or inferred from the
	// scheme default-port table.
	Port uint16

	// PortRaw is the port digit string exactly as it appeared in the input.
	// Empty when no port was written, even if Port carries a default; this
	// is what lets String reproduce the original text.
	PortRaw string

	Path     string
	Fragment string
	Query    string

	// Blob is reserved for blob-style URLs. The text parser never sets it.
	Blob string
}

// ConstructionError reports that a URL could not be assembled from
// components because the port was omitted and the scheme has no known
// default.
type ConstructionError struct {
	Scheme string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("scheme %q has no default port and none was given", e.Scheme)
}

// String returns the canonical serialization:
// scheme://hostname[:port]/path[#fragment][?query]. The port appears only
// when it was textually present in the input (PortRaw non-empty), and the
// fragment precedes the query, mirroring the order the parser accepts.
func (u URL) String() string {
	var b strings.Builder
	b.Grow(len(u.Scheme) + len(u.Hostname) + len(u.PortRaw) + len(u.Path) + len(u.Fragment) + len(u.Query) + 8)

	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Hostname)
	if u.PortRaw != "" {
		b.WriteByte(':')
		b.WriteString(u.PortRaw)
	}
	b.WriteByte('/')
	b.WriteString(u.Path)
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	return b.String()
}

// FromComponents builds a URL directly from its parts. A zero port means
// "infer from the scheme default-port table"; if the scheme has no default,
// FromComponents returns a ConstructionError. A non-zero port is recorded
// both numerically and as PortRaw, so it survives serialization.
func FromComponents(scheme, host, path, fragment string, port uint16) (URL, error) {
	b := NewBuilder().Scheme(scheme).Hostname(host).Path(path).Fragment(fragment)
	if port != 0 {
		b.Port(port)
	}
	return b.Build()
}

// Field flags used by Builder to track explicit sets.
const (
	setScheme = 1 << iota
	setHostname
	setPort
	setPath
	setFragment
	setQuery
	setBlob
)

// Builder assembles a URL one field at a time and yields an immutable value
// from Build. Each setter records that its field was explicitly given;
// setting the same field twice is construction misuse and fails Build.
type Builder struct {
	u      URL
	set    uint8
	misuse error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) mark(flag uint8, name string) {
	if b.set&flag != 0 && b.misuse == nil {
		b.misuse = fmt.Errorf("%s set twice", name)
	}
	b.set |= flag
}

// Scheme sets the protocol token. It is lowercased on Build.
func (b *Builder) Scheme(s string) *Builder {
	b.mark(setScheme, "scheme")
	b.u.Scheme = s
	return b
}

// Hostname sets the host labels.
func (b *Builder) Hostname(h string) *Builder {
	b.mark(setHostname, "hostname")
	b.u.Hostname = h
	return b
}

// Port sets an explicit port. The textual form is derived so the port
// serializes.
func (b *Builder) Port(p uint16) *Builder {
	b.mark(setPort, "port")
	b.u.Port = p
	b.u.PortRaw = strconv.FormatUint(uint64(p), 10)
	return b
}

// Path sets the path, without its leading slash.
func (b *Builder) Path(p string) *Builder {
	b.mark(setPath, "path")
	b.u.Path = p
	return b
}

// Fragment sets the fragment, without its leading '#'.
func (b *Builder) Fragment(f string) *Builder {
	b.mark(setFragment, "fragment")
	b.u.Fragment = f
	return b
}

// Query sets the query, without its leading '?'.
func (b *Builder) Query(q string) *Builder {
	b.mark(setQuery, "query")
	b.u.Query = q
	return b
}

// Blob sets the blob side channel.
func (b *Builder) Blob(v string) *Builder {
	b.mark(setBlob, "blob")
	b.u.Blob = v
	return b
}

// Build validates the accumulated fields and returns the finished URL.
// The scheme is required; when no port was set, Build infers one from the
// default-port table and returns a ConstructionError if the scheme has no
// entry.
func (b *Builder) Build() (URL, error) {
	if b.misuse != nil {
		return URL{}, b.misuse
	}
	if b.set&setScheme == 0 || b.u.Scheme == "" {
		return URL{}, fmt.Errorf("missing scheme")
	}

	u := b.u
	u.Scheme = strings.ToLower(u.Scheme)
	if b.set&setPort == 0 {
		port, ok := DefaultPort(u.Scheme)
		if !ok {
			return URL{}, &ConstructionError{Scheme: u.Scheme}
		}
		u.Port = port
	}
	return u, nil
}
