package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ferus-web/sanchar/hostname"
	"github.com/ferus-web/sanchar/url"
)

// state is the scanner position in the URL grammar. stateInit is the entry
// state; reaching end of input in any body state terminates the scan.
type state int

const (
	stateInit state = iota
	stateScheme
	stateHostname
	statePort
	statePath
	stateFragment
	stateQuery
)

// Parser scans URL text one byte at a time. A Parser may be reused for
// sequential parses; its state is reset after every call, success or
// failure. It is not safe for concurrent use.
type Parser struct {
	state state
	input string
	pos   int
	u     url.URL
}

// New returns a Parser in its initial state.
func New() *Parser {
	return &Parser{state: stateInit}
}

// Parse constructs a fresh Parser and parses text once. Callers that parse
// in a loop can hold a Parser and call its Parse method instead.
func Parse(text string) (url.URL, error) {
	return New().Parse(text)
}

// Parse runs one left-to-right pass over text and returns the resulting URL.
// Each state does constant work per byte, so runtime is linear in the input
// length. On failure the error is a *ParseError and no partial URL escapes.
func (p *Parser) Parse(text string) (url.URL, error) {
	p.input = text
	p.pos = 0
	p.state = stateInit
	p.u = url.URL{}
	defer p.reset()

	for p.pos < len(p.input) {
		var err error
		switch p.state {
		case stateInit:
			// Entry state, consumes nothing.
			p.state = stateScheme
		case stateScheme:
			err = p.scanScheme()
		case stateHostname:
			p.scanHostname()
		case statePort:
			err = p.scanPort()
		case statePath:
			p.scanPath()
		case stateFragment:
			p.scanFragment()
		case stateQuery:
			p.scanQuery()
		}
		if err != nil {
			return url.URL{}, err
		}
	}

	return p.finalize()
}

func (p *Parser) reset() {
	p.state = stateInit
	p.input = ""
	p.pos = 0
	p.u = url.URL{}
}

// scanScheme accumulates bytes until ':' and then demands the "//" that
// separates the scheme from the authority.
func (p *Parser) scanScheme() error {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ':' {
		p.pos++
	}
	p.u.Scheme += p.input[start:p.pos]
	if p.pos >= len(p.input) {
		return nil
	}

	if p.u.Scheme == "" {
		return newParseError(KindMissingScheme, "missing scheme")
	}
	if !strings.HasPrefix(p.input[p.pos+1:], "//") {
		return newParseError(KindSchemeSeparator, "scheme must be followed by //")
	}
	p.pos += 3
	p.state = stateHostname
	return nil
}

// scanHostname accumulates until one of the four delimiters that end the
// authority. The delimiter is consumed here; fragment and query tolerate a
// repeated separator on their own.
func (p *Parser) scanHostname() {
	start := p.pos
scan:
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '/', '#', ':', '?':
			break scan
		}
		p.pos++
	}
	p.u.Hostname += p.input[start:p.pos]
	if p.pos >= len(p.input) {
		return
	}

	switch p.input[p.pos] {
	case '/':
		p.state = statePath
	case '#':
		p.state = stateFragment
	case ':':
		p.state = statePort
	case '?':
		p.state = stateQuery
	}
	p.pos++
}

// scanPort accepts decimal digits until '/' or '#'. Any other byte is fatal.
// The digit string is converted to a number in finalize, once, at end of
// input; the value never depends on where the scan stopped.
func (p *Parser) scanPort() error {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '/' || c == '#' {
			break
		}
		return newParseError(KindPortCharacter, "invalid character %q in port", c)
	}
	p.u.PortRaw += p.input[start:p.pos]
	if p.pos >= len(p.input) {
		return nil
	}

	if p.input[p.pos] == '/' {
		p.state = statePath
	} else {
		p.state = stateFragment
	}
	p.pos++
	return nil
}

func (p *Parser) scanPath() {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '#' || c == '?' {
			break
		}
		p.pos++
	}
	p.u.Path += p.input[start:p.pos]
	if p.pos >= len(p.input) {
		return
	}

	if p.input[p.pos] == '#' {
		p.state = stateFragment
	} else {
		p.state = stateQuery
	}
	p.pos++
}

func (p *Parser) scanFragment() {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '#' || c == '?' {
			break
		}
		p.pos++
	}
	p.u.Fragment += p.input[start:p.pos]
	if p.pos >= len(p.input) {
		return
	}

	if p.input[p.pos] == '?' {
		p.state = stateQuery
	}
	// A repeated '#' is a stray separator and is skipped.
	p.pos++
}

func (p *Parser) scanQuery() {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '?' || c == '#' {
			break
		}
		p.pos++
	}
	p.u.Query += p.input[start:p.pos]
	if p.pos >= len(p.input) {
		return
	}

	if p.input[p.pos] == '#' {
		p.state = stateFragment
	}
	// A repeated '?' is a stray separator and is skipped.
	p.pos++
}

// finalize runs once per parse after the input is exhausted: it settles the
// port, encodes the hostname and checks its character set.
func (p *Parser) finalize() (url.URL, error) {
	u := p.u
	if u.Scheme == "" {
		return url.URL{}, newParseError(KindMissingScheme, "missing scheme")
	}
	u.Scheme = strings.ToLower(u.Scheme)

	if err := finalizePort(&u); err != nil {
		return url.URL{}, err
	}

	encoded, err := hostname.Encode(u.Hostname)
	if err != nil {
		return url.URL{}, &ParseError{Kind: KindHostnameEncoding, Message: err.Error(), Err: err}
	}
	u.Hostname = encoded

	if err := hostname.Validate(u.Hostname); err != nil {
		return url.URL{}, &ParseError{Kind: KindInvalidHostname, Message: err.Error(), Err: err}
	}
	return u, nil
}

// finalizePort resolves the numeric port from the raw digits, or from the
// scheme default table when no port was written. A scheme with no default
// leaves the port zero; PortRaw records that nothing was typed.
func finalizePort(u *url.URL) error {
	if u.PortRaw == "" {
		if port, ok := url.DefaultPort(u.Scheme); ok {
			u.Port = port
		}
		return nil
	}

	n, err := strconv.ParseUint(u.PortRaw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return newParseError(KindPortOutOfRange, "port %s out of range", u.PortRaw)
		}
		return newParseError(KindInvalidPort, "invalid port %q", u.PortRaw)
	}
	if n > 65535 {
		return newParseError(KindPortOutOfRange, "port %d out of range", n)
	}
	u.Port = uint16(n)
	return nil
}

// IsValid reports whether text parses, with the parse error's message as the
// reason when it does not. It never returns an error value; callers that
// need the structured Kind should call Parse directly.
func IsValid(text string) (bool, string) {
	if _, err := Parse(text); err != nil {
		return false, err.Error()
	}
	return true, ""
}
