// Package url defines the URL value produced by the sanchar parser: a plain
// struct carrying scheme, hostname, port, path, fragment and query, plus its
// canonical string form and the scheme default-port table.
//
// Values are constructed either by the parser (package parser) or directly
// from components:
//
//	import "github.com/ferus-web/sanchar/url"
//
//	u, err := url.FromComponents("https", "example.com", "api/v1", "", 0)
//	if err != nil {
//		return err
//	}
//	fmt.Println(u.Port)     // 443, inferred from the scheme
//	fmt.Println(u.String()) // https://example.com/api/v1
//
// A URL is a value type: copies are independent and nothing mutates a URL
// after construction. Callers that need to assemble one field at a time use
// Builder, which tracks which fields were set and rejects misuse such as
// setting the same field twice.
package url
