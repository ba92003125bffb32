package bresp

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

const setCookie = "Set-Cookie"

// Cookie describes a Set-Cookie header value before encoding. Either
// Value or Values is used: Values takes precedence and its elements
// are individually percent-encoded and joined with "&". Zero-valued
// fields are omitted from the encoded string.
type Cookie struct {
	Value   string
	Values  []string
	Domain  string
	Path    string
	Expires time.Time
}

// encode builds the cookie string: percent-encoded name and value(s),
// followed by the attributes that are present. Expiry is formatted as
// an RFC-1123 GMT timestamp.
func (c Cookie) encode(name string) string {
	vals := c.Values
	if vals == nil {
		vals = []string{c.Value}
	}

	var b strings.Builder
	b.WriteString(url.QueryEscape(name))
	b.WriteString("=")
	b.WriteString(strings.Join(lo.Map(vals, func(v string, _ int) string {
		return url.QueryEscape(v)
	}), "&"))

	if c.Domain != "" {
		b.WriteString("; domain=" + c.Domain)
	}

	if c.Path != "" {
		b.WriteString("; path=" + c.Path)
	}

	if !c.Expires.IsZero() {
		b.WriteString("; expires=" + c.Expires.UTC().Format(http.TimeFormat))
	}

	return b.String()
}

// SetCookie appends a plain name=value cookie to the Set-Cookie
// sequence. Name and value are percent-encoded.
func (r *Response) SetCookie(name, value string) {
	r.SetCookieWith(name, Cookie{Value: value})
}

// SetCookieWith appends a cookie with attributes to the Set-Cookie
// sequence. HTTP allows the header to occur multiple times, so
// existing entries are kept.
func (r *Response) SetCookieWith(name string, ck Cookie) {
	r.header.Add(setCookie, ck.encode(name))
}

// DeleteCookie removes every Set-Cookie entry for the name and appends
// an expiring overwrite cookie (empty value, expiry at the Unix epoch)
// that instructs the client to discard it. Domain, path or a different
// expiry can be supplied through opts and override the defaults.
//
// Matching is a literal prefix match on the encoded name up to and
// including the "=" separator, so a cookie name that is a proper
// prefix of another never matches it.
func (r *Response) DeleteCookie(name string, opts ...Cookie) {
	prefix := url.QueryEscape(name) + "="

	kept := lo.Filter(r.header.Values(setCookie), func(entry string, _ int) bool {
		return !strings.HasPrefix(entry, prefix)
	})
	r.header.Set(setCookie, kept...)

	ck := Cookie{Expires: time.Unix(0, 0)}
	if len(opts) > 0 {
		if opts[0].Domain != "" {
			ck.Domain = opts[0].Domain
		}

		if opts[0].Path != "" {
			ck.Path = opts[0].Path
		}

		if !opts[0].Expires.IsZero() {
			ck.Expires = opts[0].Expires
		}
	}

	r.SetCookieWith(name, ck)
}
