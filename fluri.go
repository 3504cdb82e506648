/*
Package fluri builds URLs of a small set of schemes through fluent setters.

	s, err := fluri.Build(fluri.HTTPS).
		SetHost("example.com").
		ShowWWW(true).
		AddRouteParam("users/{id}").
		SetRouteParam("id", "42").
		AddQueryField("tab", "repositories").
		Build(true)

Each scheme has its own variant (`HTTPURL`, `FileURL`, `DataURL`, `TelnetURL`
and `MailtoURL`) that owns the fields the scheme needs. The `HTTPURL` can also
be parsed from a string and modified before being built again.

A variant is owned by its creator and is not safe for concurrent use. The
`Registry` is the concurrency-safe way to share URL templates.
*/
package fluri

import (
	"net/url"
	"strconv"
	"strings"
)

// Scheme pairs a URL variant with the literal prefix it is built with.
type Scheme[T any] struct {
	name   string
	prefix string
	new    func(prefix string) *T
}

// Name returns the name of the s.
func (s Scheme[T]) Name() string {
	return s.name
}

// Prefix returns the prefix of the s.
func (s Scheme[T]) Prefix() string {
	return s.prefix
}

// The supported schemes.
var (
	HTTP   = Scheme[HTTPURL]{"http", "http://", newHTTPURL}
	HTTPS  = Scheme[HTTPURL]{"https", "https://", newHTTPURL}
	FILE   = Scheme[FileURL]{"file", "file://", newFileURL}
	FTP    = Scheme[FileURL]{"ftp", "ftp://", newFileURL}
	FTPS   = Scheme[FileURL]{"ftps", "ftps://", newFileURL}
	SFTP   = Scheme[FileURL]{"sftp", "sftp://", newFileURL}
	DATA   = Scheme[DataURL]{"data", "data:", newDataURL}
	TELNET = Scheme[TelnetURL]{"telnet", "telnet://", newTelnetURL}
	MAILTO = Scheme[MailtoURL]{"mailto", "mailto:", newMailtoURL}
)

// Build returns a pointer of a new empty instance of the variant of the s.
func Build[T any](s Scheme[T]) *T {
	return s.new(s.prefix)
}

// URL is the common behavior of all URL variants.
type URL interface {
	// Prefix returns the scheme prefix, such as "http://" or "mailto:".
	Prefix() string

	// Build serializes the URL. The components are percent-encoded when the
	// encode is true.
	Build(encode bool) (string, error)

	// String returns the unencoded URL, or "" if it cannot be built.
	String() string

	// URL parses the built URL into a `url.URL`.
	URL(encode bool) (*url.URL, error)
}

// schemeNames maps the scheme names to their variant builders.
var schemeNames = map[string]func() URL{
	HTTP.name:   func() URL { return Build(HTTP) },
	HTTPS.name:  func() URL { return Build(HTTPS) },
	FILE.name:   func() URL { return Build(FILE) },
	FTP.name:    func() URL { return Build(FTP) },
	FTPS.name:   func() URL { return Build(FTPS) },
	SFTP.name:   func() URL { return Build(SFTP) },
	DATA.name:   func() URL { return Build(DATA) },
	TELNET.name: func() URL { return Build(TELNET) },
	MAILTO.name: func() URL { return Build(MAILTO) },
}

// New returns a new empty URL variant for the scheme name. The name is case
// insensitive and may carry the prefix punctuation ("https://", "mailto:").
func New(name string) (URL, error) {
	n := strings.ToLower(strings.TrimRight(name, ":/"))
	if nu, ok := schemeNames[n]; ok {
		return nu(), nil
	}

	return nil, ErrUnknownScheme
}

// SchemeName returns the scheme name of the u, such as "https".
func SchemeName(u URL) string {
	return strings.TrimRight(u.Prefix(), ":/")
}

// MustBuild is like the `URL#Build()` but panics if the u cannot be built.
func MustBuild(u URL, encode bool) string {
	s, err := u.Build(encode)
	if err != nil {
		panic(err)
	}

	return s
}

// stripPrefix removes the first of the prefixes found at the start of the s.
func stripPrefix(s string, prefixes ...string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return s[len(p):]
		}
	}

	return s
}

// splitSegments splits the s into trimmed non-empty path segments if it
// contains any "/". Otherwise the s is the only segment.
func splitSegments(s string) []string {
	if !strings.Contains(s, "/") {
		return []string{s}
	}

	var ss []string
	for _, p := range strings.Split(s, "/") {
		if p = strings.TrimSpace(p); p != "" {
			ss = append(ss, p)
		}
	}

	return ss
}

// removeFirst removes the first element of the ss that equals to the s.
func removeFirst(ss []string, s string) []string {
	for i, v := range ss {
		if v == s {
			return append(ss[:i:i], ss[i+1:]...)
		}
	}

	return ss
}

// writePath writes the segments into the b joined by "/" with a leading "/".
// A trailing "/" is added when the last segment has no "." since it is taken
// as a directory.
func writePath(b *strings.Builder, segments []string, encode, forHTTP bool) {
	b.WriteByte('/')

	s := ""
	for i, segment := range segments {
		s = segment
		if encode {
			s = Escape(s, forHTTP)
		}

		if i > 0 {
			b.WriteByte('/')
		}

		b.WriteString(s)
	}

	if !strings.Contains(s, ".") {
		b.WriteByte('/')
	}
}

// writeUserinfo writes the username and password into the b. The ":" and the
// "@" are only written when the username is set.
func writeUserinfo(b *strings.Builder, username, password string, encode bool) {
	if username != "" {
		if encode {
			username = Escape(username, false)
		}

		b.WriteString(username)
	}

	if password != "" {
		if username != "" {
			b.WriteByte(':')
		}

		if encode {
			password = Escape(password, false)
		}

		b.WriteString(password)
	}

	if username != "" {
		b.WriteByte('@')
	}
}

// writePort writes the ":port" into the b when the set is true.
func writePort(b *strings.Builder, port int, set bool) {
	if set {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(port))
	}
}

// parseBuilt parses the s built from a URL variant into a `url.URL`.
func parseBuilt(s string, err error) (*url.URL, error) {
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, &MalformedURLError{
			URL: s,
			Err: err,
		}
	}

	return u, nil
}
