package fluri

import (
	"net/url"
	"strconv"
	"strings"
)

// httpState is the building state of an `HTTPURL`.
type httpState uint8

// The building states.
const (
	httpStateEmpty httpState = iota
	httpStateParsed
	httpStateManual
)

// QueryField is a name-value pair of a URL query.
type QueryField struct {
	Name  string `json:"name" yaml:"name" toml:"name" msgpack:"name" mapstructure:"name"`
	Value string `json:"value" yaml:"value" toml:"value" msgpack:"value" mapstructure:"value"`
}

// HTTPURL is an "http://" or "https://" URL.
type HTTPURL struct {
	prefix      string
	host        string
	port        int
	portSet     bool
	shownWWW    bool
	routeParams []string
	queryFields []QueryField
	fragment    string
	source      string
	state       httpState
}

// newHTTPURL returns a pointer of a new instance of the `HTTPURL`.
func newHTTPURL(prefix string) *HTTPURL {
	return &HTTPURL{
		prefix: prefix,
	}
}

// Prefix implements the `URL#Prefix()`.
func (u *HTTPURL) Prefix() string {
	return u.prefix
}

// Host returns the host of the u.
func (u *HTTPURL) Host() string {
	return u.host
}

// Port returns the port of the u and whether it is set.
func (u *HTTPURL) Port() (int, bool) {
	return u.port, u.portSet
}

// IsWWWShown reports whether the "www." is shown in front of the host.
func (u *HTTPURL) IsWWWShown() bool {
	return u.shownWWW
}

// RouteParams returns a copy of the route parameters of the u.
func (u *HTTPURL) RouteParams() []string {
	return append([]string(nil), u.routeParams...)
}

// QueryFields returns a copy of the query fields of the u in their insertion
// order.
func (u *HTTPURL) QueryFields() []QueryField {
	return append([]QueryField(nil), u.queryFields...)
}

// QueryField returns the value of the query field for the name.
func (u *HTTPURL) QueryField(name string) (string, bool) {
	if i := u.queryFieldIndex(name); i >= 0 {
		return u.queryFields[i].Value, true
	}

	return "", false
}

// Fragment returns the fragment of the u.
func (u *HTTPURL) Fragment() string {
	return u.fragment
}

// Source returns the string the u was parsed from.
func (u *HTTPURL) Source() string {
	return u.source
}

// SetHost sets the host of the u. All "/" in the host are removed.
func (u *HTTPURL) SetHost(host string) *HTTPURL {
	u.touch()
	u.host = strings.ReplaceAll(host, "/", "")
	return u
}

// SetPort sets the port of the u. A negative port clears it.
func (u *HTTPURL) SetPort(port int) *HTTPURL {
	u.touch()
	u.port, u.portSet = port, port >= 0
	if !u.portSet {
		u.port = 0
	}

	return u
}

// ClearPort clears the port of the u.
func (u *HTTPURL) ClearPort() *HTTPURL {
	return u.SetPort(-1)
}

// ShowWWW sets whether the "www." is shown in front of the host.
func (u *HTTPURL) ShowWWW(status bool) *HTTPURL {
	u.touch()
	u.shownWWW = status
	return u
}

// AddRouteParam appends the param to the route parameters of the u. A param
// containing "/" is split into several route parameters.
func (u *HTTPURL) AddRouteParam(param string) *HTTPURL {
	u.touch()
	u.routeParams = append(u.routeParams, splitSegments(param)...)
	return u
}

// RemoveRouteParam removes the first route parameter that equals to the param.
func (u *HTTPURL) RemoveRouteParam(param string) *HTTPURL {
	u.touch()
	u.routeParams = removeFirst(u.routeParams, param)
	return u
}

// SetRouteParam replaces the route parameters in the form of "{name}" with the
// value.
func (u *HTTPURL) SetRouteParam(name, value string) *HTTPURL {
	u.touch()

	placeholder := "{" + name + "}"
	for i, p := range u.routeParams {
		if p == placeholder {
			u.routeParams[i] = value
		}
	}

	return u
}

// AddQueryField sets the query field for the name to the value. An existing
// field keeps its position.
func (u *HTTPURL) AddQueryField(name, value string) *HTTPURL {
	u.touch()
	u.putQueryField(name, value)
	return u
}

// RemoveQueryField removes the query field for the name.
func (u *HTTPURL) RemoveQueryField(name string) *HTTPURL {
	u.touch()
	if i := u.queryFieldIndex(name); i >= 0 {
		u.queryFields = append(
			u.queryFields[:i:i],
			u.queryFields[i+1:]...,
		)
	}

	return u
}

// SetFragment sets the fragment of the u.
func (u *HTTPURL) SetFragment(fragment string) *HTTPURL {
	u.touch()
	u.fragment = fragment
	return u
}

// ClearFragment clears the fragment of the u.
func (u *HTTPURL) ClearFragment() *HTTPURL {
	return u.SetFragment("")
}

// Parse parses the s into the u. It can only be called once and only before
// any field of the u is set.
//
// The route parameters in the form of "{name}" can be filled later with the
// `HTTPURL#SetRouteParam()`.
func (u *HTTPURL) Parse(s string) (*HTTPURL, error) {
	if u.state != httpStateEmpty {
		return u, ErrParseStarted
	}

	u.state = httpStateParsed
	u.source = s

	cs := stripPrefix(s, "https://", "http://")

	pu, err := url.Parse("http://" + cs)
	if err != nil {
		return u, &MalformedURLError{
			URL: s,
			Err: err,
		}
	}

	u.host = pu.Hostname()
	if len(strings.Split(u.host, ".")) >= 3 &&
		strings.HasPrefix(u.host, "www") {
		u.shownWWW = true
		u.host = strings.Replace(u.host, "www.", "", 1)
	}

	if p := pu.Port(); p != "" {
		if u.port, err = strconv.Atoi(p); err != nil {
			return u, &MalformedURLError{
				URL: s,
				Err: err,
			}
		}

		u.portSet = true
	}

	for _, p := range strings.Split(rawPath(cs), "/") {
		if strings.TrimSpace(p) != "" {
			u.routeParams = append(u.routeParams, p)
		}
	}

	u.queryFields = ParseQueryFields(pu.RawQuery)

	if i := strings.IndexByte(cs, '#'); i >= 0 {
		u.fragment = cs[i+1:]
	}

	return u, nil
}

// Build implements the `URL#Build()`.
func (u *HTTPURL) Build(encode bool) (string, error) {
	if u.host == "" {
		return "", &BuildError{
			Prefix: u.prefix,
			Field:  "host",
		}
	}

	b := strings.Builder{}
	b.WriteString(u.prefix)

	host := stripPrefix(u.host, "https://", "http://", "https:", "http:")
	if u.shownWWW {
		b.WriteString("www.")
		if len(strings.Split(host, ".")) >= 3 &&
			strings.HasPrefix(host, "www") {
			host = strings.Replace(host, "www.", "", 1)
		}
	}

	b.WriteString(host)
	writePort(&b, u.port, u.portSet)

	slashed := false
	if len(u.routeParams) > 0 {
		writePath(&b, u.routeParams, encode, true)
		slashed = true
	}

	if len(u.queryFields) > 0 {
		if !slashed {
			b.WriteByte('/')
			slashed = true
		}

		b.WriteByte('?')
		for i, f := range u.queryFields {
			name, value := f.Name, f.Value
			if encode {
				name, value = Escape(name, true), Escape(value, true)
			}

			if i > 0 {
				b.WriteByte('&')
			}

			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(value)
		}
	}

	if u.fragment != "" {
		fragment := u.fragment
		if encode {
			fragment = Escape(fragment, true)
		}

		if !slashed {
			b.WriteByte('/')
		}

		b.WriteByte('#')
		b.WriteString(fragment)
	}

	return b.String(), nil
}

// String implements the `URL#String()`.
func (u *HTTPURL) String() string {
	s, _ := u.Build(false)
	return s
}

// URL implements the `URL#URL()`.
func (u *HTTPURL) URL(encode bool) (*url.URL, error) {
	return parseBuilt(u.Build(encode))
}

// touch marks the u as manually built unless it has been parsed.
func (u *HTTPURL) touch() {
	if u.state == httpStateEmpty {
		u.state = httpStateManual
	}
}

// queryFieldIndex returns the index of the query field for the name, or -1.
func (u *HTTPURL) queryFieldIndex(name string) int {
	for i, f := range u.queryFields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// putQueryField sets the query field for the name to the value.
func (u *HTTPURL) putQueryField(name, value string) {
	if i := u.queryFieldIndex(name); i >= 0 {
		u.queryFields[i].Value = value
		return
	}

	u.queryFields = append(u.queryFields, QueryField{
		Name:  name,
		Value: value,
	})
}

// rawPath returns the undecoded path of the s, which is a URL without its
// scheme.
func rawPath(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[i:]
	}

	return ""
}
