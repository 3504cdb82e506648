package fluri

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpFixture struct {
	Record
	Params      map[string]string `json:"params"`
	Want        string            `json:"want"`
	WantEncoded string            `json:"want_encoded"`
}

func loadHTTPFixtures(t *testing.T, name string) []httpFixture {
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var fs []httpFixture
	require.NoError(t, json.Unmarshal(b, &fs))
	require.NotEmpty(t, fs)

	return fs
}

func newFixtureURL(f httpFixture) *HTTPURL {
	if f.Scheme == "https" {
		return Build(HTTPS)
	}

	return Build(HTTP)
}

func applyFixture(u *HTTPURL, f httpFixture) {
	if f.Host != "" {
		u.SetHost(f.Host)
	}

	if f.Port != nil {
		u.SetPort(*f.Port)
	}

	if f.WWW {
		u.ShowWWW(true)
	}

	for _, p := range f.Path {
		u.AddRouteParam(p)
	}

	for _, q := range f.Query {
		u.AddQueryField(q.Name, q.Value)
	}

	if f.Fragment != "" {
		u.SetFragment(f.Fragment)
	}
}

func TestHTTPURLBuildFixtures(t *testing.T) {
	for i, f := range loadHTTPFixtures(t, "http_build.json") {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			u := newFixtureURL(f)
			applyFixture(u, f)

			s, err := u.Build(false)
			assert.NoError(t, err)
			assert.Equal(t, f.Want, s)

			s, err = u.Build(true)
			assert.NoError(t, err)
			assert.Equal(t, f.WantEncoded, s)

			assert.Equal(t, f.Want, u.String())
		})
	}
}

func TestHTTPURLParseFixtures(t *testing.T) {
	for i, f := range loadHTTPFixtures(t, "http_parse.json") {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			u, err := newFixtureURL(f).Parse(f.Template)
			require.NoError(t, err)
			assert.Equal(t, f.Template, u.Source())

			for k, v := range f.Params {
				u.SetRouteParam(k, v)
			}

			applyFixture(u, f)

			s, err := u.Build(false)
			assert.NoError(t, err)
			assert.Equal(t, f.Want, s)
		})
	}
}

func TestHTTPURLParse(t *testing.T) {
	u, err := Build(HTTPS).Parse(
		"https://www.shop.example.com:8443/a/{b}/c.html?x=1&y=#top",
	)
	assert.NoError(t, err)
	assert.Equal(t, "shop.example.com", u.Host())
	assert.True(t, u.IsWWWShown())

	port, ok := u.Port()
	assert.True(t, ok)
	assert.Equal(t, 8443, port)

	assert.Equal(t, []string{"a", "{b}", "c.html"}, u.RouteParams())
	assert.Equal(t, []QueryField{
		{Name: "x", Value: "1"},
		{Name: "y", Value: ""},
	}, u.QueryFields())
	assert.Equal(t, "top", u.Fragment())

	v, ok := u.QueryField("x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = u.QueryField("z")
	assert.False(t, ok)
}

func TestHTTPURLParseWWWTwoLabels(t *testing.T) {
	u, err := Build(HTTP).Parse("www.com")
	assert.NoError(t, err)
	assert.Equal(t, "www.com", u.Host())
	assert.False(t, u.IsWWWShown())
	assert.Equal(t, "http://www.com", u.String())
}

func TestHTTPURLParseStarted(t *testing.T) {
	u := Build(HTTP)
	_, err := u.Parse("example.com")
	assert.NoError(t, err)

	_, err = u.Parse("example.org")
	assert.Equal(t, ErrParseStarted, err)
	assert.Equal(t, "example.com", u.Host())

	u = Build(HTTP).SetFragment("x")
	_, err = u.Parse("example.com")
	assert.Equal(t, ErrParseStarted, err)
	assert.Empty(t, u.Host())
}

func TestHTTPURLParseMalformed(t *testing.T) {
	u := Build(HTTP)
	_, err := u.Parse("http://example.com:abc/")

	mue := &MalformedURLError{}
	assert.True(t, errors.As(err, &mue))
	assert.Equal(t, "http://example.com:abc/", mue.URL)
	assert.Error(t, errors.Unwrap(err))

	_, err = u.Parse("example.com")
	assert.Equal(t, ErrParseStarted, err)
}

func TestHTTPURLBuildIdempotent(t *testing.T) {
	u := Build(HTTPS).
		SetHost("example.com").
		AddRouteParam("a b").
		AddQueryField("k", "v w")

	s1, err := u.Build(true)
	assert.NoError(t, err)

	s2, err := u.Build(true)
	assert.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, "https://example.com/a%20b/?k=v%20w", s1)
	assert.Equal(t, []string{"a b"}, u.RouteParams())
}

func TestHTTPURLPort(t *testing.T) {
	u := Build(HTTP).SetHost("example.com").SetPort(0)
	assert.Equal(t, "http://example.com:0", u.String())

	u.SetPort(-5)
	_, ok := u.Port()
	assert.False(t, ok)
	assert.Equal(t, "http://example.com", u.String())

	u.SetPort(80).ClearPort()
	assert.Equal(t, "http://example.com", u.String())
}

func TestHTTPURLRemove(t *testing.T) {
	u := Build(HTTP).
		SetHost("example.com").
		AddRouteParam("a").
		AddRouteParam("b").
		AddRouteParam("a").
		AddQueryField("x", "1").
		AddQueryField("y", "2").
		AddQueryField("z", "3").
		SetFragment("f")

	u.RemoveRouteParam("a").
		RemoveRouteParam("missing").
		RemoveQueryField("y").
		RemoveQueryField("missing").
		ClearFragment()

	assert.Equal(t, "http://example.com/b/a/?x=1&z=3", u.String())
}

func TestHTTPURLQueryFieldOverwrite(t *testing.T) {
	u := Build(HTTP).
		SetHost("example.com").
		AddQueryField("a", "1").
		AddQueryField("b", "2").
		AddQueryField("a", "3")

	assert.Equal(t, "http://example.com/?a=3&b=2", u.String())
}

func TestHTTPURLSetRouteParam(t *testing.T) {
	u := Build(HTTP).
		SetHost("example.com").
		AddRouteParam("{id}/x/{id}")

	u.SetRouteParam("nope", "1")
	assert.Equal(t, "http://example.com/{id}/x/{id}/", u.String())

	u.SetRouteParam("id", "7")
	assert.Equal(t, "http://example.com/7/x/7/", u.String())
}

func TestHTTPURLSetHost(t *testing.T) {
	u := Build(HTTP).SetHost("http://example.com/")
	assert.Equal(t, "http:example.com", u.Host())
	assert.Equal(t, "http://example.com", u.String())
}

func TestHTTPURLURL(t *testing.T) {
	pu, err := Build(HTTPS).
		SetHost("example.com").
		SetPort(8443).
		AddRouteParam("a b").
		AddQueryField("q", "x y").
		SetFragment("top").
		URL(true)
	assert.NoError(t, err)
	assert.Equal(t, "https", pu.Scheme)
	assert.Equal(t, "example.com:8443", pu.Host)
	assert.Equal(t, "/a b/", pu.Path)
	assert.Equal(t, "x y", pu.Query().Get("q"))
	assert.Equal(t, "top", pu.Fragment)
}

func TestRawPath(t *testing.T) {
	assert.Equal(t, "/a/b", rawPath("example.com/a/b?x=/y#/z"))
	assert.Equal(t, "", rawPath("example.com?x=/y"))
	assert.Equal(t, "", rawPath("example.com"))
}
