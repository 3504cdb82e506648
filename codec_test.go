package fluri

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRecord(t *testing.T) {
	port := 8080
	r := Record{
		Scheme: "https",
		Host:   "example.com",
		Port:   &port,
		WWW:    true,
		Path:   []string{"a", "b.html"},
		Query: []QueryField{
			{Name: "x", Value: "1"},
			{Name: "y", Value: "a b"},
		},
		Fragment: "top",
	}

	for _, format := range []string{"json", "yaml", ".yml", "toml", "msgpack", "protobuf", ".pb"} {
		b, err := MarshalRecord(format, r)
		require.NoError(t, err, format)

		got, err := UnmarshalRecord(format, b)
		require.NoError(t, err, format)
		assert.Equal(t, r, got, format)
	}
}

func TestMarshalRecordJSON(t *testing.T) {
	b, err := MarshalRecord("JSON", Record{
		Scheme: "mailto",
		Email:  "a@b.c",
	})
	assert.NoError(t, err)
	assert.Equal(t, `{"scheme":"mailto","email":"a@b.c"}`, string(b))
}

func TestMarshalRecordUnsupported(t *testing.T) {
	_, err := MarshalRecord("xml", Record{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = UnmarshalRecord("xml", nil)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = decodeMap("protobuf", nil)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = decodeMap("xml", nil)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecodeMapINI(t *testing.T) {
	m, err := decodeMap("ini", []byte(`app_name = foo

[repo]
scheme = https
template = github.com/{owner}/{repo}
query = tab=readme&plain=1
`))
	require.NoError(t, err)
	assert.Equal(t, "foo", m["app_name"])

	rec := Record{}
	require.NoError(t, decode(m["repo"], &rec))
	assert.Equal(t, "https", rec.Scheme)
	assert.Equal(t, "github.com/{owner}/{repo}", rec.Template)
	assert.Equal(t, []QueryField{
		{Name: "tab", Value: "readme"},
		{Name: "plain", Value: "1"},
	}, rec.Query)
}

func TestDecodeWeaklyTyped(t *testing.T) {
	rec := Record{}
	require.NoError(t, decode(map[string]interface{}{
		"scheme": "ftp",
		"host":   "example.com",
		"port":   "21",
		"path":   "pub,docs",
	}, &rec))
	assert.Equal(t, "ftp", rec.Scheme)
	require.NotNil(t, rec.Port)
	assert.Equal(t, 21, *rec.Port)
	assert.Equal(t, []string{"pub", "docs"}, rec.Path)
}

func TestParseQueryFields(t *testing.T) {
	assert.Equal(t, []QueryField{
		{Name: "flag", Value: ""},
		{Name: "x", Value: "2"},
		{Name: "y", Value: "a=b"},
	}, ParseQueryFields("flag&x=1&&y=a=b&x=2"))
	assert.Nil(t, ParseQueryFields(""))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "yaml", formatOf(".YML"))
	assert.Equal(t, "toml", formatOf("toml"))
	assert.Equal(t, "protobuf", formatOf(".pb"))
	assert.Equal(t, "ini", formatOfFile("/etc/fluri/config.ini"))
	assert.Equal(t, "", formatOfFile("config"))
}
