package fluri

import (
	"encoding/base64"
	"mime"
	"net/url"
	"sort"
	"strings"

	"github.com/aofei/mimesniffer"
)

// DataURL is a "data:" URL.
type DataURL struct {
	prefix    string
	mediaType string
	base64    bool
	data      string
}

// newDataURL returns a pointer of a new instance of the `DataURL`.
func newDataURL(prefix string) *DataURL {
	return &DataURL{
		prefix: prefix,
	}
}

// Prefix implements the `URL#Prefix()`.
func (u *DataURL) Prefix() string {
	return u.prefix
}

// MediaType returns the media type of the u.
func (u *DataURL) MediaType() string {
	return u.mediaType
}

// IsBase64 reports whether the data of the u is base64 encoded when built.
func (u *DataURL) IsBase64() bool {
	return u.base64
}

// Data returns the data of the u.
func (u *DataURL) Data() string {
	return u.data
}

// SetMediaType sets the media type of the u. It is built as it is.
func (u *DataURL) SetMediaType(mediaType string) *DataURL {
	u.mediaType = mediaType
	return u
}

// SetBase64 sets whether the data of the u is base64 encoded when built.
func (u *DataURL) SetBase64(status bool) *DataURL {
	u.base64 = status
	return u
}

// SetData sets the data of the u.
func (u *DataURL) SetData(data string) *DataURL {
	u.data = data
	return u
}

// SniffMediaType sets the media type of the u by sniffing its data. The
// parameters of the sniffed type are joined by ";" without spaces, such as
// "text/plain;charset=utf-8".
func (u *DataURL) SniffMediaType() *DataURL {
	mt, params, err := mime.ParseMediaType(
		mimesniffer.Sniff([]byte(u.data)),
	)
	if err != nil {
		return u
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	b := strings.Builder{}
	b.WriteString(mt)
	for _, k := range keys {
		b.WriteByte(';')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	u.mediaType = b.String()

	return u
}

// Build implements the `URL#Build()`.
func (u *DataURL) Build(encode bool) (string, error) {
	if u.data == "" {
		return "", &BuildError{
			Prefix: u.prefix,
			Field:  "data",
		}
	}

	b := strings.Builder{}
	b.WriteString(u.prefix)
	b.WriteString(u.mediaType)

	data := u.data
	if u.base64 {
		b.WriteString(";base64")
		data = base64.StdEncoding.EncodeToString([]byte(data))
	} else if encode {
		data = Escape(data, false)
	}

	b.WriteByte(',')
	b.WriteString(data)

	return b.String(), nil
}

// String implements the `URL#String()`.
func (u *DataURL) String() string {
	s, _ := u.Build(false)
	return s
}

// URL implements the `URL#URL()`.
func (u *DataURL) URL(encode bool) (*url.URL, error) {
	return parseBuilt(u.Build(encode))
}
