package fluri

import (
	"net/url"
	"strings"
)

// FileURL is a "file://", "ftp://", "ftps://" or "sftp://" URL.
type FileURL struct {
	prefix       string
	username     string
	password     string
	host         string
	port         int
	portSet      bool
	pathSegments []string
}

// newFileURL returns a pointer of a new instance of the `FileURL`.
func newFileURL(prefix string) *FileURL {
	return &FileURL{
		prefix: prefix,
	}
}

// Prefix implements the `URL#Prefix()`.
func (u *FileURL) Prefix() string {
	return u.prefix
}

// Username returns the username of the u.
func (u *FileURL) Username() string {
	return u.username
}

// Password returns the password of the u.
func (u *FileURL) Password() string {
	return u.password
}

// Host returns the host of the u.
func (u *FileURL) Host() string {
	return u.host
}

// Port returns the port of the u and whether it is set.
func (u *FileURL) Port() (int, bool) {
	return u.port, u.portSet
}

// PathSegments returns a copy of the path segments of the u.
func (u *FileURL) PathSegments() []string {
	return append([]string(nil), u.pathSegments...)
}

// SetUsername sets the username of the u.
func (u *FileURL) SetUsername(username string) *FileURL {
	u.username = username
	return u
}

// SetPassword sets the password of the u.
func (u *FileURL) SetPassword(password string) *FileURL {
	u.password = password
	return u
}

// SetHost sets the host of the u. All "/" in the host are removed.
func (u *FileURL) SetHost(host string) *FileURL {
	u.host = strings.ReplaceAll(host, "/", "")
	return u
}

// SetPort sets the port of the u. A negative port clears it.
func (u *FileURL) SetPort(port int) *FileURL {
	u.port, u.portSet = port, port >= 0
	if !u.portSet {
		u.port = 0
	}

	return u
}

// ClearPort clears the port of the u.
func (u *FileURL) ClearPort() *FileURL {
	return u.SetPort(-1)
}

// AddPathSegment appends the segment to the path of the u. A segment
// containing "/" is split into several segments.
func (u *FileURL) AddPathSegment(segment string) *FileURL {
	u.pathSegments = append(u.pathSegments, splitSegments(segment)...)
	return u
}

// RemovePathSegment removes the first path segment that equals to the
// segment.
func (u *FileURL) RemovePathSegment(segment string) *FileURL {
	u.pathSegments = removeFirst(u.pathSegments, segment)
	return u
}

// Build implements the `URL#Build()`.
func (u *FileURL) Build(encode bool) (string, error) {
	if u.host == "" {
		return "", &BuildError{
			Prefix: u.prefix,
			Field:  "host",
		}
	}

	b := strings.Builder{}
	b.WriteString(u.prefix)
	writeUserinfo(&b, u.username, u.password, encode)
	b.WriteString(stripPrefix(
		u.host,
		"file://",
		"ftp://",
		"ftps://",
		"sftp://",
		"file:",
		"ftp:",
		"ftps:",
		"sftp:",
	))
	writePort(&b, u.port, u.portSet)

	if len(u.pathSegments) > 0 {
		writePath(&b, u.pathSegments, encode, false)
	}

	return b.String(), nil
}

// String implements the `URL#String()`.
func (u *FileURL) String() string {
	s, _ := u.Build(false)
	return s
}

// URL implements the `URL#URL()`.
func (u *FileURL) URL(encode bool) (*url.URL, error) {
	return parseBuilt(u.Build(encode))
}
