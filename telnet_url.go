package fluri

import (
	"net/url"
	"strings"
)

// TelnetURL is a "telnet://" URL.
type TelnetURL struct {
	prefix   string
	username string
	password string
	host     string
	port     int
	portSet  bool
}

// newTelnetURL returns a pointer of a new instance of the `TelnetURL`.
func newTelnetURL(prefix string) *TelnetURL {
	return &TelnetURL{
		prefix: prefix,
	}
}

// Prefix implements the `URL#Prefix()`.
func (u *TelnetURL) Prefix() string {
	return u.prefix
}

// Username returns the username of the u.
func (u *TelnetURL) Username() string {
	return u.username
}

// Password returns the password of the u.
func (u *TelnetURL) Password() string {
	return u.password
}

// Host returns the host of the u.
func (u *TelnetURL) Host() string {
	return u.host
}

// Port returns the port of the u and whether it is set.
func (u *TelnetURL) Port() (int, bool) {
	return u.port, u.portSet
}

// SetUsername sets the username of the u.
func (u *TelnetURL) SetUsername(username string) *TelnetURL {
	u.username = username
	return u
}

// SetPassword sets the password of the u.
func (u *TelnetURL) SetPassword(password string) *TelnetURL {
	u.password = password
	return u
}

// SetHost sets the host of the u. All "/" in the host are removed.
func (u *TelnetURL) SetHost(host string) *TelnetURL {
	u.host = strings.ReplaceAll(host, "/", "")
	return u
}

// SetPort sets the port of the u. A negative port clears it.
func (u *TelnetURL) SetPort(port int) *TelnetURL {
	u.port, u.portSet = port, port >= 0
	if !u.portSet {
		u.port = 0
	}

	return u
}

// ClearPort clears the port of the u.
func (u *TelnetURL) ClearPort() *TelnetURL {
	return u.SetPort(-1)
}

// Build implements the `URL#Build()`.
func (u *TelnetURL) Build(encode bool) (string, error) {
	if u.host == "" {
		return "", &BuildError{
			Prefix: u.prefix,
			Field:  "host",
		}
	}

	b := strings.Builder{}
	b.WriteString(u.prefix)
	writeUserinfo(&b, u.username, u.password, encode)
	b.WriteString(stripPrefix(u.host, "telnet://", "telnet:"))
	writePort(&b, u.port, u.portSet)

	return b.String(), nil
}

// String implements the `URL#String()`.
func (u *TelnetURL) String() string {
	s, _ := u.Build(false)
	return s
}

// URL implements the `URL#URL()`.
func (u *TelnetURL) URL(encode bool) (*url.URL, error) {
	return parseBuilt(u.Build(encode))
}
