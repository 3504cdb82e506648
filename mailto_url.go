package fluri

import (
	"net/url"
	"strings"
)

// MailtoURL is a "mailto:" URL.
type MailtoURL struct {
	prefix       string
	emailAddress string
	subject      string
	content      string
}

// newMailtoURL returns a pointer of a new instance of the `MailtoURL`.
func newMailtoURL(prefix string) *MailtoURL {
	return &MailtoURL{
		prefix: prefix,
	}
}

// Prefix implements the `URL#Prefix()`.
func (u *MailtoURL) Prefix() string {
	return u.prefix
}

// EmailAddress returns the email address of the u.
func (u *MailtoURL) EmailAddress() string {
	return u.emailAddress
}

// Subject returns the subject of the u.
func (u *MailtoURL) Subject() string {
	return u.subject
}

// Content returns the content of the u.
func (u *MailtoURL) Content() string {
	return u.content
}

// SetEmailAddress sets the email address of the u. It is never encoded.
func (u *MailtoURL) SetEmailAddress(emailAddress string) *MailtoURL {
	u.emailAddress = emailAddress
	return u
}

// SetSubject sets the subject of the u.
func (u *MailtoURL) SetSubject(subject string) *MailtoURL {
	u.subject = subject
	return u
}

// SetContent sets the content of the u. It is built as the "body" field.
func (u *MailtoURL) SetContent(content string) *MailtoURL {
	u.content = content
	return u
}

// Build implements the `URL#Build()`.
func (u *MailtoURL) Build(encode bool) (string, error) {
	if u.emailAddress == "" {
		return "", &BuildError{
			Prefix: u.prefix,
			Field:  "email address",
		}
	}

	b := strings.Builder{}
	b.WriteString(u.prefix)
	b.WriteString(u.emailAddress)

	if u.subject != "" {
		subject := u.subject
		if encode {
			subject = Escape(subject, false)
		}

		b.WriteString("?subject=")
		b.WriteString(subject)
	}

	if u.content != "" {
		content := u.content
		if encode {
			content = Escape(content, false)
		}

		if u.subject != "" {
			b.WriteByte('&')
		} else {
			b.WriteByte('?')
		}

		b.WriteString("body=")
		b.WriteString(content)
	}

	return b.String(), nil
}

// String implements the `URL#String()`.
func (u *MailtoURL) String() string {
	s, _ := u.Build(false)
	return s
}

// URL implements the `URL#URL()`.
func (u *MailtoURL) URL(encode bool) (*url.URL, error) {
	return parseBuilt(u.Build(encode))
}
