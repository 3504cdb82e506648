package fluri

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailtoURLBuild(t *testing.T) {
	u := Build(MAILTO).SetEmailAddress("someone@example.com")
	assert.Equal(t, "mailto:someone@example.com", u.String())

	u.SetSubject("Hello there!")
	assert.Equal(t, "mailto:someone@example.com?subject=Hello there!", u.String())

	u.SetContent("See you (soon)")
	s, err := u.Build(true)
	assert.NoError(t, err)
	assert.Equal(
		t,
		"mailto:someone@example.com?subject=Hello%20there%21&body=See%20you%20%28soon%29",
		s,
	)
}

func TestMailtoURLContentOnly(t *testing.T) {
	u := Build(MAILTO).
		SetEmailAddress("a+b@example.com").
		SetContent("x&y")

	s, err := u.Build(true)
	assert.NoError(t, err)
	assert.Equal(t, "mailto:a+b@example.com?body=x%26y", s)
	assert.Equal(t, "x&y", u.Content())
	assert.Empty(t, u.Subject())
}

func TestMailtoURLMissingAddress(t *testing.T) {
	_, err := Build(MAILTO).SetSubject("x").Build(false)

	be := &BuildError{}
	assert.True(t, errors.As(err, &be))
	assert.Equal(t, "email address", be.Field)
	assert.Equal(
		t,
		"fluri: email address is required to build a mailto: url",
		err.Error(),
	)
}

func TestMailtoURLURL(t *testing.T) {
	pu, err := Build(MAILTO).
		SetEmailAddress("someone@example.com").
		SetSubject("hi there").
		URL(true)
	assert.NoError(t, err)
	assert.Equal(t, "mailto", pu.Scheme)
	assert.Equal(t, "someone@example.com", pu.Opaque)
	assert.Equal(t, "hi there", pu.Query().Get("subject"))
}
