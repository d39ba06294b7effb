package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PasswordReset(t *testing.T) {
	data := NewAccountData("rituday", "Alice", "alice@example.com", "alice",
		WithTime(time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)),
		WithIP("10.0.0.1"),
	)

	subject, text, html, err := Render(PasswordReset, data)
	require.NoError(t, err)

	assert.Equal(t, "[rituday] Your password was reset", subject)
	assert.Contains(t, text, "Hi Alice,")
	assert.Contains(t, text, `"alice"`)
	assert.Contains(t, text, "02 January 2024, 03:04 UTC")
	assert.Contains(t, text, "10.0.0.1")
	assert.Contains(t, html, "<strong>alice</strong>")
}

func TestRender_DefaultsAndEscaping(t *testing.T) {
	data := NewAccountData("", "", "x@example.com", "<b>x</b>")

	subject, text, html, err := Render(PasswordChanged, data)
	require.NoError(t, err)

	assert.Equal(t, "[rituday] Your password was changed", subject)
	assert.Contains(t, text, "Hi there,")
	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
}

func TestRender_Unknown(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
	assert.False(t, Known("nope"))
	assert.True(t, Known(PasswordReset))
}
