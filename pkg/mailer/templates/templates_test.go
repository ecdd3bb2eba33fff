package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	data := NewAccountData("Alice <admin>", "alice@x.com")

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to DevConnector, Alice <admin>", subject)
	assert.Contains(t, text, "alice@x.com")
	assert.Contains(t, html, "Alice &lt;admin&gt;", "html output is escaped")

	subject, _, _, err = Render(Farewell, map[string]any{"Email": "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Your DevConnector account was deleted", subject)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
