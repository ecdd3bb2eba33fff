package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector-api/pkg/mailer/templates"
)

func TestCompose(t *testing.T) {
	job := EmailJob{To: "alice@x.com", Template: templates.Welcome, Data: map[string]any{"Name": "Alice"}}
	require.NoError(t, Compose(&job))
	assert.Contains(t, job.Subject, "Alice")
	assert.Contains(t, job.Text, "alice@x.com", "recipient filled in when data has no email")
	assert.NotEmpty(t, job.HTML)

	raw := EmailJob{To: "bob@x.com", Subject: "hi", Text: "plain"}
	require.NoError(t, Compose(&raw))
	assert.Equal(t, "hi", raw.Subject)

	bad := EmailJob{To: "bob@x.com", Template: "nope"}
	assert.Error(t, Compose(&bad))
}
