package subscriber_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/email/templates"
	"github.com/ghtimeline/timeline/svc/subscriber"
)

func TestWelcomeEmail(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), subscriber.WelcomeEmail(`x"<y>@example.com`))
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to GitHub Timeline!")
	assert.Contains(t, html, "What to expect:")
	assert.Contains(t, html, "What's next?")
	assert.Contains(t, html, "x&#34;&lt;y&gt;@example.com")
	assert.NotContains(t, html, "<y>")
}
