package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Parse(t *testing.T) {
	t.Parallel()

	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "detail.html", "login.html", "register.html", "history.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_LoginEscapesInput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := MustTemplates().ExecuteTemplate(&buf, "login.html", map[string]any{
		"Title":    "Log in",
		"Error":    "<script>x</script>",
		"Next":     "/history",
		"Username": "bob",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;script&gt;x&lt;/script&gt;")
	assert.Contains(t, buf.String(), `value="/history"`)
}

func TestFuncs(t *testing.T) {
	t.Parallel()

	fmtTime := Funcs["fmtTime"].(func(time.Time) string)
	assert.Equal(t, "2026-05-10 12:00 UTC", fmtTime(time.Date(2026, 5, 10, 21, 0, 0, 0, time.FixedZone("JST", 9*60*60))))

	lower := Funcs["lower"].(func(string) string)
	assert.Equal(t, "bullish", lower("Bullish"))
	assert.Equal(t, "neutral", lower("anything"))
}
