package static

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewsEmbedded(t *testing.T) {
	for _, name := range []string{"landing", "login", "register", "home", "profile"} {
		data, err := fs.ReadFile(ViewsFS, "views/"+name+".html")
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestShell(t *testing.T) {
	shell, err := Shell()
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, shell.Execute(&b, map[string]any{
		"BodyClass": "dark-theme",
		"MountID":   "app",
		"Mount":     "",
		"Notices":   []string{"<b>hi</b>"},
	}))
	assert.Contains(t, b.String(), `<body class="dark-theme">`)
	assert.Contains(t, b.String(), `<div id="app">`)
	assert.Contains(t, b.String(), "&lt;b&gt;hi&lt;/b&gt;")
}

func TestAssets(t *testing.T) {
	_, err := fs.Stat(Assets(), "css/app.css")
	assert.NoError(t, err)
	_, err = fs.Stat(Assets(), "js/app.js")
	assert.NoError(t, err)
}

func TestAppScriptDropsSupersededSwaps(t *testing.T) {
	data, err := fs.ReadFile(Assets(), "js/app.js")
	require.NoError(t, err)
	script := string(data)

	guard := strings.Index(script, "if (gen !== generation) return;")
	mount := strings.Index(script, "mount.innerHTML = markup;")
	require.NotEqual(t, -1, guard, "swap must check its generation")
	require.NotEqual(t, -1, mount)
	assert.Less(t, guard, mount, "the check must run before the view is replaced")
}
