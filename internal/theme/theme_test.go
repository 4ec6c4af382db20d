package theme

import (
	"strings"
	"testing"

	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/preference"
	"github.com/jon4hz/crudnote/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc := dom.NewDocument(nil)
	_, err := doc.Mount(`<button id="themeToggleBtn"></button>`)
	require.NoError(t, err)
	return doc
}

func TestApply_DefaultIsLight(t *testing.T) {
	doc := newDoc(t)
	prefs := preference.New(storage.NewMemory())

	Apply(doc, prefs)
	assert.False(t, doc.HasClass(DarkClass))
	assert.Contains(t, renderIcon(t, doc), "fa-sun")
}

func TestApply_StoredDark(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, preference.New(mem).Set(preference.Dark))

	// a fresh document, as after a reload
	doc := newDoc(t)
	prefs := preference.New(mem)
	Apply(doc, prefs)
	Apply(doc, prefs)

	assert.True(t, doc.HasClass(DarkClass))
	assert.Contains(t, renderIcon(t, doc), "fa-moon")
}

func TestToggle(t *testing.T) {
	doc := newDoc(t)
	prefs := preference.New(storage.NewMemory())
	Apply(doc, prefs)

	got, err := Toggle(doc, prefs)
	require.NoError(t, err)
	assert.Equal(t, preference.Dark, got)
	assert.Equal(t, preference.Dark, prefs.Get())
	assert.True(t, doc.HasClass(DarkClass))
	assert.Contains(t, renderIcon(t, doc), "fa-moon")

	got, err = Toggle(doc, prefs)
	require.NoError(t, err)
	assert.Equal(t, preference.Light, got)
	assert.Equal(t, preference.Light, prefs.Get())
	assert.False(t, doc.HasClass(DarkClass))
	assert.Contains(t, renderIcon(t, doc), "fa-sun")
}

func TestToggle_FollowsStoredPreference(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, preference.New(mem).Set(preference.Dark))

	// the document has not been themed yet, the stored preference decides
	doc := newDoc(t)
	got, err := Toggle(doc, preference.New(mem))
	require.NoError(t, err)
	assert.Equal(t, preference.Light, got)
	assert.False(t, doc.HasClass(DarkClass))
	assert.Contains(t, renderIcon(t, doc), "fa-sun")
}

func TestApply_WithoutToggleControl(t *testing.T) {
	doc := dom.NewDocument(nil)
	prefs := preference.New(storage.NewMemory())
	require.NoError(t, prefs.Set(preference.Dark))

	Apply(doc, prefs)
	assert.True(t, doc.HasClass(DarkClass))
}

func renderIcon(t *testing.T, doc *dom.Document) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, doc.RenderMount(&b))
	return b.String()
}
