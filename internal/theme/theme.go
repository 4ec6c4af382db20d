// Package theme reflects the theme preference on the document.
package theme

import (
	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/dom"
	"github.com/jon4hz/crudnote/internal/preference"
)

const (
	// DarkClass is the body class of the dark theme.
	DarkClass = "dark-theme"
	// ToggleButtonID is the id of the theme toggle control.
	ToggleButtonID = "themeToggleBtn"

	iconDark  = `<i class="fas fa-moon"></i>`
	iconLight = `<i class="fas fa-sun"></i>`
)

// Apply sets the document state to the stored preference. It is idempotent.
func Apply(doc *dom.Document, prefs *preference.Store) {
	setClass(doc, prefs.Get())
	refreshIcon(doc)
}

// Toggle switches to the opposite of the stored theme and persists it.
func Toggle(doc *dom.Document, prefs *preference.Store) (preference.Theme, error) {
	t := prefs.Get().Toggled()
	setClass(doc, t)
	refreshIcon(doc)
	if err := prefs.Set(t); err != nil {
		return t, err
	}
	log.Debug("Theme changed", "theme", t)
	return t, nil
}

func setClass(doc *dom.Document, t preference.Theme) {
	if t == preference.Dark {
		doc.AddClass(DarkClass)
	} else {
		doc.RemoveClass(DarkClass)
	}
}

// refreshIcon makes a visible toggle control show the current theme.
func refreshIcon(doc *dom.Document) {
	v := doc.Current()
	if v == nil {
		return
	}
	icon := iconLight
	if doc.HasClass(DarkClass) {
		icon = iconDark
	}
	v.SetHTML(ToggleButtonID, icon)
}
