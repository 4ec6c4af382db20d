// Package preference keeps the theme preference in durable storage.
package preference

import (
	"github.com/jon4hz/crudnote/internal/storage"
)

// Key is the storage key of the theme preference.
const Key = "themePreference"

// Theme is the visual theme of the application.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store persists the theme preference across sessions.
type Store struct {
	storage storage.Storage
}

// New creates a preference store on top of s.
func New(s storage.Storage) *Store {
	return &Store{storage: s}
}

// Get returns the stored theme. Anything but the literal "dark" is light.
func (s *Store) Get() Theme {
	if v, ok := s.storage.Get(Key); ok && Theme(v) == Dark {
		return Dark
	}
	return Light
}

// Set persists theme.
func (s *Store) Set(theme Theme) error {
	if theme != Dark {
		theme = Light
	}
	return s.storage.Set(Key, string(theme))
}

// Clear removes the stored preference.
func (s *Store) Clear() error {
	return s.storage.Remove(Key)
}
