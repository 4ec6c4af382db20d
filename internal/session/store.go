// Package session keeps the record of the currently authenticated user in
// tab-scoped storage.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/models"
	"github.com/jon4hz/crudnote/internal/storage"
)

// Key is the storage key of the serialized session user.
const Key = "loggedInUser"

// Store holds at most one authenticated user per tab.
type Store struct {
	storage storage.Storage
}

// New creates a session store on top of s.
func New(s storage.Storage) *Store {
	return &Store{storage: s}
}

// Get returns the session user. Malformed stored data is treated as no session.
func (s *Store) Get() (*models.User, bool) {
	raw, ok := s.storage.Get(Key)
	if !ok || raw == "" {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Error("Failed to parse session user", "error", err)
		return nil, false
	}
	return &user, true
}

// Authenticated reports whether a session exists.
func (s *Store) Authenticated() bool {
	_, ok := s.Get()
	return ok
}

// Set replaces the session user.
func (s *Store) Set(user *models.User) error {
	if user == nil {
		return fmt.Errorf("session user is required")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	return s.storage.Set(Key, string(data))
}

// Clear destroys the session.
func (s *Store) Clear() error {
	return s.storage.Remove(Key)
}
