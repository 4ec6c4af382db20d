// Package storage provides the key/value storages backing the session and
// preference stores.
package storage

// Storage is a string key/value storage, the equivalent of a browser's
// sessionStorage or localStorage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
