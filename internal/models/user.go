package models

import (
	"bytes"
	"encoding/json"
)

// User is a record of the backend users collection.
// Passwords are stored and compared in plaintext by design of the mock backend.
type User struct {
	ID               ID        `json:"id,omitempty"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Password         string    `json:"password"`
	RegistrationDate Timestamp `json:"registrationDate"`
}

// DisplayName returns the full name of the user, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// ID identifies a user record. Backends emit it either as a JSON number or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
