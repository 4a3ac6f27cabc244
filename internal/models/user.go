// Package models defines the records persisted by the store and the
// in-memory records held by the events and chat services.
package models

// User is a registered account. Username is the unique key.
type User struct {
	ID                int64
	Username          string
	Email             string
	PasswordHash      string
	Description       string
	ProfilePictureURI string
}

// ProfileChanged reports whether description or picture differ from u.
func (u User) ProfileChanged(description, pictureURI string) bool {
	return u.Description != description || u.ProfilePictureURI != pictureURI
}
