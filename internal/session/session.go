// Package session carries the identity of the signed-in store owner.
// Authentication itself happens elsewhere; components receive a Session
// explicitly instead of reading shared mutable state.
package session

// Session identifies the store owner on whose behalf operations run.
type Session struct {
	OwnerID     int64
	DisplayName string
}

// New creates a session for the given owner.
func New(ownerID int64, displayName string) Session {
	return Session{OwnerID: ownerID, DisplayName: displayName}
}
