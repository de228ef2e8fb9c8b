package core

import "github.com/google/uuid"

// IdentifierAquireNewID returns a fresh random identifier for an engine
// owned resource, such as an uploaded geometry.
func IdentifierAquireNewID() uuid.UUID {
	return uuid.New()
}

// IdentifierIsValid reports whether id was produced by IdentifierAquireNewID.
func IdentifierIsValid(id uuid.UUID) bool {
	return id != uuid.Nil
}
