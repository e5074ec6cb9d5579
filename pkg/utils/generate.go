package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken returns a new opaque bearer token.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
