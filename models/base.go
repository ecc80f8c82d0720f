package models

import "github.com/google/uuid"

// newID returns the storage-internal identifier assigned on create.
func newID(current string) string {
	if current != "" {
		return current
	}
	return uuid.NewString()
}
