package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier. Tests may override it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier
func New() string { return NewFunc() }

// Valid reports whether id is a well formed identifier
func Valid(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
