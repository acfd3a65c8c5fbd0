package storage

import (
	"github.com/revelaction/tdsent/target"
)

// TargetReader defines read operations for parsed collection storage.
type TargetReader interface {
	// Collections returns the names of all stored collections, sorted
	// alphabetically.
	Collections() ([]string, error)

	// Read returns a stored collection by name, preserving the insertion
	// order it was written with.
	Read(name string) (*target.Collection, error)
}

// TargetWriter defines write operations for parsed collection storage.
type TargetWriter interface {
	// Write persists a collection under the given name, replacing any
	// previous collection of that name.
	Write(name string, c *target.Collection) error
}

// TargetRepository combines read and write operations.
type TargetRepository interface {
	TargetReader
	TargetWriter
}
