// Package storage abstracts where uploaded file bytes live: the local disk
// or Cloudinary. File metadata stays in the database either way.
package storage

import "context"

// StoredFile describes where a stored upload ended up.
type StoredFile struct {
	// Filename is the name the bytes were stored under (local provider).
	Filename string
	// Path is the local path relative to the working directory, empty for
	// remote storage.
	Path string
	// URL is the remote delivery URL, empty for local storage.
	URL string
	// PublicID is the remote asset identifier, empty for local storage.
	PublicID string
	// Provider tags which backend holds the bytes.
	Provider string
}

// Store saves and removes uploaded file bytes.
type Store interface {
	// Save persists the file bytes and reports where they landed.
	Save(ctx context.Context, originalName string, data []byte) (*StoredFile, error)

	// Remove deletes previously stored bytes. Callers treat failures as
	// best-effort.
	Remove(ctx context.Context, ref StoredFile) error
}
