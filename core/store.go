package core

import "context"

// DocumentStore reads and writes whole documents by key.
// There is no partial update: every Save replaces the stored document and the last writer wins.
type DocumentStore interface {
	// Load decodes the document stored under key into dst.
	// found is false (and err nil) when nothing was ever saved under key.
	Load(ctx context.Context, key string, dst interface{}) (found bool, err error)

	// Save replaces the document stored under key. Failures are *StoreWriteError.
	Save(ctx context.Context, key string, doc interface{}) error
}
