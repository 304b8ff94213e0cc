package inmemdb

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
)

// documentStore keeps documents JSON encoded, so that callers never share memory with the store
// and a Load always sees exactly what the last Save wrote.
type documentStore struct {
	db *documentTable
}

var _ core.DocumentStore = (*documentStore)(nil) // interface compliance check

func NewDocumentStore(db *DB) core.DocumentStore {
	return &documentStore{db: db.documents}
}

func (store *documentStore) Load(_ context.Context, key string, dst interface{}) (bool, error) {
	store.db.RLock()
	data, ok := store.db.table[key]
	store.db.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, errors.Wrapf(err, "decoding document %s", key)
	}
	return true, nil
}

func (store *documentStore) Save(_ context.Context, key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return core.NewStoreWriteError(key, err)
	}

	store.db.Lock()
	defer store.db.Unlock()
	store.db.table[key] = data
	return nil
}
