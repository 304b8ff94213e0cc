package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
)

const (
	selectDocument = `SELECT "key", "body", "updated_at" FROM "document" WHERE "key" = $1`
	upsertDocument = `INSERT INTO "document" ("key", "body", "updated_at") VALUES (:key, :body, :updated_at)
		ON CONFLICT ("key") DO UPDATE SET "body" = EXCLUDED."body", "updated_at" = EXCLUDED."updated_at"`
)

// documentRow is a row of the "document" table. Body is text so that lib/pq sends it as JSON, not bytea.
type documentRow struct {
	Key       string    `db:"key"`
	Body      string    `db:"body"`
	UpdatedAt time.Time `db:"updated_at"`
}

type documentStore struct {
	db *sqlx.DB
}

var _ core.DocumentStore = (*documentStore)(nil) // interface compliance check

func NewDocumentStore(db *sql.DB) core.DocumentStore {
	return &documentStore{db: sqlx.NewDb(db, "postgres")}
}

func (store documentStore) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	var row documentRow
	if err := store.db.GetContext(ctx, &row, selectDocument, key); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.Wrap(err, "selecting document")
	}
	if err := json.Unmarshal([]byte(row.Body), dst); err != nil {
		return true, errors.Wrapf(err, "decoding document %s", key)
	}
	return true, nil
}

// Save replaces the whole document: no version check, the last writer wins.
func (store documentStore) Save(ctx context.Context, key string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return core.NewStoreWriteError(key, err)
	}
	row := documentRow{
		Key:       key,
		Body:      string(body),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err = store.db.NamedExecContext(ctx, upsertDocument, row); err != nil {
		return core.NewStoreWriteError(key, err)
	}
	return nil
}
