package testutil

import (
	"database/sql"
	"testing"

	"github.com/trezcool/opsdesk/core"
	"github.com/trezcool/opsdesk/storage/database"
)

// PrepareDB returns a migrated postgres database holding no document.
// The test is skipped unless the configured store is postgres (eg. ENV=TEST TEST_STORE=postgres).
func PrepareDB(t *testing.T) *sql.DB {
	conf := core.NewConfig()
	if conf.Store != core.StorePostgres {
		t.Skipf("store is %q, not %q", conf.Store, core.StorePostgres)
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	ResetDB(t, db)
	return db
}

func ResetDB(t *testing.T, db *sql.DB) {
	if _, err := db.Exec(`DELETE FROM "document"`); err != nil {
		t.Fatalf("ResetDB() failed: %v", err)
	}
}
