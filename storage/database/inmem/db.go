package inmemdb

import "sync"

type (
	DB struct {
		documents *documentTable
	}

	documentTable struct {
		sync.RWMutex
		table map[string][]byte // {key: JSON document}
	}
)

func Open() (*DB, error) {
	db := &DB{
		documents: &documentTable{table: make(map[string][]byte)},
	}
	return db, nil
}
