package inmemdb

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Items  []string `json:"items"`
	Cursor int      `json:"cursor"`
}

func Test_documentStore(t *testing.T) {
	db, err := Open()
	require.NoError(t, err)
	store := NewDocumentStore(db)
	ctx := context.Background()

	var got doc
	found, err := store.Load(ctx, "queue:inventory", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := doc{Items: []string{"a", "b"}, Cursor: 1}
	require.NoError(t, store.Save(ctx, "queue:inventory", want))

	// the store keeps its own copy
	want.Items[0] = "changed"

	found, err = store.Load(ctx, "queue:inventory", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Items: []string{"a", "b"}, Cursor: 1}, got)

	// whole document replace
	require.NoError(t, store.Save(ctx, "queue:inventory", doc{Cursor: 2}))
	var replaced doc
	_, err = store.Load(ctx, "queue:inventory", &replaced)
	require.NoError(t, err)
	assert.Equal(t, doc{Cursor: 2}, replaced)
}

func Test_documentStore_concurrentSaves(t *testing.T) {
	db, err := Open()
	require.NoError(t, err)
	store := NewDocumentStore(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Save(ctx, "fleet:van", doc{Cursor: i})
			_, _ = store.Load(ctx, "fleet:van", new(doc))
		}(i)
	}
	wg.Wait()

	var got doc
	found, err := store.Load(ctx, "fleet:van", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, got.Cursor >= 0 && got.Cursor < 50)
}

func Test_documentStore_unencodable(t *testing.T) {
	db, err := Open()
	require.NoError(t, err)
	store := NewDocumentStore(db)

	err = store.Save(context.Background(), "bad", map[string]interface{}{"ch": make(chan int)})
	require.Error(t, err)
}
