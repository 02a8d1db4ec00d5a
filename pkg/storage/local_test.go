package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePutGetRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "graphs/a.json", []byte(`{"tasks":[]}`)))

	data, err := store.Get(ctx, "graphs/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[]}`, string(data))

	ok, err := store.Exists(ctx, "graphs/a.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStoreGetMissingKeyReturnsErrNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreExistsMissingKeyIsFalseNotError(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ok, err := store.Exists(context.Background(), "missing.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRejectsPathTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Get(ctx, "../escape.json")
	require.Error(t, err)

	err = store.Put(ctx, "../../escape.json", []byte("x"))
	require.Error(t, err)

	_, err = store.Exists(ctx, filepath.Join("..", "escape.json"))
	require.Error(t, err)
}

func TestFileStorePutCreatesIntermediateDirectories(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "nested/deep/binding.json", []byte("{}")))

	ok, err := store.Exists(ctx, "nested/deep/binding.json")
	require.NoError(t, err)
	assert.True(t, ok)
}
