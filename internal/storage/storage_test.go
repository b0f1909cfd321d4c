package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"greenpatch/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, found, err := kv.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, PostsKey, []byte(`[{"id":1}]`)))
	v, found, err := kv.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":1}]`, string(v))

	// last writer wins
	require.NoError(t, kv.Set(ctx, PostsKey, []byte(`[]`)))
	v, _, err = kv.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v))

	require.NoError(t, kv.Set(ctx, OrdersKey, []byte(`[{"id":2}]`)))
	require.NoError(t, kv.Delete(ctx, PostsKey))
	_, found, err = kv.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = kv.Get(ctx, OrdersKey)
	require.NoError(t, err)
	assert.True(t, found, "deleting one key leaves the others")

	require.NoError(t, kv.Delete(ctx, "missing"))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	buf := []byte(`"a"`)
	require.NoError(t, kv.Set(ctx, "k", buf))
	buf[1] = 'b'

	v, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(v))
}

func TestFileKV(t *testing.T) {
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "data", "store.json"))
	require.NoError(t, err)
	exerciseKV(t, kv)
}

func TestFileKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	kv, err := NewFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, OrdersKey, []byte(`[1,2,3]`)))

	reopened, err := NewFileKV(path)
	require.NoError(t, err)
	v, found, err := reopened.Get(ctx, OrdersKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[1,2,3]`, string(v))
}

func TestFileKVMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	kv, err := NewFileKV(path)
	require.NoError(t, err)
	_, _, err = kv.Get(context.Background(), PostsKey)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSQLiteKV(t *testing.T) {
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer kv.Close(context.Background())
	exerciseKV(t, kv)
}

func TestLoadAndSaveJSON(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, found, err := LoadJSON[[]int](ctx, kv, OrdersKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SaveJSON(ctx, kv, OrdersKey, []int{3, 1, 2}))
	got, found, err := LoadJSON[[]int](ctx, kv, OrdersKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{3, 1, 2}, got)

	require.NoError(t, kv.Set(ctx, PostsKey, []byte("not json")))
	_, found, err = LoadJSON[[]int](ctx, kv, PostsKey)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.False(t, found)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(ctx, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = Open(ctx, &config.StorageConfig{Backend: config.BackendFile, Path: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	_, err = Open(ctx, &config.StorageConfig{Backend: "etcd"})
	assert.Error(t, err)
}
