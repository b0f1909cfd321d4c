package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"greenpatch/internal/models"
	"greenpatch/internal/seed"
	"greenpatch/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCmd(t *testing.T, kv storage.KV, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(context.Context) (storage.KV, error) { return kv, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedThenPosts(t *testing.T) {
	kv := storage.NewMemoryKV()

	out, err := runCmd(t, kv, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 posts")

	_, err = runCmd(t, kv, "seed")
	assert.Error(t, err, "seed must not clobber existing data without --force")

	_, err = runCmd(t, kv, "seed", "--force")
	require.NoError(t, err)

	out, err = runCmd(t, kv, "posts", "--sort", "new", "-o", "json")
	require.NoError(t, err)
	var posts []models.Post
	require.NoError(t, json.Unmarshal([]byte(out), &posts))
	require.Len(t, posts, len(seed.Posts()))
	assert.Equal(t, int64(4), posts[0].ID)

	out, err = runCmd(t, kv, "posts")
	require.NoError(t, err)
	var generic []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &generic))
	require.Len(t, generic, 4)
	assert.Contains(t, generic[0], "upvotedBy")
}

func TestOrdersAndReset(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, storage.SaveJSON(ctx, kv, storage.OrdersKey, []models.MarketplaceOrder{{ID: 9, Type: "Buy"}}))

	out, err := runCmd(t, kv, "orders", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": 9`)

	_, err = runCmd(t, kv, "reset")
	require.NoError(t, err)
	_, found, err := kv.Get(ctx, storage.OrdersKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRejectsUnknownOutput(t *testing.T) {
	_, err := runCmd(t, storage.NewMemoryKV(), "posts", "-o", "xml")
	assert.Error(t, err)
}
