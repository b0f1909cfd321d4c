package engine

import (
	"context"
	"testing"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/models"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startEngine(t *testing.T, kv storage.KV) *Engine {
	t.Helper()
	system := actor.NewActorSystem()
	t.Cleanup(func() { system.Shutdown() })

	e := NewEngine(system, kv, utils.NewMetricsCollector(), nil, Options{})
	require.NoError(t, e.Start(context.Background()))
	return e
}

func getPosts(t *testing.T, e *Engine) []models.Post {
	t.Helper()
	result, err := e.Request(e.GetFeedActor(), &actors.GetPostsMsg{Sort: models.SortNew})
	require.NoError(t, err)
	return result.([]models.Post)
}

func TestStartSeedsEmptyStore(t *testing.T) {
	e := startEngine(t, storage.NewMemoryKV())

	posts := getPosts(t, e)
	require.Len(t, posts, 4)
	assert.Equal(t, int64(4), posts[0].ID)

	result, err := e.Request(e.GetMarketActor(), &actors.GetOrdersMsg{})
	require.NoError(t, err)
	assert.Empty(t, result.([]models.MarketplaceOrder))
}

func TestStartRestoresPersistedCollections(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	persisted := []models.Post{{ID: 77, User: "Raj M.", Text: "Neem oil batch ready"}}
	require.NoError(t, storage.SaveJSON(ctx, kv, storage.PostsKey, persisted))
	require.NoError(t, storage.SaveJSON(ctx, kv, storage.OrdersKey, []models.MarketplaceOrder{{ID: 5, Type: "Buy"}}))

	e := startEngine(t, kv)

	posts := getPosts(t, e)
	require.Len(t, posts, 1)
	assert.Equal(t, "Neem oil batch ready", posts[0].Text)

	result, err := e.Request(e.GetMarketActor(), &actors.GetOrdersMsg{})
	require.NoError(t, err)
	assert.Len(t, result.([]models.MarketplaceOrder), 1)
}

func TestStartFallsBackOnMalformedBlob(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), storage.PostsKey, []byte("{broken")))

	e := startEngine(t, kv)
	assert.Len(t, getPosts(t, e), 4)
}

func TestStartSeedsWhenSavedFeedIsEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), storage.PostsKey, []byte("[]")))
	require.NoError(t, kv.Set(context.Background(), storage.OrdersKey, []byte("[]")))

	e := startEngine(t, kv)
	assert.Len(t, getPosts(t, e), 4)

	result, err := e.Request(e.GetMarketActor(), &actors.GetOrdersMsg{})
	require.NoError(t, err)
	assert.Empty(t, result.([]models.MarketplaceOrder))
}

func TestStopFlushesAndRestartRestores(t *testing.T) {
	kv := storage.NewMemoryKV()
	e := startEngine(t, kv)

	result, err := e.Request(e.GetFeedActor(), &actors.CreatePostMsg{Author: "Anita S.", Text: "Repotted the aloe"})
	require.NoError(t, err)
	created := result.(*models.Post)
	_, err = e.Request(e.GetFeedActor(), &actors.VotePostMsg{PostID: 1, Voter: "Anita S.", Direction: models.VoteDown})
	require.NoError(t, err)
	_, err = e.Request(e.GetMarketActor(), &actors.AddOrderMsg{Order: models.MarketplaceOrder{Type: "Swap"}})
	require.NoError(t, err)

	require.NoError(t, e.Stop(context.Background()))

	_, err = e.Request(e.GetFeedActor(), &actors.GetPostsMsg{})
	assert.True(t, utils.IsErrorCode(err, utils.ErrUnavailable))

	restarted := startEngine(t, kv)
	posts := getPosts(t, restarted)
	require.Len(t, posts, 5)
	assert.Equal(t, created.ID, posts[0].ID)

	var basil models.Post
	for _, p := range posts {
		if p.ID == 1 {
			basil = p
		}
	}
	assert.Equal(t, 3, basil.Downvotes)
	assert.Equal(t, []string{"Anita S."}, basil.DownvotedBy)

	result, err = restarted.Request(restarted.GetMarketActor(), &actors.GetOrdersMsg{})
	require.NoError(t, err)
	assert.Len(t, result.([]models.MarketplaceOrder), 1)
}

func TestRequestMapsAppErrors(t *testing.T) {
	e := startEngine(t, storage.NewMemoryKV())

	_, err := e.Request(e.GetFeedActor(), &actors.GetPostMsg{PostID: 404})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrPostNotFound))
	assert.True(t, utils.IsNotFound(err))
}

func TestRequestBeforeStart(t *testing.T) {
	system := actor.NewActorSystem()
	defer system.Shutdown()
	e := NewEngine(system, storage.NewMemoryKV(), nil, nil, Options{})

	_, err := e.Request(e.GetFeedActor(), &actors.GetPostsMsg{})
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.NoError(t, e.Stop(context.Background()))
}
