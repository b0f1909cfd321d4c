package actors

import (
	"context"
	"testing"
	"time"

	"greenpatch/internal/models"
	"greenpatch/internal/seed"
	"greenpatch/internal/storage"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketActor(t *testing.T) {
	system := actor.NewActorSystem()
	defer system.Shutdown()
	kv := storage.NewMemoryKV()
	persistencePID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPersistenceActor(kv, time.Second, nil)
	}))
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewMarketActor(seed.MarketItems(), nil, nil, persistencePID)
	}))

	request := func(msg interface{}) interface{} {
		result, err := system.Root.RequestFuture(pid, msg, testTimeout).Result()
		require.NoError(t, err)
		return result
	}

	assert.Len(t, request(&GetMarketItemsMsg{}).([]models.MarketItem), 6)
	assert.Len(t, request(&GetMarketItemsMsg{Type: models.ListingSale}).([]models.MarketItem), 3)
	assert.Len(t, request(&GetMarketItemsMsg{Type: models.ListingRequest}).([]models.MarketItem), 1)

	items := seed.MarketItems()
	first := request(&AddOrderMsg{Order: models.MarketplaceOrder{Item: items[0]}}).(*models.MarketplaceOrder)
	assert.NotZero(t, first.ID)
	assert.Equal(t, models.ListingSwap, first.Type)
	assert.NotEmpty(t, first.Timestamp)

	second := request(&AddOrderMsg{Order: models.MarketplaceOrder{Item: items[1], Type: "Buy"}}).(*models.MarketplaceOrder)
	assert.Greater(t, second.ID, first.ID)

	orders := request(&GetOrdersMsg{}).([]models.MarketplaceOrder)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID, "newest first")

	request(&DeleteOrderMsg{OrderID: first.ID})
	request(&DeleteOrderMsg{OrderID: 42})
	orders = request(&GetOrdersMsg{}).([]models.MarketplaceOrder)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	require.Eventually(t, func() bool {
		saved, found, err := storage.LoadJSON[[]models.MarketplaceOrder](context.Background(), kv, storage.OrdersKey)
		return err == nil && found && len(saved) == 1 && saved[0].ID == second.ID
	}, testTimeout, 10*time.Millisecond)
}

func TestPersistenceActorReportsFailures(t *testing.T) {
	system := actor.NewActorSystem()
	defer system.Shutdown()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPersistenceActor(storage.NewMemoryKV(), time.Second, nil)
	}))

	result, err := system.Root.RequestFuture(pid, &SaveSnapshotMsg{Key: storage.OrdersKey, Value: []int{1}}, testTimeout).Result()
	require.NoError(t, err)
	assert.Equal(t, &models.StatusResponse{Success: true}, result)

	// channels cannot be encoded
	result, err = system.Root.RequestFuture(pid, &SaveSnapshotMsg{Key: storage.OrdersKey, Value: make(chan int)}, testTimeout).Result()
	require.NoError(t, err)
	_, isErr := result.(error)
	assert.True(t, isErr)
}
