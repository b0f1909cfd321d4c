package actors

import (
	"log"
	"slices"
	"time"

	"greenpatch/internal/models"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for the marketplace
type (
	// GetMarketItemsMsg lists catalogue items, optionally of one listing type.
	GetMarketItemsMsg struct {
		Type string
	}

	GetOrdersMsg struct{}

	AddOrderMsg struct {
		Order models.MarketplaceOrder
	}

	DeleteOrderMsg struct {
		OrderID int64
	}
)

const orderTimestampLayout = "2 Jan, 03:04 pm"

// MarketActor serves the item catalogue and owns the user's order list,
// newest first.
type MarketActor struct {
	items          []models.MarketItem
	orders         []models.MarketplaceOrder
	lastOrderID    int64
	now            func() time.Time
	metrics        *utils.MetricsCollector
	persistencePID *actor.PID
}

func NewMarketActor(items []models.MarketItem, orders []models.MarketplaceOrder, metrics *utils.MetricsCollector, persistencePID *actor.PID) actor.Actor {
	a := &MarketActor{
		items:          slices.Clone(items),
		orders:         slices.Clone(orders),
		now:            time.Now,
		metrics:        metrics,
		persistencePID: persistencePID,
	}
	if a.orders == nil {
		a.orders = []models.MarketplaceOrder{}
	}
	for _, o := range a.orders {
		a.lastOrderID = max(a.lastOrderID, o.ID)
	}
	return a
}

func (a *MarketActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("MarketActor started with %d orders", len(a.orders))
	case *GetMarketItemsMsg:
		items := make([]models.MarketItem, 0, len(a.items))
		for _, item := range a.items {
			if msg.Type == "" || msg.Type == "All" || item.Type == msg.Type {
				items = append(items, item)
			}
		}
		context.Respond(items)

	case *GetOrdersMsg:
		context.Respond(slices.Clone(a.orders))

	case *AddOrderMsg:
		startTime := time.Now()
		order := msg.Order
		if order.ID == 0 {
			order.ID = a.nextOrderID()
		} else {
			a.lastOrderID = max(a.lastOrderID, order.ID)
		}
		if order.Type == "" {
			order.Type = order.Item.Type
		}
		if order.Timestamp == "" {
			order.Timestamp = a.now().Format(orderTimestampLayout)
		}
		a.orders = slices.Insert(a.orders, 0, order)
		a.persist(context)
		if a.metrics != nil {
			a.metrics.AddOperationLatency("add_order", time.Since(startTime))
		}
		context.Respond(&order)

	case *DeleteOrderMsg:
		before := len(a.orders)
		a.orders = slices.DeleteFunc(a.orders, func(o models.MarketplaceOrder) bool { return o.ID == msg.OrderID })
		if len(a.orders) != before {
			a.persist(context)
		}
		context.Respond(&models.StatusResponse{Success: true})
	}
}

func (a *MarketActor) nextOrderID() int64 {
	id := a.now().UnixMilli()
	if id <= a.lastOrderID {
		id = a.lastOrderID + 1
	}
	a.lastOrderID = id
	return id
}

func (a *MarketActor) persist(context actor.Context) {
	if a.persistencePID == nil {
		return
	}
	context.Send(a.persistencePID, &SaveSnapshotMsg{Key: storage.OrdersKey, Value: slices.Clone(a.orders)})
}
