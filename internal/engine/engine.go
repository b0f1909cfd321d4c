package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/feed"
	"greenpatch/internal/models"
	"greenpatch/internal/seed"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

var ErrNotStarted = errors.New("engine not started")

// Options tunes request and persistence timeouts. Zero values use defaults.
type Options struct {
	RequestTimeout time.Duration
	WriteTimeout   time.Duration
}

// Engine owns the actor system and the single-writer actors behind it.
// Start must be called before any request; Stop flushes state to storage.
type Engine struct {
	system  *actor.ActorSystem
	kv      storage.KV
	metrics *utils.MetricsCollector
	events  actors.EventPublisher
	opts    Options

	mu             sync.RWMutex
	started        bool
	feedPID        *actor.PID
	gardenPID      *actor.PID
	marketPID      *actor.PID
	rewardsPID     *actor.PID
	persistencePID *actor.PID
}

// NewEngine wires the engine. events may be nil.
func NewEngine(system *actor.ActorSystem, kv storage.KV, metrics *utils.MetricsCollector, events actors.EventPublisher, opts Options) *Engine {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 5 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 3 * time.Second
	}
	if metrics == nil {
		metrics = utils.NewMetricsCollector()
	}
	return &Engine{
		system:  system,
		kv:      kv,
		metrics: metrics,
		events:  events,
		opts:    opts,
	}
}

// Start restores the persisted collections, falling back to the seed data
// when a blob is missing or unreadable, and spawns the actors.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil
	}

	posts := loadOrSeed(ctx, e.kv, storage.PostsKey, seed.Posts)
	if len(posts) == 0 {
		// an empty saved feed never replaces the seed
		posts = seed.Posts()
	}
	orders := loadOrSeed(ctx, e.kv, storage.OrdersKey, func() []models.MarketplaceOrder {
		return []models.MarketplaceOrder{}
	})

	store := feed.New()
	store.Load(posts)

	root := e.system.Root
	metrics := e.metrics
	kv := e.kv
	writeTimeout := e.opts.WriteTimeout

	e.persistencePID = root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPersistenceActor(kv, writeTimeout, metrics)
	}))
	e.rewardsPID = root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewRewardsActor(metrics)
	}))
	persistencePID, rewardsPID, events := e.persistencePID, e.rewardsPID, e.events
	e.feedPID = root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewFeedActor(store, metrics, persistencePID, rewardsPID, events)
	}))
	e.gardenPID = root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewGardenActor(seed.Crops(), seed.Plants(), metrics)
	}))
	e.marketPID = root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewMarketActor(seed.MarketItems(), orders, metrics, persistencePID)
	}))

	e.started = true
	log.Printf("Engine started with %d posts and %d orders", store.Len(), len(orders))
	return nil
}

func loadOrSeed[T any](ctx context.Context, kv storage.KV, key string, fallback func() T) T {
	value, found, err := storage.LoadJSON[T](ctx, kv, key)
	if err != nil {
		log.Printf("Engine: could not restore %s, using defaults: %v", key, err)
		return fallback()
	}
	if !found {
		return fallback()
	}
	return value
}

// Stop writes both collections synchronously, stops the actors and closes
// the store. Write failures are logged and returned after shutdown completes.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return nil
	}

	var errs []error
	if err := e.flush(storage.PostsKey, e.feedPID, &actors.GetPostsMsg{}); err != nil {
		errs = append(errs, err)
	}
	if err := e.flush(storage.OrdersKey, e.marketPID, &actors.GetOrdersMsg{}); err != nil {
		errs = append(errs, err)
	}

	for _, pid := range []*actor.PID{e.feedPID, e.gardenPID, e.marketPID, e.rewardsPID, e.persistencePID} {
		if err := e.system.Root.StopFuture(pid).Wait(); err != nil {
			log.Printf("Engine: failed to stop %s: %v", pid.Id, err)
		}
	}
	e.started = false

	if err := e.kv.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	for _, err := range errs {
		log.Printf("Engine: shutdown error: %v", err)
	}
	return errors.Join(errs...)
}

// flush reads a snapshot from owner and hands it to the persistence actor,
// waiting for the write. Queued fire-and-forget writes land first.
func (e *Engine) flush(key string, owner *actor.PID, query interface{}) error {
	snapshot, err := e.request(owner, query)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", key, err)
	}
	if _, err := e.request(e.persistencePID, &actors.SaveSnapshotMsg{Key: key, Value: snapshot}); err != nil {
		return fmt.Errorf("flush %s: %w", key, err)
	}
	return nil
}

// Request sends msg to the actor serving it and waits for the reply. An
// AppError reply is returned as the error.
func (e *Engine) Request(pid *actor.PID, msg interface{}) (interface{}, error) {
	e.mu.RLock()
	started := e.started
	e.mu.RUnlock()
	if !started {
		return nil, utils.NewAppError(utils.ErrUnavailable, "engine is not running", ErrNotStarted)
	}
	return e.request(pid, msg)
}

func (e *Engine) request(pid *actor.PID, msg interface{}) (interface{}, error) {
	startTime := time.Now()
	e.metrics.IncrementRequests()

	result, err := e.system.Root.RequestFuture(pid, msg, e.opts.RequestTimeout).Result()
	if err != nil {
		e.metrics.IncrementErrors()
		return nil, utils.NewAppError(utils.ErrActorTimeout, "Actor communication timeout: "+pid.Id, err)
	}
	if appErr, ok := result.(*utils.AppError); ok {
		e.metrics.IncrementErrors()
		return nil, appErr
	}
	e.metrics.AddOperationLatency(strings.TrimPrefix(fmt.Sprintf("%T", msg), "*actors."), time.Since(startTime))
	return result, nil
}

// Metrics returns the collector shared by all actors.
func (e *Engine) Metrics() *utils.MetricsCollector {
	return e.metrics
}

// GetFeedActor returns the PID of the feed actor
func (e *Engine) GetFeedActor() *actor.PID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.feedPID
}

// GetGardenActor returns the PID of the garden actor
func (e *Engine) GetGardenActor() *actor.PID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gardenPID
}

// GetMarketActor returns the PID of the market actor
func (e *Engine) GetMarketActor() *actor.PID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.marketPID
}

// GetRewardsActor returns the PID of the rewards actor
func (e *Engine) GetRewardsActor() *actor.PID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rewardsPID
}
