package actors

import (
	stdctx "context"
	"log"
	"time"

	"greenpatch/internal/models"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// SaveSnapshotMsg replaces the blob under Key with Value encoded as JSON.
// Sent fire-and-forget after mutations. A caller using RequestFuture gets a
// StatusResponse or the storage AppError back.
type SaveSnapshotMsg struct {
	Key   string
	Value interface{}
}

// PersistenceActor serialises all writes to the key-value store. Failures are
// logged and never reach the actor that produced the snapshot.
type PersistenceActor struct {
	kv           storage.KV
	writeTimeout time.Duration
	metrics      *utils.MetricsCollector
}

func NewPersistenceActor(kv storage.KV, writeTimeout time.Duration, metrics *utils.MetricsCollector) actor.Actor {
	if writeTimeout <= 0 {
		writeTimeout = 3 * time.Second
	}
	return &PersistenceActor{
		kv:           kv,
		writeTimeout: writeTimeout,
		metrics:      metrics,
	}
}

func (a *PersistenceActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("PersistenceActor started")
	case *actor.Stopping:
		log.Printf("PersistenceActor stopping")
	case *SaveSnapshotMsg:
		err := a.save(msg)
		if context.Sender() != nil {
			if err != nil {
				context.Respond(utils.NewAppError(utils.ErrStorage, "failed to persist "+msg.Key, err))
			} else {
				context.Respond(&models.StatusResponse{Success: true})
			}
		}
	}
}

func (a *PersistenceActor) save(msg *SaveSnapshotMsg) error {
	startTime := time.Now()
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), a.writeTimeout)
	defer cancel()

	if err := storage.SaveJSON(ctx, a.kv, msg.Key, msg.Value); err != nil {
		log.Printf("PersistenceActor: failed to save %s: %v", msg.Key, err)
		if a.metrics != nil {
			a.metrics.IncrementErrors()
		}
		return err
	}
	if a.metrics != nil {
		a.metrics.AddOperationLatency("persist_"+msg.Key, time.Since(startTime))
	}
	return nil
}
