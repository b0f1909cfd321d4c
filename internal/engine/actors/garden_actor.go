package actors

import (
	"log"
	"slices"
	"strings"
	"time"

	"greenpatch/internal/models"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for the crop tracker and grow guide
type (
	GetCropsMsg struct{}

	AddCropMsg struct {
		Crop models.Crop
	}

	UpdateCropMsg struct {
		CropID int64
		Patch  models.CropPatch
	}

	// GetPlantsMsg filters the grow guide. Empty fields match everything.
	GetPlantsMsg struct {
		Category string
		Query    string
	}
)

// GardenActor tracks the user's crops and serves the plant catalogue.
type GardenActor struct {
	crops      []models.Crop
	plants     []models.Plant
	lastCropID int64
	now        func() time.Time
	metrics    *utils.MetricsCollector
}

func NewGardenActor(crops []models.Crop, plants []models.Plant, metrics *utils.MetricsCollector) actor.Actor {
	a := &GardenActor{
		crops:   slices.Clone(crops),
		plants:  slices.Clone(plants),
		now:     time.Now,
		metrics: metrics,
	}
	for _, c := range a.crops {
		a.lastCropID = max(a.lastCropID, c.ID)
	}
	return a
}

func (a *GardenActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("GardenActor started with %d crops", len(a.crops))
	case *GetCropsMsg:
		context.Respond(slices.Clone(a.crops))

	case *AddCropMsg:
		startTime := time.Now()
		crop := msg.Crop
		crop.ID = a.nextCropID()
		a.crops = append(a.crops, crop)
		log.Printf("GardenActor: Added crop %d (%s)", crop.ID, crop.Name)
		if a.metrics != nil {
			a.metrics.AddOperationLatency("add_crop", time.Since(startTime))
		}
		context.Respond(&crop)

	case *UpdateCropMsg:
		idx := slices.IndexFunc(a.crops, func(c models.Crop) bool { return c.ID == msg.CropID })
		if idx < 0 {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Crop not found", nil))
			return
		}
		a.crops[idx] = msg.Patch.Apply(a.crops[idx])
		updated := a.crops[idx]
		context.Respond(&updated)

	case *GetPlantsMsg:
		context.Respond(filterPlants(a.plants, msg.Category, msg.Query))
	}
}

func (a *GardenActor) nextCropID() int64 {
	id := a.now().UnixMilli()
	if id <= a.lastCropID {
		id = a.lastCropID + 1
	}
	a.lastCropID = id
	return id
}

func filterPlants(plants []models.Plant, category, query string) []models.Plant {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Plant, 0, len(plants))
	for _, p := range plants {
		if category != "" && category != "all" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
