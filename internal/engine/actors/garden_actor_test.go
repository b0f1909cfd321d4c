package actors

import (
	"testing"
	"time"

	"greenpatch/internal/models"
	"greenpatch/internal/seed"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGardenActor(t *testing.T) {
	system := actor.NewActorSystem()
	defer system.Shutdown()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewGardenActor(seed.Crops(), seed.Plants(), nil)
	}))

	request := func(msg interface{}) interface{} {
		result, err := system.Root.RequestFuture(pid, msg, testTimeout).Result()
		require.NoError(t, err)
		return result
	}

	crops := request(&GetCropsMsg{}).([]models.Crop)
	require.Len(t, crops, 3)

	added := request(&AddCropMsg{Crop: models.Crop{Name: "Okra", Image: "🌱", Stage: "Seed"}}).(*models.Crop)
	assert.Greater(t, added.ID, int64(3))
	second := request(&AddCropMsg{Crop: models.Crop{Name: "Chili", Stage: "Seed"}}).(*models.Crop)
	assert.Greater(t, second.ID, added.ID)

	progress := 60
	stage := "Sprout"
	updated := request(&UpdateCropMsg{CropID: added.ID, Patch: models.CropPatch{Progress: &progress, Stage: &stage}}).(*models.Crop)
	assert.Equal(t, 60, updated.Progress)
	assert.Equal(t, "Sprout", updated.Stage)
	assert.Equal(t, "Okra", updated.Name, "untouched fields are kept")

	crops = request(&GetCropsMsg{}).([]models.Crop)
	require.Len(t, crops, 5)
	assert.Equal(t, "Okra", crops[3].Name)

	_, isErr := request(&UpdateCropMsg{CropID: 12345, Patch: models.CropPatch{Progress: &progress}}).(interface{ Error() string })
	assert.True(t, isErr)
}

func TestGardenActorCropIDsAreMonotonic(t *testing.T) {
	a := NewGardenActor(nil, nil, nil).(*GardenActor)
	fixed := time.UnixMilli(1000)
	a.now = func() time.Time { return fixed }

	assert.Equal(t, int64(1000), a.nextCropID())
	assert.Equal(t, int64(1001), a.nextCropID())
}

func TestFilterPlants(t *testing.T) {
	plants := seed.Plants()

	assert.Len(t, filterPlants(plants, "", ""), 26)
	assert.Len(t, filterPlants(plants, "all", ""), 26)
	assert.Len(t, filterPlants(plants, "herb", ""), 8)
	assert.Len(t, filterPlants(plants, "Succulent", ""), 3)

	tomatoes := filterPlants(plants, "", "TOMATO")
	require.Len(t, tomatoes, 2)
	assert.Equal(t, "Tomato", tomatoes[0].Name)
	assert.Equal(t, "Cherry Tomato", tomatoes[1].Name)

	assert.Empty(t, filterPlants(plants, "flower", "tomato"))
}
