package actors

import (
	"testing"

	"greenpatch/internal/models"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func badgeByName(t *testing.T, state *models.RewardState, name string) models.Badge {
	t.Helper()
	for _, b := range state.Badges {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("badge %q missing", name)
	return models.Badge{}
}

func TestRewardsActor(t *testing.T) {
	system := actor.NewActorSystem()
	defer system.Shutdown()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewRewardsActor(utils.NewMetricsCollector())
	}))

	request := func(msg interface{}) interface{} {
		result, err := system.Root.RequestFuture(pid, msg, testTimeout).Result()
		require.NoError(t, err)
		return result
	}

	state := request(&GetRewardsMsg{User: "Priya K."}).(*models.RewardState)
	assert.Equal(t, 2450, state.Points)
	assert.Equal(t, 3, state.Level)
	// seeded as earned, level 3 of 5
	guru := badgeByName(t, state, "Green Guru")
	assert.True(t, guru.Earned)
	assert.InDelta(t, 60, guru.Progress, 0.001)
	eco := badgeByName(t, state, "Eco Contributor")
	assert.True(t, eco.Earned, "streak of 5 meets the threshold")
	helper := badgeByName(t, state, "Community Helper")
	assert.False(t, helper.Earned)
	assert.InDelta(t, 200.0/3, helper.Progress, 0.001)

	// water challenge pays once
	state = request(&CompleteChallengeMsg{User: "Priya K.", ChallengeID: "1"}).(*models.RewardState)
	assert.Equal(t, 2500, state.Points)
	assert.True(t, state.Challenges[0].Completed)
	state = request(&CompleteChallengeMsg{User: "Priya K.", ChallengeID: "1"}).(*models.RewardState)
	assert.Equal(t, 2500, state.Points)

	result := request(&CompleteChallengeMsg{User: "Priya K.", ChallengeID: "9"})
	assert.True(t, utils.IsNotFound(result.(*utils.AppError)))

	system.Root.Send(pid, &PostCreatedMsg{User: "Priya K."})
	state = request(&GetRewardsMsg{User: "Priya K."}).(*models.RewardState)
	assert.Equal(t, 3, state.PostsMade)
	assert.Equal(t, 2600, state.Points)
	assert.True(t, badgeByName(t, state, "Community Helper").Earned)

	// a second post does not pay the post challenge again
	system.Root.Send(pid, &PostCreatedMsg{User: "Priya K."})
	state = request(&GetRewardsMsg{User: "Priya K."}).(*models.RewardState)
	assert.Equal(t, 4, state.PostsMade)
	assert.Equal(t, 2600, state.Points)

	// users are independent
	other := request(&GetRewardsMsg{User: "Raj M."}).(*models.RewardState)
	assert.Equal(t, 2450, other.Points)
	assert.Equal(t, 2, other.PostsMade)
}

func TestRefreshBadgesKeepsEarned(t *testing.T) {
	state := &models.RewardState{
		Level:  1,
		Badges: []models.Badge{{Name: "Green Guru", Earned: true, Progress: 100}},
	}
	refreshBadges(state)
	assert.True(t, state.Badges[0].Earned)
	assert.InDelta(t, 20, state.Badges[0].Progress, 0.001)

	state.Level = 7
	refreshBadges(state)
	assert.Equal(t, float64(100), state.Badges[0].Progress)
}
