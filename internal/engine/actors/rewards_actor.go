package actors

import (
	"log"
	"slices"
	"time"

	"greenpatch/internal/models"
	"greenpatch/internal/seed"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for rewards
type (
	GetRewardsMsg struct {
		User string
	}

	CompleteChallengeMsg struct {
		User        string
		ChallengeID string
	}

	// PostCreatedMsg is sent by the FeedActor after a community post.
	PostCreatedMsg struct {
		User string
	}
)

// Badge thresholds.
const (
	greenGuruLevel       = 5
	communityHelperPosts = 3
	ecoContributorStreak = 3
)

// RewardsActor keeps points, challenges and badges per display name. State
// is created from the defaults the first time a name is seen.
type RewardsActor struct {
	users   map[string]*models.RewardState
	metrics *utils.MetricsCollector
}

func NewRewardsActor(metrics *utils.MetricsCollector) actor.Actor {
	return &RewardsActor{
		users:   make(map[string]*models.RewardState),
		metrics: metrics,
	}
}

func (a *RewardsActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("RewardsActor started")
	case *GetRewardsMsg:
		state := a.stateFor(msg.User)
		context.Respond(snapshotRewards(state))

	case *CompleteChallengeMsg:
		startTime := time.Now()
		state := a.stateFor(msg.User)
		idx := slices.IndexFunc(state.Challenges, func(c models.Challenge) bool { return c.ID == msg.ChallengeID })
		if idx < 0 {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "Challenge not found: "+msg.ChallengeID, nil))
			return
		}
		completeChallenge(state, idx)
		if a.metrics != nil {
			a.metrics.AddOperationLatency("complete_challenge", time.Since(startTime))
		}
		context.Respond(snapshotRewards(state))

	case *PostCreatedMsg:
		state := a.stateFor(msg.User)
		state.PostsMade++
		if idx := slices.IndexFunc(state.Challenges, func(c models.Challenge) bool { return c.Type == models.ChallengePost }); idx >= 0 {
			completeChallenge(state, idx)
		}
		refreshBadges(state)
		log.Printf("RewardsActor: %q has now made %d posts", msg.User, state.PostsMade)
	}
}

func (a *RewardsActor) stateFor(user string) *models.RewardState {
	state, ok := a.users[user]
	if !ok {
		s := seed.RewardState(user)
		state = &s
		refreshBadges(state)
		a.users[user] = state
	}
	return state
}

// completeChallenge pays out the reward once. Repeat completions do nothing.
func completeChallenge(state *models.RewardState, idx int) {
	c := &state.Challenges[idx]
	if c.Completed {
		return
	}
	c.Completed = true
	state.Points += c.Reward
	state.Level = models.LevelForPoints(state.Points)
	refreshBadges(state)
}

// refreshBadges recomputes badge progress. Earned is never cleared, even when
// progress drops below the threshold again.
func refreshBadges(state *models.RewardState) {
	for i := range state.Badges {
		b := &state.Badges[i]
		var current, target int
		switch b.Name {
		case "Green Guru":
			current, target = state.Level, greenGuruLevel
		case "Community Helper":
			current, target = state.PostsMade, communityHelperPosts
		case "Eco Contributor":
			current, target = state.Streak, ecoContributorStreak
		default:
			continue
		}
		if current >= target {
			b.Earned = true
			b.Progress = 100
		} else {
			b.Progress = float64(current) / float64(target) * 100
		}
	}
}

func snapshotRewards(state *models.RewardState) *models.RewardState {
	out := *state
	out.Challenges = slices.Clone(state.Challenges)
	out.Badges = slices.Clone(state.Badges)
	return &out
}
