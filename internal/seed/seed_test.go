package seed

import (
	"testing"

	"greenpatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectCommentIDs(comments []models.Comment, into map[string]int) {
	for _, c := range comments {
		into[c.ID]++
		collectCommentIDs(c.Replies, into)
	}
}

func TestPostsAreWellFormed(t *testing.T) {
	posts := Posts()
	require.Len(t, posts, 4)

	seen := make(map[int64]bool)
	for _, p := range posts {
		assert.False(t, seen[p.ID], "duplicate post id %d", p.ID)
		seen[p.ID] = true

		for _, up := range p.UpvotedBy {
			assert.NotContains(t, p.DownvotedBy, up)
		}
		for _, r := range p.Reactions {
			assert.NotEmpty(t, r.Users, "reaction %s on post %d", r.Emoji, p.ID)
		}

		ids := make(map[string]int)
		collectCommentIDs(p.Comments, ids)
		for id, n := range ids {
			assert.Equal(t, 1, n, "comment %s repeated in post %d", id, p.ID)
		}
	}
}

func TestPostsReturnsFreshCopies(t *testing.T) {
	a := Posts()
	a[0].Text = "changed"
	a[0].Comments[0].Replies[0].Text = "changed"
	*a[0].UserKarma = 0

	b := Posts()
	assert.NotEqual(t, "changed", b[0].Text)
	assert.NotEqual(t, "changed", b[0].Comments[0].Replies[0].Text)
	assert.Equal(t, 1247, *b[0].UserKarma)
}

func TestCatalogues(t *testing.T) {
	assert.Len(t, Crops(), 3)
	assert.Len(t, Plants(), 26)
	assert.Len(t, MarketItems(), 6)
	assert.Len(t, Badges(), 4)
	assert.Len(t, Challenges(), 3)

	for _, item := range MarketItems() {
		if item.Type == models.ListingSale {
			assert.NotNil(t, item.Price, item.Name)
		} else {
			assert.Nil(t, item.Price, item.Name)
		}
	}
}

func TestRewardState(t *testing.T) {
	s := RewardState("Meera P.")
	assert.Equal(t, "Meera P.", s.User)
	assert.Equal(t, 2450, s.Points)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 5, s.Streak)
	assert.Equal(t, 2, s.PostsMade)
	for _, c := range s.Challenges {
		assert.False(t, c.Completed)
	}
}
