package feed

import (
	"slices"

	"greenpatch/internal/models"
)

// reactionSet keeps one entry per emoji, in the order emojis were first used.
type reactionSet struct {
	entries []models.Reaction
}

func newReactionSet(from []models.Reaction) *reactionSet {
	rs := &reactionSet{}
	for _, r := range from {
		for _, user := range r.Users {
			rs.add(r.Emoji, user)
		}
	}
	return rs
}

func (rs *reactionSet) find(emoji string) int {
	return slices.IndexFunc(rs.entries, func(r models.Reaction) bool { return r.Emoji == emoji })
}

func (rs *reactionSet) add(emoji, user string) {
	i := rs.find(emoji)
	if i < 0 {
		rs.entries = append(rs.entries, models.Reaction{Emoji: emoji, Users: []string{user}})
		return
	}
	if !slices.Contains(rs.entries[i].Users, user) {
		rs.entries[i].Users = append(rs.entries[i].Users, user)
	}
}

// toggle flips user's membership in the emoji entry and reports whether the
// user now holds the reaction. The entry disappears with its last user.
func (rs *reactionSet) toggle(emoji, user string) bool {
	i := rs.find(emoji)
	if i < 0 || !slices.Contains(rs.entries[i].Users, user) {
		rs.add(emoji, user)
		return true
	}

	users := slices.DeleteFunc(slices.Clone(rs.entries[i].Users), func(u string) bool { return u == user })
	if len(users) == 0 {
		rs.entries = slices.Delete(rs.entries, i, i+1)
		return false
	}
	rs.entries[i].Users = users
	return false
}

func (rs *reactionSet) snapshot() []models.Reaction {
	out := make([]models.Reaction, len(rs.entries))
	for i, r := range rs.entries {
		out[i] = models.Reaction{Emoji: r.Emoji, Users: slices.Clone(r.Users)}
	}
	return out
}
