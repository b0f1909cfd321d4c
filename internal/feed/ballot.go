package feed

import (
	"sort"

	"greenpatch/internal/models"
)

// ballot is the vote state of a single post or comment. The counters may start
// above the number of recorded voters (seeded posts carry historical totals), so
// they are tracked separately from the per-voter state.
type ballot struct {
	upvotes   int
	downvotes int
	votes     map[string]castVote
	seq       uint64
}

type castVote struct {
	dir models.VoteDirection
	seq uint64 // order the current vote was cast in
}

func newBallot(upvotes, downvotes int) *ballot {
	return &ballot{
		upvotes:   upvotes,
		downvotes: downvotes,
		votes:     make(map[string]castVote),
	}
}

// restoreBallot rebuilds a ballot from persisted voter lists. A name found in
// both lists keeps its upvote.
func restoreBallot(upvotes, downvotes int, upvotedBy, downvotedBy []string) *ballot {
	b := newBallot(upvotes, downvotes)
	for _, name := range upvotedBy {
		b.record(name, models.VoteUp)
	}
	for _, name := range downvotedBy {
		b.record(name, models.VoteDown)
	}
	return b
}

func (b *ballot) record(voter string, dir models.VoteDirection) {
	if _, exists := b.votes[voter]; exists {
		return
	}
	b.seq++
	b.votes[voter] = castVote{dir: dir, seq: b.seq}
}

func (b *ballot) state(voter string) models.VoteDirection {
	if v, ok := b.votes[voter]; ok {
		return v.dir
	}
	return models.VoteNone
}

// cast runs one transition of the per-voter state machine and returns the new
// state. Repeating the current vote retracts it; voting the other way moves the
// voter across in a single step so both counters change together.
func (b *ballot) cast(voter string, dir models.VoteDirection) models.VoteDirection {
	prev := b.state(voter)
	next := dir
	if prev == dir {
		next = models.VoteNone
	}

	b.adjust(prev, -1)
	b.adjust(next, 1)

	if next == models.VoteNone {
		delete(b.votes, voter)
		return next
	}
	b.seq++
	b.votes[voter] = castVote{dir: next, seq: b.seq}
	return next
}

func (b *ballot) adjust(dir models.VoteDirection, delta int) {
	switch dir {
	case models.VoteUp:
		b.upvotes += delta
	case models.VoteDown:
		b.downvotes += delta
	}
}

// voters lists everyone currently holding dir, oldest vote first.
func (b *ballot) voters(dir models.VoteDirection) []string {
	type entry struct {
		name string
		seq  uint64
	}
	entries := make([]entry, 0, len(b.votes))
	for name, v := range b.votes {
		if v.dir == dir {
			entries = append(entries, entry{name: name, seq: v.seq})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
