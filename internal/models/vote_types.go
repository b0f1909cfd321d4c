package models

import "fmt"

// VoteContentType represents the type of content being voted on.
type VoteContentType string

const (
	PostVote    VoteContentType = "post"
	CommentVote VoteContentType = "comment"
)

// VoteDirection represents the direction of a vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
	VoteNone VoteDirection = "none" // no vote recorded for the voter
)

// Opposite returns the other side of an up or down vote. VoteNone has no opposite.
func (d VoteDirection) Opposite() VoteDirection {
	switch d {
	case VoteUp:
		return VoteDown
	case VoteDown:
		return VoteUp
	default:
		return VoteNone
	}
}

// ParseVoteDirection accepts "up" or "down".
func ParseVoteDirection(s string) (VoteDirection, error) {
	switch VoteDirection(s) {
	case VoteUp, VoteDown:
		return VoteDirection(s), nil
	}
	return VoteNone, fmt.Errorf("invalid vote direction %q", s)
}

// SortMode selects how a feed snapshot is ordered.
type SortMode string

const (
	SortHot SortMode = "hot"
	SortNew SortMode = "new"
	SortTop SortMode = "top"
)
