package feed

import (
	"slices"

	"greenpatch/internal/models"
)

// commentKey addresses a comment in the arena. Comment ids are only unique
// within their post.
type commentKey struct {
	post int64
	id   string
}

type commentNode struct {
	id        string
	user      string
	avatar    string
	text      string
	timestamp string
	images    []string
	parent    string // empty for top-level comments
	children  []string
	ballot    *ballot
	reactions *reactionSet
}

type postNode struct {
	post      models.Post // scalar fields only; collections live below
	roots     []string
	awards    []string
	ballot    *ballot
	reactions *reactionSet
}

func (f *Feed) comment(postID int64, id string) (*commentNode, bool) {
	n, ok := f.comments[commentKey{post: postID, id: id}]
	return n, ok
}

// adopt inserts a persisted comment tree under parent, walking it with an
// explicit stack. Subtrees whose id is already taken in the post are skipped.
// Comments saved without an id get a fresh one so their replies stay nested.
func (f *Feed) adopt(p *postNode, parent string, tree []models.Comment) {
	type pending struct {
		parent  string
		comment models.Comment
	}
	stack := make([]pending, 0, len(tree))
	for i := len(tree) - 1; i >= 0; i-- {
		stack = append(stack, pending{parent: parent, comment: tree[i]})
	}

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := next.comment
		if c.ID == "" {
			c.ID = f.nextCommentID(p.post.ID)
		}
		key := commentKey{post: p.post.ID, id: c.ID}
		if _, taken := f.comments[key]; taken {
			continue
		}
		f.comments[key] = &commentNode{
			id:        c.ID,
			user:      c.User,
			avatar:    c.Avatar,
			text:      c.Text,
			timestamp: c.Timestamp,
			images:    slices.Clone(c.Images),
			parent:    next.parent,
			ballot:    restoreBallot(c.Upvotes, c.Downvotes, c.UpvotedBy, c.DownvotedBy),
			reactions: newReactionSet(c.Reactions),
		}
		f.link(p, next.parent, c.ID)

		for i := len(c.Replies) - 1; i >= 0; i-- {
			stack = append(stack, pending{parent: c.ID, comment: c.Replies[i]})
		}
	}
}

func (f *Feed) link(p *postNode, parent, id string) {
	if parent == "" {
		p.roots = append(p.roots, id)
		return
	}
	if n, ok := f.comment(p.post.ID, parent); ok {
		n.children = append(n.children, id)
	}
}

// prune removes a comment and every reply beneath it from the arena.
func (f *Feed) prune(postID int64, id string) {
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := commentKey{post: postID, id: cur}
		if n, ok := f.comments[key]; ok {
			stack = append(stack, n.children...)
			delete(f.comments, key)
		}
	}
}

func (f *Feed) materializeComment(postID int64, n *commentNode) models.Comment {
	c := models.Comment{
		ID:          n.id,
		User:        n.user,
		Avatar:      n.avatar,
		Text:        n.text,
		Timestamp:   n.timestamp,
		Upvotes:     n.ballot.upvotes,
		Downvotes:   n.ballot.downvotes,
		UpvotedBy:   n.ballot.voters(models.VoteUp),
		DownvotedBy: n.ballot.voters(models.VoteDown),
		Images:      slices.Clone(n.images),
		Reactions:   n.reactions.snapshot(),
	}
	if len(n.children) > 0 {
		c.Replies = f.materializeComments(postID, n.children)
	}
	return c
}

func (f *Feed) materializeComments(postID int64, ids []string) []models.Comment {
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if n, ok := f.comment(postID, id); ok {
			out = append(out, f.materializeComment(postID, n))
		}
	}
	return out
}

func (f *Feed) materializePost(p *postNode) models.Post {
	post := p.post
	post.Images = slices.Clone(p.post.Images)
	post.Upvotes = p.ballot.upvotes
	post.Downvotes = p.ballot.downvotes
	post.UpvotedBy = p.ballot.voters(models.VoteUp)
	post.DownvotedBy = p.ballot.voters(models.VoteDown)
	post.Awards = append([]string{}, p.awards...)
	post.Reactions = p.reactions.snapshot()
	post.Comments = f.materializeComments(p.post.ID, p.roots)
	if p.post.UserKarma != nil {
		k := *p.post.UserKarma
		post.UserKarma = &k
	}
	if p.post.UserFlair != nil {
		fl := *p.post.UserFlair
		post.UserFlair = &fl
	}
	if p.post.PostFlair != nil {
		fl := *p.post.PostFlair
		post.PostFlair = &fl
	}
	return post
}
