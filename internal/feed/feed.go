// Package feed holds the community feed: posts, their comment trees, votes,
// reactions and awards, plus the operations that mutate them.
//
// A Feed is not safe for concurrent use. It is owned by a single writer
// (see internal/engine/actors.FeedActor) and handed out only as snapshots.
package feed

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"greenpatch/internal/models"
)

const (
	DefaultAuthor    = "Guest"
	DefaultAvatar    = "👤"
	NewItemTimestamp = "Just now"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrInvalidVote     = errors.New("invalid vote direction")
)

type Feed struct {
	order      []int64 // newest first
	posts      map[int64]*postNode
	comments   map[commentKey]*commentNode
	lastPostID int64
	now        func() time.Time
}

func New() *Feed {
	return &Feed{
		posts:    make(map[int64]*postNode),
		comments: make(map[commentKey]*commentNode),
		now:      time.Now,
	}
}

// Load replaces the whole collection. Duplicate post ids keep their first occurrence.
func (f *Feed) Load(posts []models.Post) {
	f.order = f.order[:0]
	f.posts = make(map[int64]*postNode, len(posts))
	f.comments = make(map[commentKey]*commentNode)
	f.lastPostID = 0

	for _, p := range posts {
		if _, exists := f.posts[p.ID]; exists {
			continue
		}
		node := &postNode{
			post:      stripCollections(p),
			awards:    slices.Clone(p.Awards),
			ballot:    restoreBallot(p.Upvotes, p.Downvotes, p.UpvotedBy, p.DownvotedBy),
			reactions: newReactionSet(p.Reactions),
		}
		f.posts[p.ID] = node
		f.order = append(f.order, p.ID)
		f.adopt(node, "", p.Comments)
		if p.ID > f.lastPostID {
			f.lastPostID = p.ID
		}
	}
}

func stripCollections(p models.Post) models.Post {
	p.Images = slices.Clone(p.Images)
	p.UpvotedBy = nil
	p.DownvotedBy = nil
	p.Awards = nil
	p.Reactions = nil
	p.Comments = nil
	return p
}

// Len returns the number of posts.
func (f *Feed) Len() int {
	return len(f.order)
}

// Posts returns a snapshot of every post in stored order.
func (f *Feed) Posts() []models.Post {
	out := make([]models.Post, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.materializePost(f.posts[id]))
	}
	return out
}

func (f *Feed) Post(id int64) (models.Post, bool) {
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, false
	}
	return f.materializePost(p), true
}

func (f *Feed) nextPostID() int64 {
	id := f.now().UnixMilli()
	if id <= f.lastPostID {
		id = f.lastPostID + 1
	}
	f.lastPostID = id
	return id
}

func (f *Feed) nextCommentID(postID int64) string {
	stamp := f.now().UnixMilli()
	for {
		id := "c" + strconv.FormatInt(stamp, 10)
		if _, taken := f.comment(postID, id); !taken {
			return id
		}
		stamp++
	}
}

// CreatePost puts a new post with no engagement at the front of the feed.
func (f *Feed) CreatePost(author, text string, images []string) models.Post {
	if author == "" {
		author = DefaultAuthor
	}
	karma := 0
	node := &postNode{
		post: models.Post{
			ID:        f.nextPostID(),
			User:      author,
			Avatar:    DefaultAvatar,
			Text:      text,
			Images:    slices.Clone(images),
			Timestamp: NewItemTimestamp,
			UserKarma: &karma,
		},
		ballot:    newBallot(0, 0),
		reactions: &reactionSet{},
	}
	f.posts[node.post.ID] = node
	f.order = slices.Insert(f.order, 0, node.post.ID)
	return f.materializePost(node)
}

// DeletePost removes the post and its comments. It reports false when the
// post did not exist, in which case nothing changes.
func (f *Feed) DeletePost(id int64) bool {
	p, ok := f.posts[id]
	if !ok {
		return false
	}
	for _, root := range p.roots {
		f.prune(id, root)
	}
	delete(f.posts, id)
	f.order = slices.DeleteFunc(f.order, func(v int64) bool { return v == id })
	return true
}

func (f *Feed) VotePost(id int64, voter string, dir models.VoteDirection) (models.Post, error) {
	if dir != models.VoteUp && dir != models.VoteDown {
		return models.Post{}, ErrInvalidVote
	}
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, ErrPostNotFound
	}
	p.ballot.cast(voter, dir)
	return f.materializePost(p), nil
}

func (f *Feed) AwardPost(id int64, award string) (models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, ErrPostNotFound
	}
	p.awards = append(p.awards, award)
	return f.materializePost(p), nil
}

func (f *Feed) ReactPost(id int64, emoji, voter string) (models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, ErrPostNotFound
	}
	p.reactions.toggle(emoji, voter)
	return f.materializePost(p), nil
}

// AddComment appends a comment to the post, or to the replies of parentID when
// it is set. A missing parent leaves the tree untouched.
func (f *Feed) AddComment(postID int64, author, text, parentID string, images []string) (models.Comment, error) {
	p, ok := f.posts[postID]
	if !ok {
		return models.Comment{}, ErrPostNotFound
	}
	if parentID != "" {
		if _, ok := f.comment(postID, parentID); !ok {
			return models.Comment{}, ErrParentNotFound
		}
	}
	if author == "" {
		author = DefaultAuthor
	}

	n := &commentNode{
		id:        f.nextCommentID(postID),
		user:      author,
		avatar:    DefaultAvatar,
		text:      text,
		timestamp: NewItemTimestamp,
		images:    slices.Clone(images),
		parent:    parentID,
		ballot:    newBallot(0, 0),
		reactions: &reactionSet{},
	}
	f.comments[commentKey{post: postID, id: n.id}] = n
	f.link(p, parentID, n.id)
	return f.materializeComment(postID, n), nil
}

// DeleteComment removes the comment together with all of its replies.
func (f *Feed) DeleteComment(postID int64, commentID string) error {
	p, ok := f.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	n, ok := f.comment(postID, commentID)
	if !ok {
		return ErrCommentNotFound
	}

	unlink := func(ids []string) []string {
		return slices.DeleteFunc(ids, func(id string) bool { return id == commentID })
	}
	if n.parent == "" {
		p.roots = unlink(p.roots)
	} else if parent, ok := f.comment(postID, n.parent); ok {
		parent.children = unlink(parent.children)
	}
	f.prune(postID, commentID)
	return nil
}

func (f *Feed) VoteComment(postID int64, commentID, voter string, dir models.VoteDirection) (models.Comment, error) {
	if dir != models.VoteUp && dir != models.VoteDown {
		return models.Comment{}, ErrInvalidVote
	}
	n, err := f.lookupComment(postID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	n.ballot.cast(voter, dir)
	return f.materializeComment(postID, n), nil
}

func (f *Feed) ReactComment(postID int64, commentID, emoji, voter string) (models.Comment, error) {
	n, err := f.lookupComment(postID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	n.reactions.toggle(emoji, voter)
	return f.materializeComment(postID, n), nil
}

// FindComment returns a snapshot of one comment and its replies.
func (f *Feed) FindComment(postID int64, commentID string) (models.Comment, error) {
	n, err := f.lookupComment(postID, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	return f.materializeComment(postID, n), nil
}

func (f *Feed) lookupComment(postID int64, commentID string) (*commentNode, error) {
	if _, ok := f.posts[postID]; !ok {
		return nil, ErrPostNotFound
	}
	n, ok := f.comment(postID, commentID)
	if !ok {
		return nil, ErrCommentNotFound
	}
	return n, nil
}
