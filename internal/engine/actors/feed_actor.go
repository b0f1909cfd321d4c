package actors

import (
	"errors"
	"log"
	"time"

	"greenpatch/internal/feed"
	"greenpatch/internal/models"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for feed operations
type (
	// GetPostsMsg lists the feed. An empty Sort keeps feed order.
	GetPostsMsg struct {
		Sort models.SortMode
	}

	GetPostMsg struct {
		PostID int64
	}

	CreatePostMsg struct {
		Author string
		Text   string
		Images []string
	}

	// DeletePostMsg removes a post. Only its author may delete it.
	DeletePostMsg struct {
		PostID    int64
		Requester string
	}

	VotePostMsg struct {
		PostID    int64
		Voter     string
		Direction models.VoteDirection
	}

	ReactPostMsg struct {
		PostID int64
		Emoji  string
		Voter  string
	}

	AwardPostMsg struct {
		PostID int64
		Award  string
	}

	AddCommentMsg struct {
		PostID   int64
		ParentID string // empty for a top-level comment
		Author   string
		Text     string
		Images   []string
	}

	DeleteCommentMsg struct {
		PostID    int64
		CommentID string
		Requester string
	}

	VoteCommentMsg struct {
		PostID    int64
		CommentID string
		Voter     string
		Direction models.VoteDirection
	}

	ReactCommentMsg struct {
		PostID    int64
		CommentID string
		Emoji     string
		Voter     string
	}

	GetCountsMsg struct{}
)

// EventPublisher receives feed change events. Implementations must not block.
type EventPublisher interface {
	Publish(event models.FeedEvent)
}

// FeedActor owns the community feed. Every mutation is applied by this actor
// alone, one message at a time.
type FeedActor struct {
	feed           *feed.Feed
	metrics        *utils.MetricsCollector
	persistencePID *actor.PID
	rewardsPID     *actor.PID
	events         EventPublisher
}

// NewFeedActor wraps store. persistencePID, rewardsPID and events may be nil.
func NewFeedActor(store *feed.Feed, metrics *utils.MetricsCollector, persistencePID, rewardsPID *actor.PID, events EventPublisher) actor.Actor {
	return &FeedActor{
		feed:           store,
		metrics:        metrics,
		persistencePID: persistencePID,
		rewardsPID:     rewardsPID,
		events:         events,
	}
}

func (a *FeedActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("FeedActor started with %d posts", a.feed.Len())
	case *actor.Stopping:
		log.Printf("FeedActor stopping")
	case *actor.Stopped:
		log.Printf("FeedActor stopped")
	case *actor.Restarting:
		log.Printf("FeedActor restarting")

	case *GetPostsMsg:
		if msg.Sort == "" {
			context.Respond(a.feed.Posts())
		} else {
			context.Respond(feed.Sort(a.feed.Posts(), msg.Sort))
		}
	case *GetPostMsg:
		if post, ok := a.feed.Post(msg.PostID); ok {
			context.Respond(&post)
		} else {
			context.Respond(utils.NewPostNotFoundError(msg.PostID))
		}
	case *GetCountsMsg:
		context.Respond(a.feed.Len())

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)
	case *DeletePostMsg:
		a.handleDeletePost(context, msg)
	case *VotePostMsg:
		log.Printf("FeedActor: Processing %s vote on post %d from %q", msg.Direction, msg.PostID, msg.Voter)
		a.handlePostUpdate(context, "vote_post", msg.Voter, msg.PostID, func() (models.Post, error) {
			return a.feed.VotePost(msg.PostID, msg.Voter, msg.Direction)
		})
	case *ReactPostMsg:
		a.handlePostUpdate(context, "react_post", msg.Voter, msg.PostID, func() (models.Post, error) {
			return a.feed.ReactPost(msg.PostID, msg.Emoji, msg.Voter)
		})
	case *AwardPostMsg:
		a.handlePostUpdate(context, "award_post", "", msg.PostID, func() (models.Post, error) {
			return a.feed.AwardPost(msg.PostID, msg.Award)
		})

	case *AddCommentMsg:
		a.handleAddComment(context, msg)
	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)
	case *VoteCommentMsg:
		a.handleCommentUpdate(context, "vote_comment", msg.Voter, msg.PostID, msg.CommentID, func() (models.Comment, error) {
			return a.feed.VoteComment(msg.PostID, msg.CommentID, msg.Voter, msg.Direction)
		})
	case *ReactCommentMsg:
		a.handleCommentUpdate(context, "react_comment", msg.Voter, msg.PostID, msg.CommentID, func() (models.Comment, error) {
			return a.feed.ReactComment(msg.PostID, msg.CommentID, msg.Emoji, msg.Voter)
		})

	default:
		log.Printf("FeedActor: Unknown message type: %T", msg)
	}
}

func (a *FeedActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	post := a.feed.CreatePost(msg.Author, msg.Text, msg.Images)
	log.Printf("FeedActor: Created post %d by %q", post.ID, post.User)

	a.persist(context)
	if a.rewardsPID != nil {
		context.Send(a.rewardsPID, &PostCreatedMsg{User: post.User})
	}
	a.publish(models.FeedEvent{Type: models.EventPostCreated, PostID: post.ID, Actor: post.User, Post: &post})

	a.recordLatency("create_post", startTime)
	context.Respond(&post)
}

func (a *FeedActor) handleDeletePost(context actor.Context, msg *DeletePostMsg) {
	startTime := time.Now()

	post, ok := a.feed.Post(msg.PostID)
	if !ok {
		log.Printf("FeedActor: Delete of unknown post %d ignored", msg.PostID)
		context.Respond(&models.StatusResponse{Success: true, Message: "Post already removed"})
		return
	}
	if post.User != msg.Requester {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "Only the author can delete this post", nil))
		return
	}

	a.feed.DeletePost(msg.PostID)
	a.persist(context)
	a.publish(models.FeedEvent{Type: models.EventPostDeleted, PostID: msg.PostID})

	a.recordLatency("delete_post", startTime)
	context.Respond(&models.StatusResponse{Success: true, Message: "Post deleted successfully"})
}

func (a *FeedActor) handlePostUpdate(context actor.Context, op, actorName string, postID int64, apply func() (models.Post, error)) {
	startTime := time.Now()

	post, err := apply()
	if err != nil {
		context.Respond(feedError(err, postID, ""))
		return
	}
	a.persist(context)
	a.publish(models.FeedEvent{Type: models.EventPostUpdated, PostID: postID, Actor: actorName, Post: &post})

	a.recordLatency(op, startTime)
	context.Respond(&post)
}

func (a *FeedActor) handleAddComment(context actor.Context, msg *AddCommentMsg) {
	startTime := time.Now()

	comment, err := a.feed.AddComment(msg.PostID, msg.Author, msg.Text, msg.ParentID, msg.Images)
	if err != nil {
		context.Respond(feedError(err, msg.PostID, msg.ParentID))
		return
	}
	log.Printf("FeedActor: Added comment %s to post %d", comment.ID, msg.PostID)

	a.persist(context)
	a.publish(models.FeedEvent{Type: models.EventCommentAdded, PostID: msg.PostID, CommentID: comment.ID, Actor: comment.User, Comment: &comment})

	a.recordLatency("add_comment", startTime)
	context.Respond(&comment)
}

func (a *FeedActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	startTime := time.Now()

	comment, err := a.feed.FindComment(msg.PostID, msg.CommentID)
	if err != nil {
		log.Printf("FeedActor: Delete of unknown comment %s on post %d ignored", msg.CommentID, msg.PostID)
		context.Respond(&models.StatusResponse{Success: true, Message: "Comment already removed"})
		return
	}
	if comment.User != msg.Requester {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "Only the author can delete this comment", nil))
		return
	}

	if err := a.feed.DeleteComment(msg.PostID, msg.CommentID); err != nil {
		context.Respond(feedError(err, msg.PostID, msg.CommentID))
		return
	}
	a.persist(context)
	a.publish(models.FeedEvent{Type: models.EventCommentDeleted, PostID: msg.PostID, CommentID: msg.CommentID})

	a.recordLatency("delete_comment", startTime)
	context.Respond(&models.StatusResponse{Success: true, Message: "Comment deleted successfully"})
}

func (a *FeedActor) handleCommentUpdate(context actor.Context, op, actorName string, postID int64, commentID string, apply func() (models.Comment, error)) {
	startTime := time.Now()

	comment, err := apply()
	if err != nil {
		context.Respond(feedError(err, postID, commentID))
		return
	}
	a.persist(context)
	a.publish(models.FeedEvent{Type: models.EventCommentUpdated, PostID: postID, CommentID: commentID, Actor: actorName, Comment: &comment})

	a.recordLatency(op, startTime)
	context.Respond(&comment)
}

// persist hands a full snapshot to the persistence actor without waiting.
func (a *FeedActor) persist(context actor.Context) {
	if a.persistencePID == nil {
		return
	}
	context.Send(a.persistencePID, &SaveSnapshotMsg{Key: storage.PostsKey, Value: a.feed.Posts()})
}

func (a *FeedActor) publish(event models.FeedEvent) {
	if a.events != nil {
		a.events.Publish(event)
	}
}

func (a *FeedActor) recordLatency(op string, startTime time.Time) {
	if a.metrics != nil {
		a.metrics.AddOperationLatency(op, time.Since(startTime))
	}
}

// feedError translates feed sentinel errors into AppErrors. commentID names
// the comment or parent the operation referred to.
func feedError(err error, postID int64, commentID string) *utils.AppError {
	switch {
	case errors.Is(err, feed.ErrPostNotFound):
		return utils.NewPostNotFoundError(postID)
	case errors.Is(err, feed.ErrCommentNotFound):
		return utils.NewCommentNotFoundError(commentID)
	case errors.Is(err, feed.ErrParentNotFound):
		return utils.NewAppError(utils.ErrParentNotFound, "Parent comment not found: "+commentID, err)
	case errors.Is(err, feed.ErrInvalidVote):
		return utils.NewAppError(utils.ErrInvalidInput, "Vote direction must be up or down", err)
	default:
		return utils.NewAppError(utils.ErrMessageRejected, "Feed operation failed", err)
	}
}
