package actors

import (
	"bytes"
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"greenpatch/internal/feed"
	"greenpatch/internal/models"
	"greenpatch/internal/seed"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.FeedEvent
}

func (p *recordingPublisher) Publish(event models.FeedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type feedFixture struct {
	system  *actor.ActorSystem
	feedPID *actor.PID
	kv      *storage.MemoryKV
	events  *recordingPublisher
	rewards *actor.PID
}

func newFeedFixture(t *testing.T, posts []models.Post) *feedFixture {
	t.Helper()
	system := actor.NewActorSystem()
	metrics := utils.NewMetricsCollector()
	kv := storage.NewMemoryKV()
	events := &recordingPublisher{}

	persistencePID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPersistenceActor(kv, time.Second, metrics)
	}))
	rewardsPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewRewardsActor(metrics)
	}))

	store := feed.New()
	store.Load(posts)
	feedPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewFeedActor(store, metrics, persistencePID, rewardsPID, events)
	}))

	t.Cleanup(func() { system.Shutdown() })
	return &feedFixture{system: system, feedPID: feedPID, kv: kv, events: events, rewards: rewardsPID}
}

func (f *feedFixture) request(t *testing.T, msg interface{}) interface{} {
	t.Helper()
	result, err := f.system.Root.RequestFuture(f.feedPID, msg, testTimeout).Result()
	require.NoError(t, err)
	return result
}

func TestFeedActorCreateAndRead(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())

	result := f.request(t, &CreatePostMsg{Author: "Meera P.", Text: "First pumpkin!"})
	post, ok := result.(*models.Post)
	require.True(t, ok, "unexpected response %T", result)
	assert.Equal(t, "Meera P.", post.User)
	assert.Equal(t, "Just now", post.Timestamp)

	result = f.request(t, &GetPostsMsg{Sort: models.SortNew})
	posts := result.([]models.Post)
	require.Len(t, posts, 5)
	assert.Equal(t, post.ID, posts[0].ID)

	result = f.request(t, &GetPostMsg{PostID: post.ID})
	got := result.(*models.Post)
	assert.Equal(t, "First pumpkin!", got.Text)

	assert.Equal(t, 5, f.request(t, &GetCountsMsg{}))
}

func TestFeedActorVoteAndReact(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())

	result := f.request(t, &VotePostMsg{PostID: 4, Voter: "You", Direction: models.VoteUp})
	post := result.(*models.Post)
	assert.Equal(t, 68, post.Upvotes)
	assert.Contains(t, post.UpvotedBy, "You")

	result = f.request(t, &VotePostMsg{PostID: 4, Voter: "You", Direction: models.VoteDown})
	post = result.(*models.Post)
	assert.Equal(t, 67, post.Upvotes)
	assert.Equal(t, 3, post.Downvotes)
	assert.NotContains(t, post.UpvotedBy, "You")
	assert.Contains(t, post.DownvotedBy, "You")

	result = f.request(t, &ReactPostMsg{PostID: 4, Emoji: "🌱", Voter: "You"})
	post = result.(*models.Post)
	require.Len(t, post.Reactions, 2)
	assert.Equal(t, models.Reaction{Emoji: "🌱", Users: []string{"You"}}, post.Reactions[1])

	result = f.request(t, &AwardPostMsg{PostID: 4, Award: "💡"})
	post = result.(*models.Post)
	assert.Equal(t, []string{"💡", "💡"}, post.Awards)
}

func TestFeedActorComments(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())

	result := f.request(t, &AddCommentMsg{PostID: 1, ParentID: "c2", Author: "You", Text: "Agreed"})
	reply := result.(*models.Comment)
	assert.Equal(t, "You", reply.User)

	result = f.request(t, &VoteCommentMsg{PostID: 1, CommentID: reply.ID, Voter: "Meera P.", Direction: models.VoteUp})
	voted := result.(*models.Comment)
	assert.Equal(t, 1, voted.Upvotes)

	result = f.request(t, &ReactCommentMsg{PostID: 1, CommentID: "c1r1", Emoji: "👍", Voter: "You"})
	reacted := result.(*models.Comment)
	assert.Equal(t, []models.Reaction{{Emoji: "👍", Users: []string{"You"}}}, reacted.Reactions)

	result = f.request(t, &DeleteCommentMsg{PostID: 1, CommentID: "c1"})
	assert.Equal(t, &models.StatusResponse{Success: true, Message: "Comment deleted successfully"}, result)

	post := f.request(t, &GetPostMsg{PostID: 1}).(*models.Post)
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "c2", post.Comments[0].ID)
	require.Len(t, post.Comments[0].Replies, 1)
	assert.Equal(t, reply.ID, post.Comments[0].Replies[0].ID)
}

func TestFeedActorErrors(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())
	before := f.request(t, &GetPostsMsg{Sort: models.SortNew}).([]models.Post)

	cases := []struct {
		name string
		msg  interface{}
		code string
	}{
		{"missing post", &GetPostMsg{PostID: 99}, utils.ErrPostNotFound},
		{"vote missing post", &VotePostMsg{PostID: 99, Voter: "You", Direction: models.VoteUp}, utils.ErrPostNotFound},
		{"invalid direction", &VotePostMsg{PostID: 1, Voter: "You", Direction: models.VoteNone}, utils.ErrInvalidInput},
		{"missing parent", &AddCommentMsg{PostID: 1, ParentID: "nope", Text: "hi"}, utils.ErrParentNotFound},
		{"missing comment", &VoteCommentMsg{PostID: 1, CommentID: "nope", Voter: "You", Direction: models.VoteUp}, utils.ErrCommentNotFound},
		{"delete someone else's post", &DeletePostMsg{PostID: 1, Requester: "You"}, utils.ErrForbidden},
		{"delete someone else's comment", &DeleteCommentMsg{PostID: 1, CommentID: "c1", Requester: "Meera P."}, utils.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := f.request(t, tc.msg)
			appErr, ok := result.(*utils.AppError)
			require.True(t, ok, "expected AppError, got %T", result)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}

	// nothing above changed the feed
	posts := f.request(t, &GetPostsMsg{Sort: models.SortNew}).([]models.Post)
	assert.Equal(t, before, posts)
	assert.Empty(t, f.events.types())
}

func TestFeedActorPersistsAndPublishes(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())

	f.request(t, &DeletePostMsg{PostID: 2, Requester: "Arun K."})

	require.Eventually(t, func() bool {
		posts, found, err := storage.LoadJSON[[]models.Post](context.Background(), f.kv, storage.PostsKey)
		return err == nil && found && len(posts) == 3
	}, testTimeout, 10*time.Millisecond)

	assert.Equal(t, []string{models.EventPostDeleted}, f.events.types())
}

func TestFeedActorCreditsAuthor(t *testing.T) {
	f := newFeedFixture(t, nil)

	f.request(t, &CreatePostMsg{Author: "Arun K.", Text: "Seedlings are up"})

	// the rewards notification is fire-and-forget; a request to the same
	// mailbox is handled after it
	result, err := f.system.Root.RequestFuture(f.rewards, &GetRewardsMsg{User: "Arun K."}, testTimeout).Result()
	require.NoError(t, err)
	state := result.(*models.RewardState)
	assert.Equal(t, 3, state.PostsMade)
	assert.Equal(t, 2550, state.Points)
}

func TestFeedActorDeleteUnknownIsNoOp(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())
	before := f.request(t, &GetPostsMsg{}).([]models.Post)

	for _, msg := range []interface{}{
		&DeletePostMsg{PostID: 99, Requester: "You"},
		&DeleteCommentMsg{PostID: 1, CommentID: "nope", Requester: "You"},
		&DeleteCommentMsg{PostID: 99, CommentID: "c1", Requester: "You"},
	} {
		result := f.request(t, msg)
		status, ok := result.(*models.StatusResponse)
		require.True(t, ok, "unexpected response %T", result)
		assert.True(t, status.Success)
	}

	assert.Equal(t, before, f.request(t, &GetPostsMsg{}))
	assert.Empty(t, f.events.types())
	_, found, err := f.kv.Get(context.Background(), storage.PostsKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFeedActorAuthorDeletesComment(t *testing.T) {
	f := newFeedFixture(t, seed.Posts())

	result := f.request(t, &DeleteCommentMsg{PostID: 1, CommentID: "c1", Requester: "Arun K."})
	require.IsType(t, &models.StatusResponse{}, result)

	post := f.request(t, &GetPostMsg{PostID: 1}).(*models.Post)
	for _, c := range post.Comments {
		assert.NotEqual(t, "c1", c.ID)
	}
	assert.Equal(t, []string{models.EventCommentDeleted}, f.events.types())
}

// logBuffer is safe to read while actors are still logging.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFeedActorLogsLifecycleQuietly(t *testing.T) {
	buf := &logBuffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	f := newFeedFixture(t, nil)
	require.NoError(t, f.system.Root.StopFuture(f.feedPID).Wait())

	assert.Contains(t, buf.String(), "FeedActor stopped")
	assert.NotContains(t, buf.String(), "Unknown message type")
}
