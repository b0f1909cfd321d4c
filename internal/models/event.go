package models

// Feed event types pushed to live subscribers.
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventCommentAdded   = "comment_added"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
)

// FeedEvent describes one applied feed mutation.
type FeedEvent struct {
	Type      string   `json:"type"`
	PostID    int64    `json:"postId"`
	CommentID string   `json:"commentId,omitempty"`
	Actor     string   `json:"actor,omitempty"`
	Post      *Post    `json:"post,omitempty"`
	Comment   *Comment `json:"comment,omitempty"`
}

// StatusResponse is returned by operations that have no other result.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
