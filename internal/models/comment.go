package models

// Comment is a reply to a post or to another comment. Replies nest to any depth.
type Comment struct {
	ID          string     `json:"id" bson:"id"`
	User        string     `json:"user" bson:"user"`
	Avatar      string     `json:"avatar" bson:"avatar"`
	Text        string     `json:"text" bson:"text"`
	Timestamp   string     `json:"timestamp" bson:"timestamp"`
	Upvotes     int        `json:"upvotes" bson:"upvotes"`
	Downvotes   int        `json:"downvotes" bson:"downvotes"`
	UpvotedBy   []string   `json:"upvotedBy" bson:"upvotedBy"`
	DownvotedBy []string   `json:"downvotedBy" bson:"downvotedBy"`
	Images      []string   `json:"images,omitempty" bson:"images,omitempty"`
	Reactions   []Reaction `json:"reactions" bson:"reactions"`
	Replies     []Comment  `json:"replies,omitempty" bson:"replies,omitempty"`
}

// Score is the net vote count of the comment.
func (c Comment) Score() int {
	return c.Upvotes - c.Downvotes
}
