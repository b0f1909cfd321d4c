package models

// Flair is a coloured label attached to a post or its author.
type Flair struct {
	Text            string `json:"text" bson:"text"`
	Color           string `json:"color" bson:"color"`
	BackgroundColor string `json:"backgroundColor" bson:"backgroundColor"`
}

// Reaction pairs an emoji with the users who applied it. An entry with no
// users is never kept.
type Reaction struct {
	Emoji string   `json:"emoji" bson:"emoji"`
	Users []string `json:"users" bson:"users"`
}

type Post struct {
	ID          int64      `json:"id" bson:"id"`
	User        string     `json:"user" bson:"user"`
	Avatar      string     `json:"avatar" bson:"avatar"`
	Text        string     `json:"text" bson:"text"`
	Images      []string   `json:"images,omitempty" bson:"images,omitempty"`
	Timestamp   string     `json:"timestamp" bson:"timestamp"` // display string, e.g. "2 hours ago"
	Upvotes     int        `json:"upvotes" bson:"upvotes"`
	Downvotes   int        `json:"downvotes" bson:"downvotes"`
	UpvotedBy   []string   `json:"upvotedBy" bson:"upvotedBy"`
	DownvotedBy []string   `json:"downvotedBy" bson:"downvotedBy"`
	Awards      []string   `json:"awards" bson:"awards"`
	Reactions   []Reaction `json:"reactions" bson:"reactions"`
	Comments    []Comment  `json:"comments" bson:"comments"`
	UserKarma   *int       `json:"userKarma,omitempty" bson:"userKarma,omitempty"`
	UserFlair   *Flair     `json:"userFlair,omitempty" bson:"userFlair,omitempty"`
	PostFlair   *Flair     `json:"postFlair,omitempty" bson:"postFlair,omitempty"`
	IsPinned    bool       `json:"isPinned,omitempty" bson:"isPinned,omitempty"`
	IsTrending  bool       `json:"isTrending,omitempty" bson:"isTrending,omitempty"`
}

// Score is the net vote count used for ranking.
func (p Post) Score() int {
	return p.Upvotes - p.Downvotes
}
