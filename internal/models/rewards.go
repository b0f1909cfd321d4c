package models

type Badge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
	Earned      bool    `json:"earned"`
}

// Challenge types.
const (
	ChallengeWater = "water"
	ChallengePost  = "post"
	ChallengeRead  = "read"
	ChallengeLogin = "login"
)

type Challenge struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Reward    int    `json:"reward"`
	Completed bool   `json:"completed"`
	Type      string `json:"type"`
}

// RewardState is the gamification state of a single user.
type RewardState struct {
	User       string      `json:"user"`
	Points     int         `json:"points"`
	Level      int         `json:"level"`
	Streak     int         `json:"streak"`
	PostsMade  int         `json:"postsMade"`
	Challenges []Challenge `json:"challenges"`
	Badges     []Badge     `json:"badges"`
}

// LevelForPoints maps a point total to a level; every 1000 points is one level.
func LevelForPoints(points int) int {
	return points/1000 + 1
}
