// Package seed holds the default collections used when nothing has been
// persisted yet. Every function returns a fresh copy.
package seed

import "greenpatch/internal/models"

// Reward defaults for a user seen for the first time.
const (
	DefaultPoints    = 2450
	DefaultStreak    = 5
	DefaultPostsMade = 2
)

var (
	beginnerFlair  = models.Flair{Text: "🌱 Beginner", Color: "#16a34a", BackgroundColor: "#dcfce7"}
	expertFlair    = models.Flair{Text: "🌿 Expert", Color: "#15803d", BackgroundColor: "#bbf7d0"}
	moderatorFlair = models.Flair{Text: "🏆 Mod", Color: "#b45309", BackgroundColor: "#fed7aa"}

	questionFlair   = models.Flair{Text: "Question", Color: "#2563eb", BackgroundColor: "#dbeafe"}
	successFlair    = models.Flair{Text: "Success Story", Color: "#16a34a", BackgroundColor: "#dcfce7"}
	discussionFlair = models.Flair{Text: "Discussion", Color: "#7c3aed", BackgroundColor: "#ede9fe"}
	helpFlair       = models.Flair{Text: "Help Needed", Color: "#dc2626", BackgroundColor: "#fee2e2"}
)

func intPtr(v int) *int { return &v }

func flairPtr(f models.Flair) *models.Flair { return &f }

func strPtr(s string) *string { return &s }

func names(n ...string) []string {
	if n == nil {
		return []string{}
	}
	return n
}

func reaction(emoji string, users ...string) models.Reaction {
	return models.Reaction{Emoji: emoji, Users: users}
}

func comment(id, user, avatar, text, timestamp string, up, down int, upvotedBy []string, reactions []models.Reaction, replies ...models.Comment) models.Comment {
	if reactions == nil {
		reactions = []models.Reaction{}
	}
	return models.Comment{
		ID:          id,
		User:        user,
		Avatar:      avatar,
		Text:        text,
		Timestamp:   timestamp,
		Upvotes:     up,
		Downvotes:   down,
		UpvotedBy:   names(upvotedBy...),
		DownvotedBy: []string{},
		Reactions:   reactions,
		Replies:     replies,
	}
}

// Posts returns the default community feed, newest first.
func Posts() []models.Post {
	return []models.Post{
		{
			ID:          1,
			User:        "Meera P.",
			Avatar:      "👩",
			Text:        "My basil leaves are turning yellow 😕 Any tips? I've been watering regularly and it gets good sunlight.",
			Timestamp:   "2 hours ago",
			Upvotes:     24,
			Downvotes:   2,
			UpvotedBy:   names("Arun K.", "Divya S."),
			DownvotedBy: names(),
			Awards:      []string{"🏆", "💡"},
			Reactions: []models.Reaction{
				reaction("👍", "Arun K.", "Divya S.", "Priya K."),
				reaction("😢", "Kumar V."),
			},
			UserKarma: intPtr(1247),
			UserFlair: flairPtr(beginnerFlair),
			PostFlair: flairPtr(questionFlair),
			IsPinned:  true,
			Comments: []models.Comment{
				comment("c1", "Arun K.", "👨", "Try reducing water frequency. Basil doesn't like wet feet!", "1 hour ago", 15, 0,
					names("Meera P."), []models.Reaction{reaction("💡", "Meera P.", "Priya K.")},
					comment("c1r1", "Meera P.", "👩", "Thanks! I'll try that. How often should I water?", "45 mins ago", 3, 0, nil, nil),
					comment("c1r2", "Arun K.", "👨", "Once every 2-3 days should be fine. Check if soil is dry first.", "30 mins ago", 8, 0, names("Meera P."), nil),
				),
				comment("c2", "Priya K.", "👩", "Could be nitrogen deficiency. Add some compost tea or organic fertilizer.", "45 mins ago", 12, 1, nil, nil),
				comment("c3", "Kumar V.", "👨", "Check for pests too! Sometimes aphids cause yellowing.", "30 mins ago", 7, 0, names("Meera P."), nil),
			},
		},
		{
			ID:          2,
			User:        "Arun K.",
			Avatar:      "👨",
			Text:        "Harvested my first batch of tomatoes 🍅! So proud! Started from seeds 3 months ago. Feeling accomplished!",
			Images:      []string{"assets/tomato-harvest-1.png", "assets/tomato-harvest-2.png"},
			Timestamp:   "5 hours ago",
			Upvotes:     156,
			Downvotes:   3,
			UpvotedBy:   names("Meera P.", "Divya S.", "Priya K.", "Kumar V."),
			DownvotedBy: names(),
			Awards:      []string{"🏆", "🎉", "❤️"},
			Reactions: []models.Reaction{
				reaction("❤️", "Meera P.", "Divya S.", "Priya K.", "Kumar V.", "Anita S."),
				reaction("🎉", "Raj M.", "Priya K."),
				reaction("🔥", "Kumar V."),
			},
			UserKarma:  intPtr(3421),
			UserFlair:  flairPtr(expertFlair),
			PostFlair:  flairPtr(successFlair),
			IsTrending: true,
			Comments: []models.Comment{
				comment("c4", "Divya S.", "👩", "Congratulations! They look amazing! 🎉", "4 hours ago", 23, 0,
					names("Arun K."), []models.Reaction{reaction("👍", "Arun K.", "Meera P.")}),
				comment("c5", "Meera P.", "👩", "Wow! How long did it take from seedling to harvest?", "3 hours ago", 18, 0,
					names("Arun K."), nil,
					comment("c5r1", "Arun K.", "👨", "About 75-80 days! Cherry tomatoes are faster than regular ones.", "2 hours ago", 12, 0, nil, nil),
				),
			},
		},
		{
			ID:          3,
			User:        "Divya S.",
			Avatar:      "👩",
			Text:        "Started my rooftop garden today! Excited for this journey 🌱 Any beginner tips?",
			Images:      []string{"assets/rooftop-garden.png"},
			Timestamp:   "1 day ago",
			Upvotes:     89,
			Downvotes:   1,
			UpvotedBy:   names("Arun K.", "Meera P."),
			DownvotedBy: names(),
			Awards:      []string{"🌟"},
			Reactions: []models.Reaction{
				reaction("👍", "Arun K.", "Meera P.", "Kumar V."),
				reaction("🌱", "Priya K."),
			},
			UserKarma: intPtr(892),
			UserFlair: flairPtr(beginnerFlair),
			PostFlair: flairPtr(discussionFlair),
			Comments: []models.Comment{
				comment("c6", "Kumar V.", "👨", "Welcome to the community! Start with easy plants like mint and basil.", "1 day ago", 34, 0,
					names("Divya S."), []models.Reaction{reaction("💡", "Divya S.", "Meera P.")}),
				comment("c7", "Priya K.", "👩", "Good luck! Make sure you have proper drainage.", "20 hours ago", 21, 0, names("Divya S."), nil),
				comment("c8", "Anita S.", "👩", "So exciting! I started mine last year and it's been amazing!", "18 hours ago", 15, 0, nil, nil),
			},
		},
		{
			ID:          4,
			User:        "Kumar V.",
			Avatar:      "👨",
			Text:        "PSA: Anyone know how to deal with aphids naturally? Don't want to use chemicals on my vegetables.",
			Timestamp:   "3 days ago",
			Upvotes:     67,
			Downvotes:   2,
			UpvotedBy:   names("Priya K."),
			DownvotedBy: names(),
			Awards:      []string{"💡"},
			Reactions: []models.Reaction{
				reaction("👍", "Priya K.", "Raj M."),
			},
			UserKarma: intPtr(2156),
			UserFlair: flairPtr(moderatorFlair),
			PostFlair: flairPtr(helpFlair),
			Comments: []models.Comment{
				comment("c9", "Raj M.", "👨", "Neem oil spray works wonders! Mix with water and spray weekly.", "3 days ago", 45, 1,
					names("Kumar V.", "Priya K."), []models.Reaction{reaction("🔥", "Kumar V.")}),
				comment("c10", "Anita S.", "👩", "Ladybugs are natural predators! You can buy them online.", "2 days ago", 28, 0, names("Kumar V."), nil),
			},
		},
	}
}

// Crops returns the default crop tracker entries.
func Crops() []models.Crop {
	return []models.Crop{
		{ID: 1, Name: "Cherry Tomato", Image: "🍅", Stage: "Mature", Progress: 90, NextAction: "Ready to Harvest!"},
		{ID: 2, Name: "Basil", Image: "🌿", Stage: "Sprout", Progress: 45, NextAction: "Add Water"},
		{ID: 3, Name: "Mint", Image: "🌱", Stage: "Seed", Progress: 15, NextAction: "Move to Sunlight"},
	}
}

// MarketItems returns the marketplace catalogue.
func MarketItems() []models.MarketItem {
	return []models.MarketItem{
		{ID: 1, Name: "Fresh Mint Bunch", Type: models.ListingSwap, Seller: "Priya K.", Distance: "0.8 km",
			Image: "assets/Fresh Mint Bunch.png", Freshness: "Freshly Harvested", Category: "Herb", IsVerified: true,
			Description: "Organic mint from my balcony garden. Great for tea and chutneys! Willing to swap for coriander or curry leaves."},
		{ID: 2, Name: "Cherry Tomatoes", Type: models.ListingSale, Seller: "Raj M.", Distance: "1.2 km", Price: strPtr("₹40/pack"),
			Image: "assets/Cherry Tomatoes.png", Freshness: "1 day old", Category: "Vegetable", IsVerified: true,
			Description: "Sweet and juicy cherry tomatoes. Harvested yesterday. One pack contains about 200g."},
		{ID: 3, Name: "Aloe Vera Pup", Type: models.ListingSwap, Seller: "Anita S.", Distance: "2.5 km",
			Image: "assets/Aloe Vera Pup.png", Freshness: "Potted", Category: "Succulent",
			Description: "Healthy Aloe Vera pup, rooted and ready to grow. Looking to swap for any flowering plant."},
		{ID: 4, Name: "Curry Leaves", Type: models.ListingSale, Seller: "Kumar V.", Distance: "0.5 km", Price: strPtr("₹20/bunch"),
			Image: "assets/Curry Leaves.png", Freshness: "Freshly Harvested", Category: "Herb", IsVerified: true,
			Description: "Aromatic curry leaves, grown without pesticides. Perfect for daily cooking."},
		{ID: 5, Name: "Hibiscus Cuttings", Type: models.ListingRequest, Seller: "Meera P.", Distance: "3.0 km",
			Image: "assets/Hibiscus Cuttings.png", Freshness: "Growing", Category: "Flower", IsVerified: true,
			Description: "Looking for red hibiscus cuttings. Can trade for marigold seeds or just pay for shipping."},
		{ID: 6, Name: "Organic Spinach", Type: models.ListingSale, Seller: "Divya S.", Distance: "1.5 km", Price: strPtr("₹30/bunch"),
			Image: "assets/Organic Spinach.png", Freshness: "Freshly Harvested", Category: "Vegetable",
			Description: "Tender spinach leaves, harvested this morning. Very healthy and clean."},
	}
}

// Badges returns the badge set every user starts with.
func Badges() []models.Badge {
	return []models.Badge{
		{ID: "1", Name: "Green Guru", Icon: "🌱", Description: "Reach Level 5 to unlock this badge.", Progress: 100, Earned: true},
		{ID: "2", Name: "Disease-Free Grower", Icon: "🩺", Description: "Identify 5 diseases correctly.", Progress: 75},
		{ID: "3", Name: "Eco Contributor", Icon: "🌍", Description: "Maintain a 3-day streak.", Progress: 60},
		{ID: "4", Name: "Community Helper", Icon: "🤝", Description: "Make 3 posts in the community.", Progress: 40},
	}
}

// Challenges returns the daily challenges, none completed.
func Challenges() []models.Challenge {
	return []models.Challenge{
		{ID: "1", Text: "Water your plants", Reward: 50, Type: models.ChallengeWater},
		{ID: "2", Text: "Post in Community", Reward: 100, Type: models.ChallengePost},
		{ID: "3", Text: "Read a Grow Guide", Reward: 30, Type: models.ChallengeRead},
	}
}

// RewardState returns the starting rewards for user.
func RewardState(user string) models.RewardState {
	return models.RewardState{
		User:       user,
		Points:     DefaultPoints,
		Level:      models.LevelForPoints(DefaultPoints),
		Streak:     DefaultStreak,
		PostsMade:  DefaultPostsMade,
		Challenges: Challenges(),
		Badges:     Badges(),
	}
}
