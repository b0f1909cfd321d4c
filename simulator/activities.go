package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	postTexts = []string{
		"First cherry tomatoes of the season are turning red!",
		"Basil bolted again. Pinch earlier next time?",
		"Mulched the raised beds with dry leaves today.",
		"Anyone swapping curry leaf cuttings this week?",
		"Neem oil finally cleared the aphids on my chillies.",
		"Compost pile is steaming nicely after the rain.",
	}
	commentTexts = []string{
		"Looks great!",
		"Try a diluted neem spray every three days.",
		"Mine did the same, more sun helped.",
		"Saving this for later.",
		"How often do you water?",
	}
	reactionEmojis = []string{"🌱", "👍", "❤️", "🔥", "💡"}
	voteDirections = []string{"up", "up", "up", "down"}
)

// SimulateActivities runs the post, comment, vote and reaction loops until
// ctx is done. Engagement starts once the feed has something to engage with.
func (s *Simulator) SimulateActivities(ctx context.Context) {
	log.Printf("Starting activities simulation...")

	postsAvailable := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulatePosts(ctx)
	}()

	go func() {
		ticker := time.NewTicker(s.config.TickInterval)
		defer ticker.Stop()
		for {
			if _, ok := s.pickPost(); ok {
				close(postsAvailable)
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	for _, loop := range []func(context.Context){s.simulateComments, s.simulateVotes, s.simulateReactions} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case <-postsAvailable:
				run(ctx)
			}
		}(loop)
	}

	wg.Wait()
}

// tickProbability converts a per-minute frequency into a per-tick chance.
func (s *Simulator) tickProbability(perMinute float64) float64 {
	p := perMinute * s.config.TickInterval.Seconds() / 60
	if p > 1 {
		return 1
	}
	return p
}

// everyTick calls act for each connected gardener that passes the frequency
// roll on every tick.
func (s *Simulator) everyTick(ctx context.Context, perMinute float64, act func(*SimulatedGardener)) {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	p := s.tickProbability(perMinute)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, g := range s.connectedGardeners() {
				if ctx.Err() != nil {
					return
				}
				if s.chance(p) {
					act(g)
				}
			}
		}
	}
}

func (s *Simulator) simulatePosts(ctx context.Context) {
	s.everyTick(ctx, s.config.PostFrequency, func(g *SimulatedGardener) {
		data := map[string]interface{}{
			"text": fmt.Sprintf("%s (%s)", postTexts[s.intn(len(postTexts))], g.Name),
		}
		resp, err := s.makeRequest("POST", "/post", g.Token, data)
		if err != nil {
			log.Printf("Failed to create post for %s: %v", g.Name, err)
			return
		}
		var post struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(resp, &post); err != nil {
			log.Printf("Failed to parse post response: %v", err)
			return
		}

		s.mu.Lock()
		s.posts = append(s.posts, post.ID)
		g.Posts = append(g.Posts, post.ID)
		g.LastActive = time.Now()
		s.mu.Unlock()

		s.stats.mu.Lock()
		s.stats.TotalPosts++
		s.stats.mu.Unlock()
	})
}

func (s *Simulator) simulateComments(ctx context.Context) {
	s.everyTick(ctx, s.config.CommentFrequency, func(g *SimulatedGardener) {
		postID, ok := s.pickPost()
		if !ok {
			return
		}
		data := map[string]interface{}{
			"postId": postID,
			"text":   commentTexts[s.intn(len(commentTexts))],
		}
		if s.chance(s.config.ReplyPercentage) {
			if parent, ok := s.pickComment(postID, g.Token); ok {
				data["parentId"] = parent
			}
		}

		resp, err := s.makeRequest("POST", "/comment", g.Token, data)
		if err != nil {
			log.Printf("Failed to comment on post %d for %s: %v", postID, g.Name, err)
			return
		}
		var comment struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(resp, &comment); err == nil {
			s.mu.Lock()
			g.Comments = append(g.Comments, comment.ID)
			g.LastActive = time.Now()
			s.mu.Unlock()
		}

		s.stats.mu.Lock()
		s.stats.TotalComments++
		s.stats.mu.Unlock()
	})
}

// pickComment fetches the post and returns the id of one of its top-level
// comments.
func (s *Simulator) pickComment(postID int64, token string) (string, bool) {
	resp, err := s.makeRequest("GET", fmt.Sprintf("/post?id=%d", postID), token, nil)
	if err != nil {
		return "", false
	}
	var post struct {
		Comments []struct {
			ID string `json:"id"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(resp, &post); err != nil || len(post.Comments) == 0 {
		return "", false
	}
	return post.Comments[s.intn(len(post.Comments))].ID, true
}

func (s *Simulator) simulateVotes(ctx context.Context) {
	s.everyTick(ctx, s.config.VoteFrequency, func(g *SimulatedGardener) {
		postID, ok := s.pickPost()
		if !ok {
			return
		}
		data := map[string]interface{}{
			"postId":    postID,
			"direction": voteDirections[s.intn(len(voteDirections))],
		}
		if _, err := s.makeRequest("POST", "/post/vote", g.Token, data); err != nil {
			log.Printf("Failed to vote on post %d for %s: %v", postID, g.Name, err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalVotes++
		s.stats.mu.Unlock()
	})
}

func (s *Simulator) simulateReactions(ctx context.Context) {
	s.everyTick(ctx, s.config.ReactionFrequency, func(g *SimulatedGardener) {
		postID, ok := s.pickPost()
		if !ok {
			return
		}
		data := map[string]interface{}{
			"postId": postID,
			"emoji":  reactionEmojis[s.intn(len(reactionEmojis))],
		}
		if _, err := s.makeRequest("POST", "/post/react", g.Token, data); err != nil {
			log.Printf("Failed to react to post %d for %s: %v", postID, g.Name, err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalReactions++
		s.stats.mu.Unlock()
	})
}
