package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SimConfig controls a simulation run. Frequencies are actions per gardener
// per minute.
type SimConfig struct {
	NumGardeners      int
	SimulationTime    time.Duration
	TickInterval      time.Duration
	PostFrequency     float64
	CommentFrequency  float64
	VoteFrequency     float64
	ReactionFrequency float64
	ReplyPercentage   float64
	DisconnectRate    float64
	ReconnectRate     float64
	ZipfS             float64
	MetricsInterval   time.Duration
	EngineURL         string
}

// DefaultSimConfig returns a moderate load against a local engine.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		NumGardeners:      10,
		SimulationTime:    2 * time.Minute,
		TickInterval:      500 * time.Millisecond,
		PostFrequency:     2,
		CommentFrequency:  4,
		VoteFrequency:     8,
		ReactionFrequency: 4,
		ReplyPercentage:   0.3,
		DisconnectRate:    0.01,
		ReconnectRate:     0.05,
		ZipfS:             1.07,
		MetricsInterval:   10 * time.Second,
		EngineURL:         "http://localhost:8080",
	}
}

type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	ActiveGardeners  int
	TotalPosts       int
	TotalComments    int
	TotalVotes       int
	TotalReactions   int
	RequestLatencies []time.Duration
}

// SimulationMetrics is a point-in-time copy of the run statistics.
type SimulationMetrics struct {
	TotalGardeners  int
	ActiveGardeners int
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	AverageLatency  time.Duration
	TotalPosts      int
	TotalComments   int
	TotalVotes      int
	TotalReactions  int
	Elapsed         time.Duration
}

// SimulatedGardener is one named community member with a session token.
type SimulatedGardener struct {
	ID          uuid.UUID
	Name        string
	Token       string
	IsConnected bool
	LastActive  time.Time
	Posts       []int64
	Comments    []string
}

type Simulator struct {
	config    SimConfig
	stats     *SimulationStats
	gardeners []*SimulatedGardener
	client    *http.Client

	mu    sync.RWMutex
	posts []int64 // feed post ids, most recent last

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewSimulator(config SimConfig) *Simulator {
	defaults := DefaultSimConfig()
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.MetricsInterval <= 0 {
		config.MetricsInterval = defaults.MetricsInterval
	}
	if config.ZipfS <= 1 {
		config.ZipfS = defaults.ZipfS
	}
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run signs the gardeners in, then drives activity until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting garden simulation...")

	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.SimulateActivities(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateConnectivity(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) initialize(ctx context.Context) error {
	log.Printf("Phase 1: Signing in %d gardeners...", s.config.NumGardeners)
	if err := s.createGardeners(ctx); err != nil {
		return err
	}
	if len(s.gardeners) == 0 {
		return fmt.Errorf("no gardener could sign in at %s", s.config.EngineURL)
	}

	log.Printf("Phase 2: Loading the current feed...")
	if err := s.loadFeed(); err != nil {
		return fmt.Errorf("failed to load feed: %v", err)
	}

	log.Printf("Initialization completed successfully")
	return nil
}

func (s *Simulator) createGardeners(ctx context.Context) error {
	const numWorkers = 5
	jobs := make(chan int, numWorkers)
	results := make(chan *SimulatedGardener, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for n := range jobs {
				g := &SimulatedGardener{
					ID:          uuid.New(),
					Name:        fmt.Sprintf("gardener_%d", n),
					IsConnected: true,
				}

				var err error
				for retries := 0; retries < 3; retries++ {
					if err = s.signIn(g); err == nil {
						results <- g
						break
					}
					backoff := time.Duration(math.Pow(2, float64(retries))) * 100 * time.Millisecond
					log.Printf("Worker %d: Retry %d for %s after %v delay", workerID, retries+1, g.Name, backoff)
					select {
					case <-ctx.Done():
						return
					case <-time.After(backoff):
					}
				}
				if err != nil {
					log.Printf("Worker %d: Failed to sign in %s after retries: %v", workerID, g.Name, err)
				}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < s.config.NumGardeners; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	gardeners := make([]*SimulatedGardener, 0, s.config.NumGardeners)
	for g := range results {
		gardeners = append(gardeners, g)
	}

	s.mu.Lock()
	s.gardeners = gardeners
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.ActiveGardeners = len(gardeners)
	s.stats.mu.Unlock()

	log.Printf("Successfully signed in %d gardeners", len(gardeners))
	return ctx.Err()
}

func (s *Simulator) signIn(g *SimulatedGardener) error {
	resp, err := s.makeRequest(http.MethodPost, "/session", "", map[string]string{"name": g.Name})
	if err != nil {
		return err
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp, &session); err != nil {
		return fmt.Errorf("failed to parse session response: %v", err)
	}
	if session.Token == "" {
		return fmt.Errorf("empty session token")
	}
	g.Token = session.Token
	return nil
}

func (s *Simulator) loadFeed() error {
	resp, err := s.makeRequest(http.MethodGet, "/post?sort=new", "", nil)
	if err != nil {
		return err
	}
	var posts []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp, &posts); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// oldest first so Zipf picks favour recent posts
	for i := len(posts) - 1; i >= 0; i-- {
		s.posts = append(s.posts, posts[i].ID)
	}
	return nil
}

// makeRequest sends data as JSON with an optional bearer token and returns
// the response body. Statuses of 400 and above are errors.
func (s *Simulator) makeRequest(method, endpoint, token string, data interface{}) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, s.config.EngineURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.recordRequestMetrics(start, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err = fmt.Errorf("%s %s failed with status: %d", method, endpoint, resp.StatusCode)
	}
	s.recordRequestMetrics(start, err)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func (s *Simulator) recordRequestMetrics(start time.Time, err error) {
	latency := time.Since(start)

	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	s.stats.TotalRequests++
	if err != nil {
		s.stats.FailedRequests++
		return
	}
	s.stats.SuccessRequests++
	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)

	var total time.Duration
	for _, l := range s.stats.RequestLatencies {
		total += l
	}
	s.stats.AverageLatency = total / time.Duration(len(s.stats.RequestLatencies))
}

func (s *Simulator) simulateConnectivity(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			active := 0
			for _, g := range s.gardeners {
				if g.IsConnected && s.chance(s.config.DisconnectRate) {
					g.IsConnected = false
				} else if !g.IsConnected && s.chance(s.config.ReconnectRate) {
					g.IsConnected = true
				}
				if g.IsConnected {
					active++
				}
			}
			s.mu.Unlock()

			s.stats.mu.Lock()
			s.stats.ActiveGardeners = active
			s.stats.mu.Unlock()
		}
	}
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(s.config.MetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := s.GetMetrics()
			log.Printf("Simulation Metrics: requests=%d (ok %d, failed %d) avg latency=%v posts=%d comments=%d votes=%d reactions=%d active=%d/%d",
				m.TotalRequests, m.SuccessRequests, m.FailedRequests, m.AverageLatency,
				m.TotalPosts, m.TotalComments, m.TotalVotes, m.TotalReactions,
				m.ActiveGardeners, m.TotalGardeners)
		}
	}
}

// GetMetrics returns a copy of the current statistics.
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.mu.RLock()
	total := len(s.gardeners)
	s.mu.RUnlock()

	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()
	return SimulationMetrics{
		TotalGardeners:  total,
		ActiveGardeners: s.stats.ActiveGardeners,
		TotalRequests:   s.stats.TotalRequests,
		SuccessRequests: s.stats.SuccessRequests,
		FailedRequests:  s.stats.FailedRequests,
		AverageLatency:  s.stats.AverageLatency,
		TotalPosts:      s.stats.TotalPosts,
		TotalComments:   s.stats.TotalComments,
		TotalVotes:      s.stats.TotalVotes,
		TotalReactions:  s.stats.TotalReactions,
		Elapsed:         time.Since(s.stats.StartTime),
	}
}

func (s *Simulator) chance(p float64) bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < p
}

func (s *Simulator) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// pickPost favours recent posts with a Zipf distribution over feed age.
func (s *Simulator) pickPost() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.posts) == 0 {
		return 0, false
	}
	if len(s.posts) == 1 {
		return s.posts[0], true
	}

	s.rngMu.Lock()
	zipf := rand.NewZipf(s.rng, s.config.ZipfS, 1, uint64(len(s.posts)-1))
	age := int(zipf.Uint64())
	s.rngMu.Unlock()

	return s.posts[len(s.posts)-1-age], true
}

func (s *Simulator) connectedGardeners() []*SimulatedGardener {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*SimulatedGardener, 0, len(s.gardeners))
	for _, g := range s.gardeners {
		if g.IsConnected {
			out = append(out, g)
		}
	}
	return out
}
