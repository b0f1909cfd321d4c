package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"greenpatch/simulator"
)

func main() {
	config := simulator.DefaultSimConfig()

	flag.StringVar(&config.EngineURL, "url", config.EngineURL, "engine base URL")
	flag.IntVar(&config.NumGardeners, "gardeners", config.NumGardeners, "number of simulated gardeners")
	flag.DurationVar(&config.SimulationTime, "duration", config.SimulationTime, "how long to run")
	flag.Float64Var(&config.PostFrequency, "posts", config.PostFrequency, "posts per gardener per minute")
	flag.Float64Var(&config.CommentFrequency, "comments", config.CommentFrequency, "comments per gardener per minute")
	flag.Float64Var(&config.VoteFrequency, "votes", config.VoteFrequency, "votes per gardener per minute")
	flag.Float64Var(&config.ReactionFrequency, "reactions", config.ReactionFrequency, "reactions per gardener per minute")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Engine URL: %s", config.EngineURL)
	log.Printf("- Number of gardeners: %d", config.NumGardeners)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Post frequency: %.2f posts/gardener/minute", config.PostFrequency)
	log.Printf("- Comment frequency: %.2f comments/gardener/minute (%.0f%% replies)", config.CommentFrequency, config.ReplyPercentage*100)
	log.Printf("- Vote frequency: %.2f votes/gardener/minute", config.VoteFrequency)
	log.Printf("- Zipf parameter: %.2f", config.ZipfS)

	sim := simulator.NewSimulator(config)
	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("Simulation completed in %v. Final metrics:", metrics.Elapsed.Round(time.Second))
	log.Printf("- Gardeners: %d (%d active at end)", metrics.TotalGardeners, metrics.ActiveGardeners)
	log.Printf("- Requests: %d ok, %d failed, avg latency %v", metrics.SuccessRequests, metrics.FailedRequests, metrics.AverageLatency)
	log.Printf("- Posts: %d, comments: %d, votes: %d, reactions: %d",
		metrics.TotalPosts, metrics.TotalComments, metrics.TotalVotes, metrics.TotalReactions)
}
