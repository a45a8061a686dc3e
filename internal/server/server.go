package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Thenathanb/CourseMate-UH/internal/cache"
	"github.com/Thenathanb/CourseMate-UH/internal/config"
	"github.com/Thenathanb/CourseMate-UH/internal/grades"
	"github.com/Thenathanb/CourseMate-UH/internal/ratelimit"
	"github.com/Thenathanb/CourseMate-UH/internal/ratings"
	"github.com/Thenathanb/CourseMate-UH/internal/resolver"
	"github.com/Thenathanb/CourseMate-UH/internal/server/handlers"
	"github.com/Thenathanb/CourseMate-UH/internal/server/middleware"
	"github.com/Thenathanb/CourseMate-UH/internal/server/router"
)

// New wires the process-wide resolver state (cache store, rate limiter,
// memoized instructor index) and returns a ready-to-run HTTP server.
func New(cfg config.Config) *http.Server {
	store := cache.New(map[string]time.Duration{
		cache.NamespaceRatings: cfg.CacheTTLRating,
		cache.NamespaceGrades:  cfg.CacheTTLGrades,
	})

	limiter := ratelimit.New(cfg.RMPRequestsPerSecond)
	ratingsClient := ratings.NewClient(cfg, limiter)

	index := grades.NewIndex(cfg.DirectoryURL, cfg.DirectoryTimeout)
	matcher := grades.NewMatcher(index)
	aggregator := grades.NewAggregator(store, cfg.ShardURLs, cfg.ShardTimeout, cfg.AggregationBudget, cfg.Debug)

	res := resolver.New(cfg, store, ratingsClient, matcher, aggregator)

	handler := handlers.New(res)
	mw := middleware.NewManager(cfg.Debug)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(handler, mw),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
