// Package resolver exposes the service's public contract: professor
// profile resolution, hover-data assembly, and cache clearing. Every
// operation returns a result value; upstream failures degrade per branch
// and never surface as errors to callers.
package resolver

import (
	"context"
	"log"
	"sync"

	"github.com/Thenathanb/CourseMate-UH/internal/cache"
	"github.com/Thenathanb/CourseMate-UH/internal/config"
	"github.com/Thenathanb/CourseMate-UH/internal/grades"
	"github.com/Thenathanb/CourseMate-UH/internal/names"
	"github.com/Thenathanb/CourseMate-UH/internal/ratings"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

// Resolver owns the process-wide state shared across lookups: the cache
// store, the memoized instructor index behind the matcher, and the rate
// limiter inside the ratings client. Construct one at startup and share it.
type Resolver struct {
	cfg        config.Config
	store      *cache.Store
	ratings    *ratings.Client
	matcher    *grades.Matcher
	aggregator *grades.Aggregator
}

func New(cfg config.Config, store *cache.Store, rc *ratings.Client, matcher *grades.Matcher, aggregator *grades.Aggregator) *Resolver {
	return &Resolver{
		cfg:        cfg,
		store:      store,
		ratings:    rc,
		matcher:    matcher,
		aggregator: aggregator,
	}
}

// ResolveProfessorProfile resolves a raw instructor name against the
// ratings service. Results are cached under the ratings namespace whether
// or not a profile was found, so repeated lookups for unknown names do not
// hit the network again until the TTL lapses.
func (r *Resolver) ResolveProfessorProfile(ctx context.Context, rawName string) types.ProfileResult {
	parsed := names.Parse(rawName)
	if !parsed.Valid() {
		return types.ProfileResult{Error: "invalid professor name"}
	}

	key := cache.Key(
		names.NormalizePart(parsed.LastName),
		names.NormalizePart(parsed.FirstName),
		r.cfg.SchoolKey,
	)

	if v, ok := r.store.Get(cache.NamespaceRatings, key); ok {
		if result, ok := v.(types.ProfileResult); ok {
			if r.cfg.Debug {
				log.Printf("ratings cache hit for %s", key)
			}
			return result
		}
	}

	if !r.cfg.Enabled {
		return types.ProfileResult{Error: "service is disabled"}
	}

	result := r.ratings.Search(ctx, parsed.LastName, parsed.FirstName)
	r.store.Set(cache.NamespaceRatings, key, result)
	return result
}

// ResolveHoverData gathers recent reviews, the grade distribution, and the
// grade-site profile link for an instructor. The three lookups run
// concurrently and are joined with wait-for-all semantics: a failing branch
// contributes its empty value and never blanks out the others.
func (r *Resolver) ResolveHoverData(ctx context.Context, rawName, teacherID string, course *types.CourseInfo) types.HoverData {
	data := types.HoverData{Reviews: []types.Review{}}

	parsed := names.Parse(rawName)
	if !parsed.Valid() || !r.cfg.Enabled {
		return data
	}

	var wg sync.WaitGroup

	if teacherID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reviews, err := r.ratings.Reviews(ctx, teacherID, r.cfg.ReviewCount)
			if err != nil {
				if r.cfg.Debug {
					log.Printf("review fetch failed for %s: %v", teacherID, err)
				}
				return
			}
			data.Reviews = reviews
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		data.GradeDistribution = r.aggregator.Aggregate(ctx, parsed.FirstName, parsed.LastName, course)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		href, err := r.matcher.Resolve(ctx, parsed.FirstName, parsed.LastName, course, parsed.MiddleInitial)
		if err != nil {
			if r.cfg.Debug {
				log.Printf("grade profile resolution failed for %s: %v", rawName, err)
			}
			return
		}
		if href != "" {
			url := r.cfg.GradeSiteBaseURL + href
			data.GradeProfileURL = &url
		}
	}()

	wg.Wait()
	return data
}

// ClearCache wipes every cached entry across all namespaces.
func (r *Resolver) ClearCache() types.ClearResult {
	r.store.Clear()
	return types.ClearResult{Success: true}
}
