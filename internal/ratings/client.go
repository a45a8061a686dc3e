// Package ratings queries the RateMyProfessors GraphQL API and resolves
// the best candidate for an instructor at one fixed school.
package ratings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Thenathanb/CourseMate-UH/internal/config"
	"github.com/Thenathanb/CourseMate-UH/internal/ratelimit"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

const searchQuery = `
query NewSearchTeachersQuery($query: TeacherSearchQuery!, $count: Int) {
  newSearch {
    teachers(query: $query, first: $count) {
      edges {
        node {
          id
          legacyId
          firstName
          lastName
          school {
            name
          }
          department
          avgRating
          numRatings
          wouldTakeAgainPercentRounded
          avgDifficulty
        }
      }
    }
  }
}`

const ratingsQuery = `
query RatingsListQuery($id: ID!, $count: Int) {
  node(id: $id) {
    ... on Teacher {
      ratings(first: $count) {
        edges {
          node {
            id
            class
            comment
            date
            qualityRating
            difficultyRating
            grade
            thumbsUpTotal
            thumbsDownTotal
            wouldTakeAgain
          }
        }
      }
    }
  }
}`

const searchResultCount = 10

// Client is the ratings-service API client. Every outbound call passes
// through the shared rate limiter and carries its own timeout.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter

	url        string
	authHeader string
	schoolID   string
	schoolName string
	profileURL string
	timeout    time.Duration
	debug      bool
}

func NewClient(cfg config.Config, limiter *ratelimit.Limiter) *Client {
	return &Client{
		httpClient: &http.Client{},
		limiter:    limiter,
		url:        cfg.RMPGraphQLURL,
		authHeader: cfg.RMPAuthHeader,
		schoolID:   cfg.RMPSchoolID,
		schoolName: cfg.RMPSchoolName,
		profileURL: "https://www.ratemyprofessors.com/professor/%d",
		timeout:    cfg.RMPTimeout,
		debug:      cfg.Debug,
	}
}

type teacherNode struct {
	ID        string `json:"id"`
	LegacyID  int    `json:"legacyId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	School    struct {
		Name string `json:"name"`
	} `json:"school"`
	Department                   string  `json:"department"`
	AvgRating                    float64 `json:"avgRating"`
	NumRatings                   int     `json:"numRatings"`
	WouldTakeAgainPercentRounded float64 `json:"wouldTakeAgainPercentRounded"`
	AvgDifficulty                float64 `json:"avgDifficulty"`
}

type searchEdge struct {
	Node teacherNode `json:"node"`
}

type searchResponse struct {
	Data struct {
		NewSearch struct {
			Teachers struct {
				Edges []searchEdge `json:"edges"`
			} `json:"teachers"`
		} `json:"newSearch"`
	} `json:"data"`
}

type ratingsResponse struct {
	Data struct {
		Node struct {
			Ratings struct {
				Edges []struct {
					Node types.Review `json:"node"`
				} `json:"edges"`
			} `json:"ratings"`
		} `json:"node"`
	} `json:"data"`
}

// Search looks an instructor up by name at the configured school and
// applies the single-pass match policy. Upstream failures degrade to a
// not-found result; Search never returns an error.
func (c *Client) Search(ctx context.Context, lastName, firstName string) types.ProfileResult {
	variables := map[string]any{
		"query": map[string]any{
			"text":     lastName,
			"schoolID": c.schoolID,
		},
		"count": searchResultCount,
	}

	var resp searchResponse
	if err := c.post(ctx, searchQuery, variables, &resp); err != nil {
		if c.debug {
			log.Printf("ratings search failed for %s, %s: %v", lastName, firstName, err)
		}
		return types.ProfileResult{Found: false, Message: err.Error()}
	}

	return c.pickMatch(resp.Data.NewSearch.Teachers.Edges, firstName, lastName)
}

// Reviews fetches up to count recent ratings for a resolved teacher ID.
func (c *Client) Reviews(ctx context.Context, teacherID string, count int) ([]types.Review, error) {
	variables := map[string]any{
		"id":    teacherID,
		"count": count,
	}

	var resp ratingsResponse
	if err := c.post(ctx, ratingsQuery, variables, &resp); err != nil {
		return nil, err
	}

	reviews := make([]types.Review, 0, len(resp.Data.Node.Ratings.Edges))
	for _, edge := range resp.Data.Node.Ratings.Edges {
		reviews = append(reviews, edge.Node)
	}
	return reviews, nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any, out any) error {
	c.limiter.Acquire()

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ratings service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ratings service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
