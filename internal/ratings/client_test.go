package ratings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Thenathanb/CourseMate-UH/internal/config"
	"github.com/Thenathanb/CourseMate-UH/internal/ratelimit"
)

func clientFor(url string) *Client {
	cfg := config.Load()
	cfg.RMPGraphQLURL = url
	cfg.RMPTimeout = 2 * time.Second
	return NewClient(cfg, ratelimit.New(1000))
}

func TestSearchDecodesAndMatches(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {"newSearch": {"teachers": {"edges": [
				{"node": {
					"id": "VGVhY2hlci0xMjM0NQ==",
					"legacyId": 12345,
					"firstName": "John",
					"lastName": "Smith",
					"school": {"name": "University of Houston"},
					"department": "Mathematics",
					"avgRating": 4.2,
					"numRatings": 47,
					"wouldTakeAgainPercentRounded": 85,
					"avgDifficulty": 3.1
				}}
			]}}}
		}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)
	result := c.Search(context.Background(), "Smith", "John")

	if !result.Found {
		t.Fatalf("expected found, got %+v", result)
	}
	if result.Data.ProfileURL != "https://www.ratemyprofessors.com/professor/12345" {
		t.Errorf("profile URL = %q", result.Data.ProfileURL)
	}
	if gotAuth != "Basic dGVzdDp0ZXN0" {
		t.Errorf("auth header = %q", gotAuth)
	}

	variables := gotBody["variables"].(map[string]any)
	query := variables["query"].(map[string]any)
	if query["text"] != "Smith" {
		t.Errorf("search text = %v, want last name", query["text"])
	}
	if query["schoolID"] != "U2Nob29sLTExMDk=" {
		t.Errorf("schoolID = %v", query["schoolID"])
	}
}

func TestSearchUpstreamErrorDegradesToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := clientFor(srv.URL)
	result := c.Search(context.Background(), "Smith", "John")

	if result.Found {
		t.Error("expected not found on upstream error")
	}
	if result.Message == "" {
		t.Error("expected a message describing the failure")
	}
}

func TestSearchTimeoutAborts(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := clientFor(srv.URL)
	c.timeout = 50 * time.Millisecond

	start := time.Now()
	result := c.Search(context.Background(), "Smith", "John")

	if result.Found {
		t.Error("expected not found on timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("search took %v, timeout did not abort the call", elapsed)
	}
}

func TestReviews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": {"node": {"ratings": {"edges": [
				{"node": {
					"id": "UmF0aW5nLTE=",
					"class": "MATH3321",
					"comment": "Great lectures.",
					"date": "2024-03-01 10:00:00 +0000 UTC",
					"qualityRating": 5,
					"difficultyRating": 3,
					"grade": "A",
					"thumbsUpTotal": 4,
					"thumbsDownTotal": 0,
					"wouldTakeAgain": true
				}},
				{"node": {
					"id": "UmF0aW5nLTI=",
					"class": "MATH2414",
					"comment": "Tough but fair.",
					"qualityRating": 4,
					"difficultyRating": 4,
					"grade": "B",
					"wouldTakeAgain": null
				}}
			]}}}
		}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)
	reviews, err := c.Reviews(context.Background(), "VGVhY2hlci0xMjM0NQ==", 5)
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(reviews))
	}
	if reviews[0].Comment != "Great lectures." || reviews[0].Class != "MATH3321" {
		t.Errorf("first review = %+v", reviews[0])
	}
	if reviews[0].WouldTakeAgain == nil || !*reviews[0].WouldTakeAgain {
		t.Error("first review wouldTakeAgain should be true")
	}
	if reviews[1].WouldTakeAgain != nil {
		t.Error("second review wouldTakeAgain should be null")
	}
}

func TestReviewsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := clientFor(srv.URL)
	if _, err := c.Reviews(context.Background(), "id", 5); err == nil {
		t.Error("expected error from failing upstream")
	}
}
