package ratings

import (
	"testing"

	"github.com/Thenathanb/CourseMate-UH/internal/config"
	"github.com/Thenathanb/CourseMate-UH/internal/ratelimit"
)

func testClient() *Client {
	cfg := config.Load()
	return NewClient(cfg, ratelimit.New(1000))
}

func edge(first, last, school string, legacyID int) searchEdge {
	var e searchEdge
	e.Node.FirstName = first
	e.Node.LastName = last
	e.Node.School.Name = school
	e.Node.LegacyID = legacyID
	e.Node.ID = "VGVhY2hlci0" + last
	return e
}

func TestPickMatchEmptyResults(t *testing.T) {
	c := testClient()

	result := c.pickMatch(nil, "John", "Smith")
	if result.Found {
		t.Error("expected not found for empty result set")
	}
}

func TestPickMatchFiltersSchool(t *testing.T) {
	c := testClient()

	edges := []searchEdge{
		edge("John", "Smith", "Rice University", 1),
		edge("John", "Smith", "Texas A&M University", 2),
	}

	result := c.pickMatch(edges, "John", "Smith")
	if result.Found {
		t.Error("expected not found when no candidate is at the target school")
	}
}

func TestPickMatchExactWinsOverOrder(t *testing.T) {
	c := testClient()

	edges := []searchEdge{
		edge("Jane", "Smith", "University of Houston", 1),
		edge("John", "Smith", "University of Houston", 2),
	}

	result := c.pickMatch(edges, "john", "smith")
	if !result.Found {
		t.Fatal("expected exact match to be found")
	}
	if result.Data.LegacyID != 2 {
		t.Errorf("matched legacyId %d, want 2 (the exact match)", result.Data.LegacyID)
	}
}

func TestPickMatchBestMatchRequiresLastName(t *testing.T) {
	c := testClient()

	// No exact first-name match; first candidate shares the last name.
	edges := []searchEdge{
		edge("Jonathan", "Smith", "University of Houston", 1),
		edge("Jane", "Smith", "University of Houston", 2),
	}

	result := c.pickMatch(edges, "John", "Smith")
	if !result.Found {
		t.Fatal("expected first candidate to be taken as best match")
	}
	if result.Data.LegacyID != 1 {
		t.Errorf("matched legacyId %d, want 1 (first in service order)", result.Data.LegacyID)
	}
}

func TestPickMatchBestMatchRejectedOnLastNameMismatch(t *testing.T) {
	c := testClient()

	// First candidate's last name differs from the query; no re-ranking
	// happens even though the second candidate would fit.
	edges := []searchEdge{
		edge("John", "Smythe", "University of Houston", 1),
		edge("Johnny", "Smith", "University of Houston", 2),
	}

	result := c.pickMatch(edges, "John", "Smith")
	if result.Found {
		t.Error("expected not found when first candidate's last name differs")
	}
}

func TestPickMatchSchoolSubstringCaseInsensitive(t *testing.T) {
	c := testClient()

	edges := []searchEdge{
		edge("John", "Smith", "UNIVERSITY OF HOUSTON - Main Campus", 7),
	}

	result := c.pickMatch(edges, "John", "Smith")
	if !result.Found {
		t.Fatal("expected school substring filter to be case-insensitive")
	}
	if result.Data.ProfileURL != "https://www.ratemyprofessors.com/professor/7" {
		t.Errorf("profile URL = %q", result.Data.ProfileURL)
	}
}

func TestProfileFields(t *testing.T) {
	c := testClient()

	e := edge("Sarah", "Johnson", "University of Houston", 23456)
	e.Node.AvgRating = 4.8
	e.Node.NumRatings = 92
	e.Node.WouldTakeAgainPercentRounded = 95
	e.Node.AvgDifficulty = 2.3

	result := c.pickMatch([]searchEdge{e}, "Sarah", "Johnson")
	if !result.Found {
		t.Fatal("expected match")
	}
	p := result.Data
	if p.Name != "Sarah Johnson" {
		t.Errorf("name = %q", p.Name)
	}
	if p.OverallRating != 4.8 || p.NumRatings != 92 || p.WouldTakeAgainPercent != 95 || p.Difficulty != 2.3 {
		t.Errorf("profile fields not carried over: %+v", p)
	}
}
