package ratings

import (
	"fmt"
	"log"
	"strings"

	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

// pickMatch applies the match policy to search results, in order:
//
//  1. no results at all -> not found
//  2. keep only candidates whose school name contains the target school
//     (case-insensitive substring); none left -> not found
//  3. first candidate whose first and last name both equal the query
//     case-insensitively wins outright
//  4. otherwise the first candidate in service order is taken, but only
//     when its last name equals the query last name; anything else -> not found
//
// The heuristic is single-pass and unscored; candidate order comes from the
// service and is load-bearing.
func (c *Client) pickMatch(edges []searchEdge, firstName, lastName string) types.ProfileResult {
	if len(edges) == 0 {
		return types.ProfileResult{Found: false, Message: "no ratings results found"}
	}

	schoolNeedle := strings.ToLower(c.schoolName)
	var candidates []teacherNode
	for _, edge := range edges {
		if strings.Contains(strings.ToLower(edge.Node.School.Name), schoolNeedle) {
			candidates = append(candidates, edge.Node)
		}
	}
	if len(candidates) == 0 {
		return types.ProfileResult{Found: false, Message: "no matching school in results"}
	}

	for _, cand := range candidates {
		if strings.EqualFold(cand.FirstName, firstName) && strings.EqualFold(cand.LastName, lastName) {
			if c.debug {
				log.Printf("ratings exact match: %s %s", cand.FirstName, cand.LastName)
			}
			return types.ProfileResult{Found: true, Data: c.profile(cand)}
		}
	}

	best := candidates[0]
	if strings.EqualFold(best.LastName, lastName) {
		if c.debug {
			log.Printf("ratings best match: %s %s", best.FirstName, best.LastName)
		}
		return types.ProfileResult{Found: true, Data: c.profile(best)}
	}

	return types.ProfileResult{Found: false, Message: "no good match found"}
}

func (c *Client) profile(node teacherNode) *types.RatingProfile {
	return &types.RatingProfile{
		ID:                    node.ID,
		LegacyID:              node.LegacyID,
		Name:                  node.FirstName + " " + node.LastName,
		OverallRating:         node.AvgRating,
		NumRatings:            node.NumRatings,
		WouldTakeAgainPercent: node.WouldTakeAgainPercentRounded,
		Difficulty:            node.AvgDifficulty,
		ProfileURL:            fmt.Sprintf(c.profileURL, node.LegacyID),
	}
}
