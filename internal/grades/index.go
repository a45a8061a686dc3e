// Package grades resolves instructors against the CougarGrades dataset and
// aggregates grade distributions from its CSV record shards.
package grades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Thenathanb/CourseMate-UH/internal/names"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

// Index is the lazily built, process-wide directory of dataset instructors
// keyed by normalized last name. The first caller pays the fetch; later
// callers share the memoized map. A failed build does not poison the index:
// the next caller triggers a fresh fetch.
type Index struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration

	mu         sync.Mutex
	byLastName map[string][]types.InstructorEntry
}

func NewIndex(url string, timeout time.Duration) *Index {
	return &Index{
		httpClient: &http.Client{},
		url:        url,
		timeout:    timeout,
	}
}

// Candidates returns the directory entries sharing the given last name, in
// directory order. The slice is empty when the last name is absent.
func (ix *Index) Candidates(ctx context.Context, lastName string) ([]types.InstructorEntry, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.byLastName == nil {
		built, err := ix.build(ctx)
		if err != nil {
			return nil, err
		}
		ix.byLastName = built
	}

	return ix.byLastName[names.NormalizePart(lastName)], nil
}

type directoryResponse struct {
	Data []map[string]any `json:"data"`
}

func (ix *Index) build(ctx context.Context) (map[string][]types.InstructorEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, ix.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ix.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := ix.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch instructor directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("instructor directory returned status %d", resp.StatusCode)
	}

	var dir directoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&dir); err != nil {
		return nil, fmt.Errorf("decode instructor directory: %w", err)
	}

	built := make(map[string][]types.InstructorEntry, len(dir.Data))
	for _, record := range dir.Data {
		entry := types.InstructorEntry{
			FirstName: stringField(record, "firstName"),
			LastName:  stringField(record, "lastName"),
			Href:      stringField(record, "href"),
			Fields:    record,
		}
		key := names.NormalizePart(entry.LastName)
		if key == "" {
			continue
		}
		built[key] = append(built[key], entry)
	}
	return built, nil
}

func stringField(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}
