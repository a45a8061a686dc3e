package grades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const directoryBody = `{
	"data": [
		{"firstName": "Julia", "lastName": "Perez", "href": "/i/perez-julia", "department": "MATH"},
		{"firstName": "Juan", "lastName": "Perez", "href": "/i/perez-juan", "department": "COSC"},
		{"firstName": "Wu-Pei", "lastName": "Su", "href": "/i/su-wupei"},
		{"firstName": "", "lastName": "", "href": "/i/broken"}
	]
}`

func TestCandidatesBuildsOnce(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(directoryBody))
	}))
	defer srv.Close()

	ix := NewIndex(srv.URL, 2*time.Second)

	first, err := ix.Candidates(context.Background(), "Perez")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d candidates for Perez, want 2", len(first))
	}
	if first[0].Href != "/i/perez-julia" {
		t.Errorf("candidates out of directory order: %+v", first)
	}

	if _, err := ix.Candidates(context.Background(), "Su"); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.Candidates(context.Background(), "Nguyen"); err != nil {
		t.Fatal(err)
	}

	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Errorf("directory fetched %d times, want 1 (memoized)", n)
	}
}

func TestCandidatesAbsentLastName(t *testing.T) {
	ix := indexWith(entry("Julia", "Perez", "/i/perez-julia", nil))

	got, err := ix.Candidates(context.Background(), "Nguyen")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates, want 0", len(got))
	}
}

func TestBuildFailureDoesNotPoison(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(directoryBody))
	}))
	defer srv.Close()

	ix := NewIndex(srv.URL, 2*time.Second)

	if _, err := ix.Candidates(context.Background(), "Perez"); err == nil {
		t.Fatal("expected error from first build attempt")
	}

	got, err := ix.Candidates(context.Background(), "Perez")
	if err != nil {
		t.Fatalf("retry after failed build: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d candidates after retry, want 2", len(got))
	}
}

func TestDirectoryEntriesWithoutLastNameAreDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(directoryBody))
	}))
	defer srv.Close()

	ix := NewIndex(srv.URL, 2*time.Second)
	if _, err := ix.Candidates(context.Background(), "Perez"); err != nil {
		t.Fatal(err)
	}

	if entries, ok := ix.byLastName[""]; ok {
		t.Errorf("entries with empty last name should be dropped, got %+v", entries)
	}
}
