package grades

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Thenathanb/CourseMate-UH/internal/cache"
	"github.com/Thenathanb/CourseMate-UH/internal/names"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
)

// Column headers the aggregator needs from every shard.
const (
	colSubject   = "SUBJECT"
	colCatalog   = "CATALOG NBR"
	colLastName  = "INSTR LAST NAME"
	colFirstName = "INSTR FIRST NAME"
	colAvgGPA    = "AVG GPA"
)

var letterColumns = []string{"A", "B", "C", "D", "F"}

// Aggregator streams the dataset's CSV shards and accumulates a grade
// distribution for one (instructor, course) pair under a wall-clock budget.
// Shards that fail to fetch are skipped silently; shards not reached before
// the budget runs out mark the result partial.
type Aggregator struct {
	httpClient *http.Client
	store      *cache.Store

	shardURLs    []string
	shardTimeout time.Duration
	budget       time.Duration
	debug        bool

	now func() time.Time
}

func NewAggregator(store *cache.Store, shardURLs []string, shardTimeout, budget time.Duration, debug bool) *Aggregator {
	return &Aggregator{
		httpClient:   &http.Client{},
		store:        store,
		shardURLs:    shardURLs,
		shardTimeout: shardTimeout,
		budget:       budget,
		debug:        debug,
		now:          time.Now,
	}
}

// Aggregate computes (or returns the cached) grade distribution for the
// instructor and course. It returns nil when the course is incomplete; every
// computed outcome, including partial and not-found ones, is cached.
func (a *Aggregator) Aggregate(ctx context.Context, firstName, lastName string, course *types.CourseInfo) *types.GradeDistribution {
	if course == nil || !course.Complete() {
		return nil
	}

	subject := strings.ToUpper(course.Subject)
	key := cache.Key(names.NormalizePart(lastName), names.NormalizePart(firstName), subject, course.Catalog)

	if v, ok := a.store.Get(cache.NamespaceGrades, key); ok {
		if dist, ok := v.(types.GradeDistribution); ok {
			return &dist
		}
	}

	dist := a.scan(ctx, firstName, lastName, subject, course.Catalog)
	a.store.Set(cache.NamespaceGrades, key, dist)
	return &dist
}

type accumulator struct {
	totals      types.GradeTotals
	gpaWeighted float64
	gpaCount    int
}

func (a *Aggregator) scan(ctx context.Context, firstName, lastName, subject, catalog string) types.GradeDistribution {
	start := a.now()
	var acc accumulator
	partial := false

	for _, url := range a.shardURLs {
		if a.now().Sub(start) > a.budget {
			partial = true
			if a.debug {
				log.Printf("grade aggregation budget exceeded, skipping remaining shards")
			}
			break
		}

		body, err := a.fetchShard(ctx, url)
		if err != nil {
			log.Printf("skipping grade shard %s: %v", url, err)
			continue
		}
		if err := scanShard(body, firstName, lastName, subject, catalog, &acc); err != nil {
			log.Printf("skipping grade shard %s: %v", url, err)
		}
	}

	return buildDistribution(subject, catalog, acc, partial)
}

func (a *Aggregator) fetchShard(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, a.shardTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build shard request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch shard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shard returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// scanShard walks one shard's rows, adding matching rows to the accumulator.
// Column positions are resolved from the header once per shard.
func scanShard(body []byte, firstName, lastName, subject, catalog string, acc *accumulator) error {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read shard header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	required := []string{colSubject, colCatalog, colLastName, colFirstName, colAvgGPA}
	required = append(required, letterColumns...)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("shard header missing column %q", name)
		}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read shard row: %w", err)
		}

		rowSubject := field(row, cols[colSubject])
		rowCatalog := field(row, cols[colCatalog])
		if rowSubject == "" || rowCatalog == "" {
			continue
		}
		if !strings.EqualFold(rowSubject, subject) || rowCatalog != catalog {
			continue
		}
		if !names.Match(firstName, lastName, field(row, cols[colFirstName]), field(row, cols[colLastName])) {
			continue
		}

		rowTotal := 0
		for _, letter := range letterColumns {
			count := atoi(field(row, cols[letter]))
			rowTotal += count
			switch letter {
			case "A":
				acc.totals.A += count
			case "B":
				acc.totals.B += count
			case "C":
				acc.totals.C += count
			case "D":
				acc.totals.D += count
			case "F":
				acc.totals.F += count
			}
		}

		if rowTotal > 0 {
			if gpa, err := strconv.ParseFloat(field(row, cols[colAvgGPA]), 64); err == nil {
				acc.gpaWeighted += gpa * float64(rowTotal)
				acc.gpaCount += rowTotal
			}
		}
	}
}

func buildDistribution(subject, catalog string, acc accumulator, partial bool) types.GradeDistribution {
	dist := types.GradeDistribution{
		Course:  types.CourseInfo{Subject: subject, Catalog: catalog}.Display(),
		Totals:  acc.totals,
		Partial: partial,
	}

	totalGrades := acc.totals.Sum()
	if totalGrades == 0 {
		dist.NotFound = true
		return dist
	}

	dist.Percentages = &types.GradePercentages{
		A: percent(acc.totals.A, totalGrades),
		B: percent(acc.totals.B, totalGrades),
		C: percent(acc.totals.C, totalGrades),
		D: percent(acc.totals.D, totalGrades),
		F: percent(acc.totals.F, totalGrades),
	}
	if acc.gpaCount > 0 {
		gpa := acc.gpaWeighted / float64(acc.gpaCount)
		dist.GPA = &gpa
	}
	return dist
}

func percent(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
