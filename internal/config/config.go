package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting for the resolver service. Values come
// from the environment with sensible defaults for University of Houston.
type Config struct {
	Port    int
	Enabled bool
	Debug   bool

	// RateMyProfessors
	RMPGraphQLURL        string
	RMPAuthHeader        string
	RMPSchoolID          string
	RMPSchoolName        string
	RMPTimeout           time.Duration
	RMPRequestsPerSecond float64
	ReviewCount          int

	// CougarGrades dataset
	DirectoryURL      string
	DirectoryTimeout  time.Duration
	GradeSiteBaseURL  string
	ShardURLs         []string
	ShardTimeout      time.Duration
	AggregationBudget time.Duration

	// Cache
	SchoolKey      string
	CacheTTLRating time.Duration
	CacheTTLGrades time.Duration
}

func Load() Config {
	return Config{
		Port:    getenvInt("PORT", 8080),
		Enabled: getenvBool("COURSEMATE_ENABLED", true),
		Debug:   getenvBool("COURSEMATE_DEBUG", false),

		RMPGraphQLURL:        getenv("RMP_GRAPHQL_URL", "https://www.ratemyprofessors.com/graphql"),
		RMPAuthHeader:        getenv("RMP_AUTH_HEADER", "Basic dGVzdDp0ZXN0"),
		RMPSchoolID:          getenv("RMP_SCHOOL_ID", "U2Nob29sLTExMDk="),
		RMPSchoolName:        getenv("RMP_SCHOOL_NAME", "University of Houston"),
		RMPTimeout:           getenvDuration("RMP_TIMEOUT", 8*time.Second),
		RMPRequestsPerSecond: getenvFloat("RMP_REQUESTS_PER_SECOND", 1),
		ReviewCount:          getenvInt("RMP_REVIEW_COUNT", 5),

		DirectoryURL:      getenv("GRADES_DIRECTORY_URL", "https://cougargrades.io/api/instructors"),
		DirectoryTimeout:  getenvDuration("GRADES_DIRECTORY_TIMEOUT", 8*time.Second),
		GradeSiteBaseURL:  getenv("GRADES_SITE_BASE_URL", "https://cougargrades.io"),
		ShardURLs:         getenvList("GRADES_SHARD_URLS", defaultShardURLs),
		ShardTimeout:      getenvDuration("GRADES_SHARD_TIMEOUT", 8*time.Second),
		AggregationBudget: getenvDuration("GRADES_AGGREGATION_BUDGET", 10*time.Second),

		SchoolKey:      getenv("SCHOOL_KEY", "uh"),
		CacheTTLRating: getenvDuration("CACHE_TTL_RATINGS", 7*24*time.Hour),
		CacheTTLGrades: getenvDuration("CACHE_TTL_GRADES", 14*24*time.Hour),
	}
}

// defaultShardURLs is the fixed, ordered set of grade record partitions.
// The aggregator walks them in this order until its wall-clock budget runs out.
var defaultShardURLs = []string{
	"https://cougargrades.io/data/records-2019.csv",
	"https://cougargrades.io/data/records-2020.csv",
	"https://cougargrades.io/data/records-2021.csv",
	"https://cougargrades.io/data/records-2022.csv",
	"https://cougargrades.io/data/records-2023.csv",
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func getenvBool(k string, def bool) bool {
	v := strings.ToLower(os.Getenv(k))
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getenvList(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
