package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Thenathanb/CourseMate-UH/internal/cache"
	"github.com/Thenathanb/CourseMate-UH/internal/config"
	"github.com/Thenathanb/CourseMate-UH/internal/grades"
	"github.com/Thenathanb/CourseMate-UH/internal/ratelimit"
	"github.com/Thenathanb/CourseMate-UH/internal/ratings"
	"github.com/Thenathanb/CourseMate-UH/internal/resolver"
	"github.com/Thenathanb/CourseMate-UH/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	log.SetPrefix("[coursemate-lookup] ")

	rootCmd := &cobra.Command{
		Use:   "lookup",
		Short: "One-shot professor lookups from the terminal",
	}

	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(hoverCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newResolver() *resolver.Resolver {
	cfg := config.Load()

	store := cache.New(nil)
	limiter := ratelimit.New(cfg.RMPRequestsPerSecond)
	ratingsClient := ratings.NewClient(cfg, limiter)

	index := grades.NewIndex(cfg.DirectoryURL, cfg.DirectoryTimeout)
	matcher := grades.NewMatcher(index)
	aggregator := grades.NewAggregator(store, cfg.ShardURLs, cfg.ShardTimeout, cfg.AggregationBudget, cfg.Debug)

	return resolver.New(cfg, store, ratingsClient, matcher, aggregator)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [name]",
		Short: "Resolve an instructor name to a ratings profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			result := newResolver().ResolveProfessorProfile(context.Background(), name)
			if result.Error != "" {
				return fmt.Errorf("%s", result.Error)
			}
			return printJSON(result)
		},
	}
}

func hoverCmd() *cobra.Command {
	var teacherID, subject, catalog string

	cmd := &cobra.Command{
		Use:   "hover [name]",
		Short: "Fetch reviews, grade distribution, and grade profile link",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			var course *types.CourseInfo
			if subject != "" || catalog != "" {
				course = &types.CourseInfo{
					Subject: strings.ToUpper(strings.TrimSpace(subject)),
					Catalog: strings.TrimSpace(catalog),
				}
			}

			data := newResolver().ResolveHoverData(context.Background(), name, teacherID, course)
			return printJSON(data)
		},
	}

	cmd.Flags().StringVar(&teacherID, "teacher-id", "", "ratings teacher ID for review fetching")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "course subject code, e.g. MATH")
	cmd.Flags().StringVarP(&catalog, "catalog", "c", "", "course catalog number, e.g. 3321")
	return cmd
}
