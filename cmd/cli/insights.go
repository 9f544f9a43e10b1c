package main

import (
	"context"
	"fmt"
	"os"

	"lifeos/internal/container"

	"github.com/spf13/cobra"
)

func newInsightsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show this week's insights and stats",
		Long: `Run the pattern engine over stored check-ins, smoke-free statuses and
self-expression logs and print the priority-sorted weekly summary.

Example: lifeos insights --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				summary, err := c.Insights.WeeklySummary(ctx)
				if err != nil {
					return err
				}

				insights := summary.Insights
				if limit > 0 && len(insights) > limit {
					insights = insights[:limit]
				}

				fmt.Printf("\n%s\n\n", header("=== Weekly Insights ==="))
				printInsights(os.Stdout, insights)
				fmt.Println()
				printStats(os.Stdout, summary.Stats)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most N insights (0 shows all)")
	return cmd
}

func newTrendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show energy trend statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				report, err := c.Insights.Trends(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("\n%s\n\n", header("=== Energy Trends ==="))
				printTrends(os.Stdout, report)
				return nil
			})
		},
	}
}

func newTrackerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tracker",
		Short: "Show smoke-free streaks and recovery progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				stats, err := c.Tracker.Stats(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("\n%s\n\n", header("=== Smoke-Free Tracker ==="))
				printTracker(os.Stdout, stats)
				return nil
			})
		},
	}
}
