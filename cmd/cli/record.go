package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lifeos/app"
	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/internal/container"

	"github.com/spf13/cobra"
)

func newCheckInCmd() *cobra.Command {
	var date string
	var factors []string
	var note string

	cmd := &cobra.Command{
		Use:   "checkin [energy] [nervous-system]",
		Short: "Record a daily energy check-in",
		Long: `Record (or replace) the energy check-in for a day.

Energy is one of high|medium|low; nervous system is one of calm|wired|anxious|numb.

Example: lifeos checkin low wired --factor "poor sleep" --factor vape --date 2024-06-30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				day, err := dayOrToday(date, c.Engine.Today())
				if err != nil {
					return err
				}

				saved, err := c.Daily.RecordCheckIn(ctx, wellness.EnergyCheckIn{
					Date:          day,
					Energy:        wellness.EnergyLevel(strings.ToLower(args[0])),
					NervousSystem: wellness.NervousSystemState(strings.ToLower(args[1])),
					Factors:       factors,
					Note:          note,
				})
				if err != nil {
					return err
				}

				fmt.Printf("%s check-in for %s: %s energy, %s\n",
					success("✓"), saved.Date, energyColor(saved.Energy)(string(saved.Energy)), saved.NervousSystem)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().StringArrayVar(&factors, "factor", nil, "Contributing factor tag (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status [clean|cigarette|vape]",
		Short: "Mark a day in the smoke-free tracker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := wellness.ParseSmokeStatus(args[0])
			if err != nil {
				return err
			}

			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				day, err := dayOrToday(date, c.Engine.Today())
				if err != nil {
					return err
				}
				if err := c.Tracker.SetDayStatus(ctx, day, status); err != nil {
					return err
				}

				fmt.Printf("%s %s marked %s\n", success("✓"), day, statusColor(status)(string(status)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to mark (YYYY-MM-DD, default today)")
	return cmd
}

func newUrgeCmd() *cobra.Command {
	var trigger, replacement, note string

	cmd := &cobra.Command{
		Use:   "urge [intensity]",
		Short: "Log a craving in the urge log",
		Long: `Log a craving now, rated 1 (mild) to 5 (extreme). Without an intensity the urge is logged as 3.

Example: lifeos urge 4 --trigger Stress --replacement "Deep breathing"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := app.UrgeInput{Trigger: trigger, Replacement: replacement, Notes: note}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("intensity must be a number from 1 to 5: %w", err)
				}
				in.Intensity = wellness.UrgeIntensity(n)
			}

			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				urge, err := c.Tracker.LogUrge(ctx, in)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s urge logged for %s\n", success("✓"), urgeColor(urge.Intensity)(urge.Intensity.Label()), urge.Day)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&trigger, "trigger", "", "What set it off")
	cmd.Flags().StringVar(&replacement, "replacement", "", "What you did instead")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	return cmd
}

func newUrgesCmd() *cobra.Command {
	var limit, days int

	cmd := &cobra.Command{
		Use:   "urges",
		Short: "List recent urges with per-day counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				today := c.Engine.Today()
				page, err := c.Tracker.ListUrges(ctx, today.AddDays(-(days - 1)), today, limit)
				if err != nil {
					return err
				}
				fmt.Println(header(fmt.Sprintf("Urges (last %d days)", days)))
				printUrges(os.Stdout, page)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum urges to show (0 for all)")
	cmd.Flags().IntVar(&days, "days", 30, "Days to look back")
	return cmd
}

func dayOrToday(s string, today core.Day) (core.Day, error) {
	if strings.TrimSpace(s) == "" {
		return today, nil
	}
	day, err := core.ParseDay(s)
	if err != nil {
		return "", fmt.Errorf("invalid --date (use YYYY-MM-DD): %w", err)
	}
	return day, nil
}
