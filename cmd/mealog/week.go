// ABOUTME: Week command rendering seven days with presence indicators.
// ABOUTME: Uses the distinct-dates query so no image payloads are loaded.

package main

import (
	"fmt"
	"time"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week [start-date]",
	Short: "Show a week's dot indicators",
	Long:  `Show seven days starting from the given Monday (or this week's), with a dot under each day that has meals.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var start time.Time
		if len(args) == 1 {
			var err error
			start, err = time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[0], err)
			}
		} else {
			start = weekStart(time.Now())
		}

		dates := make([]string, 7)
		for i := range dates {
			dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
		}

		withRecords, err := db.DatesWithRecords(dbConn, dates[0], dates[6])
		if err != nil {
			return fmt.Errorf("failed to query week: %w", err)
		}
		present := make(map[string]bool, len(withRecords))
		for _, d := range withRecords {
			present[d] = true
		}

		fmt.Print(ui.FormatWeekRow(dates, present))
		return nil
	},
}

// weekStart returns the Monday of t's week.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

func init() {
	rootCmd.AddCommand(weekCmd)
}
