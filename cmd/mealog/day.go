// ABOUTME: Day command showing the meals logged for one calendar day.
// ABOUTME: Defaults to today, most recent meal first.

package main

import (
	"fmt"
	"time"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show one day's meals",
	Long:  `List the meals logged for a calendar day (YYYY-MM-DD), most recent first. Defaults to today.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format("2006-01-02")
		if len(args) == 1 {
			date = args[0]
		}

		meals, err := db.GetByDate(dbConn, date)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		fmt.Print(ui.FormatDayHeader(date, len(meals)))
		if len(meals) == 0 {
			fmt.Println("  No meals logged.")
			return nil
		}
		for _, meal := range meals {
			fmt.Print(ui.FormatMealListItem(meal))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}
