// ABOUTME: List command for the full meal history.
// ABOUTME: Sorts most recent first and supports an optional date range.

package main

import (
	"fmt"
	"sort"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/models"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal history",
	Long:  `List every logged meal, most recent first. With --from/--to, list only the inclusive date range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")

		var meals []*models.Meal
		var err error
		if fromFlag != "" || toFlag != "" {
			if fromFlag == "" || toFlag == "" {
				return fmt.Errorf("--from and --to must be given together")
			}
			meals, err = db.GetRange(dbConn, fromFlag, toFlag)
		} else {
			meals, err = db.GetAll(dbConn)
			if err == nil {
				// GetAll has no ordering contract; sort here.
				sort.Slice(meals, func(i, j int) bool {
					return meals[i].Timestamp > meals[j].Timestamp
				})
			}
		}
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		if len(meals) == 0 {
			fmt.Println("No meals logged.")
			return nil
		}
		for _, meal := range meals {
			fmt.Print(ui.FormatMealListItem(meal))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("from", "", "range start YYYY-MM-DD")
	listCmd.Flags().String("to", "", "range end YYYY-MM-DD")
	rootCmd.AddCommand(listCmd)
}
