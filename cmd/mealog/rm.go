// ABOUTME: Remove command for deleting meals.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a meal",
	Long:  `Delete a meal and its photos.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]
		force, _ := cmd.Flags().GetBool("force")

		meal, err := db.GetMealByPrefix(dbConn, prefix)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}

		if !force {
			fmt.Printf("Delete %s on %s (%s)? [y/N] ", meal.Type, meal.Date, meal.ID.String()[:6])
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := db.DeleteMeal(dbConn, meal.ID); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted meal %s", meal.ID.String()[:6])))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
