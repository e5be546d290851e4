// ABOUTME: Add command for logging new meals.
// ABOUTME: Reads photo files, compresses them, and persists the record.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/models"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	Long:  `Log a meal with a type, notes, and up to five photos. Defaults to a snack for today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeFlag, _ := cmd.Flags().GetString("type")
		notesFlag, _ := cmd.Flags().GetString("notes")
		dateFlag, _ := cmd.Flags().GetString("date")
		imageFlags, _ := cmd.Flags().GetStringArray("image")

		if dateFlag == "" {
			dateFlag = time.Now().Format("2006-01-02")
		}
		if len(imageFlags) > models.MaxImages {
			return models.ErrTooManyImages
		}

		var images [][]byte
		for _, path := range imageFlags {
			data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read image %s: %w", path, err)
			}
			images = append(images, data)
		}

		meal, err := db.CreateMeal(dbConn, &db.Draft{
			Type:   models.ParseMealType(typeFlag),
			Notes:  notesFlag,
			Date:   dateFlag,
			Images: images,
		})
		if err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Logged %s %s for %s", meal.Type, meal.ID.String()[:6], meal.Date)))
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("type", "t", "snack", "meal type: breakfast, lunch, dinner, snack")
	addCmd.Flags().StringP("notes", "m", "", "free-text notes")
	addCmd.Flags().StringP("date", "d", "", "calendar day YYYY-MM-DD (defaults to today)")
	addCmd.Flags().StringArrayP("image", "i", nil, "photo file to attach (repeatable, up to 5)")
	rootCmd.AddCommand(addCmd)
}
