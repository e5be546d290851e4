// ABOUTME: Edit command patching an existing meal.
// ABOUTME: Mixes kept stored payloads with newly compressed photos.

package main

import (
	"fmt"
	"os"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/models"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a meal",
	Long: `Update a meal's type, notes, date, or photos. The ID and creation time never change.
Without photo flags the existing photos are kept untouched. --add-image appends new
photos to the kept ones; --clear-images drops them first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]

		meal, err := db.GetMealByPrefix(dbConn, prefix)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}

		patch := &db.Patch{}
		if cmd.Flags().Changed("type") {
			typeFlag, _ := cmd.Flags().GetString("type")
			t := models.ParseMealType(typeFlag)
			patch.Type = &t
		}
		if cmd.Flags().Changed("notes") {
			notesFlag, _ := cmd.Flags().GetString("notes")
			patch.Notes = &notesFlag
		}
		if cmd.Flags().Changed("date") {
			dateFlag, _ := cmd.Flags().GetString("date")
			patch.Date = &dateFlag
		}

		addFlags, _ := cmd.Flags().GetStringArray("add-image")
		clearFlag, _ := cmd.Flags().GetBool("clear-images")

		if len(addFlags) > 0 || clearFlag {
			var items []models.ImageItem
			if !clearFlag {
				// Carry the stored payloads forward byte-identical.
				for _, payload := range meal.Images {
					items = append(items, models.StoredImage(payload))
				}
			}
			for _, path := range addFlags {
				data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
				if err != nil {
					return fmt.Errorf("failed to read image %s: %w", path, err)
				}
				items = append(items, models.RawImage(data))
			}
			if len(items) > models.MaxImages {
				return models.ErrTooManyImages
			}
			if items == nil {
				items = []models.ImageItem{}
			}
			patch.Images = items
		}

		updated, err := db.UpdateMeal(dbConn, meal.ID, patch)
		if err != nil {
			return fmt.Errorf("failed to update meal: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated meal %s (%d photo(s))", updated.ID.String()[:6], len(updated.Images))))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("type", "t", "", "new meal type")
	editCmd.Flags().StringP("notes", "m", "", "new notes")
	editCmd.Flags().StringP("date", "d", "", "new calendar day YYYY-MM-DD")
	editCmd.Flags().StringArray("add-image", nil, "photo file to append (repeatable)")
	editCmd.Flags().Bool("clear-images", false, "drop the existing photos")
	rootCmd.AddCommand(editCmd)
}
