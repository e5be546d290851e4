// ABOUTME: Show command for displaying a single meal.
// ABOUTME: Renders notes with glamour and can extract photos to files.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/handles"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a meal",
	Long:  `Display a meal's notes and metadata. With --save-images, write its photos to a directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]
		saveDir, _ := cmd.Flags().GetString("save-images")

		meal, err := db.GetMealByPrefix(dbConn, prefix)
		if err != nil {
			return fmt.Errorf("failed to get meal: %w", err)
		}

		// Print header
		fmt.Print(ui.FormatMealHeader(meal))

		// Print notes
		if meal.Notes != "" {
			notes, _ := ui.FormatMealNotes(meal.Notes)
			fmt.Print(notes)
		}

		if saveDir == "" || len(meal.Images) == 0 {
			return nil
		}

		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return fmt.Errorf("failed to create image directory: %w", err)
		}

		// Display handles over stored payloads: acquired for the write,
		// released once the files exist.
		mgr := handles.NewManager()
		for i, payload := range meal.Images {
			h := mgr.Acquire(payload, handles.ScopeStored)
			data, ok := mgr.Resolve(h)
			if !ok {
				mgr.Release(h)
				continue
			}
			name := fmt.Sprintf("%s-%d.jpg", meal.ID.String()[:6], i+1)
			if err := os.WriteFile(filepath.Join(saveDir, name), data, 0644); err != nil {
				mgr.Release(h)
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			mgr.Release(h)
			fmt.Println(ui.Success("Wrote " + name))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().String("save-images", "", "directory to extract photos into")
	rootCmd.AddCommand(showCmd)
}
