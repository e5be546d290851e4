// ABOUTME: Tests for terminal formatting.
// ABOUTME: Covers list items, week rows, and header output.

package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mealog/mealog/internal/models"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestFormatMealListItem(t *testing.T) {
	meal := models.NewMeal(models.Lunch, "salad with feta\nand olives", "2024-03-01", [][]byte{{0xff, 0xd8}})

	out := FormatMealListItem(meal)

	if !strings.Contains(out, meal.ID.String()[:6]) {
		t.Error("expected ID prefix in output")
	}
	if !strings.Contains(out, "lunch") {
		t.Error("expected meal type in output")
	}
	if !strings.Contains(out, "[1 photo(s)]") {
		t.Error("expected photo count in output")
	}
	if !strings.Contains(out, "salad with feta") {
		t.Error("expected first notes line in output")
	}
	if strings.Contains(out, "and olives") {
		t.Error("expected only the first notes line")
	}
	if !strings.Contains(out, "2024-03-01") {
		t.Error("expected date in output")
	}
}

func TestFormatDayHeader(t *testing.T) {
	out := FormatDayHeader("2024-03-01", 3)
	if !strings.Contains(out, "2024-03-01") || !strings.Contains(out, "3 meal(s)") {
		t.Errorf("unexpected header %q", out)
	}
}

func TestFormatWeekRow(t *testing.T) {
	dates := []string{
		"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07",
		"2024-03-08", "2024-03-09", "2024-03-10",
	}
	present := map[string]bool{"2024-03-05": true, "2024-03-09": true}

	out := FormatWeekRow(dates, present)

	if !strings.Contains(out, "Mon 04") {
		t.Error("expected day labels in output")
	}
	if got := strings.Count(out, "●"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if got := strings.Count(out, "·"); got != 5 {
		t.Errorf("expected 5 empty markers, got %d", got)
	}
}

func TestFormatMealHeader(t *testing.T) {
	meal := models.NewMeal(models.Dinner, "", "2024-03-01", nil)

	out := FormatMealHeader(meal)
	if !strings.Contains(out, "dinner") {
		t.Error("expected type in header")
	}
	if !strings.Contains(out, meal.ID.String()) {
		t.Error("expected full ID in header")
	}
	if !strings.Contains(out, "Photos: 0") {
		t.Error("expected photo count in header")
	}
}

func TestFormatMealNotesFallsBackToRaw(t *testing.T) {
	out, err := FormatMealNotes("plain text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Error("expected non-empty output")
	}
}
