// ABOUTME: Terminal UI formatting for mealog output.
// ABOUTME: Uses glamour for notes and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mealog/mealog/internal/models"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

func FormatMealListItem(meal *models.Meal) string {
	var sb strings.Builder

	idPrefix := meal.ID.String()[:6]
	sb.WriteString(fmt.Sprintf("  %s  %s", faint(idPrefix), bold(meal.Type)))
	if len(meal.Images) > 0 {
		sb.WriteString(fmt.Sprintf("  %s", cyan(fmt.Sprintf("[%d photo(s)]", len(meal.Images)))))
	}
	sb.WriteString("\n")

	if meal.Notes != "" {
		sb.WriteString(fmt.Sprintf("         %s\n", firstLine(meal.Notes)))
	}

	logged := time.UnixMilli(meal.Timestamp).Format("15:04")
	sb.WriteString(fmt.Sprintf("         %s %s %s\n",
		faint("Logged:"), faint(meal.Date), faint(logged)))

	return sb.String()
}

func FormatDayHeader(date string, count int) string {
	return fmt.Sprintf("%s %s\n", bold(date), faint(fmt.Sprintf("(%d meal(s))", count)))
}

// FormatWeekRow renders seven dates with a dot under each day that has
// at least one record.
func FormatWeekRow(dates []string, present map[string]bool) string {
	var days, dots strings.Builder
	for _, d := range dates {
		day := d
		if t, err := time.Parse("2006-01-02", d); err == nil {
			day = t.Format("Mon 02")
		}
		days.WriteString(fmt.Sprintf("%-8s", day))
		// Pad outside the color codes so ANSI escapes don't skew width.
		if present[d] {
			dots.WriteString(green("●") + strings.Repeat(" ", 7))
		} else {
			dots.WriteString(faint("·") + strings.Repeat(" ", 7))
		}
	}
	return days.String() + "\n" + dots.String() + "\n"
}

func FormatMealNotes(notes string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return notes, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(notes)
	if err != nil {
		// Fallback to raw content if rendering fails
		return notes, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// FormatMealHeader renders the full detail header for one record.
func FormatMealHeader(meal *models.Meal) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", bold(meal.Type), faint("on "+meal.Date)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(meal.ID.String())))
	logged := time.UnixMilli(meal.Timestamp).Format("2006-01-02 15:04")
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Logged:"), faint(logged)))
	sb.WriteString(fmt.Sprintf("%s %d\n", faint("Photos:"), len(meal.Images)))
	sb.WriteString("\n")

	return sb.String()
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
