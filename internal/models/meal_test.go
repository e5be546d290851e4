// ABOUTME: Tests for the meal model.
// ABOUTME: Covers type parsing, construction, and date validation.

package models

import "testing"

func TestParseMealType(t *testing.T) {
	cases := map[string]MealType{
		"breakfast": Breakfast,
		"lunch":     Lunch,
		"dinner":    Dinner,
		"snack":     Snack,
		"":          Snack,
		"brunch":    Snack,
	}
	for in, want := range cases {
		if got := ParseMealType(in); got != want {
			t.Errorf("ParseMealType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewMeal(t *testing.T) {
	meal := NewMeal(Lunch, "salad", "2024-03-01", nil)

	if meal.ID.String() == "" {
		t.Error("expected non-empty ID")
	}
	if meal.Type != Lunch {
		t.Errorf("expected type lunch, got %q", meal.Type)
	}
	if meal.Notes != "salad" {
		t.Errorf("expected notes %q, got %q", "salad", meal.Notes)
	}
	if meal.Date != "2024-03-01" {
		t.Errorf("expected date 2024-03-01, got %q", meal.Date)
	}
	if meal.Timestamp == 0 {
		t.Error("expected timestamp to be set")
	}
}

func TestNewMealDefaultsToSnack(t *testing.T) {
	meal := NewMeal("", "", "2024-03-01", nil)
	if meal.Type != Snack {
		t.Errorf("expected snack, got %q", meal.Type)
	}
}

func TestTimestampsStrictlyIncrease(t *testing.T) {
	prev := NewMeal(Snack, "", "2024-03-01", nil)
	for i := 0; i < 100; i++ {
		next := NewMeal(Snack, "", "2024-03-01", nil)
		if next.Timestamp <= prev.Timestamp {
			t.Fatalf("timestamp %d not after %d", next.Timestamp, prev.Timestamp)
		}
		prev = next
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2024-03-01", "1999-12-31", "2024-02-29"}
	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}

	invalid := []string{"", "2024-3-1", "2024-13-01", "2023-02-29", "not-a-date", "2024/03/01"}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}
