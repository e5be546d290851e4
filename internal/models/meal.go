// ABOUTME: Meal record model with type, notes, images, and calendar date.
// ABOUTME: Provides constructor and validation for the meal lifecycle.

package models

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxImages is the most images a single meal may carry.
const MaxImages = 5

var ErrTooManyImages = errors.New("meal cannot have more than 5 images")

// MealType classifies a logged meal.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// ParseMealType maps a string to a MealType, defaulting to Snack for
// anything unrecognized or empty.
func ParseMealType(s string) MealType {
	switch MealType(s) {
	case Breakfast, Lunch, Dinner:
		return MealType(s)
	default:
		return Snack
	}
}

// Meal is one logged meal entry. Images hold compressed JPEG payloads in
// display order. Timestamp is the creation instant in ms since epoch and
// never changes after creation; Date is the logical calendar day the
// record belongs to, which need not match the timestamp's day.
type Meal struct {
	ID        uuid.UUID
	Type      MealType
	Notes     string
	Images    [][]byte
	Timestamp int64
	Date      string
}

// NewMeal constructs a meal with a fresh ID and creation timestamp.
// Images are expected to be compressed payloads already.
func NewMeal(mealType MealType, notes, date string, images [][]byte) *Meal {
	if mealType == "" {
		mealType = Snack
	}
	return &Meal{
		ID:        uuid.New(),
		Type:      mealType,
		Notes:     notes,
		Images:    images,
		Timestamp: nextTimestamp(),
		Date:      date,
	}
}

var tsMu sync.Mutex
var lastTS int64

// nextTimestamp returns the current ms-epoch instant, bumped past the
// previous one so creation timestamps are strictly increasing even when
// two records land in the same millisecond.
func nextTimestamp() int64 {
	tsMu.Lock()
	defer tsMu.Unlock()
	ts := time.Now().UnixMilli()
	if ts <= lastTS {
		ts = lastTS + 1
	}
	lastTS = ts
	return ts
}

// ValidDate reports whether s is a zero-padded "YYYY-MM-DD" calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil && len(s) == 10
}
