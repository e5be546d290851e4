// ABOUTME: Database operations for meal records.
// ABOUTME: Transactional CRUD plus date and range queries with image payloads.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mealog/mealog/internal/imgcodec"
	"github.com/mealog/mealog/internal/models"
)

var ErrMealNotFound = errors.New("meal not found")
var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")
var ErrAmbiguousPrefix = errors.New("prefix matches multiple meals")

// Draft is the caller's input to CreateMeal. Images hold raw (not yet
// compressed) image bytes; CreateMeal compresses them before persisting
// and never mutates the caller's slices.
type Draft struct {
	Type   models.MealType
	Notes  string
	Date   string
	Images [][]byte
}

// Patch is the caller's input to UpdateMeal. Nil fields keep the
// existing value. A nil Images slice keeps the existing payloads; a
// non-nil slice replaces them, compressing raw items and carrying
// stored items forward byte-identical.
type Patch struct {
	Type   *models.MealType
	Notes  *string
	Date   *string
	Images []models.ImageItem
}

// CreateMeal compresses the draft's images, assigns an ID and creation
// timestamp, and persists the record in a single transaction. Any image
// that fails to compress aborts the whole write.
func CreateMeal(dbc *sql.DB, draft *Draft) (*models.Meal, error) {
	if !models.ValidDate(draft.Date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, draft.Date)
	}
	if len(draft.Images) > models.MaxImages {
		return nil, models.ErrTooManyImages
	}

	compressed := make([][]byte, 0, len(draft.Images))
	for i, raw := range draft.Images {
		payload, err := imgcodec.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("compress image %d: %w", i, err)
		}
		compressed = append(compressed, payload)
	}

	meal := models.NewMeal(draft.Type, draft.Notes, draft.Date, compressed)

	tx, err := dbc.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO meals (id, type, notes, date, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		meal.ID.String(), string(meal.Type), meal.Notes, meal.Date, meal.Timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	if err := insertImages(tx, meal.ID, meal.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit meal: %w", err)
	}
	return meal, nil
}

// UpdateMeal overlays the patch onto the stored record, preserving ID
// and creation timestamp, and persists the merged record atomically.
func UpdateMeal(dbc *sql.DB, id uuid.UUID, patch *Patch) (*models.Meal, error) {
	meal, err := GetMeal(dbc, id)
	if err != nil {
		return nil, err
	}

	if patch.Type != nil {
		meal.Type = *patch.Type
	}
	if patch.Notes != nil {
		meal.Notes = *patch.Notes
	}
	if patch.Date != nil {
		if !models.ValidDate(*patch.Date) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *patch.Date)
		}
		meal.Date = *patch.Date
	}
	if patch.Images != nil {
		if len(patch.Images) > models.MaxImages {
			return nil, models.ErrTooManyImages
		}
		images := make([][]byte, 0, len(patch.Images))
		for i, item := range patch.Images {
			if item.IsStored() {
				// Already-compressed payload carried forward unchanged.
				images = append(images, item.Data())
				continue
			}
			payload, err := imgcodec.Compress(item.Data())
			if err != nil {
				return nil, fmt.Errorf("compress image %d: %w", i, err)
			}
			images = append(images, payload)
		}
		meal.Images = images
	}

	tx, err := dbc.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(
		`UPDATE meals SET type = ?, notes = ?, date = ? WHERE id = ?`,
		string(meal.Type), meal.Notes, meal.Date, meal.ID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrMealNotFound
	}

	if patch.Images != nil {
		if _, err := tx.Exec(`DELETE FROM meal_images WHERE meal_id = ?`, meal.ID.String()); err != nil {
			return nil, fmt.Errorf("clear images: %w", err)
		}
		if err := insertImages(tx, meal.ID, meal.Images); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit meal: %w", err)
	}
	return meal, nil
}

// DeleteMeal removes a record and its images. Deleting an ID that does
// not exist is a no-op.
func DeleteMeal(dbc *sql.DB, id uuid.UUID) error {
	if _, err := dbc.Exec(`DELETE FROM meals WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// GetMeal returns a single record by ID.
func GetMeal(dbc *sql.DB, id uuid.UUID) (*models.Meal, error) {
	meal := &models.Meal{}
	var idStr, typeStr string
	err := dbc.QueryRow(
		`SELECT id, type, notes, date, timestamp FROM meals WHERE id = ?`,
		id.String(),
	).Scan(&idStr, &typeStr, &meal.Notes, &meal.Date, &meal.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	meal.Type = models.MealType(typeStr)
	var parseErr error
	meal.ID, parseErr = uuid.Parse(idStr)
	if parseErr != nil {
		return nil, fmt.Errorf("invalid meal ID in database: %w", parseErr)
	}
	if err := loadImages(dbc, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// GetMealByPrefix resolves a record from an ID prefix of at least 6
// characters, failing if the prefix is ambiguous.
func GetMealByPrefix(dbc *sql.DB, prefix string) (*models.Meal, error) {
	if len(prefix) < 6 {
		return nil, ErrPrefixTooShort
	}

	rows, err := dbc.Query(`SELECT id FROM meals WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return nil, err
		}
		ids = append(ids, idStr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, ErrMealNotFound
	}
	if len(ids) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(ids))
	}
	id, err := uuid.Parse(ids[0])
	if err != nil {
		return nil, fmt.Errorf("invalid meal ID in database: %w", err)
	}
	return GetMeal(dbc, id)
}

// GetByDate returns the records logged for one calendar date, most
// recent first.
func GetByDate(dbc *sql.DB, date string) ([]*models.Meal, error) {
	return queryMeals(dbc,
		`SELECT id, type, notes, date, timestamp FROM meals
		 WHERE date = ? ORDER BY timestamp DESC, id`,
		date,
	)
}

// GetRange returns the records with date in [start, end] inclusive,
// most recent first. Bounds compare lexicographically, which matches
// chronological order for zero-padded ISO dates.
func GetRange(dbc *sql.DB, start, end string) ([]*models.Meal, error) {
	return queryMeals(dbc,
		`SELECT id, type, notes, date, timestamp FROM meals
		 WHERE date >= ? AND date <= ? ORDER BY timestamp DESC, id`,
		start, end,
	)
}

// GetAll returns every record. No ordering contract; callers sort.
func GetAll(dbc *sql.DB) ([]*models.Meal, error) {
	return queryMeals(dbc, `SELECT id, type, notes, date, timestamp FROM meals`)
}

// DatesWithRecords returns the distinct dates in [start, end] that have
// at least one record, in ascending date order. Image payloads are
// never loaded.
func DatesWithRecords(dbc *sql.DB, start, end string) ([]string, error) {
	rows, err := dbc.Query(
		`SELECT DISTINCT date FROM meals
		 WHERE date >= ? AND date <= ? ORDER BY date`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

func queryMeals(dbc *sql.DB, query string, args ...any) ([]*models.Meal, error) {
	rows, err := dbc.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var meals []*models.Meal
	for rows.Next() {
		meal := &models.Meal{}
		var idStr, typeStr string
		if err := rows.Scan(&idStr, &typeStr, &meal.Notes, &meal.Date, &meal.Timestamp); err != nil {
			return nil, err
		}
		meal.Type = models.MealType(typeStr)
		var parseErr error
		meal.ID, parseErr = uuid.Parse(idStr)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid meal ID in database: %w", parseErr)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, meal := range meals {
		if err := loadImages(dbc, meal); err != nil {
			return nil, err
		}
	}
	return meals, nil
}

func loadImages(dbc *sql.DB, meal *models.Meal) error {
	rows, err := dbc.Query(
		`SELECT data FROM meal_images WHERE meal_id = ? ORDER BY position`,
		meal.ID.String(),
	)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return err
		}
		meal.Images = append(meal.Images, data)
	}
	return rows.Err()
}

func insertImages(tx *sql.Tx, mealID uuid.UUID, images [][]byte) error {
	for pos, data := range images {
		if _, err := tx.Exec(
			`INSERT INTO meal_images (meal_id, position, data) VALUES (?, ?, ?)`,
			mealID.String(), pos, data,
		); err != nil {
			return fmt.Errorf("insert image %d: %w", pos, err)
		}
	}
	return nil
}
