package database

import (
	"context"
	"fmt"

	"studydesk/internal/models"
)

// ListActivities returns all personal activities ordered by day and start time.
func (db *DB) ListActivities(ctx context.Context) ([]models.Activity, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), day_of_week, start_time, end_time,
		       recurrence, category, is_flexible
		FROM personal_activities
		ORDER BY day_of_week, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.DayOfWeek,
			&a.StartTime, &a.EndTime, &a.Recurrence, &a.Category, &a.IsFlexible); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// CreateActivity inserts a personal activity. The parser may emit records
// without a day or times; those are rejected here with ErrIncompleteActivity.
func (db *DB) CreateActivity(ctx context.Context, a *models.Activity) (int64, error) {
	if !a.Complete() {
		return 0, ErrIncompleteActivity
	}
	if a.Recurrence == "" {
		a.Recurrence = "weekly"
	}
	if a.Category == "" {
		a.Category = models.CategoryPersonal
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO personal_activities
		 (title, description, day_of_week, start_time, end_time, recurrence, category, is_flexible)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Description, a.DayOfWeek, a.StartTime, a.EndTime,
		a.Recurrence, a.Category, a.IsFlexible)
	if err != nil {
		return 0, fmt.Errorf("create activity: %w", err)
	}
	return res.LastInsertId()
}

// UpdateActivity rewrites an activity, subject to the same completeness check.
func (db *DB) UpdateActivity(ctx context.Context, a *models.Activity) error {
	if !a.Complete() {
		return ErrIncompleteActivity
	}
	res, err := db.ExecContext(ctx,
		`UPDATE personal_activities
		 SET title = ?, description = ?, day_of_week = ?, start_time = ?, end_time = ?,
		     recurrence = ?, category = ?, is_flexible = ?
		 WHERE id = ?`,
		a.Title, a.Description, a.DayOfWeek, a.StartTime, a.EndTime,
		a.Recurrence, a.Category, a.IsFlexible, a.ID)
	if err != nil {
		return fmt.Errorf("update activity %d: %w", a.ID, err)
	}
	return requireRow(res)
}

// DeleteActivity removes an activity.
func (db *DB) DeleteActivity(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM personal_activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete activity %d: %w", id, err)
	}
	return requireRow(res)
}
