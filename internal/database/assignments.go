package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studydesk/internal/models"
)

// ListAssignments returns assignments joined with course names, optionally
// filtered by status, ordered by due date.
func (db *DB) ListAssignments(ctx context.Context, status string) ([]models.Assignment, error) {
	query := `
		SELECT a.id, a.course_id, c.name, a.title, COALESCE(a.description, ''),
		       a.due_date, a.priority, a.status, COALESCE(a.estimated_hours, 0),
		       a.created_at, a.completed_at
		FROM assignments a
		JOIN courses c ON c.id = a.course_id`
	args := []any{}
	if status != "" {
		query += ` WHERE a.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY a.due_date`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var completed sql.NullTime
		if err := rows.Scan(&a.ID, &a.CourseID, &a.CourseName, &a.Title, &a.Description,
			&a.DueDate, &a.Priority, &a.Status, &a.EstimatedHours, &a.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		if completed.Valid {
			a.CompletedAt = &completed.Time
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CreateAssignment inserts an assignment and returns its id.
func (db *DB) CreateAssignment(ctx context.Context, a *models.Assignment) (int64, error) {
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO assignments (course_id, title, description, due_date, priority, status, estimated_hours)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.CourseID, a.Title, a.Description, a.DueDate, a.Priority, a.Status, nullFloat(a.EstimatedHours))
	if err != nil {
		return 0, fmt.Errorf("create assignment: %w", err)
	}
	return res.LastInsertId()
}

// UpdateAssignment updates an assignment; completing one stamps completed_at.
func (db *DB) UpdateAssignment(ctx context.Context, a *models.Assignment) error {
	var completedAt any
	if a.Status == models.StatusCompleted {
		completedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`UPDATE assignments
		 SET title = ?, description = ?, due_date = ?, priority = ?, status = ?,
		     estimated_hours = ?, completed_at = ?
		 WHERE id = ?`,
		a.Title, a.Description, a.DueDate, a.Priority, a.Status,
		nullFloat(a.EstimatedHours), completedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update assignment %d: %w", a.ID, err)
	}
	return requireRow(res)
}

// DeleteAssignment removes an assignment.
func (db *DB) DeleteAssignment(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete assignment %d: %w", id, err)
	}
	return requireRow(res)
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
