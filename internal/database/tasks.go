package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studydesk/internal/models"
)

// ListTasks returns tasks, optionally filtered by status.
func (db *DB) ListTasks(ctx context.Context, status string) ([]models.Task, error) {
	query := `SELECT id, title, COALESCE(description, ''), due_date, priority, status,
	                 category, created_at, completed_at
	          FROM tasks`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY due_date IS NULL, due_date, created_at`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var due, completed sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Priority,
			&t.Status, &t.Category, &t.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if due.Valid {
			t.DueDate = &due.Time
		}
		if completed.Valid {
			t.CompletedAt = &completed.Time
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask inserts a task and returns its id.
func (db *DB) CreateTask(ctx context.Context, t *models.Task) (int64, error) {
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.Category == "" {
		t.Category = "general"
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, due_date, priority, status, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, nullTime(t.DueDate), t.Priority, t.Status, t.Category)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return res.LastInsertId()
}

// UpdateTask updates mutable task fields, stamping completed_at on completion.
func (db *DB) UpdateTask(ctx context.Context, t *models.Task) error {
	var completedAt any
	if t.Status == models.StatusCompleted {
		completedAt = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, due_date = ?, priority = ?, status = ?,
		     category = ?, completed_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, nullTime(t.DueDate), t.Priority, t.Status,
		t.Category, completedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return requireRow(res)
}

// DeleteTask removes a task.
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return requireRow(res)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
