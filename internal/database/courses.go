package database

import (
	"context"
	"database/sql"
	"fmt"

	"studydesk/internal/models"
)

// ListCourses returns all courses in creation order.
func (db *DB) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, COALESCE(code, ''), COALESCE(instructor, ''), COALESCE(color, ''), created_at
		FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Instructor, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse returns one course by id.
func (db *DB) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	var c models.Course
	err := db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(code, ''), COALESCE(instructor, ''), COALESCE(color, ''), created_at
		FROM courses WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Code, &c.Instructor, &c.Color, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return &c, nil
}

// CreateCourse inserts a course and returns its id.
func (db *DB) CreateCourse(ctx context.Context, c *models.Course) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO courses (name, code, instructor, color) VALUES (?, ?, ?, ?)`,
		c.Name, c.Code, c.Instructor, c.Color)
	if err != nil {
		return 0, fmt.Errorf("create course: %w", err)
	}
	return res.LastInsertId()
}

// UpdateCourse updates a course's editable fields.
func (db *DB) UpdateCourse(ctx context.Context, c *models.Course) error {
	res, err := db.ExecContext(ctx,
		`UPDATE courses SET name = ?, code = ?, instructor = ?, color = ? WHERE id = ?`,
		c.Name, c.Code, c.Instructor, c.Color, c.ID)
	if err != nil {
		return fmt.Errorf("update course %d: %w", c.ID, err)
	}
	return requireRow(res)
}

// DeleteCourse removes a course; dependent rows cascade.
func (db *DB) DeleteCourse(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
