package database

import (
	"context"
	"fmt"

	"studydesk/internal/models"
)

// ListGrades returns all grades joined with course names, newest first.
func (db *DB) ListGrades(ctx context.Context) ([]models.Grade, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT g.id, g.course_id, c.name, g.assignment_name, g.grade, g.max_grade,
		       g.weight, COALESCE(g.category, ''), g.date_received
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		ORDER BY g.date_received DESC`)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.ID, &g.CourseID, &g.CourseName, &g.AssignmentName,
			&g.Grade, &g.MaxGrade, &g.Weight, &g.Category, &g.DateReceived); err != nil {
			return nil, fmt.Errorf("scan grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// GradeSummary is the weighted average standing for one course.
type GradeSummary struct {
	CourseID   int64   `json:"course_id"`
	CourseName string  `json:"course_name"`
	Percentage float64 `json:"percentage"`
	GradeCount int     `json:"grade_count"`
}

// SummarizeGrades computes the weighted percentage per course.
func (db *DB) SummarizeGrades(ctx context.Context) ([]GradeSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT g.course_id, c.name,
		       SUM(g.grade / g.max_grade * g.weight) / SUM(g.weight) * 100.0,
		       COUNT(*)
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		WHERE g.max_grade > 0
		GROUP BY g.course_id, c.name
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("summarize grades: %w", err)
	}
	defer rows.Close()

	var summaries []GradeSummary
	for rows.Next() {
		var s GradeSummary
		if err := rows.Scan(&s.CourseID, &s.CourseName, &s.Percentage, &s.GradeCount); err != nil {
			return nil, fmt.Errorf("scan grade summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// CreateGrade inserts a grade and returns its id.
func (db *DB) CreateGrade(ctx context.Context, g *models.Grade) (int64, error) {
	if g.Weight <= 0 {
		g.Weight = 1
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO grades (course_id, assignment_name, grade, max_grade, weight, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.CourseID, g.AssignmentName, g.Grade, g.MaxGrade, g.Weight, g.Category)
	if err != nil {
		return 0, fmt.Errorf("create grade: %w", err)
	}
	return res.LastInsertId()
}

// DeleteGrade removes a grade.
func (db *DB) DeleteGrade(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM grades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete grade %d: %w", id, err)
	}
	return requireRow(res)
}
