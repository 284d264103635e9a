package database

import (
	"context"
	"fmt"

	"studydesk/internal/models"
)

// ListExams returns all exams in date order, joined with course names.
func (db *DB) ListExams(ctx context.Context) ([]models.Exam, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT e.id, e.course_id, c.name, e.title, e.exam_date,
		       COALESCE(e.location, ''), COALESCE(e.duration_minutes, 0),
		       COALESCE(e.topics, ''), e.created_at
		FROM exams e
		JOIN courses c ON c.id = e.course_id
		ORDER BY e.exam_date`)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(&e.ID, &e.CourseID, &e.CourseName, &e.Title, &e.ExamDate,
			&e.Location, &e.DurationMinutes, &e.Topics, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exam: %w", err)
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// CreateExam inserts an exam and returns its id.
func (db *DB) CreateExam(ctx context.Context, e *models.Exam) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO exams (course_id, title, exam_date, location, duration_minutes, topics)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.CourseID, e.Title, e.ExamDate, e.Location, e.DurationMinutes, e.Topics)
	if err != nil {
		return 0, fmt.Errorf("create exam: %w", err)
	}
	return res.LastInsertId()
}

// DeleteExam removes an exam.
func (db *DB) DeleteExam(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exam %d: %w", id, err)
	}
	return requireRow(res)
}
