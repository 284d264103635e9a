package database

import (
	"context"
	"fmt"

	"studydesk/internal/models"
)

// ListClassSessions returns the weekly class schedule joined with course
// details, ordered by day then start time.
func (db *DB) ListClassSessions(ctx context.Context) ([]models.ClassSession, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT s.id, s.course_id, c.name, COALESCE(c.code, ''), COALESCE(c.color, ''),
		       s.day_of_week, s.start_time, s.end_time, COALESCE(s.location, '')
		FROM class_schedule s
		JOIN courses c ON c.id = s.course_id
		ORDER BY s.day_of_week, s.start_time`)
	if err != nil {
		return nil, fmt.Errorf("list class sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ClassSession
	for rows.Next() {
		var s models.ClassSession
		if err := rows.Scan(&s.ID, &s.CourseID, &s.CourseName, &s.CourseCode, &s.Color,
			&s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Location); err != nil {
			return nil, fmt.Errorf("scan class session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CreateClassSession inserts one weekly class meeting.
func (db *DB) CreateClassSession(ctx context.Context, s *models.ClassSession) (int64, error) {
	if _, err := models.ParseClock(s.StartTime); err != nil {
		return 0, err
	}
	if _, err := models.ParseClock(s.EndTime); err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO class_schedule (course_id, day_of_week, start_time, end_time, location)
		 VALUES (?, ?, ?, ?, ?)`,
		s.CourseID, s.DayOfWeek, s.StartTime, s.EndTime, s.Location)
	if err != nil {
		return 0, fmt.Errorf("create class session: %w", err)
	}
	return res.LastInsertId()
}

// DeleteClassSession removes one class meeting.
func (db *DB) DeleteClassSession(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM class_schedule WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete class session %d: %w", id, err)
	}
	return requireRow(res)
}
