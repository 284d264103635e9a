package database

import (
	"context"
	"database/sql"
	"fmt"

	"studydesk/internal/models"
)

// ListNotes returns notes newest-updated first, optionally for one course.
func (db *DB) ListNotes(ctx context.Context, courseID int64) ([]models.Note, error) {
	query := `SELECT id, course_id, title, content, COALESCE(tags, ''), created_at, updated_at
	          FROM notes`
	var args []any
	if courseID > 0 {
		query += ` WHERE course_id = ?`
		args = append(args, courseID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var cid sql.NullInt64
		if err := rows.Scan(&n.ID, &cid, &n.Title, &n.Content, &n.Tags,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if cid.Valid {
			n.CourseID = &cid.Int64
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CreateNote inserts a note and returns its id.
func (db *DB) CreateNote(ctx context.Context, n *models.Note) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO notes (course_id, title, content, tags) VALUES (?, ?, ?, ?)`,
		nullID(n.CourseID), n.Title, n.Content, n.Tags)
	if err != nil {
		return 0, fmt.Errorf("create note: %w", err)
	}
	return res.LastInsertId()
}

// UpdateNote rewrites a note's content and bumps updated_at.
func (db *DB) UpdateNote(ctx context.Context, n *models.Note) error {
	res, err := db.ExecContext(ctx,
		`UPDATE notes
		 SET course_id = ?, title = ?, content = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		nullID(n.CourseID), n.Title, n.Content, n.Tags, n.ID)
	if err != nil {
		return fmt.Errorf("update note %d: %w", n.ID, err)
	}
	return requireRow(res)
}

// DeleteNote removes a note.
func (db *DB) DeleteNote(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return requireRow(res)
}

func nullID(id *int64) any {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}
