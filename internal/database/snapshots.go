package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studydesk/internal/models"
)

// SaveSnapshot persists a generated plan under a fresh share token and stores
// its study blocks for later reporting. Returns the stored snapshot.
func (db *DB) SaveSnapshot(ctx context.Context, weekStart time.Time, plan *models.WeeklyPlan) (*models.ScheduleSnapshot, error) {
	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	snap := &models.ScheduleSnapshot{
		Token:            uuid.NewString(),
		WeekStart:        weekStart,
		PlanJSON:         string(raw),
		HoursRecommended: plan.StudyHours.Recommended,
		HoursAllocated:   plan.StudyHours.Allocated,
		CreatedAt:        time.Now(),
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO generated_schedules (token, week_start, plan_json, hours_recommended, hours_allocated)
		 VALUES (?, ?, ?, ?, ?)`,
		snap.Token, snap.WeekStart.Format("2006-01-02"), snap.PlanJSON,
		snap.HoursRecommended, snap.HoursAllocated)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	snap.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, b := range plan.StudyBlocks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO study_blocks (schedule_id, course_id, day_of_week, start_time, end_time, duration_hours)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, b.CourseID, b.DayOfWeek, b.StartTime, b.EndTime, b.DurationHours)
		if err != nil {
			return nil, fmt.Errorf("insert study block: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the most recently generated snapshot, or ErrNotFound
// when no plan has ever been generated.
func (db *DB) LatestSnapshot(ctx context.Context) (*models.ScheduleSnapshot, error) {
	return db.snapshotWhere(ctx, `ORDER BY id DESC LIMIT 1`)
}

// SnapshotByToken looks a snapshot up by its share token.
func (db *DB) SnapshotByToken(ctx context.Context, token string) (*models.ScheduleSnapshot, error) {
	return db.snapshotWhere(ctx, `WHERE token = ?`, token)
}

func (db *DB) snapshotWhere(ctx context.Context, clause string, args ...any) (*models.ScheduleSnapshot, error) {
	var snap models.ScheduleSnapshot
	err := db.QueryRowContext(ctx, `
		SELECT id, token, week_start, plan_json, COALESCE(hours_recommended, 0),
		       COALESCE(hours_allocated, 0), created_at
		FROM generated_schedules `+clause, args...).
		Scan(&snap.ID, &snap.Token, &snap.WeekStart, &snap.PlanJSON,
			&snap.HoursRecommended, &snap.HoursAllocated, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

// SnapshotBlocks returns the study blocks stored with a snapshot, joined with
// course names for display.
func (db *DB) SnapshotBlocks(ctx context.Context, scheduleID int64) ([]models.StudyBlock, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT b.course_id, c.name, COALESCE(c.code, ''), COALESCE(c.color, ''),
		       b.day_of_week, b.start_time, b.end_time, b.duration_hours
		FROM study_blocks b
		JOIN courses c ON c.id = b.course_id
		WHERE b.schedule_id = ?
		ORDER BY b.day_of_week, b.start_time`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list study blocks: %w", err)
	}
	defer rows.Close()

	var blocks []models.StudyBlock
	for rows.Next() {
		var b models.StudyBlock
		if err := rows.Scan(&b.CourseID, &b.CourseName, &b.CourseCode, &b.Color,
			&b.DayOfWeek, &b.StartTime, &b.EndTime, &b.DurationHours); err != nil {
			return nil, fmt.Errorf("scan study block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}
