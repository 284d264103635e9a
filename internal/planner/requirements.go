package planner

import (
	"time"

	"studydesk/internal/models"
)

const (
	// baseWeeklyHours is the flat weekly study baseline per course, roughly
	// two hours per credit for a three-credit course.
	baseWeeklyHours = 6.0
	// examPrepHours is the prep demand one upcoming exam adds.
	examPrepHours = 5.0
	// demandHorizon is how far ahead assignments and exams count toward
	// this week's demand.
	demandHorizon = 14 * 24 * time.Hour
)

// priorityHours estimates assignment effort when no explicit estimate is
// recorded.
func priorityHours(priority string) float64 {
	switch priority {
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	default:
		return 1
	}
}

// EstimateRequirements computes the weekly study demand per course: the flat
// baseline, plus half the effort of pending assignments due within the next
// two weeks, plus half the prep hours for exams in the same horizon. The
// halving spreads the preparation over more than one week. Results keep the
// course input order, which later fixes the allocator's tie-breaking.
func EstimateRequirements(courses []models.Course, assignments []models.Assignment, exams []models.Exam, now time.Time) []models.StudyRequirement {
	horizon := now.Add(demandHorizon)

	reqs := make([]models.StudyRequirement, 0, len(courses))
	for _, course := range courses {
		var assignmentHours float64
		var assignmentCount int
		for _, a := range assignments {
			if a.CourseID != course.ID || a.Status != models.StatusPending {
				continue
			}
			if a.DueDate.Before(now) || a.DueDate.After(horizon) {
				continue
			}
			assignmentCount++
			if a.EstimatedHours > 0 {
				assignmentHours += a.EstimatedHours
			} else {
				assignmentHours += priorityHours(a.Priority)
			}
		}

		var examCount int
		for _, e := range exams {
			if e.CourseID != course.ID {
				continue
			}
			if e.ExamDate.Before(now) || e.ExamDate.After(horizon) {
				continue
			}
			examCount++
		}

		reqs = append(reqs, models.StudyRequirement{
			CourseID:            course.ID,
			CourseName:          course.Name,
			CourseCode:          course.Code,
			Color:               course.Color,
			Hours:               baseWeeklyHours + assignmentHours/2 + float64(examCount)*examPrepHours/2,
			UpcomingAssignments: assignmentCount,
			UpcomingExams:       examCount,
		})
	}

	return reqs
}
