package planner

import (
	"testing"
	"time"

	"studydesk/internal/models"
)

func TestEstimateRequirements(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	courses := []models.Course{
		{ID: 1, Name: "Calculus", Code: "MATH 201"},
		{ID: 2, Name: "Physics", Code: "PHYS 101"},
	}
	assignments := []models.Assignment{
		// Counts: pending, high priority, no estimate -> 3h.
		{CourseID: 1, Title: "Problem set", Status: models.StatusPending, Priority: models.PriorityHigh, DueDate: now.AddDate(0, 0, 3)},
		// Counts: explicit estimate wins over priority.
		{CourseID: 1, Title: "Essay", Status: models.StatusPending, Priority: models.PriorityLow, EstimatedHours: 4, DueDate: now.AddDate(0, 0, 10)},
		// Too far out.
		{CourseID: 1, Title: "Final project", Status: models.StatusPending, Priority: models.PriorityHigh, DueDate: now.AddDate(0, 0, 20)},
		// Already done.
		{CourseID: 1, Title: "Quiz prep", Status: models.StatusCompleted, Priority: models.PriorityHigh, DueDate: now.AddDate(0, 0, 2)},
		// Other course, medium priority -> 2h.
		{CourseID: 2, Title: "Lab report", Status: models.StatusPending, Priority: models.PriorityMedium, DueDate: now.AddDate(0, 0, 5)},
	}
	exams := []models.Exam{
		{CourseID: 1, Title: "Midterm", ExamDate: now.AddDate(0, 0, 7)},
		{CourseID: 2, Title: "Old final", ExamDate: now.AddDate(0, 0, -30)},
	}

	reqs := EstimateRequirements(courses, assignments, exams, now)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}

	calc := reqs[0]
	if calc.CourseID != 1 {
		t.Fatalf("expected course order preserved, got course %d first", calc.CourseID)
	}
	// 6 base + (3+4)/2 + 5/2 = 12
	if calc.Hours != 12 {
		t.Errorf("calculus: expected 12h, got %v", calc.Hours)
	}
	if calc.UpcomingAssignments != 2 || calc.UpcomingExams != 1 {
		t.Errorf("calculus: unexpected counts: %+v", calc)
	}

	phys := reqs[1]
	// 6 base + 2/2 = 7; the past exam does not count.
	if phys.Hours != 7 {
		t.Errorf("physics: expected 7h, got %v", phys.Hours)
	}
	if phys.UpcomingExams != 0 {
		t.Errorf("physics: expected no upcoming exams, got %d", phys.UpcomingExams)
	}
}

func TestEstimateRequirementsNoCourses(t *testing.T) {
	reqs := EstimateRequirements(nil, nil, nil, time.Now())
	if len(reqs) != 0 {
		t.Errorf("expected no requirements, got %d", len(reqs))
	}
}
