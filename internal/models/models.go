package models

import "time"

// Weekday numbering is Sunday=0 .. Saturday=6 throughout the service.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Activity categories produced by the parser.
const (
	CategoryFitness         = "fitness"
	CategoryWork            = "work"
	CategoryClass           = "class"
	CategoryExtracurricular = "extracurricular"
	CategoryStudy           = "study"
	CategoryPersonal        = "personal"
)

// Assignment priorities and statuses.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Event kinds in an assembled weekly plan.
const (
	EventClass    = "class"
	EventActivity = "activity"
	EventStudy    = "study"
)

// Course is a course the student is enrolled in.
type Course struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code,omitempty"`
	Instructor string    `json:"instructor,omitempty"`
	Color      string    `json:"color,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClassSession is one fixed weekly class meeting of a course.
type ClassSession struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"course_id"`
	CourseName string `json:"course_name,omitempty"`
	CourseCode string `json:"course_code,omitempty"`
	Color      string `json:"color,omitempty"`
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"` // "HH:MM"
	EndTime    string `json:"end_time"`   // "HH:MM"
	Location   string `json:"location,omitempty"`
}

// Assignment is graded coursework with a due date.
type Assignment struct {
	ID             int64      `json:"id"`
	CourseID       int64      `json:"course_id"`
	CourseName     string     `json:"course_name,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	DueDate        time.Time  `json:"due_date"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	EstimatedHours float64    `json:"estimated_hours,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// Exam is a scheduled examination for a course.
type Exam struct {
	ID              int64     `json:"id"`
	CourseID        int64     `json:"course_id"`
	CourseName      string    `json:"course_name,omitempty"`
	Title           string    `json:"title"`
	ExamDate        time.Time `json:"exam_date"`
	Location        string    `json:"location,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Topics          string    `json:"topics,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Grade is a single graded item for a course.
type Grade struct {
	ID             int64     `json:"id"`
	CourseID       int64     `json:"course_id"`
	CourseName     string    `json:"course_name,omitempty"`
	AssignmentName string    `json:"assignment_name"`
	Grade          float64   `json:"grade"`
	MaxGrade       float64   `json:"max_grade"`
	Weight         float64   `json:"weight"`
	Category       string    `json:"category,omitempty"`
	DateReceived   time.Time `json:"date_received"`
}

// Task is a standalone to-do item not tied to a course.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Note is a free-form note, optionally attached to a course.
type Note struct {
	ID        int64     `json:"id"`
	CourseID  *int64    `json:"course_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is a weekly-recurring personal commitment extracted from free text
// or entered directly. An activity is persistable only when it has a concrete
// day and both times; the parser may emit incomplete records and leaves that
// check to the caller.
type Activity struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Days is the multi-day set from a parsed sentence, before expansion.
	// Expanded records have it cleared and DayOfWeek set.
	Days          []int   `json:"days,omitempty"`
	DayOfWeek     int     `json:"day_of_week"`
	StartTime     string  `json:"start_time,omitempty"` // "HH:MM", empty when unknown
	EndTime       string  `json:"end_time,omitempty"`   // "HH:MM", empty when unknown
	DurationHours float64 `json:"duration_hours,omitempty"`
	Category      string  `json:"category"`
	Recurrence    string  `json:"recurrence"`
	IsFlexible    bool    `json:"is_flexible"`
}

// Complete reports whether the activity satisfies the persistence invariant:
// a concrete weekday and both start and end times.
func (a *Activity) Complete() bool {
	return a.DayOfWeek >= 0 && a.DayOfWeek <= 6 && a.StartTime != "" && a.EndTime != ""
}

// StudyRequirement is the estimated weekly study demand for one course.
type StudyRequirement struct {
	CourseID            int64   `json:"course_id"`
	CourseName          string  `json:"course_name"`
	CourseCode          string  `json:"course_code,omitempty"`
	Color               string  `json:"color,omitempty"`
	Hours               float64 `json:"hours"`
	UpcomingAssignments int     `json:"upcoming_assignments"`
	UpcomingExams       int     `json:"upcoming_exams"`
}

// FreeSlot is a contiguous unoccupied span inside a day's study window.
// Recomputed from scratch on every allocation run.
type FreeSlot struct {
	DayOfWeek     int     `json:"day_of_week"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Priority      int     `json:"priority"`
}

// StudyBlock is a study session placed into a free slot for one course.
type StudyBlock struct {
	CourseID      int64   `json:"course_id"`
	CourseName    string  `json:"course_name"`
	CourseCode    string  `json:"course_code,omitempty"`
	Color         string  `json:"color,omitempty"`
	DayOfWeek     int     `json:"day_of_week"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
}

// ScheduleEvent is one entry in an assembled day: a class, an activity, or a
// placed study block.
type ScheduleEvent struct {
	Kind          string  `json:"kind"`
	Title         string  `json:"title"`
	CourseCode    string  `json:"course_code,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Location      string  `json:"location,omitempty"`
	Category      string  `json:"category,omitempty"`
	Color         string  `json:"color,omitempty"`
	DurationHours float64 `json:"duration_hours,omitempty"`
	IsFlexible    bool    `json:"is_flexible,omitempty"`
}

// DaySchedule is one weekday of an assembled plan.
type DaySchedule struct {
	Day      string          `json:"day"`
	DayIndex int             `json:"dayIndex"`
	Events   []ScheduleEvent `json:"events"`
}

// StudyHours summarizes allocation totals for a generated plan.
type StudyHours struct {
	Recommended float64 `json:"recommended"`
	Allocated   float64 `json:"allocated"`
	Deficit     float64 `json:"deficit"`
}

// WeeklyPlan is the allocator output: the full per-day schedule, the hour
// totals, and the placed study blocks.
type WeeklyPlan struct {
	Schedule    map[int]*DaySchedule `json:"schedule"`
	StudyHours  StudyHours           `json:"studyHours"`
	StudyBlocks []StudyBlock         `json:"studyBlocks"`
}

// ScheduleSnapshot is a persisted generated plan.
type ScheduleSnapshot struct {
	ID               int64     `json:"id"`
	Token            string    `json:"token"`
	WeekStart        time.Time `json:"week_start"`
	PlanJSON         string    `json:"-"`
	HoursRecommended float64   `json:"hours_recommended"`
	HoursAllocated   float64   `json:"hours_allocated"`
	CreatedAt        time.Time `json:"created_at"`
}
