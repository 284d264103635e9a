// Package planner computes a conflict-free weekly study plan: it derives
// per-course study demand from upcoming work, finds free slots between fixed
// commitments, and fills them greedily with study blocks.
package planner

import (
	"sort"

	"studydesk/internal/models"
)

const (
	// MinStudyBlockHours is the shortest study session worth scheduling.
	MinStudyBlockHours = 1.0
	// MaxStudyBlockHours caps a single study session.
	MaxStudyBlockHours = 3.0
)

// Window is a daily study window in wall-clock "HH:MM" bounds.
type Window struct {
	Start string
	End   string
}

// Windows holds the study windows per day class.
type Windows struct {
	Weekday Window
	Weekend Window
}

// DefaultWindows returns the standard study windows: weekday mornings
// through late evening, a shorter span on weekends.
func DefaultWindows() Windows {
	return Windows{
		Weekday: Window{Start: "09:00", End: "22:00"},
		Weekend: Window{Start: "10:00", End: "20:00"},
	}
}

// Planner allocates weekly study blocks. It holds only configuration; every
// generation run works on its own copies of the inputs, so a single Planner
// is safe for concurrent use.
type Planner struct {
	windows  Windows
	minBlock float64
	maxBlock float64
}

// New creates a Planner with the given study windows. Zero-value windows
// fall back to the defaults.
func New(windows Windows) *Planner {
	def := DefaultWindows()
	if windows.Weekday.Start == "" || windows.Weekday.End == "" {
		windows.Weekday = def.Weekday
	}
	if windows.Weekend.Start == "" || windows.Weekend.End == "" {
		windows.Weekend = def.Weekend
	}
	return &Planner{windows: windows, minBlock: MinStudyBlockHours, maxBlock: MaxStudyBlockHours}
}

// Generate builds the weekly plan from fixed class sessions, weekly
// activities, and per-course study requirements. It is a pure function of
// its inputs: nothing is read from or written to storage, and repeated calls
// with the same inputs produce the same plan.
func (p *Planner) Generate(classes []models.ClassSession, activities []models.Activity, reqs []models.StudyRequirement) models.WeeklyPlan {
	grid := buildGrid(classes, activities)
	slots := p.findFreeSlots(grid)
	blocks := p.allocate(slots, reqs)

	var allocated, recommended float64
	for _, b := range blocks {
		allocated += b.DurationHours
	}
	for _, r := range reqs {
		recommended += r.Hours
	}
	deficit := recommended - allocated
	if deficit < 0 {
		deficit = 0
	}

	return models.WeeklyPlan{
		Schedule: assemble(grid, blocks),
		StudyHours: models.StudyHours{
			Recommended: recommended,
			Allocated:   allocated,
			Deficit:     deficit,
		},
		StudyBlocks: blocks,
	}
}

// buildGrid collects the fixed commitments per weekday, each day sorted
// ascending by start time. Activities without a concrete day or times are
// skipped; they cannot occupy the grid.
func buildGrid(classes []models.ClassSession, activities []models.Activity) [7][]models.ScheduleEvent {
	var grid [7][]models.ScheduleEvent

	for _, c := range classes {
		if c.DayOfWeek < 0 || c.DayOfWeek > 6 {
			continue
		}
		grid[c.DayOfWeek] = append(grid[c.DayOfWeek], models.ScheduleEvent{
			Kind:       models.EventClass,
			Title:      c.CourseName,
			CourseCode: c.CourseCode,
			StartTime:  c.StartTime,
			EndTime:    c.EndTime,
			Location:   c.Location,
			Color:      c.Color,
		})
	}

	for _, a := range activities {
		if !a.Complete() || a.Recurrence != "weekly" {
			continue
		}
		grid[a.DayOfWeek] = append(grid[a.DayOfWeek], models.ScheduleEvent{
			Kind:       models.EventActivity,
			Title:      a.Title,
			StartTime:  a.StartTime,
			EndTime:    a.EndTime,
			Category:   a.Category,
			IsFlexible: a.IsFlexible,
		})
	}

	for day := range grid {
		events := grid[day]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime < events[j].StartTime
		})
	}

	return grid
}

// findFreeSlots walks each day's occupied list and emits the gaps inside the
// day's study window that can hold at least a minimum block. Slots come back
// sorted by descending priority; the stable sort keeps day-then-time order
// within equal scores.
func (p *Planner) findFreeSlots(grid [7][]models.ScheduleEvent) []models.FreeSlot {
	var slots []models.FreeSlot

	for day := 0; day < 7; day++ {
		window := p.windows.Weekend
		if isWeekday(day) {
			window = p.windows.Weekday
		}

		winOpen, err := models.ParseClock(window.Start)
		if err != nil {
			continue
		}
		winClose, err := models.ParseClock(window.End)
		if err != nil {
			continue
		}

		cursor := winOpen
		for _, ev := range grid[day] {
			start, err := models.ParseClock(ev.StartTime)
			if err != nil {
				continue
			}
			if cursor < start {
				slots = appendSlot(slots, day, cursor, start, p.minBlock)
			}
			end, err := models.ParseClock(ev.EndTime)
			if err == nil && end > cursor {
				cursor = end
			}
		}
		if cursor < winClose {
			slots = appendSlot(slots, day, cursor, winClose, p.minBlock)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Priority > slots[j].Priority
	})
	return slots
}

func appendSlot(slots []models.FreeSlot, day, startMin, endMin int, minBlock float64) []models.FreeSlot {
	duration := float64(endMin-startMin) / 60
	if duration < minBlock {
		return slots
	}
	return append(slots, models.FreeSlot{
		DayOfWeek:     day,
		StartTime:     models.FormatClock(startMin),
		EndTime:       models.FormatClock(endMin),
		DurationHours: duration,
		Priority:      slotPriority(day, startMin/60),
	})
}

// slotPriority scores a slot by how desirable its start is: weekday mornings
// rank highest, then weekday afternoons, then early evenings.
func slotPriority(day, startHour int) int {
	priority := 0
	if isWeekday(day) {
		priority += 2
	}
	switch {
	case startHour >= 9 && startHour < 12:
		priority += 3
	case startHour >= 14 && startHour < 17:
		priority += 2
	case startHour >= 18 && startHour < 20:
		priority++
	}
	return priority
}

func isWeekday(day int) bool {
	return day >= 1 && day <= 5
}

// allocate walks the priority-ordered slots and gives each one at most a
// single block for the course with the greatest outstanding need. Ties go to
// the course listed first in the requirements, so allocation is
// deterministic. Remaining capacity in an under-used slot is left unused.
func (p *Planner) allocate(slots []models.FreeSlot, reqs []models.StudyRequirement) []models.StudyBlock {
	remaining := make(map[int64]float64, len(reqs))
	byID := make(map[int64]models.StudyRequirement, len(reqs))
	order := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		if _, seen := byID[r.CourseID]; seen {
			continue
		}
		remaining[r.CourseID] = r.Hours
		byID[r.CourseID] = r
		order = append(order, r.CourseID)
	}

	var blocks []models.StudyBlock
	for _, slot := range slots {
		if slot.DurationHours < p.minBlock {
			continue
		}

		var target int64
		var maxHours float64
		for _, id := range order {
			if remaining[id] > maxHours {
				maxHours = remaining[id]
				target = id
			}
		}
		if maxHours == 0 {
			break
		}

		duration := slot.DurationHours
		if duration > p.maxBlock {
			duration = p.maxBlock
		}
		if duration > remaining[target] {
			duration = remaining[target]
		}

		end, err := models.AddHours(slot.StartTime, duration)
		if err != nil {
			continue
		}

		req := byID[target]
		blocks = append(blocks, models.StudyBlock{
			CourseID:      target,
			CourseName:    req.CourseName,
			CourseCode:    req.CourseCode,
			Color:         req.Color,
			DayOfWeek:     slot.DayOfWeek,
			StartTime:     slot.StartTime,
			EndTime:       end,
			DurationHours: duration,
		})
		remaining[target] -= duration
	}

	return blocks
}

// assemble merges the fixed grid with the placed study blocks into the final
// per-day schedule, each day's events ordered by start time.
func assemble(grid [7][]models.ScheduleEvent, blocks []models.StudyBlock) map[int]*models.DaySchedule {
	schedule := make(map[int]*models.DaySchedule, 7)
	for day := 0; day < 7; day++ {
		events := append([]models.ScheduleEvent(nil), grid[day]...)
		schedule[day] = &models.DaySchedule{
			Day:      models.DayNames[day],
			DayIndex: day,
			Events:   events,
		}
	}

	for _, b := range blocks {
		schedule[b.DayOfWeek].Events = append(schedule[b.DayOfWeek].Events, models.ScheduleEvent{
			Kind:          models.EventStudy,
			Title:         "Study: " + b.CourseName,
			CourseCode:    b.CourseCode,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Color:         b.Color,
			DurationHours: b.DurationHours,
		})
	}

	for day := 0; day < 7; day++ {
		events := schedule[day].Events
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime < events[j].StartTime
		})
		if events == nil {
			schedule[day].Events = []models.ScheduleEvent{}
		}
	}

	return schedule
}
