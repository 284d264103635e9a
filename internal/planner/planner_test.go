package planner

import (
	"testing"

	"studydesk/internal/models"
)

func mondayClass(start, end string) models.ClassSession {
	return models.ClassSession{CourseID: 1, CourseName: "Calculus", DayOfWeek: 1, StartTime: start, EndTime: end}
}

func TestFindFreeSlotsEmptyWeek(t *testing.T) {
	p := New(Windows{})
	slots := p.findFreeSlots(buildGrid(nil, nil))

	if len(slots) != 7 {
		t.Fatalf("expected 7 slots for an empty week, got %d", len(slots))
	}

	for _, s := range slots {
		if isWeekday(s.DayOfWeek) {
			if s.StartTime != "09:00" || s.EndTime != "22:00" || s.DurationHours != 13 {
				t.Errorf("weekday slot: expected 09:00-22:00 (13h), got %s-%s (%vh)", s.StartTime, s.EndTime, s.DurationHours)
			}
			if s.Priority != 5 {
				t.Errorf("weekday morning slot: expected priority 5, got %d", s.Priority)
			}
		} else {
			if s.StartTime != "10:00" || s.EndTime != "20:00" || s.DurationHours != 10 {
				t.Errorf("weekend slot: expected 10:00-20:00 (10h), got %s-%s (%vh)", s.StartTime, s.EndTime, s.DurationHours)
			}
			if s.Priority != 3 {
				t.Errorf("weekend morning slot: expected priority 3, got %d", s.Priority)
			}
		}
	}

	// Descending priority, stable day order within equal scores.
	expectedDays := []int{1, 2, 3, 4, 5, 0, 6}
	for i, s := range slots {
		if s.DayOfWeek != expectedDays[i] {
			t.Errorf("slot %d: expected day %d, got %d", i, expectedDays[i], s.DayOfWeek)
		}
	}
}

func TestFindFreeSlotsAroundCommitments(t *testing.T) {
	classes := []models.ClassSession{mondayClass("10:00", "12:00")}
	activities := []models.Activity{{
		Title: "Gym", DayOfWeek: 1, StartTime: "18:00", EndTime: "19:00",
		Recurrence: "weekly", Category: models.CategoryFitness,
	}}

	p := New(Windows{})
	slots := p.findFreeSlots(buildGrid(classes, activities))

	var monday []models.FreeSlot
	for _, s := range slots {
		if s.DayOfWeek == 1 {
			monday = append(monday, s)
		}
	}
	if len(monday) != 3 {
		t.Fatalf("expected 3 Monday slots, got %d: %v", len(monday), monday)
	}

	// Slots arrive priority-sorted: 09-10 (5), 19-22 (3), 12-18 (2).
	expected := []struct {
		start, end string
		hours      float64
		priority   int
	}{
		{"09:00", "10:00", 1, 5},
		{"19:00", "22:00", 3, 3},
		{"12:00", "18:00", 6, 2},
	}
	for i, want := range expected {
		got := monday[i]
		if got.StartTime != want.start || got.EndTime != want.end {
			t.Errorf("slot %d: expected %s-%s, got %s-%s", i, want.start, want.end, got.StartTime, got.EndTime)
		}
		if got.DurationHours != want.hours {
			t.Errorf("slot %d: expected %vh, got %vh", i, want.hours, got.DurationHours)
		}
		if got.Priority != want.priority {
			t.Errorf("slot %d: expected priority %d, got %d", i, want.priority, got.Priority)
		}
	}
}

func TestFindFreeSlotsDiscardsShortGaps(t *testing.T) {
	// 09:00-09:30 gap before the first class is below the 1h minimum.
	classes := []models.ClassSession{mondayClass("09:30", "22:00")}

	p := New(Windows{})
	for _, s := range p.findFreeSlots(buildGrid(classes, nil)) {
		if s.DayOfWeek == 1 {
			t.Errorf("expected no Monday slots, got %s-%s", s.StartTime, s.EndTime)
		}
	}
}

func TestGenerateRespectsBlockAndCourseLimits(t *testing.T) {
	reqs := []models.StudyRequirement{
		{CourseID: 1, CourseName: "Calculus", Hours: 10},
	}

	p := New(Windows{})
	plan := p.Generate(nil, nil, reqs)

	var allocated float64
	for _, b := range plan.StudyBlocks {
		if b.DurationHours > MaxStudyBlockHours {
			t.Errorf("block exceeds max length: %vh", b.DurationHours)
		}
		if b.CourseID != 1 {
			t.Errorf("unexpected course %d", b.CourseID)
		}
		allocated += b.DurationHours
	}

	if allocated != 10 {
		t.Errorf("expected exactly the requested 10h allocated, got %v", allocated)
	}
	if plan.StudyHours.Recommended != 10 || plan.StudyHours.Allocated != 10 || plan.StudyHours.Deficit != 0 {
		t.Errorf("unexpected totals: %+v", plan.StudyHours)
	}

	// 3h + 3h + 3h + 1h across the four best slots.
	if len(plan.StudyBlocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(plan.StudyBlocks))
	}
	if last := plan.StudyBlocks[3]; last.DurationHours != 1 {
		t.Errorf("expected final 1h remainder block, got %vh", last.DurationHours)
	}
}

func TestGenerateOneBlockPerSlot(t *testing.T) {
	reqs := []models.StudyRequirement{{CourseID: 1, CourseName: "Calculus", Hours: 4}}

	p := New(Windows{})
	plan := p.Generate(nil, nil, reqs)

	if len(plan.StudyBlocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(plan.StudyBlocks))
	}
	// The Monday slot has 13 free hours but yields a single 3h block; the
	// remaining hour lands on Tuesday rather than reusing the slot.
	if plan.StudyBlocks[0].DayOfWeek == plan.StudyBlocks[1].DayOfWeek {
		t.Error("second block should not reuse the first slot's day")
	}
}

func TestGenerateNeverOverlapsCommitments(t *testing.T) {
	classes := []models.ClassSession{
		mondayClass("09:00", "12:00"),
		{CourseID: 2, CourseName: "Physics", DayOfWeek: 2, StartTime: "13:00", EndTime: "15:00"},
	}
	activities := []models.Activity{{
		Title: "Work", DayOfWeek: 1, StartTime: "13:00", EndTime: "18:00",
		Recurrence: "weekly", Category: models.CategoryWork,
	}}
	reqs := []models.StudyRequirement{
		{CourseID: 1, CourseName: "Calculus", Hours: 20},
		{CourseID: 2, CourseName: "Physics", Hours: 20},
	}

	p := New(Windows{})
	plan := p.Generate(classes, activities, reqs)

	occupied := map[int][][2]int{}
	add := func(day int, start, end string) {
		s, _ := models.ParseClock(start)
		e, _ := models.ParseClock(end)
		occupied[day] = append(occupied[day], [2]int{s, e})
	}
	for _, c := range classes {
		add(c.DayOfWeek, c.StartTime, c.EndTime)
	}
	for _, a := range activities {
		add(a.DayOfWeek, a.StartTime, a.EndTime)
	}

	for _, b := range plan.StudyBlocks {
		bs, _ := models.ParseClock(b.StartTime)
		be, _ := models.ParseClock(b.EndTime)
		for _, iv := range occupied[b.DayOfWeek] {
			if bs < iv[1] && iv[0] < be {
				t.Errorf("block %s-%s on day %d overlaps commitment %v", b.StartTime, b.EndTime, b.DayOfWeek, iv)
			}
		}
	}
}

func TestGenerateDeterministicTieBreak(t *testing.T) {
	reqs := []models.StudyRequirement{
		{CourseID: 7, CourseName: "History", Hours: 6},
		{CourseID: 3, CourseName: "Biology", Hours: 6},
	}

	p := New(Windows{})
	plan := p.Generate(nil, nil, reqs)

	if len(plan.StudyBlocks) < 4 {
		t.Fatalf("expected at least 4 blocks, got %d", len(plan.StudyBlocks))
	}
	// Equal need goes to the first-listed course, then alternates as the
	// greater need flips.
	expected := []int64{7, 3, 7, 3}
	for i, want := range expected {
		if plan.StudyBlocks[i].CourseID != want {
			t.Errorf("block %d: expected course %d, got %d", i, want, plan.StudyBlocks[i].CourseID)
		}
	}
}

func TestGenerateZeroRequirements(t *testing.T) {
	p := New(Windows{})
	plan := p.Generate(nil, nil, nil)

	if len(plan.StudyBlocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(plan.StudyBlocks))
	}
	if plan.StudyHours.Recommended != 0 || plan.StudyHours.Allocated != 0 || plan.StudyHours.Deficit != 0 {
		t.Errorf("expected zero totals, got %+v", plan.StudyHours)
	}
	if len(plan.Schedule) != 7 {
		t.Errorf("expected 7 day entries, got %d", len(plan.Schedule))
	}
}

func TestGenerateDeficitWhenSlotsRunOut(t *testing.T) {
	// One class eats almost the whole Monday window; demand far exceeds the
	// week's capacity.
	var classes []models.ClassSession
	for day := 0; day < 7; day++ {
		start := "09:00"
		if !isWeekday(day) {
			start = "10:00"
		}
		classes = append(classes, models.ClassSession{
			CourseID: 1, CourseName: "Marathon", DayOfWeek: day, StartTime: start, EndTime: "19:00",
		})
	}
	reqs := []models.StudyRequirement{{CourseID: 1, CourseName: "Calculus", Hours: 40}}

	p := New(Windows{})
	plan := p.Generate(classes, nil, reqs)

	if plan.StudyHours.Allocated >= plan.StudyHours.Recommended {
		t.Fatalf("expected a shortfall, got %+v", plan.StudyHours)
	}
	if got, want := plan.StudyHours.Deficit, plan.StudyHours.Recommended-plan.StudyHours.Allocated; got != want {
		t.Errorf("deficit: expected %v, got %v", want, got)
	}
}

func TestGenerateAssemblesSortedDays(t *testing.T) {
	classes := []models.ClassSession{mondayClass("10:00", "12:00")}
	activities := []models.Activity{{
		Title: "Gym", DayOfWeek: 1, StartTime: "18:00", EndTime: "19:00",
		Recurrence: "weekly", Category: models.CategoryFitness,
	}}
	reqs := []models.StudyRequirement{{CourseID: 1, CourseName: "Calculus", Hours: 2}}

	p := New(Windows{})
	plan := p.Generate(classes, activities, reqs)

	monday := plan.Schedule[1]
	if monday.Day != "Monday" || monday.DayIndex != 1 {
		t.Fatalf("unexpected day header: %+v", monday)
	}
	if len(monday.Events) < 2 {
		t.Fatalf("expected class and activity on Monday, got %d events", len(monday.Events))
	}
	for i := 1; i < len(monday.Events); i++ {
		if monday.Events[i-1].StartTime > monday.Events[i].StartTime {
			t.Errorf("events out of order: %s after %s", monday.Events[i].StartTime, monday.Events[i-1].StartTime)
		}
	}

	foundStudy := false
	for _, day := range plan.Schedule {
		for _, ev := range day.Events {
			switch ev.Kind {
			case models.EventStudy:
				foundStudy = true
				if ev.Title != "Study: Calculus" {
					t.Errorf("unexpected study title %q", ev.Title)
				}
			case models.EventClass, models.EventActivity:
			default:
				t.Errorf("unexpected event kind %q", ev.Kind)
			}
		}
	}
	if !foundStudy {
		t.Error("expected at least one study event in the assembled schedule")
	}
}

func TestGenerateSkipsIncompleteActivities(t *testing.T) {
	activities := []models.Activity{
		{Title: "No Times", DayOfWeek: 1, Recurrence: "weekly"},
		{Title: "Daily Standup", DayOfWeek: 2, StartTime: "09:00", EndTime: "09:30", Recurrence: "daily"},
	}

	grid := buildGrid(nil, activities)
	for day, events := range grid {
		if len(events) != 0 {
			t.Errorf("day %d: expected empty grid, got %v", day, events)
		}
	}
}
