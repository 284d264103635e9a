// Package parser turns free-form English descriptions of a weekly routine
// into structured activity records. Extraction is best effort: a sentence
// that cannot be parsed contributes nothing, and no input ever produces an
// error.
package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"studydesk/internal/models"
)

// dayEntry maps one day name or abbreviation to its weekday number
// (Sunday=0). The table is ordered so matching is deterministic and the
// single-letter ambiguity policy stays auditable: Tuesday and Thursday get no
// single-letter form, Saturday and Sunday get two-letter forms only.
type dayEntry struct {
	name string
	day  int
}

var dayTable = []dayEntry{
	{"monday", 1}, {"mon", 1}, {"m", 1},
	{"tuesday", 2}, {"tue", 2}, {"tu", 2},
	{"wednesday", 3}, {"wed", 3}, {"w", 3},
	{"thursday", 4}, {"thu", 4}, {"th", 4},
	{"friday", 5}, {"fri", 5}, {"f", 5},
	{"saturday", 6}, {"sat", 6}, {"sa", 6},
	{"sunday", 0}, {"sun", 0}, {"su", 0},
}

const dayNameAlt = "monday|tuesday|wednesday|thursday|friday|saturday|sunday"

var (
	sentenceSplitRe = regexp.MustCompile(`[.!;]`)

	// Title templates, tried in priority order; first match wins.
	titlePatterns = []*regexp.Regexp{
		// "I have soccer practice on ..."
		regexp.MustCompile(`(?:have|attend|go to|take|do)\s+([a-z\s]+?)(?:\s+(?:on|at|from|every|each|` + dayNameAlt + `))`),
		// "Soccer practice on ..." at sentence start
		regexp.MustCompile(`^([a-z\s]+?)(?:\s+(?:on|at|from|every|each|` + dayNameAlt + `))`),
		// "I have soccer practice" ending in a session noun
		regexp.MustCompile(`(?:i\s+)?(?:have|attend|go to|take|do)\s+([a-z\s]+?(?:class|practice|session|meeting|training))`),
		// "Soccer practice" standalone
		regexp.MustCompile(`([a-z\s]+?)\s+(?:class|practice|session|meeting|training)`),
	}

	leadingFillerRe = regexp.MustCompile(`^(?:i|my|the|a|an)\s+`)
	linkingWordRe   = regexp.MustCompile(`\s+(?:is|are|at|on)\s+`)
	nonAlphaRe      = regexp.MustCompile(`[^a-z\s]`)

	everyDayRe = regexp.MustCompile(`every\s*day|daily|all\s*days`)
	weekdaysRe = regexp.MustCompile(`weekdays?|mon-fri|monday-friday`)
	weekendsRe = regexp.MustCompile(`weekends?|sat-sun|saturday-sunday`)

	// Conjunctions of two day names ("monday and wednesday", "mon, wed").
	dayPairRe = regexp.MustCompile(`(` + dayAbbrevAlt + `)(?:\s*(?:and|,)\s*|\s+)(` + dayAbbrevAlt + `)`)

	// Clock tokens: "3:30pm", "6pm", "14:30", "at 3". A bare number with no
	// colon, no meridiem and no "at" prefix is not a clock token, so digits
	// inside duration phrases ("for 1 hour") are never picked up.
	clockTokenRe = regexp.MustCompile(`(?:\bat\s+)?\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	timeRangeRe  = regexp.MustCompile(`from\s+(\d{1,2}):?(\d{2})?\s*(am|pm)?\s+(?:to|until|-)\s+(\d{1,2}):?(\d{2})?\s*(am|pm)?`)
	durationRe   = regexp.MustCompile(`(?:for|lasts?)\s+(\d+(?:\.\d+)?)\s*(hour|hr|minute|min)s?`)

	flexibleRe = regexp.MustCompile(`flexible|optional|maybe|usually|sometimes`)

	// Category keyword groups, tested against the title in this order.
	// Fitness goes first so "soccer practice" never resolves via the session
	// noun to another group.
	categoryRules = []struct {
		category string
		re       *regexp.Regexp
	}{
		{models.CategoryFitness, regexp.MustCompile(`gym|workout|exercise|fitness|yoga|run|swim|sport|soccer|football|basketball|baseball|tennis|volleyball|hockey|practice|training|team`)},
		{models.CategoryWork, regexp.MustCompile(`work|job|office|shift|business`)},
		{models.CategoryClass, regexp.MustCompile(`class|lecture|lab|seminar|tutorial|course`)},
		{models.CategoryExtracurricular, regexp.MustCompile(`club|meeting|organization|volunteer|extracurricular|community`)},
		{models.CategoryStudy, regexp.MustCompile(`study|homework|assignment|project|review|exam prep`)},
	}
)

const dayAbbrevAlt = dayNameAlt + `|mon|tue|wed|thu|fri|sat|sun`

// Precompiled whole-word matchers for every dayTable entry, plural-tolerant.
var dayWordRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(dayTable))
	for i, entry := range dayTable {
		res[i] = regexp.MustCompile(`\b` + entry.name + `s?\b`)
	}
	return res
}()

// ParseActivities splits text into sentences on ".", "!" and ";" and parses
// each one independently. A sentence naming several weekdays expands into one
// record per day; a sentence naming none yields nothing.
func ParseActivities(text string) []models.Activity {
	var activities []models.Activity

	for _, raw := range sentenceSplitRe.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}

		parsed := parseSentence(sentence)
		if parsed == nil {
			continue
		}

		for _, day := range parsed.Days {
			activity := *parsed
			activity.Days = nil
			activity.DayOfWeek = day
			activities = append(activities, activity)
		}
	}

	return activities
}

// parseSentence extracts a single activity from one sentence, or nil when no
// title can be found. The returned record keeps the full day set in Days;
// the caller expands it.
func parseSentence(sentence string) *models.Activity {
	lower := strings.ToLower(sentence)

	title := extractTitle(lower)
	if title == "" {
		return nil
	}

	days := extractDays(lower)
	start, end, duration := extractTime(lower)

	return &models.Activity{
		Title:         title,
		Description:   sentence,
		Days:          days,
		DayOfWeek:     -1,
		StartTime:     start,
		EndTime:       end,
		DurationHours: duration,
		Category:      categorize(title),
		Recurrence:    "weekly",
		IsFlexible:    flexibleRe.MatchString(lower),
	}
}

// extractTitle tries the ordered title templates and falls back to the first
// three words of the sentence. Returns "" when even the fallback is empty.
func extractTitle(lower string) string {
	for _, pattern := range titlePatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil || match[1] == "" {
			continue
		}

		title := strings.TrimSpace(match[1])
		for {
			stripped := leadingFillerRe.ReplaceAllString(title, "")
			if stripped == title {
				break
			}
			title = stripped
		}
		title = strings.TrimSpace(linkingWordRe.ReplaceAllString(title, " "))
		if title == "" {
			continue
		}
		return titleCase(title)
	}

	words := strings.Fields(lower)
	if len(words) > 3 {
		words = words[:3]
	}
	fallback := nonAlphaRe.ReplaceAllString(strings.Join(words, " "), "")
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		return ""
	}
	return titleCase(fallback)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractDays returns the ascending set of weekday numbers named in the
// sentence. Blanket phrases short-circuit in strict priority order before
// any individual day names are considered.
func extractDays(lower string) []int {
	if everyDayRe.MatchString(lower) {
		return []int{0, 1, 2, 3, 4, 5, 6}
	}
	if weekdaysRe.MatchString(lower) {
		return []int{1, 2, 3, 4, 5}
	}
	if weekendsRe.MatchString(lower) {
		return []int{0, 6}
	}

	found := make(map[int]bool)

	// Conjoined pairs first, so "monday and wednesday" is always captured
	// even if the general scan were to miss an edge case.
	for _, match := range dayPairRe.FindAllStringSubmatch(lower, -1) {
		for _, name := range match[1:] {
			if day, ok := lookupDay(name); ok {
				found[day] = true
			}
		}
	}

	// Whole-word scan over the full table.
	for i, entry := range dayTable {
		if dayWordRes[i].MatchString(lower) {
			found[entry.day] = true
		}
	}

	if len(found) == 0 {
		return nil
	}
	days := make([]int, 0, len(found))
	for day := range found {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

func lookupDay(name string) (int, bool) {
	for _, entry := range dayTable {
		if entry.name == name {
			return entry.day, true
		}
	}
	return 0, false
}

// extractTime scans the sentence for clock tokens (first is the start, second
// the end), a duration phrase, and an explicit "from X to Y" range. A range
// overrides scanned tokens; a duration fills in a missing end time.
func extractTime(lower string) (start, end string, duration float64) {
	var times []string
	for _, match := range clockTokenRe.FindAllStringSubmatch(lower, -1) {
		hasPrefix := strings.HasPrefix(match[0], "at")
		if match[2] == "" && match[3] == "" && !hasPrefix {
			continue // bare number, not a clock token
		}
		if t, ok := resolveClock(match[1], match[2], match[3]); ok {
			times = append(times, t)
		}
	}
	if len(times) > 0 {
		start = times[0]
	}
	if len(times) > 1 {
		end = times[1]
	}

	if match := durationRe.FindStringSubmatch(lower); match != nil {
		value, err := strconv.ParseFloat(match[1], 64)
		if err == nil {
			if strings.HasPrefix(match[2], "h") {
				duration = value
			} else {
				duration = value / 60
			}
		}
	}

	if match := timeRangeRe.FindStringSubmatch(lower); match != nil {
		if t, ok := resolveClock(match[1], match[2], match[3]); ok {
			start = t
		}
		if t, ok := resolveClock(match[4], match[5], match[6]); ok {
			end = t
		}
	}

	if duration > 0 && start != "" && end == "" {
		if computed, err := models.AddHours(start, duration); err == nil {
			end = computed
		}
	}

	return start, end, duration
}

// resolveClock turns hour/minute/meridiem captures into a 24-hour "HH:MM"
// value. Without a meridiem, hours below 8 are assumed to be afternoon or
// evening; out-of-range candidates are discarded.
func resolveClock(hourStr, minuteStr, meridiem string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", false
	}
	minute := 0
	if minuteStr != "" {
		if minute, err = strconv.Atoi(minuteStr); err != nil {
			return "", false
		}
	}

	switch {
	case meridiem == "pm" && hour < 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	case meridiem == "" && hour < 8:
		hour += 12
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return models.FormatClock(hour*60 + minute), true
}

func categorize(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		if rule.re.MatchString(lower) {
			return rule.category
		}
	}
	return models.CategoryPersonal
}
