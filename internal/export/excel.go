package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"studydesk/internal/database"
	"studydesk/internal/models"
)

// sheetWriter wraps excelize with a row cursor per sheet.
type sheetWriter struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

func newSheetWriter() *sheetWriter {
	return &sheetWriter{file: excelize.NewFile()}
}

func (w *sheetWriter) addSheet(name string) error {
	if len(name) > 31 {
		name = name[:31]
	}
	if w.currentSheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	w.currentSheet = name
	w.currentRow = 1
	return nil
}

func (w *sheetWriter) writeHeader(columns []string) error {
	if err := w.writeRow(toAny(columns)); err != nil {
		return err
	}
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow-1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow-1)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}
	return nil
}

func (w *sheetWriter) writeRow(row []any) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}
	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}
	w.currentRow++
	return nil
}

func (w *sheetWriter) save(wr io.Writer) error {
	defer w.file.Close()
	return w.file.Write(wr)
}

func toAny(cols []string) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return row
}

// WriteWeeklyPlan renders a generated plan as a workbook: one Schedule sheet
// with every event day by day, plus a Study Hours sheet with the per-course
// breakdown.
func WriteWeeklyPlan(wr io.Writer, plan *models.WeeklyPlan) error {
	w := newSheetWriter()

	if err := w.addSheet("Schedule"); err != nil {
		return err
	}
	if err := w.writeHeader([]string{"Day", "Start", "End", "Type", "Title", "Location"}); err != nil {
		return err
	}
	for day := 0; day < 7; day++ {
		ds, ok := plan.Schedule[day]
		if !ok {
			continue
		}
		for _, ev := range ds.Events {
			row := []any{ds.Day, ev.StartTime, ev.EndTime, ev.Kind, ev.Title, ev.Location}
			if err := w.writeRow(row); err != nil {
				return err
			}
		}
	}

	if err := w.addSheet("Study Hours"); err != nil {
		return err
	}
	if err := w.writeHeader([]string{"Course", "Day", "Start", "End", "Hours"}); err != nil {
		return err
	}
	for _, b := range plan.StudyBlocks {
		row := []any{b.CourseName, models.DayNames[b.DayOfWeek], b.StartTime, b.EndTime, b.DurationHours}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	totals := []any{"Total allocated", "", "", "", plan.StudyHours.Allocated}
	if err := w.writeRow(totals); err != nil {
		return err
	}
	if err := w.writeRow([]any{"Recommended", "", "", "", plan.StudyHours.Recommended}); err != nil {
		return err
	}
	if err := w.writeRow([]any{"Deficit", "", "", "", plan.StudyHours.Deficit}); err != nil {
		return err
	}

	return w.save(wr)
}

// WriteGradeReport renders grades and per-course weighted standings.
func WriteGradeReport(wr io.Writer, grades []models.Grade, summaries []database.GradeSummary) error {
	w := newSheetWriter()

	if err := w.addSheet("Grades"); err != nil {
		return err
	}
	if err := w.writeHeader([]string{"Course", "Assignment", "Grade", "Max", "Weight", "Category", "Received"}); err != nil {
		return err
	}
	for _, g := range grades {
		row := []any{g.CourseName, g.AssignmentName, g.Grade, g.MaxGrade, g.Weight,
			g.Category, g.DateReceived.Format("2006-01-02")}
		if err := w.writeRow(row); err != nil {
			return err
		}
	}

	if err := w.addSheet("Summary"); err != nil {
		return err
	}
	if err := w.writeHeader([]string{"Course", "Weighted %", "Grades"}); err != nil {
		return err
	}
	for _, s := range summaries {
		if err := w.writeRow([]any{s.CourseName, s.Percentage, s.GradeCount}); err != nil {
			return err
		}
	}

	return w.save(wr)
}
