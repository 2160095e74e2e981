// Package export renders a learning plan as an XLSX workbook: one sheet
// for the day-wise roadmap, one for the weekly milestones.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/learnloop/learnloop/internal/plan"
	"github.com/learnloop/learnloop/internal/roadmap"
)

const (
	sheetRoadmap    = "Roadmap"
	sheetMilestones = "Milestones"
	dateLayout      = "2006-01-02"
)

var roadmapHeader = []string{
	"Day", "Date", "Weekday", "Study Day", "Hours", "Sessions", "Subjects", "Topics", "Completed",
}

var milestoneHeader = []string{
	"Week", "Title", "Target %", "Goals", "Completed",
}

// WriteXLSX renders the plan workbook to w.
func WriteXLSX(w io.Writer, p *plan.LearningPlan) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Workbook builds the plan workbook. The caller owns closing it.
func Workbook(p *plan.LearningPlan) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(sheetRoadmap)
	if err != nil {
		return nil, fmt.Errorf("creating roadmap sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetMilestones); err != nil {
		return nil, fmt.Errorf("creating milestones sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("dropping default sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := fillRoadmap(f, p); err != nil {
		return nil, err
	}
	if err := fillMilestones(f, p); err != nil {
		return nil, err
	}
	return f, nil
}

func fillRoadmap(f *excelize.File, p *plan.LearningPlan) error {
	if err := setRow(f, sheetRoadmap, 1, toAny(roadmapHeader)); err != nil {
		return err
	}

	for i, day := range p.DailyRoadmap {
		row := []any{
			day.DayNumber,
			day.Date.Format(dateLayout),
			day.DayOfWeek,
			day.IsStudyDay,
			day.TotalStudyHours,
			sessionCount(day),
			strings.Join(daySubjects(day), ", "),
			strings.Join(dayTopics(day), ", "),
			fmt.Sprintf("%d/%d", day.Progress.CompletedSessions, sessionCount(day)),
		}
		if err := setRow(f, sheetRoadmap, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetRoadmap, "B", "B", 12); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(sheetRoadmap, "G", "H", 40); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return nil
}

func fillMilestones(f *excelize.File, p *plan.LearningPlan) error {
	if err := setRow(f, sheetMilestones, 1, toAny(milestoneHeader)); err != nil {
		return err
	}

	for i, m := range p.WeeklyMilestones {
		row := []any{
			m.WeekNumber,
			m.Title,
			m.TargetProgress,
			strings.Join(m.Goals, "; "),
			m.IsCompleted,
		}
		if err := setRow(f, sheetMilestones, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetMilestones, "D", "D", 60); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func sessionCount(day roadmap.DayRoadmap) int {
	var n int
	for _, s := range day.Sessions {
		if s.Type == roadmap.SessionLearning {
			n++
		}
	}
	return n
}

func daySubjects(day roadmap.DayRoadmap) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range day.Sessions {
		if s.Type != roadmap.SessionLearning || seen[s.Subject] {
			continue
		}
		seen[s.Subject] = true
		out = append(out, s.Subject)
	}
	return out
}

func dayTopics(day roadmap.DayRoadmap) []string {
	var out []string
	for _, s := range day.Sessions {
		if s.Type != roadmap.SessionLearning {
			continue
		}
		out = append(out, s.Topics...)
	}
	return out
}
