package excel

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/insight"
	"lifeos/domain/snapshot"

	"github.com/xuri/excelize/v2"
)

// Writer renders a snapshot as an XLSX workbook
type Writer struct {
	summary *insight.WeeklySummary
}

// NewWriter creates a workbook writer. A non-nil summary adds a Weekly
// Insights sheet.
func NewWriter(summary *insight.WeeklySummary) *Writer {
	return &Writer{summary: summary}
}

// Write renders snap to dst
func (w *Writer) Write(dst io.Writer, snap *snapshot.Snapshot) error {
	f, err := w.build(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(dst); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile renders snap to path
func (w *Writer) WriteFile(path string, snap *snapshot.Snapshot) error {
	f, err := w.build(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (w *Writer) build(snap *snapshot.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
	}{
		{SheetCheckIns, checkInHeaders, checkInRows(snap)},
		{SheetStatuses, statusHeaders, statusRows(snap)},
		{SheetExpressions, expressionHeaders, expressionRows(snap)},
		{SheetJournal, journalHeaders, journalRows(snap)},
		{SheetGoals, goalHeaders, goalRows(snap)},
	}
	if w.summary != nil {
		sheets = append(sheets, struct {
			name    string
			headers []string
			rows    [][]interface{}
		}{SheetInsights, insightHeaders, insightRows(w.summary)})
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSheet(f, s.name, header, s.headers, s.rows); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, style int, headers []string, rows [][]interface{}) error {
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func checkInRows(snap *snapshot.Snapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(snap.CheckIns))
	for _, c := range snap.CheckIns {
		rows = append(rows, []interface{}{
			c.Date.String(), string(c.Energy), string(c.NervousSystem),
			strings.Join(c.Factors, listSeparator), c.Note,
		})
	}
	return rows
}

func statusRows(snap *snapshot.Snapshot) [][]interface{} {
	days := make([]core.Day, 0, len(snap.DayStatuses))
	for day := range snap.DayStatuses {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	rows := make([][]interface{}, 0, len(days))
	for _, day := range days {
		rows = append(rows, []interface{}{day.String(), string(snap.DayStatuses[day])})
	}
	return rows
}

func expressionRows(snap *snapshot.Snapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(snap.Expressions))
	for _, e := range snap.Expressions {
		expressed := "no"
		if e.Expressed {
			expressed = "yes"
		}
		rows = append(rows, []interface{}{
			e.Date.String(), expressed, strings.Join(e.Types, listSeparator), e.Note,
		})
	}
	return rows
}

func journalRows(snap *snapshot.Snapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(snap.Journal))
	for _, e := range snap.Journal {
		rows = append(rows, []interface{}{
			e.ID.String(), e.Date.String(), string(e.Mood),
			strings.Join(e.Tags, listSeparator), e.Content, e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func goalRows(snap *snapshot.Snapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		titles := make([]string, 0, len(g.Milestones))
		for _, m := range g.Milestones {
			mark := "[ ] "
			if m.Completed {
				mark = "[x] "
			}
			titles = append(titles, mark+m.Title)
		}
		rows = append(rows, []interface{}{
			g.ID.String(), g.Title, string(g.Category), string(g.Timeframe), string(g.Status),
			g.Progress, g.Priority, g.StartDate.String(), g.TargetDate.String(),
			strings.Join(titles, "; "),
		})
	}
	return rows
}

func insightRows(summary *insight.WeeklySummary) [][]interface{} {
	rows := make([][]interface{}, 0, len(summary.Insights))
	for _, in := range summary.Insights {
		rows = append(rows, []interface{}{string(in.Priority), string(in.Type), in.Title, in.Description})
	}
	return rows
}
