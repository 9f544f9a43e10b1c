package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/snapshot"
	"lifeos/domain/wellness"

	"github.com/xuri/excelize/v2"
)

// DataReader reads tracked data from an XLSX workbook or a CSV of check-ins
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for path, choosing the format by extension
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadSnapshot reads check-ins, day statuses and self-expression records.
// A CSV file holds check-ins only.
func (r *DataReader) ReadSnapshot() (*snapshot.Snapshot, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		f, err := os.Open(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case "xlsx":
		f, err := os.Open(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel file: %w", err)
		}
		defer f.Close()
		return ReadWorkbook(f)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// ReadWorkbook parses a workbook. Check-ins come from the "Check-ins"
// sheet, or Sheet1 when the workbook was not produced by an export.
func ReadWorkbook(src io.Reader) (*snapshot.Snapshot, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}

	snap := snapshot.New(time.Time{})
	checkInSheet := SheetCheckIns
	if !sheets[checkInSheet] {
		checkInSheet = "Sheet1"
	}
	if sheets[checkInSheet] {
		data, err := readSheet(f, checkInSheet)
		if err != nil {
			return nil, err
		}
		if snap.CheckIns, err = parseCheckIns(data); err != nil {
			return nil, err
		}
	}

	if sheets[SheetStatuses] {
		data, err := readSheet(f, SheetStatuses)
		if err != nil {
			return nil, err
		}
		if snap.DayStatuses, err = parseStatuses(data); err != nil {
			return nil, err
		}
	}

	if sheets[SheetExpressions] {
		data, err := readSheet(f, SheetExpressions)
		if err != nil {
			return nil, err
		}
		if snap.Expressions, err = parseExpressions(data); err != nil {
			return nil, err
		}
	}

	log.Printf("[DataReader] workbook read in %.2fms (%s)",
		float64(time.Since(startTime).Nanoseconds())/1e6, snap.Counts())
	return snap, nil
}

// ReadCSV parses a CSV of check-ins with a header row
func ReadCSV(src io.Reader) (*snapshot.Snapshot, error) {
	rows, err := csv.NewReader(src).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	data, err := processRows(rows)
	if err != nil {
		return nil, err
	}

	snap := snapshot.New(time.Time{})
	if snap.CheckIns, err = parseCheckIns(data); err != nil {
		return nil, err
	}
	return snap, nil
}

func readSheet(f *excelize.File, sheet string) (*ExcelData, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return processRows(rows)
}

// processRows converts raw string rows into ExcelData keyed by lowercase header
func processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) == 0 {
		return &ExcelData{}, nil
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRowData)
		empty := true
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
				if rowData[headers[j]] != "" {
					empty = false
				}
			}
		}
		if !empty {
			dataRows = append(dataRows, rowData)
		}
	}

	return &ExcelData{Headers: headers, Rows: dataRows}, nil
}

func parseCheckIns(data *ExcelData) ([]wellness.EnergyCheckIn, error) {
	checkins := make([]wellness.EnergyCheckIn, 0, len(data.Rows))
	for i, row := range data.Rows {
		day, err := core.ParseDay(row["date"])
		if err != nil {
			return nil, rowError(i, err)
		}
		c := wellness.EnergyCheckIn{
			Date:          day,
			Energy:        wellness.EnergyLevel(strings.ToLower(row["energy"])),
			NervousSystem: wellness.NervousSystemState(strings.ToLower(row["nervoussystem"])),
			Factors:       splitList(row["factors"]),
			Note:          row["note"],
		}
		if err := c.Validate(); err != nil {
			return nil, rowError(i, err)
		}
		checkins = append(checkins, c)
	}
	return checkins, nil
}

func parseStatuses(data *ExcelData) (wellness.DayStatuses, error) {
	statuses := make(wellness.DayStatuses, len(data.Rows))
	for i, row := range data.Rows {
		day, err := core.ParseDay(row["date"])
		if err != nil {
			return nil, rowError(i, err)
		}
		status, err := wellness.ParseSmokeStatus(row["status"])
		if err != nil {
			return nil, rowError(i, err)
		}
		statuses[day] = status
	}
	return statuses, nil
}

func parseExpressions(data *ExcelData) ([]wellness.SelfExpression, error) {
	expressions := make([]wellness.SelfExpression, 0, len(data.Rows))
	for i, row := range data.Rows {
		day, err := core.ParseDay(row["date"])
		if err != nil {
			return nil, rowError(i, err)
		}
		expressed, err := parseBool(row["expressed"])
		if err != nil {
			return nil, rowError(i, err)
		}
		expressions = append(expressions, wellness.SelfExpression{
			Date:      day,
			Expressed: expressed,
			Types:     splitList(row["types"]),
			Note:      row["note"],
		})
	}
	return expressions, nil
}

// rowError reports the spreadsheet row number, counting the header as row 1
func rowError(index int, err error) error {
	return fmt.Errorf("row %d: %w", index+2, err)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "no", "n":
		return false, nil
	case "yes", "y":
		return true, nil
	}
	return strconv.ParseBool(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		return []string{}
	}
	return out
}
