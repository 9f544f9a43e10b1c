package excel

// RawRowData represents a row of raw sheet data keyed by lowercase header
type RawRowData map[string]string

// ExcelData represents one sheet as headers plus rows
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Sheet names of an exported workbook
const (
	SheetCheckIns    = "Check-ins"
	SheetStatuses    = "Day Statuses"
	SheetExpressions = "Self-Expression"
	SheetJournal     = "Journal"
	SheetGoals       = "Goals"
	SheetInsights    = "Weekly Insights"
)

var (
	checkInHeaders    = []string{"date", "energy", "nervousSystem", "factors", "note"}
	statusHeaders     = []string{"date", "status"}
	expressionHeaders = []string{"date", "expressed", "types", "note"}
	journalHeaders    = []string{"id", "date", "mood", "tags", "content", "createdAt"}
	goalHeaders       = []string{"id", "title", "category", "timeframe", "status", "progress", "priority", "startDate", "targetDate", "milestones"}
	insightHeaders    = []string{"priority", "type", "title", "description"}
)

// listSeparator joins tag lists inside a single cell
const listSeparator = ", "
