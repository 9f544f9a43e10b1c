package excel

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/insight"
	"lifeos/domain/journal"
	"lifeos/domain/snapshot"
	"lifeos/domain/wellness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSnapshot() *snapshot.Snapshot {
	snap := snapshot.New(time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC))
	snap.CheckIns = []wellness.EnergyCheckIn{
		{Date: "2024-06-28", Energy: wellness.EnergyLow, NervousSystem: wellness.NervousAnxious, Factors: []string{"work", "sleep"}, Note: "long day"},
		{Date: "2024-06-29", Energy: wellness.EnergyHigh, NervousSystem: wellness.NervousCalm, Factors: []string{}},
	}
	snap.DayStatuses = wellness.DayStatuses{"2024-06-29": wellness.StatusClean, "2024-06-28": wellness.StatusVape}
	snap.Expressions = []wellness.SelfExpression{{Date: "2024-06-29", Expressed: true, Types: []string{"music"}}}
	snap.Journal = []*journal.Entry{{
		ID: core.JournalEntryID(core.NewID()), Date: "2024-06-29", Content: "# Saturday", Mood: journal.MoodGood,
		Tags: []string{"weekend"}, CreatedAt: time.Date(2024, 6, 29, 21, 0, 0, 0, time.UTC),
	}}
	snap.Goals = []*goal.Goal{{
		ID: core.GoalID(core.NewID()), Title: "Run 5k", Category: goal.CategoryHealth, Timeframe: goal.ShortTerm,
		Status: goal.StatusActive, Progress: 50, StartDate: "2024-06-01",
		Milestones: []goal.Milestone{{ID: "m1", Title: "1k", Completed: true}, {ID: "m2", Title: "5k"}},
	}}
	return snap
}

func TestWriteProducesAllSheets(t *testing.T) {
	summary := &insight.WeeklySummary{Insights: []insight.Insight{
		{Type: insight.TypeWarning, Title: "Low Energy Week", Description: "3 low days", Priority: insight.PriorityHigh},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(summary).Write(&buf, sampleSnapshot()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetCheckIns, SheetStatuses, SheetExpressions, SheetJournal, SheetGoals, SheetInsights}, f.GetSheetList())

	rows, err := f.GetRows(SheetStatuses)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2024-06-28", "vape"}, rows[1])

	rows, err = f.GetRows(SheetGoals)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Run 5k", rows[1][1])
	assert.Equal(t, "[x] 1k; [ ] 5k", rows[1][9])

	rows, err = f.GetRows(SheetInsights)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "warning", "Low Energy Week", "3 low days"}, rows[1])
}

func TestWriteWithoutSummarySkipsInsights(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(nil).Write(&buf, snapshot.New(time.Time{})))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.NotContains(t, f.GetSheetList(), SheetInsights)
}

func TestWorkbookRoundTripKeepsTrackedDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, NewWriter(nil).WriteFile(path, sampleSnapshot()))

	snap, err := NewDataReader(path).ReadSnapshot()
	require.NoError(t, err)

	require.Len(t, snap.CheckIns, 2)
	assert.Equal(t, []string{"work", "sleep"}, snap.CheckIns[0].Factors)
	assert.Equal(t, "long day", snap.CheckIns[0].Note)
	assert.Equal(t, wellness.NervousCalm, snap.CheckIns[1].NervousSystem)
	assert.Equal(t, wellness.DayStatuses{"2024-06-28": wellness.StatusVape, "2024-06-29": wellness.StatusClean}, snap.DayStatuses)
	require.Len(t, snap.Expressions, 1)
	assert.True(t, snap.Expressions[0].Expressed)
	assert.Equal(t, []string{"music"}, snap.Expressions[0].Types)
}

func TestReadCSVMapsHeadersCaseInsensitively(t *testing.T) {
	doc := "Date,ENERGY,NervousSystem,Factors\n" +
		"2024-06-01,Medium,Wired,\"caffeine, screens\"\n" +
		",,,\n" +
		"2024-06-02,low,numb,\n"

	snap, err := ReadCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, snap.CheckIns, 2)
	assert.Equal(t, wellness.EnergyMedium, snap.CheckIns[0].Energy)
	assert.Equal(t, wellness.NervousWired, snap.CheckIns[0].NervousSystem)
	assert.Equal(t, []string{"caffeine", "screens"}, snap.CheckIns[0].Factors)
	assert.Empty(t, snap.CheckIns[1].Factors)
}

func TestReadCSVReportsRowOfInvalidValue(t *testing.T) {
	doc := "date,energy,nervousSystem\n2024-06-01,high,calm\n2024-06-02,sleepy,calm\n"

	_, err := ReadCSV(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidEnergy)
	assert.Contains(t, err.Error(), "row 3")
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadSnapshot()
	assert.ErrorContains(t, err, "CSV file not found")
}
