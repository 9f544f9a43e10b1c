package browserdump

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/journal"
	"lifeos/domain/wellness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestReader(t *testing.T, zone string) *Reader {
	t.Helper()
	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)
	r := NewReader(loc)
	r.Now = func() time.Time { return fixedNow }
	return r
}

const fullDump = `{
	"lifeos_energy_checkins": [
		{"date": "2024-06-28", "energy": "low", "nervousSystem": "wired", "factors": ["poor sleep", " "], "note": "rough"},
		{"date": "2024-06-29", "energy": "sleepy", "nervousSystem": "calm"}
	],
	"lifeos_self_expression": "[{\"date\":\"2024-06-29\",\"expressed\":true,\"types\":[\"music\"]},{\"expressed\":true}]",
	"lifeos_trackers": {
		"smokeFree": {
			"quitDate": "2024-06-01",
			"quitVapeDate": "2024-06-10",
			"dayStatuses": {"2024-06-10": true, "2024-06-11": false, "2024-06-12": "Cigarette", "2024-06-13": "unknown"}
		},
		"water": {"glasses": 3}
	},
	"lifeos_journal": [
		{"id": "1719720000000", "date": "2024-06-29T04:00:00.000Z", "content": "# Good day", "mood": "Good", "tags": ["walk"], "createdAt": "2024-06-29T20:00:00.000Z", "updatedAt": "2024-06-29T20:00:00.000Z"},
		{"id": "1719720000001", "date": "2024-06-29T04:00:00.000Z", "content": "   "}
	],
	"lifeos_goals": [
		{"id": "g1", "title": "Run a 10k", "description": "", "category": "Health", "type": "long-term", "progress": 40, "target": 100, "startDate": "2024-06-01", "targetDate": "2024-09-01", "createdAt": "2024-06-01T10:00:00.000Z"},
		{"id": "g2", "title": "Read", "category": "learning", "timeframe": "short-term", "status": "paused", "priority": 2, "archived": true,
		 "milestones": [{"id": "m1", "title": "First book", "targetValue": 1, "completed": true, "completedAt": "2024-06-15T08:00:00Z"}],
		 "startDate": "2024-06-01", "createdAt": "2024-06-01T10:00:00Z"},
		{"id": "g3", "title": "", "category": "work"}
	],
	"lifeos_urge_log": [
		{"id": "1719700000000", "timestamp": "2024-06-29T01:30:00.000Z", "intensity": 4, "trigger": "Stress", "replacement": "Deep breathing"},
		{"id": "1719710000000", "timestamp": "2024-06-29T20:00:00.000Z", "intensity": 1, "notes": "  "},
		{"id": "1719720000000", "timestamp": "2024-06-29T21:00:00.000Z", "intensity": 9},
		{"id": "1719730000000", "intensity": 3}
	],
	"lifeos_user": {"name": "someone"}
}`

func TestReadFullDump(t *testing.T) {
	snap, err := newTestReader(t, "America/New_York").Read(strings.NewReader(fullDump))
	require.NoError(t, err)

	assert.Equal(t, fixedNow, snap.ExportedAt)

	require.Len(t, snap.CheckIns, 1)
	assert.Equal(t, core.Day("2024-06-28"), snap.CheckIns[0].Date)
	assert.Equal(t, wellness.EnergyLow, snap.CheckIns[0].Energy)
	assert.Equal(t, []string{"poor sleep"}, snap.CheckIns[0].Factors)
	assert.Equal(t, "rough", snap.CheckIns[0].Note)

	require.Len(t, snap.Expressions, 1)
	assert.True(t, snap.Expressions[0].Expressed)
	assert.Equal(t, []string{"music"}, snap.Expressions[0].Types)

	require.NotNil(t, snap.Profile)
	assert.Equal(t, core.Day("2024-06-10"), snap.Profile.QuitDate)
	assert.Equal(t, wellness.DefaultCigarettesPerDay, snap.Profile.CigarettesPerDay)
	assert.Equal(t, wellness.DayStatuses{
		"2024-06-10": wellness.StatusClean,
		"2024-06-11": wellness.StatusVape,
		"2024-06-12": wellness.StatusCigarette,
	}, snap.DayStatuses)

	require.Len(t, snap.Journal, 1)
	entry := snap.Journal[0]
	assert.Equal(t, core.JournalEntryID("1719720000000"), entry.ID)
	assert.Equal(t, core.Day("2024-06-29"), entry.Date)
	assert.Equal(t, journal.MoodGood, entry.Mood)

	require.Len(t, snap.Goals, 2)
	run := snap.Goals[0]
	assert.Equal(t, goal.CategoryHealth, run.Category)
	assert.Equal(t, goal.LongTerm, run.Timeframe)
	assert.Equal(t, goal.StatusActive, run.Status)
	assert.Equal(t, 3, run.Priority)
	assert.Equal(t, core.Day("2024-09-01"), run.TargetDate)

	read := snap.Goals[1]
	assert.Equal(t, goal.StatusArchived, read.Status)
	assert.Equal(t, 2, read.Priority)
	require.Len(t, read.Milestones, 1)
	assert.True(t, read.Milestones[0].Completed)
	require.NotNil(t, read.Milestones[0].CompletedAt)

	require.Len(t, snap.Urges, 2)
	assert.Equal(t, core.UrgeID("1719710000000"), snap.Urges[0].ID, "newest first")
	assert.Equal(t, "", snap.Urges[0].Notes)
	stress := snap.Urges[1]
	assert.Equal(t, wellness.UrgeStrong, stress.Intensity)
	assert.Equal(t, "Deep breathing", stress.Replacement)
	assert.Equal(t, core.Day("2024-06-28"), stress.Day, "01:30 UTC is still the 28th in New York")

	require.NoError(t, snap.Validate())
}

func TestJournalDayFollowsLocation(t *testing.T) {
	dump := `{"lifeos_journal": [{"id": "1", "date": "2024-06-28T22:00:00.000Z", "content": "late"}]}`

	snap, err := newTestReader(t, "Europe/Berlin").Read(strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, snap.Journal, 1)
	assert.Equal(t, core.Day("2024-06-29"), snap.Journal[0].Date)

	snap, err = newTestReader(t, "UTC").Read(strings.NewReader(dump))
	require.NoError(t, err)
	require.Len(t, snap.Journal, 1)
	assert.Equal(t, core.Day("2024-06-28"), snap.Journal[0].Date)
}

func TestReadEmptyObject(t *testing.T) {
	snap, err := newTestReader(t, "UTC").Read(strings.NewReader(`{}`))
	require.NoError(t, err)

	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.CheckIns)
	assert.Empty(t, snap.DayStatuses)
	assert.Empty(t, snap.Journal)
	assert.Empty(t, snap.Goals)
	assert.Empty(t, snap.Urges)
}

func TestTrackerWithoutQuitDate(t *testing.T) {
	dump := `{"lifeos_trackers": "{\"smokeFree\":{\"dayStatuses\":{\"2024-06-01\":\"clean\"}}}"}`

	snap, err := newTestReader(t, "UTC").Read(strings.NewReader(dump))
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
	assert.Equal(t, wellness.StatusClean, snap.DayStatuses["2024-06-01"])
}

func TestReadRejectsNonObjects(t *testing.T) {
	r := newTestReader(t, "UTC")

	_, err := r.Read(strings.NewReader(`not json`))
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = r.Read(strings.NewReader(`[1, 2]`))
	assert.ErrorIs(t, err, core.ErrValidation)
}
