package yamlio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/journal"
	"lifeos/domain/snapshot"
	"lifeos/domain/wellness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHandwrittenSnapshot(t *testing.T) {
	doc := `
version: 1
profile:
  quitDate: "2024-05-01"
  cigarettesPerDay: 12
checkIns:
  - date: 2024-06-01
    energy: low
    nervousSystem: anxious
    factors: [work, sleep]
dayStatuses:
  "2024-06-01": vape
  "2024-06-02": clean
expressions:
  - date: "2024-06-01"
    expressed: true
    types: [music]
`
	snap, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	require.NotNil(t, snap.Profile)
	assert.Equal(t, core.Day("2024-05-01"), snap.Profile.QuitDate)
	assert.Equal(t, 12, snap.Profile.CigarettesPerDay)
	require.Len(t, snap.CheckIns, 1)
	assert.Equal(t, core.Day("2024-06-01"), snap.CheckIns[0].Date)
	assert.Equal(t, []string{"work", "sleep"}, snap.CheckIns[0].Factors)
	assert.Equal(t, wellness.StatusVape, snap.DayStatuses["2024-06-01"])
	assert.Empty(t, snap.Goals)
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	_, err := Decode(strings.NewReader("version: 1\ncheckIns:\n  - date: \"2024-06-01\"\n    energy: sleepy\n    nervousSystem: calm\n"))
	assert.ErrorIs(t, err, core.ErrInvalidEnergy)

	_, err = Decode(strings.NewReader("version: 99\n"))
	assert.ErrorContains(t, err, "newer")

	_, err = Decode(strings.NewReader("dayStatuses:\n  \"2024-06-01\": relapse\n"))
	assert.ErrorIs(t, err, core.ErrInvalidStatus)
}

func TestEncodeThenReadFile(t *testing.T) {
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	snap := snapshot.New(created)
	snap.CheckIns = append(snap.CheckIns, wellness.EnergyCheckIn{Date: "2024-06-01", Energy: wellness.EnergyHigh, NervousSystem: wellness.NervousCalm})
	snap.DayStatuses["2024-06-01"] = wellness.StatusCigarette
	snap.Journal = append(snap.Journal, &journal.Entry{ID: "j-1", Date: "2024-06-01", Content: "## Notes\n- walked", CreatedAt: created, UpdatedAt: created})
	snap.Goals = append(snap.Goals, &goal.Goal{
		ID: "g-1", Title: "Walk daily", Category: goal.CategoryHealth, Timeframe: goal.ShortTerm,
		Status: goal.StatusActive, Priority: 3, StartDate: "2024-06-01", CreatedAt: created, UpdatedAt: created,
	})
	snap.Urges = append(snap.Urges, wellness.UrgeEntry{ID: "u-1", At: created, Day: "2024-06-01", Intensity: wellness.UrgeExtreme, Trigger: "Alcohol"})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))
	assert.Contains(t, buf.String(), "nervousSystem: calm")

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, WriteFile(path, snap))
	got, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, snap.Counts(), got.Counts())
	assert.Equal(t, "## Notes\n- walked", got.Journal[0].Content)
	assert.True(t, created.Equal(got.ExportedAt))
	assert.Equal(t, wellness.StatusCigarette, got.DayStatuses["2024-06-01"])
	require.Len(t, got.Urges, 1)
	assert.Equal(t, wellness.UrgeExtreme, got.Urges[0].Intensity)
	assert.True(t, created.Equal(got.Urges[0].At))
}
