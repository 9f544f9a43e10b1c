package app

import (
	"context"
	"testing"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTrackerServiceSetQuitDateFillsClean(t *testing.T) {
	repo := new(MockSmokeFreeRepository)
	svc := NewTrackerService(repo, new(MockUrgeRepository), testClock, testToday, testLogger())

	repo.On("SaveProfile", mock.Anything, wellness.SmokeFreeProfile{
		QuitDate: "2024-06-28", CigarettesPerDay: 10, CostPerPack: 10, CigarettesPerPack: 20,
	}).Return(nil)
	repo.On("SetDayStatuses", mock.Anything, mock.MatchedBy(func(s wellness.DayStatuses) bool {
		return len(s) == 3 && s["2024-06-28"] == wellness.StatusClean && s["2024-06-30"] == wellness.StatusClean
	})).Return(nil)

	profile, err := svc.SetQuitDate(context.Background(), wellness.SmokeFreeProfile{QuitDate: "2024-06-28"})
	require.NoError(t, err)
	assert.Equal(t, 10, profile.CigarettesPerDay)
	repo.AssertExpectations(t)
}

func TestTrackerServiceRejectsBadDates(t *testing.T) {
	svc := NewTrackerService(new(MockSmokeFreeRepository), new(MockUrgeRepository), testClock, testToday, testLogger())
	ctx := context.Background()

	_, err := svc.SetQuitDate(ctx, wellness.SmokeFreeProfile{QuitDate: "2024-07-02"})
	assert.ErrorIs(t, err, core.ErrFutureDay)

	_, err = svc.SetQuitDate(ctx, wellness.SmokeFreeProfile{QuitDate: "June"})
	assert.ErrorIs(t, err, core.ErrInvalidDay)

	assert.ErrorIs(t, svc.SetDayStatus(ctx, "2024-06-30", "relapse"), core.ErrInvalidStatus)
	assert.ErrorIs(t, svc.SetDayStatus(ctx, "2024-07-01", wellness.StatusVape), core.ErrFutureDay)
}

func TestTrackerServiceStats(t *testing.T) {
	repo := new(MockSmokeFreeRepository)
	svc := NewTrackerService(repo, new(MockUrgeRepository), testClock, testToday, testLogger())

	repo.On("GetProfile", mock.Anything).Return(&wellness.SmokeFreeProfile{QuitDate: "2024-06-21"}, nil)
	repo.On("ListDayStatuses", mock.Anything, core.Day("2024-06-21"), core.Day("2024-06-30")).
		Return(wellness.DayStatuses{"2024-06-27": wellness.StatusVape}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, stats.DaysSinceQuit)
	assert.Equal(t, 3, stats.VapeFreeStreak)
	assert.Equal(t, 6, stats.LongestCleanRun)
}

func TestTrackerServiceStatsWithoutProfile(t *testing.T) {
	repo := new(MockSmokeFreeRepository)
	svc := NewTrackerService(repo, new(MockUrgeRepository), testClock, testToday, testLogger())
	repo.On("GetProfile", mock.Anything).Return(nil, core.ErrProfileNotFound)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.VapeFreeStreak)
	repo.AssertNotCalled(t, "ListDayStatuses", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackerServiceLogUrge(t *testing.T) {
	urges := new(MockUrgeRepository)
	svc := NewTrackerService(new(MockSmokeFreeRepository), urges, testClock, testToday, testLogger())

	urges.On("SaveUrge", mock.Anything, mock.MatchedBy(func(u wellness.UrgeEntry) bool {
		return u.ID != "" && u.At.Equal(testNow) && u.Day == "2024-06-30" &&
			u.Intensity == wellness.UrgeMedium && u.Trigger == "Stress" && u.Notes == ""
	})).Return(nil)

	urge, err := svc.LogUrge(context.Background(), UrgeInput{Trigger: "  Stress ", Notes: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Medium", urge.Intensity.Label())
	urges.AssertExpectations(t)
}

func TestTrackerServiceLogUrgeRejectsIntensity(t *testing.T) {
	urges := new(MockUrgeRepository)
	svc := NewTrackerService(new(MockSmokeFreeRepository), urges, testClock, testToday, testLogger())

	_, err := svc.LogUrge(context.Background(), UrgeInput{Intensity: 6})
	assert.ErrorIs(t, err, core.ErrInvalidUrge)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	urges.AssertNotCalled(t, "SaveUrge", mock.Anything, mock.Anything)
}

func TestTrackerServiceListUrges(t *testing.T) {
	urges := new(MockUrgeRepository)
	svc := NewTrackerService(new(MockSmokeFreeRepository), urges, testClock, testToday, testLogger())

	urges.On("ListUrges", mock.Anything, core.Day(""), core.Day("")).Return([]wellness.UrgeEntry{
		{ID: "old", At: testNow.Add(-30 * time.Hour), Day: "2024-06-29", Intensity: wellness.UrgeMild},
		{ID: "new", At: testNow.Add(-time.Hour), Day: "2024-06-30", Intensity: wellness.UrgeStrong},
		{ID: "mid", At: testNow.Add(-2 * time.Hour), Day: "2024-06-30", Intensity: wellness.UrgeExtreme},
	}, nil)

	page, err := svc.ListUrges(context.Background(), "", "", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Today)
	assert.Equal(t, map[core.Day]int{"2024-06-29": 1, "2024-06-30": 2}, page.ByDay)
	require.Len(t, page.Urges, 2)
	assert.Equal(t, core.UrgeID("new"), page.Urges[0].ID)
	assert.Equal(t, core.UrgeID("mid"), page.Urges[1].ID)
}

func TestTrackerServiceDeleteUrge(t *testing.T) {
	urges := new(MockUrgeRepository)
	svc := NewTrackerService(new(MockSmokeFreeRepository), urges, testClock, testToday, testLogger())

	urges.On("DeleteUrge", mock.Anything, core.UrgeID("u-1")).Return(nil)
	urges.On("DeleteUrge", mock.Anything, core.UrgeID("nope")).Return(core.ErrUrgeNotFound)

	require.NoError(t, svc.DeleteUrge(context.Background(), "u-1"))
	err := svc.DeleteUrge(context.Background(), "nope")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
