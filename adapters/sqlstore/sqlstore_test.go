package sqlstore

import (
	"context"
	"testing"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/insight"
	"lifeos/domain/journal"
	"lifeos/domain/wellness"
	"lifeos/internal/config"
	"lifeos/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.NewRunner().Run(ctx, db))
	return db
}

func TestMigrationIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, migration.NewRunner().Run(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestCheckInRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCheckInRepository(newTestDB(t))

	first := wellness.EnergyCheckIn{
		Date:          "2024-06-01",
		Energy:        wellness.EnergyLow,
		NervousSystem: wellness.NervousAnxious,
		Factors:       []string{"work", "sleep"},
	}
	require.NoError(t, repo.UpsertCheckIn(ctx, first))
	require.NoError(t, repo.UpsertCheckIn(ctx, wellness.EnergyCheckIn{
		Date: "2024-06-03", Energy: wellness.EnergyHigh, NervousSystem: wellness.NervousCalm,
	}))

	got, err := repo.GetCheckIn(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, first, *got)

	// a second write for the same day replaces the first
	first.Energy = wellness.EnergyMedium
	first.Note = "better after lunch"
	require.NoError(t, repo.UpsertCheckIn(ctx, first))

	all, err := repo.ListCheckIns(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, wellness.EnergyMedium, all[0].Energy)
	assert.Equal(t, "better after lunch", all[0].Note)
	assert.Equal(t, core.Day("2024-06-03"), all[1].Date)
	assert.Equal(t, []string{}, all[1].Factors)

	ranged, err := repo.ListCheckIns(ctx, "2024-06-02", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, core.Day("2024-06-03"), ranged[0].Date)

	require.NoError(t, repo.DeleteCheckIn(ctx, "2024-06-03"))
	_, err = repo.GetCheckIn(ctx, "2024-06-03")
	assert.True(t, core.IsNotFoundError(err))
	assert.True(t, core.IsNotFoundError(repo.DeleteCheckIn(ctx, "2024-06-03")))
}

func TestSmokeFreeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSmokeFreeRepository(newTestDB(t))

	_, err := repo.GetProfile(ctx)
	assert.ErrorIs(t, err, core.ErrProfileNotFound)

	profile := wellness.SmokeFreeProfile{QuitDate: "2024-05-01", CigarettesPerDay: 15, CostPerPack: 12.5, CigarettesPerPack: 20}
	require.NoError(t, repo.SaveProfile(ctx, profile))
	profile.QuitDate = "2024-05-10"
	require.NoError(t, repo.SaveProfile(ctx, profile))

	got, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, *got)

	require.NoError(t, repo.SetDayStatuses(ctx, wellness.DayStatuses{
		"2024-05-10": wellness.StatusClean,
		"2024-05-11": wellness.StatusVape,
		"2024-05-12": wellness.StatusCigarette,
	}))
	require.NoError(t, repo.SetDayStatus(ctx, "2024-05-11", wellness.StatusClean))

	statuses, err := repo.ListDayStatuses(ctx, "2024-05-11", "")
	require.NoError(t, err)
	assert.Equal(t, wellness.DayStatuses{
		"2024-05-11": wellness.StatusClean,
		"2024-05-12": wellness.StatusCigarette,
	}, statuses)
}

func TestExpressionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewExpressionRepository(newTestDB(t))

	require.NoError(t, repo.UpsertExpression(ctx, wellness.SelfExpression{Date: "2024-06-02", Expressed: true, Types: []string{"writing"}}))
	require.NoError(t, repo.UpsertExpression(ctx, wellness.SelfExpression{Date: "2024-06-01", Expressed: false}))
	require.NoError(t, repo.UpsertExpression(ctx, wellness.SelfExpression{Date: "2024-06-01", Expressed: true, Types: []string{"music"}}))

	got, err := repo.ListExpressions(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, core.Day("2024-06-01"), got[0].Date)
	assert.True(t, got[0].Expressed)
	assert.Equal(t, []string{"music"}, got[0].Types)
	assert.Equal(t, []string{"writing"}, got[1].Types)
}

func TestUrgeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUrgeRepository(newTestDB(t))

	morning := time.Date(2024, 6, 29, 8, 0, 0, 0, time.UTC)
	first := wellness.UrgeEntry{ID: "u-1", At: morning, Day: "2024-06-29", Intensity: wellness.UrgeStrong, Trigger: "Stress"}
	require.NoError(t, repo.SaveUrge(ctx, first))
	require.NoError(t, repo.SaveUrge(ctx, wellness.UrgeEntry{
		ID: "u-2", At: morning.Add(25 * time.Hour), Day: "2024-06-30", Intensity: wellness.UrgeMild, Replacement: "Drank water",
	}))

	first.Notes = "rode it out"
	require.NoError(t, repo.SaveUrge(ctx, first))

	all, err := repo.ListUrges(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, core.UrgeID("u-2"), all[0].ID, "newest first")
	assert.Equal(t, first, all[1])

	day, err := repo.ListUrges(ctx, "2024-06-29", "2024-06-29")
	require.NoError(t, err)
	require.Len(t, day, 1)

	require.NoError(t, repo.DeleteUrge(ctx, "u-1"))
	assert.ErrorIs(t, repo.DeleteUrge(ctx, "u-1"), core.ErrUrgeNotFound)
}

func TestJournalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository(newTestDB(t))
	now := time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)

	older := &journal.Entry{ID: "j-1", Date: "2024-06-01", Content: "Long walk by the river", Mood: journal.MoodGood, Tags: []string{"Outdoors"}, CreatedAt: now, UpdatedAt: now}
	newer := &journal.Entry{ID: "j-2", Date: "2024-06-02", Content: "Rough day at work", Mood: journal.MoodDown, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateEntry(ctx, older))
	require.NoError(t, repo.CreateEntry(ctx, newer))

	got, err := repo.GetEntry(ctx, "j-1")
	require.NoError(t, err)
	assert.Equal(t, older.Content, got.Content)
	assert.Equal(t, []string{"Outdoors"}, got.Tags)
	assert.True(t, now.Equal(got.CreatedAt))

	all, err := repo.ListEntries(ctx, journal.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, core.JournalEntryID("j-2"), all[0].ID, "newest first")

	byTag, err := repo.ListEntries(ctx, journal.Filter{Tag: "outdoors"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, core.JournalEntryID("j-1"), byTag[0].ID)

	byMood, err := repo.ListEntries(ctx, journal.Filter{Mood: journal.MoodDown, Query: "WORK"})
	require.NoError(t, err)
	require.Len(t, byMood, 1)

	limited, err := repo.ListEntries(ctx, journal.Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	newer.Content = "Rough day, better evening"
	newer.UpdatedAt = now.Add(time.Hour)
	require.NoError(t, repo.UpdateEntry(ctx, newer))
	got, err = repo.GetEntry(ctx, "j-2")
	require.NoError(t, err)
	assert.Equal(t, "Rough day, better evening", got.Content)

	require.NoError(t, repo.DeleteEntry(ctx, "j-2"))
	_, err = repo.GetEntry(ctx, "j-2")
	assert.ErrorIs(t, err, core.ErrJournalEntryNotFound)
	assert.ErrorIs(t, repo.UpdateEntry(ctx, newer), core.ErrJournalEntryNotFound)
}

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestDB(t))
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	g := &goal.Goal{
		ID: "g-1", Title: "Run a 10k", Category: goal.CategoryHealth, Timeframe: goal.ShortTerm,
		Status: goal.StatusActive, Priority: 4, StartDate: "2024-06-01", TargetDate: "2024-09-01",
		Milestones: []goal.Milestone{{ID: "m-1", Title: "5k", TargetValue: 5}, {ID: "m-2", Title: "10k", TargetValue: 10}},
		CreatedAt: now, UpdatedAt: now,
	}
	paused := &goal.Goal{
		ID: "g-2", Title: "Learn Go generics", Category: goal.CategoryLearning, Timeframe: goal.LongTerm,
		Status: goal.StatusPaused, Priority: 2, StartDate: "2024-06-01", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.CreateGoal(ctx, g))
	require.NoError(t, repo.CreateGoal(ctx, paused))

	got, err := repo.GetGoal(ctx, "g-1")
	require.NoError(t, err)
	require.Len(t, got.Milestones, 2)
	assert.Equal(t, "10k", got.Milestones[1].Title)
	assert.Equal(t, core.Day("2024-09-01"), got.TargetDate)

	active, err := repo.ListGoals(ctx, goal.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)

	all, err := repo.ListGoals(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, core.GoalID("g-1"), all[0].ID, "higher priority first")
	assert.Equal(t, []goal.Milestone{}, all[1].Milestones)

	g.Milestones[0].Completed = true
	g.Progress = goal.MilestoneProgress(g.Milestones)
	require.NoError(t, repo.UpdateGoal(ctx, g))
	got, err = repo.GetGoal(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
	assert.True(t, got.Milestones[0].Completed)

	require.NoError(t, repo.DeleteGoal(ctx, "g-2"))
	assert.ErrorIs(t, repo.DeleteGoal(ctx, "g-2"), core.ErrGoalNotFound)
}

func TestDigestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDigestRepository(newTestDB(t))

	_, err := repo.LatestDigest(ctx)
	assert.ErrorIs(t, err, core.ErrDigestNotFound)

	summary := insight.WeeklySummary{
		Insights: []insight.Insight{{Type: insight.TypeStreak, Title: "5-Day Vape-Free Streak", Priority: insight.PriorityMedium}},
		Stats:    insight.Stats{AvgEnergy: 2.5, TopFactors: []insight.FactorCount{{Factor: "work", Count: 2}}},
	}
	at := time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveDigest(ctx, &insight.WeeklyDigest{ID: "d-1", WeekEnding: "2024-06-09", Summary: summary, Fingerprint: "aa", CreatedAt: at}))
	require.NoError(t, repo.SaveDigest(ctx, &insight.WeeklyDigest{ID: "d-2", WeekEnding: "2024-06-16", Summary: summary, Fingerprint: "bb", CreatedAt: at.AddDate(0, 0, 7)}))
	// rerun for the same week replaces the stored digest
	require.NoError(t, repo.SaveDigest(ctx, &insight.WeeklyDigest{ID: "d-3", WeekEnding: "2024-06-16", Summary: summary, Fingerprint: "cc", CreatedAt: at.AddDate(0, 0, 7)}))

	latest, err := repo.LatestDigest(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DigestID("d-3"), latest.ID)
	assert.Equal(t, core.Hash("cc"), latest.Fingerprint)
	assert.Equal(t, "5-Day Vape-Free Streak", latest.Summary.Insights[0].Title)
	assert.Equal(t, 2.5, latest.Summary.Stats.AvgEnergy)

	digests, err := repo.ListDigests(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, digests, 2)
}
