package app

import (
	"context"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/insight"
	"lifeos/domain/journal"
	"lifeos/domain/wellness"
	"lifeos/internal"

	"github.com/stretchr/testify/mock"
)

var (
	testNow   = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	testClock = core.FixedClock(testNow)
	testToday = func() core.Day { return "2024-06-30" }
)

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) UpsertCheckIn(ctx context.Context, c wellness.EnergyCheckIn) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCheckInRepository) GetCheckIn(ctx context.Context, day core.Day) (*wellness.EnergyCheckIn, error) {
	args := m.Called(ctx, day)
	c, _ := args.Get(0).(*wellness.EnergyCheckIn)
	return c, args.Error(1)
}

func (m *MockCheckInRepository) ListCheckIns(ctx context.Context, from, to core.Day) ([]wellness.EnergyCheckIn, error) {
	args := m.Called(ctx, from, to)
	checkins, _ := args.Get(0).([]wellness.EnergyCheckIn)
	return checkins, args.Error(1)
}

func (m *MockCheckInRepository) DeleteCheckIn(ctx context.Context, day core.Day) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

type MockSmokeFreeRepository struct {
	mock.Mock
}

func (m *MockSmokeFreeRepository) GetProfile(ctx context.Context) (*wellness.SmokeFreeProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*wellness.SmokeFreeProfile)
	return p, args.Error(1)
}

func (m *MockSmokeFreeRepository) SaveProfile(ctx context.Context, p wellness.SmokeFreeProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockSmokeFreeRepository) SetDayStatus(ctx context.Context, day core.Day, status wellness.SmokeStatus) error {
	args := m.Called(ctx, day, status)
	return args.Error(0)
}

func (m *MockSmokeFreeRepository) SetDayStatuses(ctx context.Context, statuses wellness.DayStatuses) error {
	args := m.Called(ctx, statuses)
	return args.Error(0)
}

func (m *MockSmokeFreeRepository) ListDayStatuses(ctx context.Context, from, to core.Day) (wellness.DayStatuses, error) {
	args := m.Called(ctx, from, to)
	s, _ := args.Get(0).(wellness.DayStatuses)
	return s, args.Error(1)
}

type MockUrgeRepository struct {
	mock.Mock
}

func (m *MockUrgeRepository) SaveUrge(ctx context.Context, u wellness.UrgeEntry) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUrgeRepository) ListUrges(ctx context.Context, from, to core.Day) ([]wellness.UrgeEntry, error) {
	args := m.Called(ctx, from, to)
	u, _ := args.Get(0).([]wellness.UrgeEntry)
	return u, args.Error(1)
}

func (m *MockUrgeRepository) DeleteUrge(ctx context.Context, id core.UrgeID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockExpressionRepository struct {
	mock.Mock
}

func (m *MockExpressionRepository) UpsertExpression(ctx context.Context, e wellness.SelfExpression) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpressionRepository) ListExpressions(ctx context.Context, from, to core.Day) ([]wellness.SelfExpression, error) {
	args := m.Called(ctx, from, to)
	e, _ := args.Get(0).([]wellness.SelfExpression)
	return e, args.Error(1)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, e *journal.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, e *journal.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockJournalRepository) GetEntry(ctx context.Context, id core.JournalEntryID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*journal.Entry)
	return e, args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter journal.Filter) ([]*journal.Entry, error) {
	args := m.Called(ctx, filter)
	e, _ := args.Get(0).([]*journal.Entry)
	return e, args.Error(1)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, id core.JournalEntryID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) CreateGoal(ctx context.Context, g *goal.Goal) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGoalRepository) GetGoal(ctx context.Context, id core.GoalID) (*goal.Goal, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*goal.Goal)
	return g, args.Error(1)
}

func (m *MockGoalRepository) ListGoals(ctx context.Context, status goal.Status) ([]*goal.Goal, error) {
	args := m.Called(ctx, status)
	g, _ := args.Get(0).([]*goal.Goal)
	return g, args.Error(1)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, id core.GoalID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDigestRepository struct {
	mock.Mock
}

func (m *MockDigestRepository) SaveDigest(ctx context.Context, d *insight.WeeklyDigest) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDigestRepository) LatestDigest(ctx context.Context) (*insight.WeeklyDigest, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(*insight.WeeklyDigest)
	return d, args.Error(1)
}

func (m *MockDigestRepository) ListDigests(ctx context.Context, limit int) ([]*insight.WeeklyDigest, error) {
	args := m.Called(ctx, limit)
	d, _ := args.Get(0).([]*insight.WeeklyDigest)
	return d, args.Error(1)
}
