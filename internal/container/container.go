package container

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lifeos/adapters/browserdump"
	"lifeos/adapters/excel"
	"lifeos/adapters/sqlstore"
	"lifeos/adapters/yamlio"
	"lifeos/app"
	"lifeos/domain/core"
	"lifeos/domain/snapshot"
	"lifeos/internal"
	"lifeos/internal/api"
	"lifeos/internal/config"
	"lifeos/internal/migration"
	"lifeos/internal/patterns"
	"lifeos/ports"
	"lifeos/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Clock  core.Clock
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	CheckInRepo    ports.CheckInRepository
	SmokeFreeRepo  ports.SmokeFreeRepository
	ExpressionRepo ports.ExpressionRepository
	JournalRepo    ports.JournalRepository
	GoalRepo       ports.GoalRepository
	DigestRepo     ports.DigestRepository
	UrgeRepo       ports.UrgeRepository

	// Services
	Engine   *patterns.Engine
	Insights *app.InsightService
	Daily    *app.DailyService
	Tracker  *app.TrackerService
	Journal  *app.JournalService
	Goals    *app.GoalService
	Transfer *app.TransferService
	Digests  *app.DigestScheduler

	// Live updates
	SSEHub *api.SSEHub
}

// New creates a new dependency injection container. A nil clock uses the
// system clock.
func New(cfg *config.Config, clock core.Clock) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if clock == nil {
		clock = core.SystemClock
	}

	return &Container{
		Config: cfg,
		Clock:  clock,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
	}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	// Test database connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.initRepositories()
	c.initServices()

	log.Printf("Container initialized successfully with %s database", db.DriverName())
	return nil
}

// initRepositories initializes data access repositories
func (c *Container) initRepositories() {
	c.CheckInRepo = sqlstore.NewCheckInRepository(c.DB)
	c.SmokeFreeRepo = sqlstore.NewSmokeFreeRepository(c.DB)
	c.ExpressionRepo = sqlstore.NewExpressionRepository(c.DB)
	c.JournalRepo = sqlstore.NewJournalRepository(c.DB)
	c.GoalRepo = sqlstore.NewGoalRepository(c.DB)
	c.DigestRepo = sqlstore.NewDigestRepository(c.DB)
	c.UrgeRepo = sqlstore.NewUrgeRepository(c.DB)
}

func (c *Container) initServices() {
	ic := c.Config.Insights
	c.Engine = patterns.NewEngine(c.Clock, patterns.Options{
		ClampToQuitDate: ic.ClampToQuitDate,
		DedupeInsights:  ic.DedupeInsights,
		Location:        ic.Location,
	})
	today := c.Engine.Today

	c.Insights = app.NewInsightService(c.CheckInRepo, c.SmokeFreeRepo, c.ExpressionRepo, c.Engine, ic.HistoryDays, c.Logger)
	c.Daily = app.NewDailyService(c.CheckInRepo, c.ExpressionRepo, today, c.Logger)
	c.Tracker = app.NewTrackerService(c.SmokeFreeRepo, c.UrgeRepo, c.Clock, today, c.Logger)
	c.Journal = app.NewJournalService(c.JournalRepo, c.Clock, today, c.Logger)
	c.Goals = app.NewGoalService(c.GoalRepo, c.Clock, today, c.Logger)
	c.Transfer = app.NewTransferService(c.CheckInRepo, c.SmokeFreeRepo, c.ExpressionRepo, c.JournalRepo, c.GoalRepo, c.UrgeRepo, c.Clock, c.Logger)

	c.SSEHub = api.NewSSEHub()
	c.Digests = app.NewDigestScheduler(c.Insights, c.DigestRepo, c.Config.Digest.Schedule, c.Clock, ic.Location, c.Logger)
	c.Digests.SetBroadcaster(c.SSEHub)
}

// APIServices returns the services the JSON API is built on
func (c *Container) APIServices() api.Services {
	return api.Services{
		Daily:    c.Daily,
		Tracker:  c.Tracker,
		Insights: c.Insights,
		Journal:  c.Journal,
		Goals:    c.Goals,
		Transfer: c.Transfer,
		Digests:  c.Digests,
		Location: c.Config.Insights.Location,
	}
}

// UIServices returns the services the dashboard pages read from
func (c *Container) UIServices() ui.Services {
	return ui.Services{
		Daily:    c.Daily,
		Tracker:  c.Tracker,
		Insights: c.Insights,
		Journal:  c.Journal,
		Goals:    c.Goals,
		Digests:  c.Digests,
	}
}

// NewAPIServer builds the JSON API on the container's services
func (c *Container) NewAPIServer() *api.Server {
	return api.NewServer(c.APIServices(), c.SSEHub, c.Clock, c.Logger)
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Digests != nil {
		c.Digests.Stop()
	}
	if c.SSEHub != nil {
		c.SSEHub.Close()
	}

	// Close database connection
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// OpenDatabase opens the configured database and applies the schema
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return db, nil
}

// ReadSnapshotFile reads a snapshot from a YAML, xlsx, CSV or browser dump
// (.json) file, choosing the format by extension. loc is the zone browser
// dump timestamps are read in.
func ReadSnapshotFile(path string, loc *time.Location) (*snapshot.Snapshot, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlio.ReadFile(path)
	case ".xlsx", ".csv":
		return excel.NewDataReader(path).ReadSnapshot()
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open browser dump: %w", err)
		}
		defer f.Close()
		return browserdump.NewReader(loc).Read(f)
	default:
		return nil, fmt.Errorf("unsupported snapshot file %q: want .yaml, .xlsx, .csv or .json", filepath.Base(path))
	}
}
