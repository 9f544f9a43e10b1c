// Package ui serves the server-rendered Life OS dashboard.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"lifeos/app"
	"lifeos/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Services are the application services the pages read from
type Services struct {
	Daily    *app.DailyService
	Tracker  *app.TrackerService
	Insights *app.InsightService
	Journal  *app.JournalService
	Goals    *app.GoalService
	Digests  *app.DigestScheduler
}

// App represents the UI application
type App struct {
	router    *chi.Mux
	svc       Services
	templates *template.Template
	logger    *internal.Logger
}

// NewApp parses the templates and builds the router
func NewApp(svc Services, logger *internal.Logger) (*App, error) {
	templates, err := template.New("").Funcs(funcMap()).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		svc:       svc,
		templates: templates,
		logger:    logger.With("ui"),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// Handler exposes the router for http.Server and tests
func (a *App) Handler() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		a.logger.Error("static files unavailable: %v", err)
	} else {
		a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	a.router.Get("/", a.handleIndex)
	a.router.Post("/checkin", a.handleCheckIn)
	a.router.Get("/tracker", a.handleTracker)
	a.router.Post("/tracker/{date}", a.handleSetStatus)
	a.router.Post("/tracker/urges", a.handleLogUrge)
	a.router.Post("/tracker/urges/{id}/delete", a.handleDeleteUrge)

	a.router.Route("/journal", func(r chi.Router) {
		r.Get("/", a.handleJournal)
		r.Post("/", a.handleJournalCreate)
		r.Get("/{id}", a.handleJournalEntry)
	})

	a.router.Get("/goals", a.handleGoals)
	a.router.Post("/goals/{id}/milestones/{milestoneID}", a.handleToggleMilestone)
	a.router.Get("/digests", a.handleDigests)
}
