// Package api serves the JSON API consumed by the Life OS frontend.
package api

import (
	"net/http"
	"strconv"
	"time"

	"lifeos/app"
	"lifeos/domain/core"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/ports"

	"github.com/gin-gonic/gin"
)

// Services are the application services behind the API
type Services struct {
	Daily    *app.DailyService
	Tracker  *app.TrackerService
	Insights *app.InsightService
	Journal  *app.JournalService
	Goals    *app.GoalService
	Transfer *app.TransferService
	Digests  *app.DigestScheduler

	// Location is the zone browser dump timestamps are read in
	Location *time.Location
}

// Server wires handlers onto a gin engine
type Server struct {
	svc    Services
	hub    *SSEHub
	today  func() core.Day
	clock  core.Clock
	logger *internal.Logger
	router *gin.Engine
}

// NewServer builds the router. hub may be nil, which disables /events.
func NewServer(svc Services, hub *SSEHub, clock core.Clock, logger *internal.Logger) *Server {
	if clock == nil {
		clock = core.SystemClock
	}
	s := &Server{
		svc:    svc,
		hub:    hub,
		today:  svc.Insights.Today,
		clock:  clock,
		logger: logger.With("api"),
		router: gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "today": s.today()})
	})

	v1 := s.router.Group("/api/v1")
	if s.hub != nil {
		v1.GET("/events", s.hub.HandleSSE)
	}

	checkins := v1.Group("/checkins")
	checkins.POST("", s.recordCheckIn)
	checkins.GET("", s.listCheckIns)
	checkins.GET("/:date", s.getCheckIn)
	checkins.DELETE("/:date", s.deleteCheckIn)

	expressions := v1.Group("/expressions")
	expressions.POST("", s.recordExpression)
	expressions.GET("", s.listExpressions)

	smokefree := v1.Group("/smokefree")
	smokefree.GET("/profile", s.getProfile)
	smokefree.PUT("/profile", s.setQuitDate)
	smokefree.GET("/statuses", s.listStatuses)
	smokefree.PUT("/statuses/:date", s.setDayStatus)
	smokefree.GET("/stats", s.smokeFreeStats)
	smokefree.POST("/urges", s.logUrge)
	smokefree.GET("/urges", s.listUrges)
	smokefree.DELETE("/urges/:id", s.deleteUrge)

	insights := v1.Group("/insights")
	insights.GET("/weekly", s.weeklySummary)
	insights.GET("/dashboard", s.dashboard)
	insights.GET("/trends", s.trends)

	digests := v1.Group("/digests")
	digests.GET("", s.listDigests)
	digests.GET("/latest", s.latestDigest)
	digests.POST("", s.runDigest)

	journal := v1.Group("/journal")
	journal.POST("", s.createEntry)
	journal.GET("", s.listEntries)
	journal.GET("/:id", s.getEntry)
	journal.PUT("/:id", s.updateEntry)
	journal.DELETE("/:id", s.deleteEntry)

	goals := v1.Group("/goals")
	goals.POST("", s.createGoal)
	goals.GET("", s.listGoals)
	goals.GET("/:id", s.getGoal)
	goals.PUT("/:id", s.updateGoal)
	goals.PATCH("/:id/status", s.setGoalStatus)
	goals.POST("/:id/milestones/:milestoneId/toggle", s.toggleMilestone)
	goals.DELETE("/:id", s.deleteGoal)

	v1.GET("/export.xlsx", s.exportXLSX)
	v1.GET("/export.yaml", s.exportYAML)
	v1.POST("/import", s.importSnapshot)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// respondError writes err with the status its code maps to
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

func (s *Server) badRequest(c *gin.Context, message string) {
	s.respondError(c, errors.InvalidInput(message))
}

func (s *Server) publish(eventType string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(ports.Event{Type: eventType, Data: data, Timestamp: s.clock().UTC()})
}

// dayParam parses a path parameter holding a YYYY-MM-DD day
func dayParam(c *gin.Context, name string) (core.Day, error) {
	day, err := core.ParseDay(c.Param(name))
	if err != nil {
		return "", errors.Wrapf(err, "invalid %s", name)
	}
	return day, nil
}

// dayRange reads from/to query parameters, defaulting to the days ending today
func (s *Server) dayRange(c *gin.Context, days int) (core.Day, core.Day, error) {
	to := s.today()
	if raw := c.Query("to"); raw != "" {
		d, err := core.ParseDay(raw)
		if err != nil {
			return "", "", errors.Wrap(err, "invalid to")
		}
		to = d
	}
	from := to.AddDays(-(days - 1))
	if raw := c.Query("from"); raw != "" {
		d, err := core.ParseDay(raw)
		if err != nil {
			return "", "", errors.Wrap(err, "invalid from")
		}
		from = d
	}
	if to.Before(from) {
		return "", "", errors.InvalidInput("from must not be after to")
	}
	return from, to, nil
}

func queryInt(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.InvalidInput(name + " must be a non-negative integer")
	}
	return n, nil
}
