package api

import (
	"net/http"

	"lifeos/app"
	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/internal/errors"
	"lifeos/ports"

	"github.com/gin-gonic/gin"
)

// defaultListDays is the range of a listing without from/to
const defaultListDays = 30

// defaultUrgeLimit is how many urges a listing returns without limit
const defaultUrgeLimit = 10

func (s *Server) recordCheckIn(c *gin.Context) {
	var req wellness.EnergyCheckIn
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid check-in body: "+err.Error())
		return
	}
	checkin, err := s.svc.Daily.RecordCheckIn(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventCheckInRecorded, map[string]interface{}{"date": checkin.Date, "energy": checkin.Energy})
	c.JSON(http.StatusOK, checkin)
}

func (s *Server) listCheckIns(c *gin.Context) {
	from, to, err := s.dayRange(c, defaultListDays)
	if err != nil {
		s.respondError(c, err)
		return
	}
	checkins, err := s.svc.Daily.ListCheckIns(c.Request.Context(), from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "checkIns": checkins})
}

func (s *Server) getCheckIn(c *gin.Context) {
	day, err := dayParam(c, "date")
	if err != nil {
		s.respondError(c, err)
		return
	}
	checkin, err := s.svc.Daily.GetCheckIn(c.Request.Context(), day)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkin)
}

func (s *Server) deleteCheckIn(c *gin.Context) {
	day, err := dayParam(c, "date")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.svc.Daily.DeleteCheckIn(c.Request.Context(), day); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) recordExpression(c *gin.Context) {
	var req wellness.SelfExpression
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid self-expression body: "+err.Error())
		return
	}
	expression, err := s.svc.Daily.RecordExpression(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventExpressionLogged, map[string]interface{}{"date": expression.Date, "expressed": expression.Expressed})
	c.JSON(http.StatusOK, expression)
}

func (s *Server) listExpressions(c *gin.Context) {
	from, to, err := s.dayRange(c, defaultListDays)
	if err != nil {
		s.respondError(c, err)
		return
	}
	expressions, err := s.svc.Daily.ListExpressions(c.Request.Context(), from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "expressions": expressions})
}

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.svc.Tracker.Profile(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) setQuitDate(c *gin.Context) {
	var req wellness.SmokeFreeProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid profile body: "+err.Error())
		return
	}
	profile, err := s.svc.Tracker.SetQuitDate(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventStatusChanged, map[string]interface{}{"quitDate": profile.QuitDate})
	c.JSON(http.StatusOK, profile)
}

func (s *Server) listStatuses(c *gin.Context) {
	from, to, err := s.dayRange(c, defaultListDays)
	if err != nil {
		s.respondError(c, err)
		return
	}
	statuses, err := s.svc.Tracker.Statuses(c.Request.Context(), from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "statuses": statuses})
}

type dayStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) setDayStatus(c *gin.Context) {
	day, err := dayParam(c, "date")
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req dayStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "status is required")
		return
	}
	status, err := wellness.ParseSmokeStatus(req.Status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.svc.Tracker.SetDayStatus(c.Request.Context(), day, status); err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventStatusChanged, map[string]interface{}{"date": day, "status": status})
	c.JSON(http.StatusOK, gin.H{"date": day, "status": status})
}

func (s *Server) smokeFreeStats(c *gin.Context) {
	stats, err := s.svc.Tracker.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) logUrge(c *gin.Context) {
	var req app.UrgeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid urge body: "+err.Error())
		return
	}
	urge, err := s.svc.Tracker.LogUrge(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventUrgeChanged, map[string]interface{}{"id": urge.ID.String(), "intensity": urge.Intensity, "action": "logged"})
	c.JSON(http.StatusCreated, urge)
}

func (s *Server) listUrges(c *gin.Context) {
	from, to, err := s.dayRange(c, defaultListDays)
	if err != nil {
		s.respondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", defaultUrgeLimit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	page, err := s.svc.Tracker.ListUrges(c.Request.Context(), from, to, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":         from,
		"to":           to,
		"urges":        page.Urges,
		"today":        page.Today,
		"total":        page.Total,
		"byDay":        page.ByDay,
		"triggers":     wellness.CommonUrgeTriggers,
		"replacements": wellness.CommonUrgeReplacements,
	})
}

func (s *Server) deleteUrge(c *gin.Context) {
	id, err := core.ParseUrgeID(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.Wrap(err, "invalid urge id"))
		return
	}
	if err := s.svc.Tracker.DeleteUrge(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventUrgeChanged, map[string]interface{}{"id": id.String(), "action": "deleted"})
	c.Status(http.StatusNoContent)
}
