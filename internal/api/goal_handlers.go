package api

import (
	"net/http"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/internal/errors"
	"lifeos/ports"

	"github.com/gin-gonic/gin"
)

func goalID(c *gin.Context) (core.GoalID, error) {
	id, err := core.ParseGoalID(c.Param("id"))
	if err != nil {
		return "", errors.Wrap(err, "invalid goal id")
	}
	return id, nil
}

func (s *Server) goalChanged(g *goal.Goal, action string) {
	s.publish(ports.EventGoalChanged, map[string]interface{}{"id": g.ID.String(), "action": action, "progress": g.Progress})
}

func (s *Server) createGoal(c *gin.Context) {
	var req goal.Goal
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid goal body: "+err.Error())
		return
	}
	g, err := s.svc.Goals.Create(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.goalChanged(g, "created")
	c.JSON(http.StatusCreated, g)
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.svc.Goals.List(c.Request.Context(), goal.Status(c.Query("status")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (s *Server) getGoal(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	g, err := s.svc.Goals.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) updateGoal(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req goal.Goal
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid goal body: "+err.Error())
		return
	}
	g, err := s.svc.Goals.Update(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.goalChanged(g, "updated")
	c.JSON(http.StatusOK, g)
}

type goalStatusRequest struct {
	Status goal.Status `json:"status" binding:"required"`
}

func (s *Server) setGoalStatus(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req goalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "status is required")
		return
	}
	g, err := s.svc.Goals.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.goalChanged(g, "status")
	c.JSON(http.StatusOK, g)
}

func (s *Server) toggleMilestone(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	g, err := s.svc.Goals.ToggleMilestone(c.Request.Context(), id, c.Param("milestoneId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.goalChanged(g, "milestone")
	c.JSON(http.StatusOK, g)
}

func (s *Server) deleteGoal(c *gin.Context) {
	id, err := goalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.svc.Goals.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventGoalChanged, map[string]interface{}{"id": id.String(), "action": "deleted"})
	c.Status(http.StatusNoContent)
}
