package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// defaultDigestLimit bounds a digest listing without ?limit
const defaultDigestLimit = 12

func (s *Server) weeklySummary(c *gin.Context) {
	summary, err := s.svc.Insights.WeeklySummary(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) dashboard(c *gin.Context) {
	insights, err := s.svc.Insights.Dashboard(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

func (s *Server) trends(c *gin.Context) {
	report, err := s.svc.Insights.Trends(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) listDigests(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultDigestLimit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	digests, err := s.svc.Digests.List(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"digests": digests})
}

func (s *Server) latestDigest(c *gin.Context) {
	digest, err := s.svc.Digests.Latest(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, digest)
}

// runDigest stores this week's digest now. 201 when a new digest was
// stored, 200 when the latest one was already current.
func (s *Server) runDigest(c *gin.Context) {
	digest, created, err := s.svc.Digests.RunOnce(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, digest)
}
