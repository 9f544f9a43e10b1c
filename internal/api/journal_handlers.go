package api

import (
	"net/http"

	"lifeos/app"
	"lifeos/domain/core"
	"lifeos/domain/journal"
	"lifeos/internal/errors"
	"lifeos/ports"

	"github.com/gin-gonic/gin"
)

func journalID(c *gin.Context) (core.JournalEntryID, error) {
	id, err := core.ParseJournalEntryID(c.Param("id"))
	if err != nil {
		return "", errors.Wrap(err, "invalid journal entry id")
	}
	return id, nil
}

func (s *Server) createEntry(c *gin.Context) {
	var req app.JournalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid journal body: "+err.Error())
		return
	}
	entry, err := s.svc.Journal.Create(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventJournalChanged, map[string]interface{}{"id": entry.ID.String(), "action": "created"})
	c.JSON(http.StatusCreated, entry)
}

// listEntries accepts from, to, mood, tag, q and limit
func (s *Server) listEntries(c *gin.Context) {
	filter := journal.Filter{
		Mood:  journal.Mood(c.Query("mood")),
		Tag:   c.Query("tag"),
		Query: c.Query("q"),
	}
	if !filter.Mood.Valid() {
		s.respondError(c, errors.Wrapf(core.ErrInvalidMood, "mood %q", filter.Mood))
		return
	}
	for name, dst := range map[string]*core.Day{"from": &filter.From, "to": &filter.To} {
		if raw := c.Query(name); raw != "" {
			day, err := core.ParseDay(raw)
			if err != nil {
				s.respondError(c, errors.Wrapf(err, "invalid %s", name))
				return
			}
			*dst = day
		}
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		s.respondError(c, err)
		return
	}
	filter.Limit = limit

	entries, err := s.svc.Journal.List(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) getEntry(c *gin.Context) {
	id, err := journalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	entry, err := s.svc.Journal.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) updateEntry(c *gin.Context) {
	id, err := journalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	var req app.JournalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid journal body: "+err.Error())
		return
	}
	entry, err := s.svc.Journal.Update(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventJournalChanged, map[string]interface{}{"id": entry.ID.String(), "action": "updated"})
	c.JSON(http.StatusOK, entry)
}

func (s *Server) deleteEntry(c *gin.Context) {
	id, err := journalID(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.svc.Journal.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	s.publish(ports.EventJournalChanged, map[string]interface{}{"id": id.String(), "action": "deleted"})
	c.Status(http.StatusNoContent)
}
