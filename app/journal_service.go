package app

import (
	"context"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/journal"
	"lifeos/internal"
	"lifeos/internal/errors"
	"lifeos/ports"
)

// JournalInput carries the user-editable fields of an entry
type JournalInput struct {
	Date    core.Day     `json:"date"`
	Content string       `json:"content"`
	Mood    journal.Mood `json:"mood"`
	Tags    []string     `json:"tags"`
}

// JournalService manages markdown journal entries
type JournalService struct {
	repo   ports.JournalRepository
	clock  core.Clock
	today  func() core.Day
	logger *internal.Logger
}

func NewJournalService(repo ports.JournalRepository, clock core.Clock, today func() core.Day, logger *internal.Logger) *JournalService {
	return &JournalService{
		repo:   repo,
		clock:  clock,
		today:  today,
		logger: logger.With("journal"),
	}
}

func (s *JournalService) now() time.Time {
	return s.clock().UTC()
}

// Create stores a new entry. An empty date means today.
func (s *JournalService) Create(ctx context.Context, in JournalInput) (*journal.Entry, error) {
	now := s.now()
	entry := &journal.Entry{
		ID:        core.JournalEntryID(core.NewID()),
		Date:      in.Date,
		Content:   in.Content,
		Mood:      in.Mood,
		Tags:      normalizeTags(in.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if entry.Date == "" {
		entry.Date = s.today()
	}
	if err := entry.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid journal entry")
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, errors.DatabaseError("failed to create journal entry", err)
	}
	s.logger.Debug("created journal entry %s for %s", entry.ID, entry.Date)
	return entry, nil
}

// Update replaces the editable fields of an entry
func (s *JournalService) Update(ctx context.Context, id core.JournalEntryID, in JournalInput) (*journal.Entry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		entry.Date = in.Date
	}
	entry.Content = in.Content
	entry.Mood = in.Mood
	entry.Tags = normalizeTags(in.Tags)
	entry.UpdatedAt = s.now()
	if err := entry.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid journal entry")
	}

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, errors.Wrapf(err, "failed to update journal entry %s", id)
	}
	return entry, nil
}

func (s *JournalService) Get(ctx context.Context, id core.JournalEntryID) (*journal.Entry, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get journal entry %s", id)
	}
	return entry, nil
}

// List returns entries matching filter, newest first
func (s *JournalService) List(ctx context.Context, filter journal.Filter) ([]*journal.Entry, error) {
	entries, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, errors.DatabaseError("failed to list journal entries", err)
	}
	return entries, nil
}

func (s *JournalService) Delete(ctx context.Context, id core.JournalEntryID) error {
	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return errors.Wrapf(err, "failed to delete journal entry %s", id)
	}
	return nil
}
