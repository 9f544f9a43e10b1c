package ports

import (
	"context"

	"lifeos/domain/core"
	"lifeos/domain/journal"
)

// JournalRepository defines the interface for journal data operations
type JournalRepository interface {
	// CreateEntry stores a new entry; ID and timestamps must already be set
	CreateEntry(ctx context.Context, entry *journal.Entry) error

	// UpdateEntry replaces content, mood and tags of an existing entry
	UpdateEntry(ctx context.Context, entry *journal.Entry) error

	// GetEntry retrieves an entry or core.ErrJournalEntryNotFound
	GetEntry(ctx context.Context, id core.JournalEntryID) (*journal.Entry, error)

	// ListEntries returns entries matching filter, newest first
	ListEntries(ctx context.Context, filter journal.Filter) ([]*journal.Entry, error)

	// DeleteEntry removes an entry
	DeleteEntry(ctx context.Context, id core.JournalEntryID) error
}
