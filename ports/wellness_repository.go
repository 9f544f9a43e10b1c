package ports

import (
	"context"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
)

// CheckInRepository stores one energy check-in per day
type CheckInRepository interface {
	// UpsertCheckIn creates or replaces the check-in for its date
	UpsertCheckIn(ctx context.Context, checkin wellness.EnergyCheckIn) error

	// GetCheckIn returns the check-in for day or core.ErrNotFound
	GetCheckIn(ctx context.Context, day core.Day) (*wellness.EnergyCheckIn, error)

	// ListCheckIns returns check-ins in [from, to], oldest first
	ListCheckIns(ctx context.Context, from, to core.Day) ([]wellness.EnergyCheckIn, error)

	// DeleteCheckIn removes the check-in for day
	DeleteCheckIn(ctx context.Context, day core.Day) error
}

// SmokeFreeRepository stores the quit profile and the sparse day statuses
type SmokeFreeRepository interface {
	// GetProfile returns the profile or core.ErrProfileNotFound
	GetProfile(ctx context.Context) (*wellness.SmokeFreeProfile, error)

	// SaveProfile creates or replaces the profile
	SaveProfile(ctx context.Context, profile wellness.SmokeFreeProfile) error

	// SetDayStatus records the status of one day
	SetDayStatus(ctx context.Context, day core.Day, status wellness.SmokeStatus) error

	// SetDayStatuses records many statuses at once
	SetDayStatuses(ctx context.Context, statuses wellness.DayStatuses) error

	// ListDayStatuses returns every recorded status in [from, to]
	ListDayStatuses(ctx context.Context, from, to core.Day) (wellness.DayStatuses, error)
}

// ExpressionRepository stores one self-expression record per day
type ExpressionRepository interface {
	// UpsertExpression creates or replaces the record for its date
	UpsertExpression(ctx context.Context, expression wellness.SelfExpression) error

	// ListExpressions returns records in [from, to], oldest first
	ListExpressions(ctx context.Context, from, to core.Day) ([]wellness.SelfExpression, error)
}

// UrgeRepository stores logged urges
type UrgeRepository interface {
	// SaveUrge creates the urge or replaces the one with the same id
	SaveUrge(ctx context.Context, urge wellness.UrgeEntry) error

	// ListUrges returns urges whose day is in [from, to], newest first.
	// Zero bounds are open.
	ListUrges(ctx context.Context, from, to core.Day) ([]wellness.UrgeEntry, error)

	// DeleteUrge removes an urge or returns core.ErrUrgeNotFound
	DeleteUrge(ctx context.Context, id core.UrgeID) error
}
