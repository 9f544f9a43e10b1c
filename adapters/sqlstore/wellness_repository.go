package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/wellness"
	"lifeos/ports"

	"github.com/jmoiron/sqlx"
)

type checkInRow struct {
	Date          string         `db:"date"`
	Energy        string         `db:"energy"`
	NervousSystem string         `db:"nervous_system"`
	Factors       JSON[[]string] `db:"factors"`
	Note          string         `db:"note"`
	UpdatedAt     timestamp      `db:"updated_at"`
}

func (r checkInRow) toDomain() wellness.EnergyCheckIn {
	return wellness.EnergyCheckIn{
		Date:          core.Day(r.Date),
		Energy:        wellness.EnergyLevel(r.Energy),
		NervousSystem: wellness.NervousSystemState(r.NervousSystem),
		Factors:       orEmpty(r.Factors.V),
		Note:          r.Note,
	}
}

// CheckInRepository implements ports.CheckInRepository
type CheckInRepository struct {
	db *sqlx.DB
}

// NewCheckInRepository creates a new check-in repository
func NewCheckInRepository(db *sqlx.DB) ports.CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) UpsertCheckIn(ctx context.Context, c wellness.EnergyCheckIn) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO energy_checkins (date, energy, nervous_system, factors, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			energy = excluded.energy,
			nervous_system = excluded.nervous_system,
			factors = excluded.factors,
			note = excluded.note,
			updated_at = excluded.updated_at
	`), c.Date.String(), string(c.Energy), string(c.NervousSystem),
		JSON[[]string]{V: orEmpty(c.Factors)}, c.Note, timestamp(time.Now()))
	return err
}

func (r *CheckInRepository) GetCheckIn(ctx context.Context, day core.Day) (*wellness.EnergyCheckIn, error) {
	var row checkInRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT date, energy, nervous_system, factors, note, updated_at
		FROM energy_checkins
		WHERE date = ?
	`), day.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("check-in", day.String())
	}
	if err != nil {
		return nil, err
	}
	checkin := row.toDomain()
	return &checkin, nil
}

func (r *CheckInRepository) ListCheckIns(ctx context.Context, from, to core.Day) ([]wellness.EnergyCheckIn, error) {
	where, args := dateRange("date", from, to)
	var rows []checkInRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT date, energy, nervous_system, factors, note, updated_at
		FROM energy_checkins`+where+`
		ORDER BY date ASC
	`), args...)
	if err != nil {
		return nil, err
	}

	checkins := make([]wellness.EnergyCheckIn, 0, len(rows))
	for _, row := range rows {
		checkins = append(checkins, row.toDomain())
	}
	return checkins, nil
}

func (r *CheckInRepository) DeleteCheckIn(ctx context.Context, day core.Day) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM energy_checkins WHERE date = ?`), day.String())
	if err != nil {
		return err
	}
	return expectAffected(res, core.NewNotFoundError("check-in", day.String()))
}

// profileRowID pins the single-user profile row
const profileRowID = 1

type profileRow struct {
	QuitDate          string  `db:"quit_date"`
	CigarettesPerDay  int     `db:"cigarettes_per_day"`
	CostPerPack       float64 `db:"cost_per_pack"`
	CigarettesPerPack int     `db:"cigarettes_per_pack"`
}

type statusRow struct {
	Date   string `db:"date"`
	Status string `db:"status"`
}

// SmokeFreeRepository implements ports.SmokeFreeRepository
type SmokeFreeRepository struct {
	db *sqlx.DB
}

// NewSmokeFreeRepository creates a new smoke-free repository
func NewSmokeFreeRepository(db *sqlx.DB) ports.SmokeFreeRepository {
	return &SmokeFreeRepository{db: db}
}

func (r *SmokeFreeRepository) GetProfile(ctx context.Context) (*wellness.SmokeFreeProfile, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT quit_date, cigarettes_per_day, cost_per_pack, cigarettes_per_pack
		FROM smokefree_profile
		WHERE id = ?
	`), profileRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wellness.SmokeFreeProfile{
		QuitDate:          core.Day(row.QuitDate),
		CigarettesPerDay:  row.CigarettesPerDay,
		CostPerPack:       row.CostPerPack,
		CigarettesPerPack: row.CigarettesPerPack,
	}, nil
}

func (r *SmokeFreeRepository) SaveProfile(ctx context.Context, p wellness.SmokeFreeProfile) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO smokefree_profile (id, quit_date, cigarettes_per_day, cost_per_pack, cigarettes_per_pack)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			quit_date = excluded.quit_date,
			cigarettes_per_day = excluded.cigarettes_per_day,
			cost_per_pack = excluded.cost_per_pack,
			cigarettes_per_pack = excluded.cigarettes_per_pack
	`), profileRowID, p.QuitDate.String(), p.CigarettesPerDay, p.CostPerPack, p.CigarettesPerPack)
	return err
}

const upsertStatusSQL = `
	INSERT INTO day_statuses (date, status) VALUES (?, ?)
	ON CONFLICT (date) DO UPDATE SET status = excluded.status
`

func (r *SmokeFreeRepository) SetDayStatus(ctx context.Context, day core.Day, status wellness.SmokeStatus) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(upsertStatusSQL), day.String(), string(status))
	return err
}

func (r *SmokeFreeRepository) SetDayStatuses(ctx context.Context, statuses wellness.DayStatuses) error {
	if len(statuses) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := tx.Rebind(upsertStatusSQL)
	for day, status := range statuses {
		if _, err := tx.ExecContext(ctx, query, day.String(), string(status)); err != nil {
			return fmt.Errorf("failed to set status for %s: %w", day, err)
		}
	}
	return tx.Commit()
}

func (r *SmokeFreeRepository) ListDayStatuses(ctx context.Context, from, to core.Day) (wellness.DayStatuses, error) {
	where, args := dateRange("date", from, to)
	var rows []statusRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`SELECT date, status FROM day_statuses`+where), args...); err != nil {
		return nil, err
	}

	statuses := make(wellness.DayStatuses, len(rows))
	for _, row := range rows {
		statuses[core.Day(row.Date)] = wellness.SmokeStatus(row.Status)
	}
	return statuses, nil
}

type expressionRow struct {
	Date      string         `db:"date"`
	Expressed bool           `db:"expressed"`
	Types     JSON[[]string] `db:"types"`
	Note      string         `db:"note"`
}

// ExpressionRepository implements ports.ExpressionRepository
type ExpressionRepository struct {
	db *sqlx.DB
}

// NewExpressionRepository creates a new self-expression repository
func NewExpressionRepository(db *sqlx.DB) ports.ExpressionRepository {
	return &ExpressionRepository{db: db}
}

func (r *ExpressionRepository) UpsertExpression(ctx context.Context, e wellness.SelfExpression) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO self_expressions (date, expressed, types, note)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			expressed = excluded.expressed,
			types = excluded.types,
			note = excluded.note
	`), e.Date.String(), e.Expressed, JSON[[]string]{V: orEmpty(e.Types)}, e.Note)
	return err
}

func (r *ExpressionRepository) ListExpressions(ctx context.Context, from, to core.Day) ([]wellness.SelfExpression, error) {
	where, args := dateRange("date", from, to)
	var rows []expressionRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT date, expressed, types, note
		FROM self_expressions`+where+`
		ORDER BY date ASC
	`), args...)
	if err != nil {
		return nil, err
	}

	expressions := make([]wellness.SelfExpression, 0, len(rows))
	for _, row := range rows {
		expressions = append(expressions, wellness.SelfExpression{
			Date:      core.Day(row.Date),
			Expressed: row.Expressed,
			Types:     orEmpty(row.Types.V),
			Note:      row.Note,
		})
	}
	return expressions, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
