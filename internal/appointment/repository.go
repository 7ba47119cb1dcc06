package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the appointment and fills in ID/CreatedAt/UpdatedAt.
	// It returns ErrSlotTaken when a non-canceled appointment already
	// exists for the same (provider, date). The check and the insert are
	// a single atomic operation.
	Create(ctx context.Context, a *Appointment) error

	GetByID(ctx context.Context, id string) (*Appointment, error)

	// ListByProviderAndDateRange returns all appointments for the
	// provider whose date falls within [from, to], canceled ones
	// included. Callers decide whether canceled rows matter.
	ListByProviderAndDateRange(ctx context.Context, providerID string, from, to time.Time) ([]*Appointment, error)

	// ListByCustomer returns the customer's non-canceled future
	// appointments, ascending by date, with the total count.
	ListByCustomer(ctx context.Context, customerID string, filter Filter) ([]*Appointment, int, error)

	// Cancel sets canceled_at on a live appointment.
	Cancel(ctx context.Context, id string, at time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Create relies on the partial unique index
//
//	CREATE UNIQUE INDEX appointments_provider_slot_live_idx
//	    ON public.appointments (provider_id, date)
//	    WHERE canceled_at IS NULL;
//
// so that two concurrent inserts for the same (provider, date) cannot
// both succeed, even across separate server processes.
func (r *pgxRepository) Create(ctx context.Context, a *Appointment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.appointments").
		Columns("provider_id", "customer_id", "date").
		Values(a.ProviderID, a.CustomerID, a.Date).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("create appointment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.provider_id", "p.display_name", "a.customer_id", "c.display_name",
		"a.date", "a.canceled_at", "a.created_at", "a.updated_at",
	).
		From("public.appointments a").
		Join("public.users p ON a.provider_id = p.id").
		Join("public.users c ON a.customer_id = c.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var a Appointment
	var providerName, customerName *string
	if err := row.Scan(
		&a.ID, &a.ProviderID, &providerName, &a.CustomerID, &customerName,
		&a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	a.ProviderName = deref(providerName)
	a.CustomerName = deref(customerName)
	return &a, nil
}

func (r *pgxRepository) ListByProviderAndDateRange(ctx context.Context, providerID string, from, to time.Time) ([]*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.provider_id", "p.display_name", "a.customer_id", "c.display_name",
		"a.date", "a.canceled_at", "a.created_at", "a.updated_at",
	).
		From("public.appointments a").
		Join("public.users p ON a.provider_id = p.id").
		Join("public.users c ON a.customer_id = c.id").
		Where(squirrel.Eq{"a.provider_id": providerID}).
		Where(squirrel.GtOrEq{"a.date": from}).
		Where(squirrel.LtOrEq{"a.date": to}).
		OrderBy("a.date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string, filter Filter) ([]*Appointment, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.provider_id", "p.display_name", "a.customer_id", "c.display_name",
		"a.date", "a.canceled_at", "a.created_at", "a.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.appointments a").
		Join("public.users p ON a.provider_id = p.id").
		Join("public.users c ON a.customer_id = c.id").
		Where(squirrel.Eq{"a.customer_id": customerID}).
		Where("a.canceled_at IS NULL").
		OrderBy("a.date ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list customer appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customer appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	var total int
	for rows.Next() {
		var a Appointment
		var providerName, customerName *string
		if err := rows.Scan(
			&a.ID, &a.ProviderID, &providerName, &a.CustomerID, &customerName,
			&a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		a.ProviderName = deref(providerName)
		a.CustomerName = deref(customerName)
		appointments = append(appointments, &a)
	}

	return appointments, total, nil
}

func (r *pgxRepository) Cancel(ctx context.Context, id string, at time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("canceled_at", at).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where("canceled_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build cancel appointment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("cancel appointment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var appointments []*Appointment
	for rows.Next() {
		var a Appointment
		var providerName, customerName *string
		if err := rows.Scan(
			&a.ID, &a.ProviderID, &providerName, &a.CustomerID, &customerName,
			&a.Date, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		a.ProviderName = deref(providerName)
		a.CustomerName = deref(customerName)
		appointments = append(appointments, &a)
	}
	return appointments, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
