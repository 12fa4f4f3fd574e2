package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

const reservationColumns = `id, title, description, space_id, owner_id, start_at, end_at, status, created_at, updated_at`

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetSpaceForUpdate locks the space row for the rest of the transaction,
// serializing concurrent availability checks on the same space.
func (r *ReservationRepository) GetSpaceForUpdate(ctx context.Context, spaceID int64) (domain.Space, error) {
	const query = `
SELECT id, name, capacity, location, equipment, active, created_at, updated_at
FROM spaces
WHERE id = $1
FOR UPDATE`

	var s domain.Space
	err := r.queryRow(ctx, query, spaceID).
		Scan(&s.ID, &s.Name, &s.Capacity, &s.Location, &s.Equipment, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Space{}, domain.ErrSpaceNotFound
		}
		return domain.Space{}, fmt.Errorf("get space: %w", err)
	}
	return s, nil
}

func (r *ReservationRepository) FindReservationsBySpace(ctx context.Context, spaceID int64, statuses []domain.Status, excludeID int64) ([]domain.Reservation, error) {
	const query = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE space_id = $1 AND status = ANY($2) AND id <> $3
ORDER BY start_at, id`

	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	rows, err := r.query(ctx, query, spaceID, names, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find reservations by space: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *ReservationRepository) GetReservationForUpdate(ctx context.Context, id int64) (domain.Reservation, error) {
	const query = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1
FOR UPDATE`

	res, err := scanReservation(r.queryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindReservationByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.queryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	const stmt = `
INSERT INTO reservations (title, description, space_id, owner_id, start_at, end_at, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

	err := r.queryRow(ctx, stmt,
		res.Title,
		res.Description,
		res.SpaceID,
		res.OwnerID,
		res.Start,
		res.End,
		string(res.Status),
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID)
	if err != nil {
		// The exclusion constraint backstops the in-transaction check.
		if isExclusionViolation(err) {
			return domain.Reservation{}, &domain.ConflictError{}
		}
		if isForeignKeyViolation(err) {
			return domain.Reservation{}, domain.ErrSpaceNotFound
		}
		return domain.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	const stmt = `
UPDATE reservations
SET title = $2, description = $3, space_id = $4, start_at = $5, end_at = $6, status = $7, updated_at = $8
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		res.ID,
		res.Title,
		res.Description,
		res.SpaceID,
		res.Start,
		res.End,
		string(res.Status),
		res.UpdatedAt,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.Reservation{}, &domain.ConflictError{}
		}
		if isForeignKeyViolation(err) {
			return domain.Reservation{}, domain.ErrSpaceNotFound
		}
		return domain.Reservation{}, fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return res, nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, id int64) error {
	tag, err := r.exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// ListReservations returns all rows, or only the given owner's when ownerID
// is set. The ownership filter runs in SQL so other users' rows never leave
// the database.
func (r *ReservationRepository) ListReservations(ctx context.Context, ownerID *int64) ([]domain.Reservation, error) {
	const all = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY start_at, id`
	const byOwner = `SELECT ` + reservationColumns + ` FROM reservations WHERE owner_id = $1 ORDER BY start_at, id`

	var (
		rows pgx.Rows
		err  error
	)
	if ownerID == nil {
		rows, err = r.query(ctx, all)
	} else {
		rows, err = r.query(ctx, byOwner, *ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var (
		res    domain.Reservation
		status string
	)
	err := row.Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.SpaceID,
		&res.OwnerID,
		&res.Start,
		&res.End,
		&status,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Status = domain.Status(status)
	return res, nil
}

func scanReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return out, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
