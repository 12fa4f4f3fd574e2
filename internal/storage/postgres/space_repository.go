package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

const spaceColumns = `id, name, capacity, location, equipment, active, created_at, updated_at`

type SpaceRepository struct {
	pool *pgxpool.Pool
}

func NewSpaceRepository(pool *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{pool: pool}
}

func (r *SpaceRepository) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	const stmt = `
INSERT INTO spaces (name, capacity, location, equipment, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	err := r.queryRow(ctx, stmt,
		space.Name,
		space.Capacity,
		space.Location,
		space.Equipment,
		space.Active,
		space.CreatedAt,
		space.UpdatedAt,
	).Scan(&space.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Space{}, domain.ErrDuplicateName
		}
		return domain.Space{}, fmt.Errorf("create space: %w", err)
	}
	return space, nil
}

func (r *SpaceRepository) UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	const stmt = `
UPDATE spaces
SET name = $2, capacity = $3, location = $4, equipment = $5, active = $6, updated_at = $7
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		space.ID,
		space.Name,
		space.Capacity,
		space.Location,
		space.Equipment,
		space.Active,
		space.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Space{}, domain.ErrDuplicateName
		}
		return domain.Space{}, fmt.Errorf("update space: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Space{}, domain.ErrSpaceNotFound
	}
	return space, nil
}

func (r *SpaceRepository) DeleteSpace(ctx context.Context, id int64) error {
	tag, err := r.exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSpaceInUse
		}
		return fmt.Errorf("delete space: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpaceNotFound
	}
	return nil
}

func (r *SpaceRepository) FindSpaceByID(ctx context.Context, id int64) (*domain.Space, error) {
	const query = `SELECT ` + spaceColumns + ` FROM spaces WHERE id = $1`

	var s domain.Space
	err := r.queryRow(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Capacity, &s.Location, &s.Equipment, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find space: %w", err)
	}
	return &s, nil
}

func (r *SpaceRepository) ListSpaces(ctx context.Context, includeInactive bool) ([]domain.Space, error) {
	const all = `SELECT ` + spaceColumns + ` FROM spaces ORDER BY name`
	const activeOnly = `SELECT ` + spaceColumns + ` FROM spaces WHERE active ORDER BY name`

	query := activeOnly
	if includeInactive {
		query = all
	}

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	var out []domain.Space
	for rows.Next() {
		var s domain.Space
		if err := rows.Scan(&s.ID, &s.Name, &s.Capacity, &s.Location, &s.Equipment, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spaces: %w", err)
	}
	return out, nil
}

// CountActiveReservations counts pending or confirmed reservations on the
// space whose end is still in the future; the space-delete guard runs on it.
func (r *SpaceRepository) CountActiveReservations(ctx context.Context, spaceID int64, now time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM reservations
WHERE space_id = $1 AND status IN ('pending', 'confirmed') AND end_at >= $2`

	var count int
	if err := r.queryRow(ctx, query, spaceID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active reservations: %w", err)
	}
	return count, nil
}

func (r *SpaceRepository) ReplaceSpaceAmenities(ctx context.Context, spaceID int64, amenityIDs []int64) error {
	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		if _, err := r.exec(txCtx, `DELETE FROM space_amenities WHERE space_id = $1`, spaceID); err != nil {
			return fmt.Errorf("clear space amenities: %w", err)
		}
		// ON CONFLICT tolerates duplicate ids in the input without aborting
		// the transaction.
		const stmt = `
INSERT INTO space_amenities (space_id, amenity_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
		for _, amenityID := range amenityIDs {
			if _, err := r.exec(txCtx, stmt, spaceID, amenityID); err != nil {
				if isForeignKeyViolation(err) {
					return domain.ErrAmenityNotFound
				}
				return fmt.Errorf("assign amenity: %w", err)
			}
		}
		return nil
	})
}

func (r *SpaceRepository) ListSpaceAmenities(ctx context.Context, spaceID int64) ([]domain.Amenity, error) {
	const query = `
SELECT a.id, a.name, a.description
FROM amenities a
JOIN space_amenities sa ON sa.amenity_id = a.id
WHERE sa.space_id = $1
ORDER BY a.name`

	rows, err := r.query(ctx, query, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list space amenities: %w", err)
	}
	defer rows.Close()

	var out []domain.Amenity
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description); err != nil {
			return nil, fmt.Errorf("scan amenity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate amenities: %w", err)
	}
	return out, nil
}

func (r *SpaceRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *SpaceRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *SpaceRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
