package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

type AmenityRepository struct {
	pool *pgxpool.Pool
}

func NewAmenityRepository(pool *pgxpool.Pool) *AmenityRepository {
	return &AmenityRepository{pool: pool}
}

func (r *AmenityRepository) CreateAmenity(ctx context.Context, amenity domain.Amenity) (domain.Amenity, error) {
	const stmt = `INSERT INTO amenities (name, description) VALUES ($1, $2) RETURNING id`

	err := r.pool.QueryRow(ctx, stmt, amenity.Name, amenity.Description).Scan(&amenity.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Amenity{}, domain.ErrDuplicateName
		}
		return domain.Amenity{}, fmt.Errorf("create amenity: %w", err)
	}
	return amenity, nil
}

func (r *AmenityRepository) UpdateAmenity(ctx context.Context, amenity domain.Amenity) (domain.Amenity, error) {
	const stmt = `UPDATE amenities SET name = $2, description = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, amenity.ID, amenity.Name, amenity.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Amenity{}, domain.ErrDuplicateName
		}
		return domain.Amenity{}, fmt.Errorf("update amenity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Amenity{}, domain.ErrAmenityNotFound
	}
	return amenity, nil
}

// DeleteAmenity also detaches the amenity from every space through the
// ON DELETE CASCADE on space_amenities.
func (r *AmenityRepository) DeleteAmenity(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM amenities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete amenity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAmenityNotFound
	}
	return nil
}

func (r *AmenityRepository) FindAmenityByID(ctx context.Context, id int64) (*domain.Amenity, error) {
	const query = `SELECT id, name, description FROM amenities WHERE id = $1`

	var a domain.Amenity
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find amenity: %w", err)
	}
	return &a, nil
}

func (r *AmenityRepository) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM amenities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list amenities: %w", err)
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
