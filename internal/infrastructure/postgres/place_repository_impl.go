package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourplaces/api/internal/domain/entity"
	"github.com/yourplaces/api/internal/domain/repository"
)

type PlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

const placeColumns = `id, title, description, address, lat, lng, image_url, creator_id, created_at, updated_at`

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	return scanPlace(r.pool.QueryRow(ctx, `
		SELECT `+placeColumns+`
		FROM places
		WHERE id = $1
	`, id))
}

// ListByOwner returns the owner's places in the order they were linked.
func (r *PlaceRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Place, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.description, p.address, p.lat, p.lng, p.image_url, p.creator_id, p.created_at, p.updated_at
		FROM places p
		JOIN user_places up ON up.place_id = p.id
		WHERE up.user_id = $1
		ORDER BY up.position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*entity.Place
	for rows.Next() {
		p := &entity.Place{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
			&p.Location.Lat, &p.Location.Lng, &p.ImageURL, &p.CreatorID,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// Create inserts the place row and the owner's linkage row in one transaction.
// Either both writes commit or neither does.
func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create place: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO places (id, title, description, address, lat, lng, image_url, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.ImageURL, p.CreatorID)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert place: %w", err)
	}

	// Append to the owner's list: next position after the current maximum.
	if _, err := tx.Exec(ctx, `
		INSERT INTO user_places (user_id, place_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM user_places
		WHERE user_id = $1
	`, p.CreatorID, p.ID); err != nil {
		return fmt.Errorf("link place to owner: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PlaceRepository) UpdateContent(ctx context.Context, p *entity.Place) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, updated_at = now()
		WHERE id = $3
	`, p.Title, p.Description, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the place row and the owner's linkage row in one transaction.
// Concurrent deletes of the same id: the loser observes zero rows affected and
// gets ErrNotFound.
func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin delete place: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_places WHERE place_id = $1`, id); err != nil {
		return fmt.Errorf("unlink place from owner: %w", err)
	}
	res, err := tx.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

func scanPlace(row pgx.Row) (*entity.Place, error) {
	p := &entity.Place{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Location.Lat, &p.Location.Lng, &p.ImageURL, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
