package repository

import (
	"context"
	"errors"

	"github.com/yourplaces/api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// PlaceRepository defines the interface for place-related database operations.
//
// Create and Delete must keep the place row and the owner's user_places
// linkage row consistent: both writes land atomically or neither does.
type PlaceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	ListByOwner(ctx context.Context, userID string) ([]*entity.Place, error)
	Create(ctx context.Context, p *entity.Place) error
	UpdateContent(ctx context.Context, p *entity.Place) error
	Delete(ctx context.Context, id string) error
}
