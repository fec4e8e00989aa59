package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/api/internal/domain/entity"
	"github.com/yourplaces/api/internal/domain/repository"
)

// PlaceService implements the place lifecycle. Create and Delete rely on the
// repository's transactional pairing of the place row with the owner linkage.
type PlaceService struct {
	Places   repository.PlaceRepository
	Users    repository.UserRepository
	Geocoder Geocoder
	Images   ImageStore
	Logger   *logrus.Logger
}

func NewPlaceService(places repository.PlaceRepository, users repository.UserRepository, geocoder Geocoder, images ImageStore, logger *logrus.Logger) *PlaceService {
	return &PlaceService{Places: places, Users: users, Geocoder: geocoder, Images: images, Logger: logger}
}

func (s *PlaceService) Get(ctx context.Context, id string) (*entity.Place, error) {
	p, err := s.Places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByUser returns every place owned by the given user. The user must
// exist; an empty list is a valid answer.
func (s *PlaceService) ListByUser(ctx context.Context, userID string) ([]*entity.Place, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Places.ListByOwner(ctx, userID)
}

type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	CreatorID   string
}

// Create geocodes the address, uploads the photo and persists the place bound
// to its owner. A geocoding failure aborts before anything is written. The
// place insert and the owner linkage commit atomically; when that transaction
// fails the already-uploaded photo is removed best-effort.
func (s *PlaceService) Create(ctx context.Context, in CreatePlaceInput, photo *ImageUpload) (*entity.Place, error) {
	loc, err := s.Geocoder.Resolve(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByID(ctx, in.CreatorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	p := &entity.Place{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Location:    loc,
		CreatorID:   in.CreatorID,
	}

	if photo != nil {
		url, err := s.Images.Upload(ctx, objectPath("places", in.CreatorID, photo.Filename), photo.ContentType, photo.Reader)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := s.Places.Create(ctx, p); err != nil {
		s.cleanupImage(ctx, p.ImageURL)
		return nil, err
	}
	return p, nil
}

type UpdatePlaceInput struct {
	Title       string
	Description string
}

// Update overwrites title and description. The place must exist (checked
// before ownership) and only its creator may mutate it.
func (s *PlaceService) Update(ctx context.Context, id, requesterID string, in UpdatePlaceInput) (*entity.Place, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatorID != requesterID {
		return nil, ErrNotOwner
	}

	p.Title = in.Title
	p.Description = in.Description
	if err := s.Places.UpdateContent(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes an owned place. The data deletion is transactional; the
// photo cleanup afterwards is best-effort and never affects the result.
// Of two concurrent deletes for the same id exactly one wins; the other
// observes ErrPlaceNotFound from the rows-affected check inside the
// transaction.
func (s *PlaceService) Delete(ctx context.Context, id, requesterID string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatorID != requesterID {
		return ErrNotOwner
	}

	if err := s.Places.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}

	s.cleanupImage(ctx, p.ImageURL)
	return nil
}

func (s *PlaceService) cleanupImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.Images.Remove(ctx, url); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("image_url", url).Warn("place photo cleanup failed")
	}
}
