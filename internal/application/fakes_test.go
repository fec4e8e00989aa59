package application

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/yourplaces/api/internal/domain/entity"
	"github.com/yourplaces/api/internal/domain/repository"
)

// In-memory stand-ins for the postgres repositories and the external
// collaborators. The place repo mirrors the transactional pairing: the place
// row and the owner linkage always change together.

type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	createErr  error
	getMailErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, e := range r.users {
		if e.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getMailErr != nil {
		return nil, r.getMailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakePlaceRepo struct {
	mu        sync.Mutex
	places    map[string]*entity.Place
	links     map[string][]string // user id -> ordered place ids
	createErr error
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[string]*entity.Place{}, links: map[string][]string{}}
}

func (r *fakePlaceRepo) GetByID(_ context.Context, id string) (*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlaceRepo) ListByOwner(_ context.Context, userID string) ([]*entity.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Place
	for _, id := range r.links[userID] {
		cp := *r.places[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePlaceRepo) Create(_ context.Context, p *entity.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *p
	r.places[p.ID] = &cp
	r.links[p.CreatorID] = append(r.links[p.CreatorID], p.ID)
	return nil
}

func (r *fakePlaceRepo) UpdateContent(_ context.Context, p *entity.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.places[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	return nil
}

func (r *fakePlaceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.places, id)
	owned := r.links[p.CreatorID]
	for i, pid := range owned {
		if pid == id {
			r.links[p.CreatorID] = append(owned[:i], owned[i+1:]...)
			break
		}
	}
	return nil
}

type fakeGeocoder struct {
	loc entity.Location
	err error
}

func (g *fakeGeocoder) Resolve(_ context.Context, _ string) (entity.Location, error) {
	if g.err != nil {
		return entity.Location{}, g.err
	}
	return g.loc, nil
}

type fakeImageStore struct {
	mu        sync.Mutex
	uploads   []string
	removed   []string
	uploadErr error
	removeErr error
}

func (s *fakeImageStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://img.test/" + objectPath
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeImageStore) Remove(_ context.Context, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, imageURL)
	return s.removeErr
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.PlaceRepository = (*fakePlaceRepo)(nil)
var _ Geocoder = (*fakeGeocoder)(nil)
var _ ImageStore = (*fakeImageStore)(nil)
