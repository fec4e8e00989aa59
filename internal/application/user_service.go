package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/api/internal/domain/entity"
	"github.com/yourplaces/api/internal/domain/repository"
	"github.com/yourplaces/api/pkg/helpers"
)

// UserService implements the account lifecycle: signup, login, listing.
type UserService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Images ImageStore
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, images ImageStore, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Images: images, Logger: logger}
}

// Session is the issued credential returned by signup and login.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Signup registers a new account and issues a session token.
// The user id is generated up front so the token can be signed before the
// insert: a persistence failure then leaves no user without a token.
func (s *UserService) Signup(ctx context.Context, name, email, password string, avatar *ImageUpload) (*Session, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
	}

	if avatar != nil {
		url, err := s.Images.Upload(ctx, objectPath("avatars", u.ID, avatar.Filename), avatar.ContentType, avatar.Reader)
		if err != nil {
			return nil, err
		}
		u.ImageURL = url
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		s.cleanupImage(ctx, u.ImageURL)
		return nil, err
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		s.cleanupImage(ctx, u.ImageURL)
		return nil, err
	}

	return &Session{UserID: u.ID, Email: u.Email, Token: token, ExpiresAt: exp}, nil
}

// Login verifies credentials and issues a session token. A missing account
// and a wrong password produce the same error so callers cannot enumerate
// registered emails.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && u == nil) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return nil, err
	}
	return &Session{UserID: u.ID, Email: u.Email, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

// cleanupImage removes an orphaned upload after a failed signup. Failures are
// logged, never surfaced.
func (s *UserService) cleanupImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.Images.Remove(ctx, url); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("image_url", url).Warn("orphaned avatar cleanup failed")
	}
}

func objectPath(prefix, ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return filepath.ToSlash(filepath.Join(prefix, ownerID, uuid.NewString()+ext))
}
