package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourplaces/api/pkg/helpers"
)

func newUserService(repo *fakeUserRepo, images *fakeImageStore) *UserService {
	return NewUserService(repo, helpers.NewJWTManager("test-secret", time.Hour), images, nil)
}

func avatarUpload() *ImageUpload {
	return &ImageUpload{Reader: strings.NewReader("jpeg-bytes"), Filename: "me.jpg", ContentType: "image/jpeg"}
}

func TestSignupIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeImageStore{})

	sess, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "secret123", avatarUpload())
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", sess.Email)
	assert.NotEmpty(t, sess.UserID)
	assert.NotEmpty(t, sess.Token)

	claims, err := svc.JWT.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)

	u, err := repo.GetByID(context.Background(), sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.NotEqual(t, "secret123", u.Password, "password must be stored hashed")
	assert.NotEmpty(t, u.ImageURL)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), &fakeImageStore{})

	_, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "secret123", avatarUpload())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "Other Ann", "ann@x.com", "different1", avatarUpload())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupThenLogin(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), &fakeImageStore{})

	_, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "secret123", avatarUpload())
	require.NoError(t, err)

	sess, err := svc.Login(context.Background(), "ann@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	svc := newUserService(newFakeUserRepo(), &fakeImageStore{})

	_, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "secret123", avatarUpload())
	require.NoError(t, err)

	_, wrongPwd := svc.Login(context.Background(), "ann@x.com", "wrong")
	_, noAccount := svc.Login(context.Background(), "nobody@x.com", "whatever1")

	assert.ErrorIs(t, wrongPwd, ErrInvalidCredentials)
	assert.ErrorIs(t, noAccount, ErrInvalidCredentials)
	assert.Equal(t, wrongPwd, noAccount, "both failures must be indistinguishable")
}

func TestLoginPropagatesLookupFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo, &fakeImageStore{})

	_, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "secret123", avatarUpload())
	require.NoError(t, err)

	lookupErr := errors.New("select users: connection reset")
	repo.getMailErr = lookupErr

	_, err = svc.Login(context.Background(), "ann@x.com", "secret123")
	require.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials, "outages must not look like bad credentials")
}

func TestSignupCleansUpAvatarWhenPersistFails(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("insert users: connection reset")
	images := &fakeImageStore{}
	svc := newUserService(repo, images)

	_, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "secret123", avatarUpload())
	require.Error(t, err)
	assert.Empty(t, repo.users, "no user may be persisted")
	require.Len(t, images.uploads, 1)
	assert.Equal(t, images.uploads, images.removed, "orphaned avatar should be removed")
}
