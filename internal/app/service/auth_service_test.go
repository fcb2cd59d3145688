package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/model"
	"fintrack/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users           map[string]*model.User // keyed by username
	findByNameCalls int
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*model.User{}}
	for _, u := range users {
		repo.users[u.Name] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := f.users[user.Name]; exists {
		return common.ErrConflict
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Name] = user
	return nil
}

func (f *fakeUserRepo) FindByName(_ context.Context, name string) (*model.User, error) {
	f.findByNameCalls++
	user, ok := f.users[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	users := []model.User{}
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	for name, existing := range f.users {
		if existing.ID == user.ID {
			delete(f.users, name)
			copied := *user
			f.users[user.Name] = &copied
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	for name, existing := range f.users {
		if existing.ID == id {
			delete(f.users, name)
			return nil
		}
	}
	return common.ErrNotFound
}

var testAdmin = config.AdminIdentity{
	Name:     "admin_master",
	Password: "top-secret",
	Email:    "admin@fintrack.local",
}

func newTestAuth(repo *fakeUserRepo) (*AuthService, *security.Codec) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	auth := NewAuthService(repo, codec, security.PlainVerifier{}, testAdmin, nil, 0, 0)
	return auth, codec
}

func TestLoginAdminSuccess(t *testing.T) {
	auth, codec := newTestAuth(newFakeUserRepo())

	resp, err := auth.Login(context.Background(), "admin_master", "top-secret")
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := codec.Decode(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin_master", claims.Name)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "0", claims.Subject)
	assert.Equal(t, testAdmin.Email, claims.Email)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	auth, _ := newTestAuth(repo)

	_, err := auth.Login(context.Background(), "admin_master", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
	assert.Zero(t, repo.findByNameCalls, "admin branch must never touch the store")
}

func TestLoginAdminShadowsStoreRow(t *testing.T) {
	// A user row sharing the reserved admin name must not be reachable.
	repo := newFakeUserRepo(&model.User{
		ID: 5, Name: "admin_master", Email: "fake@example.com", Password: "p", Role: model.RoleUser,
	})
	auth, _ := newTestAuth(repo)

	_, err := auth.Login(context.Background(), "admin_master", "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
	assert.Zero(t, repo.findByNameCalls)
}

func TestLoginUnknownName(t *testing.T) {
	auth, _ := newTestAuth(newFakeUserRepo())

	_, err := auth.Login(context.Background(), "nobody", "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
}

func TestLoginStoreUser(t *testing.T) {
	repo := newFakeUserRepo(&model.User{
		ID: 7, Name: "alice", Email: "alice@example.com", Password: "p", Role: model.RoleUser,
	})
	auth, codec := newTestAuth(repo)

	resp, err := auth.Login(context.Background(), "alice", "p")
	require.NoError(t, err)

	claims, err := codec.Decode(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestLoginStoreUserWrongPassword(t *testing.T) {
	repo := newFakeUserRepo(&model.User{
		ID: 7, Name: "alice", Email: "alice@example.com", Password: "p", Role: model.RoleUser,
	})
	auth, _ := newTestAuth(repo)

	_, err := auth.Login(context.Background(), "alice", "not-p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
}

func TestLoginEmptyCredentials(t *testing.T) {
	auth, _ := newTestAuth(newFakeUserRepo())

	for _, tc := range []struct{ name, password string }{
		{"", "p"},
		{"alice", ""},
		{"", ""},
	} {
		_, err := auth.Login(context.Background(), tc.name, tc.password)
		assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
	}
}
