package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(repo *fakeUserRepo) (*SessionService, *security.Codec) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	return NewSessionService(repo, codec, testAdmin), codec
}

func TestResolveAdminShortcut(t *testing.T) {
	repo := newFakeUserRepo()
	sessions, codec := newTestSession(repo)

	token, err := codec.Encode(security.Claims{
		Name: testAdmin.Name, Email: testAdmin.Email, Role: model.RoleAdmin, Subject: "0",
	})
	require.NoError(t, err)

	principal, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, model.AdminUserID, principal.ID)
	assert.Equal(t, testAdmin.Name, principal.Name)
	assert.Equal(t, model.RoleAdmin, principal.Role)
	assert.Zero(t, repo.findByNameCalls, "admin resolution must never touch the store")
	require.NoError(t, RequireAdmin(principal))
}

func TestResolveStoreUser(t *testing.T) {
	repo := newFakeUserRepo(&model.User{
		ID: 7, Name: "alice", Email: "alice@example.com", Password: "p", Role: model.RoleUser,
	})
	sessions, codec := newTestSession(repo)

	token, err := codec.Encode(security.Claims{
		Name: "alice", Email: "alice@example.com", Role: model.RoleUser, Subject: "7",
	})
	require.NoError(t, err)

	principal, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), principal.ID)
	assert.Equal(t, "alice", principal.Name)
	assert.Equal(t, model.RoleUser, principal.Role)

	err = RequireAdmin(principal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestResolveRoleComesFromStore(t *testing.T) {
	// A token minted while the user was admin must lose its power as soon as
	// the store row is demoted; the claim is not trusted.
	repo := newFakeUserRepo(&model.User{
		ID: 7, Name: "alice", Email: "alice@example.com", Password: "p", Role: model.RoleAdmin,
	})
	sessions, codec := newTestSession(repo)

	token, err := codec.Encode(security.Claims{
		Name: "alice", Email: "alice@example.com", Role: model.RoleAdmin, Subject: "7",
	})
	require.NoError(t, err)

	principal, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, RequireAdmin(principal))

	repo.users["alice"].Role = model.RoleUser

	principal, err = sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, principal.Role)
	assert.True(t, errors.Is(RequireAdmin(principal), common.ErrForbidden))
}

func TestResolveDeletedUser(t *testing.T) {
	repo := newFakeUserRepo(&model.User{
		ID: 7, Name: "alice", Email: "alice@example.com", Password: "p", Role: model.RoleUser,
	})
	sessions, codec := newTestSession(repo)

	token, err := codec.Encode(security.Claims{
		Name: "alice", Email: "alice@example.com", Role: model.RoleUser, Subject: "7",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), 7))

	_, err = sessions.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestResolveRejectsForeignToken(t *testing.T) {
	sessions, _ := newTestSession(newFakeUserRepo())

	foreign := security.NewCodec([]byte("other-secret"), time.Hour)
	token, err := foreign.Encode(security.Claims{
		Name: testAdmin.Name, Role: model.RoleAdmin, Subject: "0",
	})
	require.NoError(t, err)

	_, err = sessions.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestResolveRejectsMissingName(t *testing.T) {
	sessions, codec := newTestSession(newFakeUserRepo())

	token, err := codec.Encode(security.Claims{Role: model.RoleUser, Subject: "7"})
	require.NoError(t, err)

	_, err = sessions.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestRequireAdminNilPrincipal(t *testing.T) {
	assert.True(t, errors.Is(RequireAdmin(nil), common.ErrForbidden))
}
