package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/app/service"
	"fintrack/internal/common"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/model"
	"fintrack/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(context.Context, *model.User) error { return nil }

func (s *stubUserRepo) FindByName(_ context.Context, name string) (*model.User, error) {
	if s.user != nil && s.user.Name == name {
		copied := *s.user
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (s *stubUserRepo) FindByID(context.Context, int64) (*model.User, error) {
	return nil, common.ErrNotFound
}

func (s *stubUserRepo) List(context.Context) ([]model.User, error) { return nil, nil }
func (s *stubUserRepo) Update(context.Context, *model.User) error  { return nil }
func (s *stubUserRepo) Delete(context.Context, int64) error        { return nil }

var admin = config.AdminIdentity{Name: "admin_master", Password: "s", Email: "a@b.c"}

func newTestRouter(repo *stubUserRepo, codec *security.Codec) http.Handler {
	sessions := service.NewSessionService(repo, codec, admin)
	authn := Authenticator(sessions)

	r := chi.NewRouter()
	r.With(authn).Get("/me", func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		common.RespondWithJSON(w, http.StatusOK, principal)
	})
	r.With(authn, AdminOnly).Delete("/users/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestAuthenticatorMissingToken(t *testing.T) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	router := newTestRouter(&stubUserRepo{}, codec)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	router := newTestRouter(&stubUserRepo{}, codec)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorResolvesPrincipal(t *testing.T) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	repo := &stubUserRepo{user: &model.User{ID: 7, Name: "alice", Role: model.RoleUser}}
	router := newTestRouter(repo, codec)

	token, err := codec.Encode(security.Claims{Name: "alice", Role: model.RoleUser, Subject: "7"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestAdminOnlyForbidsRegularUser(t *testing.T) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	repo := &stubUserRepo{user: &model.User{ID: 7, Name: "alice", Role: model.RoleUser}}
	router := newTestRouter(repo, codec)

	token, err := codec.Encode(security.Claims{Name: "alice", Role: model.RoleUser, Subject: "7"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyAdmitsAdmin(t *testing.T) {
	codec := security.NewCodec([]byte("test-secret"), time.Hour)
	router := newTestRouter(&stubUserRepo{}, codec)

	token, err := codec.Encode(security.Claims{Name: admin.Name, Role: model.RoleAdmin, Subject: "0"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
