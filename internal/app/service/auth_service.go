package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/model"
	"fintrack/internal/domain/repository"
	"fintrack/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// AuthService issues bearer tokens. The configured admin identity is checked
// strictly before the store, so a user row sharing the admin name is always
// shadowed by the admin path.
type AuthService struct {
	userRepo repository.UserRepository
	codec    *security.Codec
	verifier security.PasswordVerifier
	admin    config.AdminIdentity

	// rdb backs the per-name login throttle; nil disables throttling.
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codec *security.Codec,
	verifier security.PasswordVerifier,
	admin config.AdminIdentity,
	rdb *redis.Client,
	maxAttempts int,
	window time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		codec:       codec,
		verifier:    verifier,
		admin:       admin,
		rdb:         rdb,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login validates the name/password pair and returns a signed token. Every
// failure path collapses into ErrInvalidCredentials so responses never reveal
// whether the name or the password was wrong.
func (s *AuthService) Login(ctx context.Context, name, password string) (*TokenResponse, error) {
	if name == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	if err := s.allowAttempt(ctx, name); err != nil {
		return nil, err
	}

	if name == s.admin.Name {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) != 1 {
			s.recordFailure(ctx, name)
			return nil, common.ErrInvalidCredentials
		}
		return s.issue(ctx, security.Claims{
			Name:    s.admin.Name,
			Email:   s.admin.Email,
			Role:    model.RoleAdmin,
			Subject: strconv.FormatInt(model.AdminUserID, 10),
		})
	}

	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.recordFailure(ctx, name)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("AuthService.Login: %w", err)
	}

	if !s.verifier.Verify(password, user.Password) {
		s.recordFailure(ctx, name)
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(ctx, security.Claims{
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Subject: strconv.FormatInt(user.ID, 10),
	})
}

func (s *AuthService) issue(ctx context.Context, claims security.Claims) (*TokenResponse, error) {
	token, err := s.codec.Encode(claims)
	if err != nil {
		return nil, fmt.Errorf("AuthService.issue: %w", err)
	}
	s.clearFailures(ctx, claims.Name)
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func throttleKey(name string) string {
	return "login:attempts:" + name
}

func (s *AuthService) allowAttempt(ctx context.Context, name string) error {
	if s.rdb == nil || s.maxAttempts <= 0 {
		return nil
	}
	count, err := s.rdb.Get(ctx, throttleKey(name)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		// Redis being down must not lock everyone out.
		return nil
	}
	if count >= s.maxAttempts {
		return common.ErrRateLimited
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, name string) {
	if s.rdb == nil {
		return
	}
	key := throttleKey(name)
	if count, err := s.rdb.Incr(ctx, key).Result(); err == nil && count == 1 {
		s.rdb.Expire(ctx, key, s.window)
	}
}

func (s *AuthService) clearFailures(ctx context.Context, name string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, throttleKey(name))
}
