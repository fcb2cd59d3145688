package service

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/common"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/model"
	"fintrack/internal/domain/repository"
	"fintrack/internal/platform/config"
)

// SessionService turns a presented token back into a Principal. For regular
// users the store row is re-read on every call and its role/id win over the
// token's claims, so a role revocation takes effect on the next request and a
// deleted user invalidates every token issued for that name.
type SessionService struct {
	userRepo repository.UserRepository
	codec    *security.Codec
	admin    config.AdminIdentity
}

func NewSessionService(userRepo repository.UserRepository, codec *security.Codec, admin config.AdminIdentity) *SessionService {
	return &SessionService{userRepo: userRepo, codec: codec, admin: admin}
}

func (s *SessionService) Resolve(ctx context.Context, tokenString string) (*model.Principal, error) {
	claims, err := s.codec.Decode(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Name == "" {
		return nil, fmt.Errorf("%w: token carries no username", common.ErrUnauthenticated)
	}

	// Name match alone selects the synthetic super-admin; the store is never
	// touched for it and no row with that name can override the identity.
	if claims.Name == s.admin.Name {
		return &model.Principal{
			ID:    model.AdminUserID,
			Name:  s.admin.Name,
			Email: s.admin.Email,
			Role:  model.RoleAdmin,
		}, nil
	}

	user, err := s.userRepo.FindByName(ctx, claims.Name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: token user no longer exists", common.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("SessionService.Resolve: %w", err)
	}

	return &model.Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// RequireAdmin is the role gate for mutation endpoints. Distinct from
// authentication failures: the caller is known, just not allowed.
func RequireAdmin(p *model.Principal) error {
	if p == nil || !p.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}
