package service

import (
	"context"
	"fmt"

	"fintrack/internal/common"
	"fintrack/internal/common/security"
	"fintrack/internal/domain/model"
	"fintrack/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	verifier security.PasswordVerifier
}

func NewUserService(userRepo repository.UserRepository, verifier security.PasswordVerifier) *UserService {
	return &UserService{userRepo: userRepo, verifier: verifier}
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Register creates a regular user. The role is always "user"; promotion to
// admin goes through the admin-gated update endpoint.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrBadRequest)
	}

	stored, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("UserService.Register: %w", err)
	}

	user := &model.User{
		Name:     req.Username,
		Email:    req.Email,
		Password: stored,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("UserService.Register: %w", err)
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserService.List: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Name = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		stored, err := s.verifier.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("UserService.Update: %w", err)
		}
		user.Password = stored
	}
	if req.Role != nil {
		if *req.Role != model.RoleUser && *req.Role != model.RoleAdmin {
			return nil, fmt.Errorf("unknown role %q: %w", *req.Role, common.ErrBadRequest)
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("UserService.Update: %w", err)
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
