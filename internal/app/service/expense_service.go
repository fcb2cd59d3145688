package service

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/domain/model"
	"fintrack/internal/domain/repository"

	"github.com/gosimple/slug"
)

type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

type CreateExpenseRequest struct {
	Description string    `json:"description"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	SpentAt     time.Time `json:"spent_at"`
}

type UpdateExpenseRequest struct {
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	AmountCents *int64     `json:"amount_cents"`
	SpentAt     *time.Time `json:"spent_at"`
}

func (s *ExpenseService) Create(ctx context.Context, principal *model.Principal, req CreateExpenseRequest) (*model.Expense, error) {
	if req.Description == "" || req.Category == "" || req.AmountCents <= 0 {
		return nil, fmt.Errorf("description, category and a positive amount are required: %w", common.ErrBadRequest)
	}
	if req.SpentAt.IsZero() {
		req.SpentAt = time.Now()
	}

	exp := &model.Expense{
		UserID:       principal.ID,
		Description:  req.Description,
		Category:     req.Category,
		CategorySlug: slug.Make(req.Category),
		AmountCents:  req.AmountCents,
		SpentAt:      req.SpentAt,
	}
	if err := s.expenseRepo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("ExpenseService.Create: %w", err)
	}
	return exp, nil
}

// List returns the caller's expenses, optionally filtered by category.
// The filter accepts a display name or a slug; both normalize the same way.
func (s *ExpenseService) List(ctx context.Context, principal *model.Principal, category string) ([]model.Expense, error) {
	categorySlug := ""
	if category != "" {
		categorySlug = slug.Make(category)
	}
	if principal.IsAdmin() {
		return s.expenseRepo.ListAll(ctx, categorySlug)
	}
	return s.expenseRepo.ListByUser(ctx, principal.ID, categorySlug)
}

func (s *ExpenseService) Get(ctx context.Context, principal *model.Principal, id int64) (*model.Expense, error) {
	exp, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp.UserID != principal.ID && !principal.IsAdmin() {
		return nil, common.ErrNotFound
	}
	return exp, nil
}

func (s *ExpenseService) Update(ctx context.Context, principal *model.Principal, id int64, req UpdateExpenseRequest) (*model.Expense, error) {
	exp, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		exp.Description = *req.Description
	}
	if req.Category != nil {
		exp.Category = *req.Category
		exp.CategorySlug = slug.Make(*req.Category)
	}
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", common.ErrBadRequest)
		}
		exp.AmountCents = *req.AmountCents
	}
	if req.SpentAt != nil {
		exp.SpentAt = *req.SpentAt
	}

	if err := s.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("ExpenseService.Update: %w", err)
	}
	return exp, nil
}

func (s *ExpenseService) Delete(ctx context.Context, principal *model.Principal, id int64) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}
