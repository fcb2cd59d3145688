package service

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/domain/model"
	"fintrack/internal/domain/repository"
)

type InvestmentService struct {
	investmentRepo repository.InvestmentRepository
}

func NewInvestmentService(investmentRepo repository.InvestmentRepository) *InvestmentService {
	return &InvestmentService{investmentRepo: investmentRepo}
}

type CreateInvestmentRequest struct {
	Name        string               `json:"name"`
	Kind        model.InvestmentKind `json:"kind"`
	AmountCents int64                `json:"amount_cents"`
	Currency    string               `json:"currency"`
	PurchasedAt time.Time            `json:"purchased_at"`
}

type UpdateInvestmentRequest struct {
	Name        *string               `json:"name"`
	Kind        *model.InvestmentKind `json:"kind"`
	AmountCents *int64                `json:"amount_cents"`
	Currency    *string               `json:"currency"`
	PurchasedAt *time.Time            `json:"purchased_at"`
}

func validInvestmentKind(kind model.InvestmentKind) bool {
	switch kind {
	case model.InvestmentStock, model.InvestmentFund, model.InvestmentCrypto, model.InvestmentOther:
		return true
	}
	return false
}

func (s *InvestmentService) Create(ctx context.Context, principal *model.Principal, req CreateInvestmentRequest) (*model.Investment, error) {
	if req.Name == "" || req.AmountCents <= 0 {
		return nil, fmt.Errorf("name and a positive amount are required: %w", common.ErrBadRequest)
	}
	if !validInvestmentKind(req.Kind) {
		return nil, fmt.Errorf("unknown investment kind %q: %w", req.Kind, common.ErrBadRequest)
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.PurchasedAt.IsZero() {
		req.PurchasedAt = time.Now()
	}

	inv := &model.Investment{
		UserID:      principal.ID,
		Name:        req.Name,
		Kind:        req.Kind,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		PurchasedAt: req.PurchasedAt,
	}
	if err := s.investmentRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("InvestmentService.Create: %w", err)
	}
	return inv, nil
}

// List returns the caller's investments; admins see every user's rows.
func (s *InvestmentService) List(ctx context.Context, principal *model.Principal) ([]model.Investment, error) {
	if principal.IsAdmin() {
		return s.investmentRepo.ListAll(ctx)
	}
	return s.investmentRepo.ListByUser(ctx, principal.ID)
}

func (s *InvestmentService) Get(ctx context.Context, principal *model.Principal, id int64) (*model.Investment, error) {
	inv, err := s.investmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.UserID != principal.ID && !principal.IsAdmin() {
		// Hide other users' rows rather than admitting they exist.
		return nil, common.ErrNotFound
	}
	return inv, nil
}

func (s *InvestmentService) Update(ctx context.Context, principal *model.Principal, id int64, req UpdateInvestmentRequest) (*model.Investment, error) {
	inv, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		inv.Name = *req.Name
	}
	if req.Kind != nil {
		if !validInvestmentKind(*req.Kind) {
			return nil, fmt.Errorf("unknown investment kind %q: %w", *req.Kind, common.ErrBadRequest)
		}
		inv.Kind = *req.Kind
	}
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", common.ErrBadRequest)
		}
		inv.AmountCents = *req.AmountCents
	}
	if req.Currency != nil {
		inv.Currency = *req.Currency
	}
	if req.PurchasedAt != nil {
		inv.PurchasedAt = *req.PurchasedAt
	}

	if err := s.investmentRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("InvestmentService.Update: %w", err)
	}
	return inv, nil
}

func (s *InvestmentService) Delete(ctx context.Context, principal *model.Principal, id int64) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	return s.investmentRepo.Delete(ctx, id)
}
