package model

import "time"

type InvestmentKind string

const (
	InvestmentStock  InvestmentKind = "stock"
	InvestmentFund   InvestmentKind = "fund"
	InvestmentCrypto InvestmentKind = "crypto"
	InvestmentOther  InvestmentKind = "other"
)

type Investment struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Name        string         `json:"name"`
	Kind        InvestmentKind `json:"kind"`
	AmountCents int64          `json:"amount_cents"`
	Currency    string         `json:"currency"`
	PurchasedAt time.Time      `json:"purchased_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
