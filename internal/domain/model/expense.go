package model

import "time"

// Expense is a single spending record. CategorySlug is the normalized form
// of Category and is what filters match against.
type Expense struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	CategorySlug string    `json:"category_slug"`
	AmountCents  int64     `json:"amount_cents"`
	SpentAt      time.Time `json:"spent_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
