package models

import "github.com/shopspring/decimal"

// Expense represents a shared cost on a trip.
// It stores either the legacy name-based payer/split fields or the
// user-ID-based ones; IsLegacy reports which.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Description is what the money was spent on (e.g., "Hotel", "Taxi").
	Description string

	// Category is an optional free-text grouping (e.g., "lodging", "food").
	Category string

	// Amount is the non-negative cost in the trip currency.
	Amount decimal.Decimal

	// PaidBy is the display name of the payer (legacy shape).
	PaidBy string

	// SplitWith is the list of display names sharing the cost (legacy shape).
	SplitWith []string

	// PaidByUserID is the collaborator who paid (user-ID shape).
	PaidByUserID string

	// SplitWithUserIDs is the list of collaborators sharing the cost (user-ID shape).
	SplitWithUserIDs []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsLegacy reports whether the expense uses display names rather than
// collaborator user IDs.
func (e Expense) IsLegacy() bool {
	return e.PaidByUserID == "" && len(e.SplitWithUserIDs) == 0
}
