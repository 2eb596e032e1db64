package models

// Trip represents a planned trip whose costs are shared among collaborators.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string

	// Currency is the ISO 4217 code all expenses on the trip are recorded in.
	// The settlement engine assumes a single currency per trip.
	Currency string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// DefaultCurrency is used when a trip is created without a currency.
const DefaultCurrency = "USD"
