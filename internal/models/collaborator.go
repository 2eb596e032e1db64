package models

// Collaborator represents a person taking part in a trip.
//
// Collaborators are referenced from newer expenses by UserID. When a
// settlement is computed the UserID is resolved to Label().
type Collaborator struct {
	// UserID is the unique identifier for the collaborator (UUID format).
	UserID string

	// TripID is the trip this collaborator belongs to.
	TripID string

	// DisplayName is the human-readable name. Optional when Email is set.
	DisplayName string

	// Email is the collaborator's email address. Optional when DisplayName is set.
	Email string

	// CreatedAt is the Unix timestamp when the collaborator joined the trip.
	CreatedAt int64
}

// Label returns the identity string used for balances: the display name,
// falling back to the email address.
func (c Collaborator) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Email
}
