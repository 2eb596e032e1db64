package models

// ShareLink grants read-only access to a trip's settlement view.
// Deleting the link revokes every token issued for it.
type ShareLink struct {
	// ID is the unique identifier for the link (UUID format).
	ID string

	// TripID is the trip being shared.
	TripID string

	// PasscodeHash is the bcrypt hash of the optional passcode.
	// Empty when the link has no passcode.
	PasscodeHash string

	// ExpiresAt is the Unix timestamp after which tokens for this link are rejected.
	ExpiresAt int64

	// CreatedAt is the Unix timestamp when the link was created.
	CreatedAt int64
}

// HasPasscode reports whether the link is protected by a passcode.
func (l ShareLink) HasPasscode() bool {
	return l.PasscodeHash != ""
}
