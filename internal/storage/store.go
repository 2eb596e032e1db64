// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is wrapped by every store error for a missing record.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip.
	// The trip.ID and trip.CreatedAt fields will be populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	// ListTrips returns all trips, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	// DeleteTrip removes a trip with its collaborators, expenses and share links.
	DeleteTrip(ctx context.Context, tripID string) error

	// AddCollaborator persists a collaborator, generating its UserID if unset.
	AddCollaborator(ctx context.Context, collaborator *models.Collaborator) error
	ListCollaborators(ctx context.Context, tripID string) ([]models.Collaborator, error)
	RemoveCollaborator(ctx context.Context, tripID, userID string) error

	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	// ListExpensesByTrip returns a trip's expenses in the order they were recorded.
	ListExpensesByTrip(ctx context.Context, tripID string) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error

	CreateShareLink(ctx context.Context, link *models.ShareLink) error
	GetShareLink(ctx context.Context, linkID string) (*models.ShareLink, error)
	DeleteShareLink(ctx context.Context, linkID string) error

	// Close releases any resources held by the store.
	Close() error
}
