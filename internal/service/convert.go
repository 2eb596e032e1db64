package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// storeError maps a storage error to a Connect error.
func storeError(err error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func toAPITrip(trip *models.Trip) *api.Trip {
	return &api.Trip{
		Id:        trip.ID,
		Name:      trip.Name,
		Currency:  trip.Currency,
		CreatedAt: trip.CreatedAt,
	}
}

func toAPICollaborator(c models.Collaborator) *api.Collaborator {
	return &api.Collaborator{
		UserId:      c.UserID,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		CreatedAt:   c.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:               e.ID,
		TripId:           e.TripID,
		Description:      e.Description,
		Category:         e.Category,
		Amount:           e.Amount,
		PaidBy:           e.PaidBy,
		SplitWith:        e.SplitWith,
		PaidByUserId:     e.PaidByUserID,
		SplitWithUserIds: e.SplitWithUserIDs,
		CreatedAt:        e.CreatedAt,
	}
}
