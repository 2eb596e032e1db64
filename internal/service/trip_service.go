package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// TripService implements the Connect TripService
type TripService struct {
	store storage.Store
}

var _ api.TripServiceHandler = (*TripService)(nil)

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTrip creates a new trip. When an owner name or email is given the
// owner is added as the first collaborator.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"currency", req.Msg.Currency,
	)

	trip := &models.Trip{
		Name:     strings.TrimSpace(req.Msg.Name),
		Currency: strings.ToUpper(strings.TrimSpace(req.Msg.Currency)),
	}

	// Save to storage (generates ID, CreatedAt and a default name)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.CreateTripResponse{Trip: toAPITrip(trip)}

	ownerName := strings.TrimSpace(req.Msg.OwnerName)
	ownerEmail := strings.TrimSpace(req.Msg.OwnerEmail)
	if ownerName != "" || ownerEmail != "" {
		owner := &models.Collaborator{
			TripID:      trip.ID,
			DisplayName: ownerName,
			Email:       ownerEmail,
		}
		if err := s.store.AddCollaborator(ctx, owner); err != nil {
			slog.Error("CreateTrip failed to add owner", "trip_id", trip.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		resp.Owner = toAPICollaborator(*owner)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "name", trip.Name)

	return connect.NewResponse(resp), nil
}

// GetTrip retrieves a trip and its collaborators.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripId)

	trip, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	collaborators, err := s.store.ListCollaborators(ctx, trip.ID)
	if err != nil {
		slog.Error("GetTrip failed to list collaborators", "trip_id", trip.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	apiCollaborators := make([]*api.Collaborator, len(collaborators))
	for i, c := range collaborators {
		apiCollaborators[i] = toAPICollaborator(c)
	}

	slog.Info("GetTrip successful", "trip_id", trip.ID, "collaborators_count", len(collaborators))

	return connect.NewResponse(&api.GetTripResponse{
		Trip:          toAPITrip(trip),
		Collaborators: apiCollaborators,
	}), nil
}

// ListTrips retrieves all trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	apiTrips := make([]*api.Trip, len(trips))
	for i, trip := range trips {
		apiTrips[i] = toAPITrip(trip)
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&api.ListTripsResponse{
		Trips: apiTrips,
	}), nil
}

// UpdateTrip renames a trip or changes its currency. Empty fields keep their
// current value.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received",
		"trip_id", req.Msg.TripId,
		"name", req.Msg.Name,
		"currency", req.Msg.Currency,
	)

	trip, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("UpdateTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		trip.Name = name
	}
	if currency := strings.TrimSpace(req.Msg.Currency); currency != "" {
		trip.Currency = strings.ToUpper(currency)
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip updated", "trip_id", trip.ID)

	return connect.NewResponse(&api.UpdateTripResponse{
		Trip: toAPITrip(trip),
	}), nil
}

// DeleteTrip removes a trip with its collaborators, expenses and share links.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripId)

	if err := s.store.DeleteTrip(ctx, req.Msg.TripId); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripId)

	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}

// AddCollaborator adds a person to a trip. A display name or an email is
// required, and the resulting label must be unique within the trip since
// balances are keyed by it.
func (s *TripService) AddCollaborator(ctx context.Context, req *connect.Request[api.AddCollaboratorRequest]) (*connect.Response[api.AddCollaboratorResponse], error) {
	slog.Info("AddCollaborator request received",
		"trip_id", req.Msg.TripId,
		"display_name", req.Msg.DisplayName,
	)

	collaborator := &models.Collaborator{
		TripID:      req.Msg.TripId,
		DisplayName: strings.TrimSpace(req.Msg.DisplayName),
		Email:       strings.TrimSpace(req.Msg.Email),
	}
	if collaborator.Label() == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("display_name or email is required"))
	}

	existing, err := s.store.ListCollaborators(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("AddCollaborator failed to list collaborators", "trip_id", req.Msg.TripId, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	for _, c := range existing {
		if c.Label() == collaborator.Label() {
			return nil, connect.NewError(connect.CodeAlreadyExists,
				fmt.Errorf("collaborator '%s' already exists on this trip", collaborator.Label()))
		}
	}

	// Save to storage (generates UserID and CreatedAt)
	if err := s.store.AddCollaborator(ctx, collaborator); err != nil {
		slog.Error("AddCollaborator failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Collaborator added", "trip_id", collaborator.TripID, "user_id", collaborator.UserID)

	return connect.NewResponse(&api.AddCollaboratorResponse{
		Collaborator: toAPICollaborator(*collaborator),
	}), nil
}

// RemoveCollaborator removes a person from a trip. Expenses that reference
// them by user ID stay stored; the settlement skips what can no longer be
// attributed.
func (s *TripService) RemoveCollaborator(ctx context.Context, req *connect.Request[api.RemoveCollaboratorRequest]) (*connect.Response[api.RemoveCollaboratorResponse], error) {
	slog.Info("RemoveCollaborator request received",
		"trip_id", req.Msg.TripId,
		"user_id", req.Msg.UserId,
	)

	if err := s.store.RemoveCollaborator(ctx, req.Msg.TripId, req.Msg.UserId); err != nil {
		slog.Error("RemoveCollaborator failed", "trip_id", req.Msg.TripId, "user_id", req.Msg.UserId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Collaborator removed", "trip_id", req.Msg.TripId, "user_id", req.Msg.UserId)

	return connect.NewResponse(&api.RemoveCollaboratorResponse{}), nil
}
