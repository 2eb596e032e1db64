package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/share"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// SharedService implements the Connect SharedService, the read-only view
// served to share link holders. Its handler must be mounted behind
// middleware.RequireShareToken.
type SharedService struct {
	settlements *SettlementService
}

var _ api.SharedServiceHandler = (*SharedService)(nil)

// NewSharedService creates a SharedService backed by the given settlements.
func NewSharedService(settlements *SettlementService) *SharedService {
	return &SharedService{settlements: settlements}
}

// GetSharedSettlement returns the settlement of the trip the caller's share
// token grants access to.
func (s *SharedService) GetSharedSettlement(ctx context.Context, req *connect.Request[api.GetSharedSettlementRequest]) (*connect.Response[api.GetSharedSettlementResponse], error) {
	linkID := middleware.GetShareLinkID(ctx)
	tripID := middleware.GetShareTripID(ctx)
	if linkID == "" || tripID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, share.ErrMissingToken)
	}

	slog.Info("GetSharedSettlement request received", "link_id", linkID, "trip_id", tripID)

	store := s.settlements.store
	link, err := store.GetShareLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("GetSharedSettlement with revoked link", "link_id", linkID)
			return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("share link has been revoked"))
		}
		slog.Error("GetSharedSettlement failed", "link_id", linkID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if link.TripID != tripID {
		return nil, connect.NewError(connect.CodePermissionDenied, share.ErrInvalidToken)
	}

	if err := share.CheckPasscode(link.PasscodeHash, req.Msg.Passcode); err != nil {
		slog.Warn("GetSharedSettlement wrong passcode", "link_id", linkID)
		return nil, connect.NewError(connect.CodePermissionDenied, err)
	}

	trip, err := store.GetTrip(ctx, link.TripID)
	if err != nil {
		slog.Error("GetSharedSettlement failed", "trip_id", link.TripID, "error", err)
		return nil, storeError(err)
	}

	result, err := s.settlements.compute(ctx, trip)
	if err != nil {
		slog.Error("GetSharedSettlement failed", "trip_id", trip.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("GetSharedSettlement successful", "link_id", linkID, "trip_id", trip.ID)

	return connect.NewResponse(&api.GetSharedSettlementResponse{
		TripName:   trip.Name,
		Settlement: result,
	}), nil
}
