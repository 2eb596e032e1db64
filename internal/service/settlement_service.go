package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/settlement"
	"github.com/mmynk/tripsplit/internal/share"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// SettlementService implements the Connect SettlementService.
// Settlements are computed on every request and never stored.
type SettlementService struct {
	store   storage.Store
	engine  *settlement.Engine
	shares  *share.Manager
	metrics *metrics.Metrics
}

var _ api.SettlementServiceHandler = (*SettlementService)(nil)

// NewSettlementService creates a new SettlementService. m may be nil.
func NewSettlementService(store storage.Store, engine *settlement.Engine, shares *share.Manager, m *metrics.Metrics) *SettlementService {
	return &SettlementService{
		store:   store,
		engine:  engine,
		shares:  shares,
		metrics: m,
	}
}

// compute loads a trip's collaborators and expenses and runs the engine.
func (s *SettlementService) compute(ctx context.Context, trip *models.Trip) (*api.Settlement, error) {
	collaborators, err := s.store.ListCollaborators(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	expenses, err := s.store.ListExpensesByTrip(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	participants := settlement.Participants(collaborators, expenses)
	normalized := settlement.Normalize(expenses, settlement.NewCollaboratorDirectory(collaborators))
	result := s.engine.Compute(normalized, participants)

	s.metrics.ObserveSettlement(len(result.Transactions), result.Skipped)
	if result.Skipped > 0 {
		slog.Warn("Expenses skipped in settlement", "trip_id", trip.ID, "skipped", result.Skipped)
	}

	balances := result.SortedBalances()
	out := &api.Settlement{
		TripId:          trip.ID,
		Currency:        trip.Currency,
		TotalSpent:      result.Total,
		Balances:        make([]*api.Balance, len(balances)),
		Transactions:    make([]*api.Transaction, len(result.Transactions)),
		SkippedExpenses: int32(result.Skipped),
	}
	for i, b := range balances {
		out.Balances[i] = &api.Balance{Participant: b.Participant, Amount: b.Amount}
	}
	for i, t := range result.Transactions {
		out.Transactions[i] = &api.Transaction{From: t.From, To: t.To, Amount: t.Amount}
	}
	return out, nil
}

// GetSettlement returns every participant's balance and the payments that
// settle the trip.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	slog.Info("GetSettlement request received", "trip_id", req.Msg.TripId)

	trip, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetSettlement failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	result, err := s.compute(ctx, trip)
	if err != nil {
		slog.Error("GetSettlement failed", "trip_id", trip.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("GetSettlement successful",
		"trip_id", trip.ID,
		"total", result.TotalSpent,
		"transactions", len(result.Transactions),
	)

	return connect.NewResponse(&api.GetSettlementResponse{
		Settlement: result,
	}), nil
}

// CreateShareLink issues a read-only link to a trip's settlement, optionally
// protected by a passcode.
func (s *SettlementService) CreateShareLink(ctx context.Context, req *connect.Request[api.CreateShareLinkRequest]) (*connect.Response[api.CreateShareLinkResponse], error) {
	slog.Info("CreateShareLink request received",
		"trip_id", req.Msg.TripId,
		"ttl_hours", req.Msg.TtlHours,
		"has_passcode", req.Msg.Passcode != "",
	)

	if req.Msg.TtlHours < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("ttl_hours must not be negative"))
	}
	if maxHours := int32(share.MaxTTL / time.Hour); req.Msg.TtlHours > maxHours {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("ttl_hours must be at most %d", maxHours))
	}

	if _, err := s.store.GetTrip(ctx, req.Msg.TripId); err != nil {
		slog.Error("CreateShareLink failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	hash, err := share.HashPasscode(req.Msg.Passcode)
	if err != nil {
		if errors.Is(err, share.ErrWeakPasscode) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		slog.Error("CreateShareLink failed to hash passcode", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	now := time.Now()
	link := &models.ShareLink{
		TripID:       req.Msg.TripId,
		PasscodeHash: hash,
		ExpiresAt:    s.shares.ExpiryFor(now, time.Duration(req.Msg.TtlHours)*time.Hour).Unix(),
		CreatedAt:    now.Unix(),
	}
	if err := s.store.CreateShareLink(ctx, link); err != nil {
		slog.Error("CreateShareLink failed", "error", err)
		return nil, storeError(err)
	}

	token, err := s.shares.Generate(link)
	if err != nil {
		slog.Error("CreateShareLink failed to sign token", "link_id", link.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Share link created", "link_id", link.ID, "trip_id", link.TripID)

	return connect.NewResponse(&api.CreateShareLinkResponse{
		LinkId:    link.ID,
		Token:     token,
		ExpiresAt: link.ExpiresAt,
	}), nil
}

// RevokeShareLink deletes a share link; tokens issued for it stop working.
func (s *SettlementService) RevokeShareLink(ctx context.Context, req *connect.Request[api.RevokeShareLinkRequest]) (*connect.Response[api.RevokeShareLinkResponse], error) {
	slog.Info("RevokeShareLink request received", "link_id", req.Msg.LinkId)

	if err := s.store.DeleteShareLink(ctx, req.Msg.LinkId); err != nil {
		slog.Error("RevokeShareLink failed", "link_id", req.Msg.LinkId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Share link revoked", "link_id", req.Msg.LinkId)

	return connect.NewResponse(&api.RevokeShareLinkResponse{}), nil
}
