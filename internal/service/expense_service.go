package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store storage.Store
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// expenseInput holds the editable fields shared by add and update requests.
type expenseInput struct {
	Description      string
	Category         string
	Amount           decimal.Decimal
	PaidBy           string
	SplitWith        []string
	PaidByUserID     string
	SplitWithUserIDs []string
}

// validateExpense checks the amount and that exactly one payer/split shape
// is used. User IDs must belong to the trip's current collaborators.
func validateExpense(in expenseInput, collaborators []models.Collaborator) error {
	if in.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}

	legacy := in.PaidBy != "" || len(in.SplitWith) > 0
	linked := in.PaidByUserID != "" || len(in.SplitWithUserIDs) > 0
	switch {
	case legacy && linked:
		return fmt.Errorf("use either paid_by/split_with or paid_by_user_id/split_with_user_ids, not both")
	case legacy:
		if in.PaidBy == "" {
			return fmt.Errorf("paid_by is required")
		}
		if len(in.SplitWith) == 0 {
			return fmt.Errorf("split_with must name at least one person")
		}
	case linked:
		if in.PaidByUserID == "" {
			return fmt.Errorf("paid_by_user_id is required")
		}
		if len(in.SplitWithUserIDs) == 0 {
			return fmt.Errorf("split_with_user_ids must name at least one collaborator")
		}
		members := make(map[string]bool, len(collaborators))
		for _, c := range collaborators {
			members[c.UserID] = true
		}
		if !members[in.PaidByUserID] {
			return fmt.Errorf("paid_by_user_id '%s' is not a collaborator on this trip", in.PaidByUserID)
		}
		for _, id := range in.SplitWithUserIDs {
			if !members[id] {
				return fmt.Errorf("split_with_user_ids entry '%s' is not a collaborator on this trip", id)
			}
		}
	default:
		return fmt.Errorf("a payer is required")
	}
	return nil
}

// trimNames trims each name and drops blanks.
func trimNames(names []string) []string {
	var out []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// validated normalizes whitespace and validates the input against the trip.
func (s *ExpenseService) validated(ctx context.Context, tripID string, in expenseInput) (expenseInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.PaidBy = strings.TrimSpace(in.PaidBy)
	in.SplitWith = trimNames(in.SplitWith)
	in.PaidByUserID = strings.TrimSpace(in.PaidByUserID)
	in.SplitWithUserIDs = trimNames(in.SplitWithUserIDs)

	var collaborators []models.Collaborator
	if in.PaidByUserID != "" || len(in.SplitWithUserIDs) > 0 {
		var err error
		collaborators, err = s.store.ListCollaborators(ctx, tripID)
		if err != nil {
			return in, connect.NewError(connect.CodeInternal, err)
		}
	}
	if err := validateExpense(in, collaborators); err != nil {
		return in, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return in, nil
}

// AddExpense records a new expense on a trip.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"trip_id", req.Msg.TripId,
		"amount", req.Msg.Amount,
		"split_count", len(req.Msg.SplitWith)+len(req.Msg.SplitWithUserIds),
	)

	if _, err := s.store.GetTrip(ctx, req.Msg.TripId); err != nil {
		slog.Error("AddExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	in, err := s.validated(ctx, req.Msg.TripId, expenseInput{
		Description:      req.Msg.Description,
		Category:         req.Msg.Category,
		Amount:           req.Msg.Amount,
		PaidBy:           req.Msg.PaidBy,
		SplitWith:        req.Msg.SplitWith,
		PaidByUserID:     req.Msg.PaidByUserId,
		SplitWithUserIDs: req.Msg.SplitWithUserIds,
	})
	if err != nil {
		slog.Error("AddExpense validation failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	expense := &models.Expense{
		TripID:           req.Msg.TripId,
		Description:      in.Description,
		Category:         in.Category,
		Amount:           in.Amount,
		PaidBy:           in.PaidBy,
		SplitWith:        in.SplitWith,
		PaidByUserID:     in.PaidByUserID,
		SplitWithUserIDs: in.SplitWithUserIDs,
	}

	// Save to storage (generates ID, CreatedAt and a default description)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "trip_id", expense.TripID)

	return connect.NewResponse(&api.AddExpenseResponse{
		Expense: toAPIExpense(expense),
	}), nil
}

// UpdateExpense replaces an existing expense's fields.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received",
		"expense_id", req.Msg.ExpenseId,
		"amount", req.Msg.Amount,
	)

	existing, err := s.store.GetExpense(ctx, req.Msg.ExpenseId)
	if err != nil {
		slog.Error("UpdateExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, storeError(err)
	}

	in, err := s.validated(ctx, existing.TripID, expenseInput{
		Description:      req.Msg.Description,
		Category:         req.Msg.Category,
		Amount:           req.Msg.Amount,
		PaidBy:           req.Msg.PaidBy,
		SplitWith:        req.Msg.SplitWith,
		PaidByUserID:     req.Msg.PaidByUserId,
		SplitWithUserIDs: req.Msg.SplitWithUserIds,
	})
	if err != nil {
		slog.Error("UpdateExpense validation failed", "expense_id", existing.ID, "error", err)
		return nil, err
	}

	expense := &models.Expense{
		ID:               existing.ID,
		TripID:           existing.TripID,
		Description:      in.Description,
		Category:         in.Category,
		Amount:           in.Amount,
		PaidBy:           in.PaidBy,
		SplitWith:        in.SplitWith,
		PaidByUserID:     in.PaidByUserID,
		SplitWithUserIDs: in.SplitWithUserIDs,
		CreatedAt:        existing.CreatedAt,
	}
	if expense.Description == "" {
		expense.Description = existing.Description
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID)

	return connect.NewResponse(&api.UpdateExpenseResponse{
		Expense: toAPIExpense(expense),
	}), nil
}

// DeleteExpense removes an expense by ID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseId)

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseId); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseId)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses retrieves a trip's expenses in the order they were recorded.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "trip_id", req.Msg.TripId)

	if _, err := s.store.GetTrip(ctx, req.Msg.TripId); err != nil {
		slog.Error("ListExpenses failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	apiExpenses := make([]*api.Expense, len(expenses))
	for i := range expenses {
		apiExpenses[i] = toAPIExpense(&expenses[i])
	}

	slog.Info("ListExpenses successful", "trip_id", req.Msg.TripId, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: apiExpenses,
	}), nil
}
