package api

import "github.com/shopspring/decimal"

// Trip is a planned trip.
type Trip struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	CreatedAt int64  `json:"createdAt"`
}

// Collaborator is a person taking part in a trip.
type Collaborator struct {
	UserId      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

// Expense is a shared cost. Either the name fields (PaidBy, SplitWith) or
// the user ID fields (PaidByUserId, SplitWithUserIds) are set.
type Expense struct {
	Id               string          `json:"id"`
	TripId           string          `json:"tripId"`
	Description      string          `json:"description"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	PaidBy           string          `json:"paidBy,omitempty"`
	SplitWith        []string        `json:"splitWith,omitempty"`
	PaidByUserId     string          `json:"paidByUserId,omitempty"`
	SplitWithUserIds []string        `json:"splitWithUserIds,omitempty"`
	CreatedAt        int64           `json:"createdAt"`
}

// Balance is one participant's net position.
// Positive = is owed money, negative = owes money.
type Balance struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Transaction is a suggested payment.
type Transaction struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Settlement is the computed view of who owes whom on a trip.
type Settlement struct {
	TripId          string          `json:"tripId"`
	Currency        string          `json:"currency"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	Balances        []*Balance      `json:"balances"`
	Transactions    []*Transaction  `json:"transactions"`
	SkippedExpenses int32           `json:"skippedExpenses"`
}

// TripService messages.

type CreateTripRequest struct {
	Name       string `json:"name"`
	Currency   string `json:"currency,omitempty"`
	OwnerName  string `json:"ownerName,omitempty"`
	OwnerEmail string `json:"ownerEmail,omitempty"`
}

type CreateTripResponse struct {
	Trip  *Trip         `json:"trip"`
	Owner *Collaborator `json:"owner,omitempty"`
}

type GetTripRequest struct {
	TripId string `json:"tripId"`
}

type GetTripResponse struct {
	Trip          *Trip           `json:"trip"`
	Collaborators []*Collaborator `json:"collaborators"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type UpdateTripRequest struct {
	TripId   string `json:"tripId"`
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
}

type UpdateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripId string `json:"tripId"`
}

type DeleteTripResponse struct{}

type AddCollaboratorRequest struct {
	TripId      string `json:"tripId"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

type AddCollaboratorResponse struct {
	Collaborator *Collaborator `json:"collaborator"`
}

type RemoveCollaboratorRequest struct {
	TripId string `json:"tripId"`
	UserId string `json:"userId"`
}

type RemoveCollaboratorResponse struct{}

// ExpenseService messages.

type AddExpenseRequest struct {
	TripId           string          `json:"tripId"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	PaidBy           string          `json:"paidBy,omitempty"`
	SplitWith        []string        `json:"splitWith,omitempty"`
	PaidByUserId     string          `json:"paidByUserId,omitempty"`
	SplitWithUserIds []string        `json:"splitWithUserIds,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ExpenseId        string          `json:"expenseId"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	PaidBy           string          `json:"paidBy,omitempty"`
	SplitWith        []string        `json:"splitWith,omitempty"`
	PaidByUserId     string          `json:"paidByUserId,omitempty"`
	SplitWithUserIds []string        `json:"splitWithUserIds,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseId string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct {
	TripId string `json:"tripId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// SettlementService messages.

type GetSettlementRequest struct {
	TripId string `json:"tripId"`
}

type GetSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type CreateShareLinkRequest struct {
	TripId   string `json:"tripId"`
	Passcode string `json:"passcode,omitempty"`
	TtlHours int32  `json:"ttlHours,omitempty"`
}

type CreateShareLinkResponse struct {
	LinkId    string `json:"linkId"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type RevokeShareLinkRequest struct {
	LinkId string `json:"linkId"`
}

type RevokeShareLinkResponse struct{}

// GetSharedSettlementRequest is sent with the share token in the
// Authorization header.
type GetSharedSettlementRequest struct {
	Passcode string `json:"passcode,omitempty"`
}

type GetSharedSettlementResponse struct {
	TripName   string      `json:"tripName"`
	Settlement *Settlement `json:"settlement"`
}
