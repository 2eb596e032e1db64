// Package models defines the core domain models for trip expense sharing.
//
// # Models
//
//   - Trip: a planned trip that owns collaborators, expenses and share links
//   - Collaborator: a person on the trip, identified by a generated user ID
//   - Expense: a shared cost with one payer and a set of people splitting it
//   - ShareLink: a revocable read-only link to a trip's settlement
//
// # Expense shapes
//
// Expenses come in two shapes. Legacy expenses name the payer and the people
// splitting the cost with free-text display names (PaidBy, SplitWith). Newer
// expenses reference collaborators by user ID (PaidByUserID, SplitWithUserIDs)
// and are resolved to display names when a settlement is computed.
//
// Settlements are never stored: balances and suggested payments are derived
// from the current expense list every time they are requested.
package models
