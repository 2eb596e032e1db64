package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func testCollaborators() []models.Collaborator {
	return []models.Collaborator{
		{UserID: "u-alice", DisplayName: "Alice"},
		{UserID: "u-bob", Email: "bob@example.com"},
		{UserID: "u-carol", DisplayName: "Carol", Email: "carol@example.com"},
	}
}

func TestNormalize_LegacyExpense(t *testing.T) {
	dir := NewCollaboratorDirectory(testCollaborators())
	got := Normalize([]models.Expense{
		{Amount: d("12.50"), PaidBy: " Dana ", SplitWith: []string{"Dana", "Eve "}},
	}, dir)

	require.Len(t, got, 1)
	assert.Equal(t, "Dana", got[0].Payer)
	assert.Equal(t, []string{"Dana", "Eve"}, got[0].SplitWith)
	assert.True(t, got[0].Amount.Equal(d("12.50")))
}

func TestNormalize_LinkedExpenseResolvesLabels(t *testing.T) {
	dir := NewCollaboratorDirectory(testCollaborators())
	got := Normalize([]models.Expense{
		{Amount: d("30"), PaidByUserID: "u-bob", SplitWithUserIDs: []string{"u-alice", "u-bob", "u-carol"}},
	}, dir)

	require.Len(t, got, 1)
	assert.Equal(t, "bob@example.com", got[0].Payer)
	assert.Equal(t, []string{"Alice", "bob@example.com", "Carol"}, got[0].SplitWith)
}

func TestNormalize_UnresolvableReferences(t *testing.T) {
	dir := NewCollaboratorDirectory(testCollaborators())
	got := Normalize([]models.Expense{
		{Amount: d("10"), PaidByUserID: "u-gone", SplitWithUserIDs: []string{"u-alice"}},
		{Amount: d("10"), PaidByUserID: "u-alice", SplitWithUserIDs: []string{"u-gone"}},
	}, dir)

	require.Len(t, got, 2)
	assert.Empty(t, got[0].Payer)
	assert.Equal(t, "Alice", got[1].Payer)
	assert.Empty(t, got[1].SplitWith)

	result := Compute(got, []string{"Alice"})
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Transactions)
}

func TestNormalize_DirectoryFunc(t *testing.T) {
	dir := DirectoryFunc(func(id string) (string, bool) {
		return "user:" + id, id != ""
	})
	got := Normalize([]models.Expense{
		{Amount: d("4"), PaidByUserID: "1", SplitWithUserIDs: []string{"1", "2"}},
	}, dir)

	require.Len(t, got, 1)
	assert.Equal(t, "user:1", got[0].Payer)
	assert.Equal(t, []string{"user:1", "user:2"}, got[0].SplitWith)
}

func TestParticipants_UnionOfCollaboratorsAndLegacyNames(t *testing.T) {
	expenses := []models.Expense{
		{Amount: d("10"), PaidBy: "Dana", SplitWith: []string{"Alice", "Dana", "Eve"}},
		{Amount: d("10"), PaidByUserID: "u-alice", SplitWithUserIDs: []string{"u-bob"}},
	}

	got := Participants(testCollaborators(), expenses)
	assert.Equal(t, []string{"Alice", "bob@example.com", "Carol", "Dana", "Eve"}, got)
}

func TestMixedShapesSettleTogether(t *testing.T) {
	collaborators := testCollaborators()[:1]
	expenses := []models.Expense{
		{Amount: decimal.NewFromInt(100), PaidByUserID: "u-alice", SplitWithUserIDs: []string{"u-alice"}},
		{Amount: decimal.NewFromInt(100), PaidBy: "Alice", SplitWith: []string{"Alice", "Bob"}},
	}

	result := Compute(
		Normalize(expenses, NewCollaboratorDirectory(collaborators)),
		Participants(collaborators, expenses),
	)

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, Transaction{From: "Bob", To: "Alice", Amount: result.Transactions[0].Amount}, result.Transactions[0])
	assert.True(t, result.Transactions[0].Amount.Equal(d("50")))
}
