package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "tripsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_Trips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID, name and currency", func(t *testing.T) {
		trip := &models.Trip{}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if !strings.HasPrefix(trip.Name, "Trip - ") {
			t.Errorf("Expected generated name, got %q", trip.Name)
		}
		if trip.Currency != models.DefaultCurrency {
			t.Errorf("Currency = %s, want %s", trip.Currency, models.DefaultCurrency)
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetTrip and UpdateTrip", func(t *testing.T) {
		trip := &models.Trip{Name: "Lisbon", Currency: "EUR"}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		trip.Name = "Lisbon & Porto"
		if err := store.UpdateTrip(ctx, trip); err != nil {
			t.Fatalf("UpdateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.Name != "Lisbon & Porto" {
			t.Errorf("Name = %q, want %q", got.Name, "Lisbon & Porto")
		}
		if got.Currency != "EUR" {
			t.Errorf("Currency = %s, want EUR", got.Currency)
		}
	})

	t.Run("missing trip returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetTrip error = %v, want ErrNotFound", err)
		}
		err = store.UpdateTrip(ctx, &models.Trip{ID: "nonexistent-id", Name: "x"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateTrip error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteTrip(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteTrip error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListTrips returns newest first", func(t *testing.T) {
		older := &models.Trip{Name: "Older", CreatedAt: 1000}
		newer := &models.Trip{Name: "Newer", CreatedAt: 2000}
		store.CreateTrip(ctx, older)
		store.CreateTrip(ctx, newer)

		trips, err := store.ListTrips(ctx)
		if err != nil {
			t.Fatalf("ListTrips failed: %v", err)
		}
		idx := make(map[string]int)
		for i, trip := range trips {
			idx[trip.ID] = i
		}
		if idx[newer.ID] > idx[older.ID] {
			t.Errorf("expected %s before %s", newer.Name, older.Name)
		}
	})
}

func TestSQLiteStore_Collaborators(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Alps"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	alice := &models.Collaborator{TripID: trip.ID, DisplayName: "Alice"}
	bob := &models.Collaborator{TripID: trip.ID, Email: "bob@example.com"}
	for _, c := range []*models.Collaborator{alice, bob} {
		if err := store.AddCollaborator(ctx, c); err != nil {
			t.Fatalf("AddCollaborator failed: %v", err)
		}
		if c.UserID == "" {
			t.Error("Expected UserID to be generated")
		}
	}

	got, err := store.ListCollaborators(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListCollaborators failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 collaborators, got %d", len(got))
	}
	if got[0].Label() != "Alice" || got[1].Label() != "bob@example.com" {
		t.Errorf("unexpected labels: %q, %q", got[0].Label(), got[1].Label())
	}

	if err := store.RemoveCollaborator(ctx, trip.ID, bob.UserID); err != nil {
		t.Fatalf("RemoveCollaborator failed: %v", err)
	}
	if err := store.RemoveCollaborator(ctx, trip.ID, bob.UserID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second RemoveCollaborator error = %v, want ErrNotFound", err)
	}

	err = store.AddCollaborator(ctx, &models.Collaborator{TripID: "nonexistent-id", DisplayName: "Ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("AddCollaborator to missing trip error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Tokyo", Currency: "JPY"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	legacy := &models.Expense{
		TripID:    trip.ID,
		Amount:    decimal.RequireFromString("123.45"),
		PaidBy:    "Alice",
		SplitWith: []string{"Charlie", "Alice", "Bob"},
		CreatedAt: 100,
	}
	linked := &models.Expense{
		TripID:           trip.ID,
		Description:      "Ramen",
		Category:         "food",
		Amount:           decimal.NewFromInt(3000),
		PaidByUserID:     "u-1",
		SplitWithUserIDs: []string{"u-2", "u-1"},
		CreatedAt:        200,
	}

	t.Run("CreateExpense generates ID and description", func(t *testing.T) {
		if err := store.CreateExpense(ctx, legacy); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.CreateExpense(ctx, linked); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if legacy.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if legacy.Description != "Split with Charlie, Alice, Bob" {
			t.Errorf("Unexpected description: %s", legacy.Description)
		}
	})

	t.Run("GetExpense keeps amount and split order", func(t *testing.T) {
		got, err := store.GetExpense(ctx, legacy.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(legacy.Amount) {
			t.Errorf("Amount = %s, want %s", got.Amount, legacy.Amount)
		}
		if strings.Join(got.SplitWith, ",") != "Charlie,Alice,Bob" {
			t.Errorf("SplitWith = %v, want [Charlie Alice Bob]", got.SplitWith)
		}
		if !got.IsLegacy() {
			t.Error("Expected legacy expense")
		}
	})

	t.Run("ListExpensesByTrip returns oldest first with splits", func(t *testing.T) {
		got, err := store.ListExpensesByTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListExpensesByTrip failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(got))
		}
		if got[0].ID != legacy.ID || got[1].ID != linked.ID {
			t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
		}
		if strings.Join(got[1].SplitWithUserIDs, ",") != "u-2,u-1" {
			t.Errorf("SplitWithUserIDs = %v, want [u-2 u-1]", got[1].SplitWithUserIDs)
		}
		if got[1].PaidByUserID != "u-1" || got[1].Category != "food" {
			t.Errorf("unexpected linked expense: %+v", got[1])
		}
	})

	t.Run("UpdateExpense replaces splits", func(t *testing.T) {
		legacy.Amount = decimal.NewFromInt(50)
		legacy.SplitWith = []string{"Bob"}
		if err := store.UpdateExpense(ctx, legacy); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, err := store.GetExpense(ctx, legacy.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(decimal.NewFromInt(50)) {
			t.Errorf("Amount = %s, want 50", got.Amount)
		}
		if len(got.SplitWith) != 1 || got.SplitWith[0] != "Bob" {
			t.Errorf("SplitWith = %v, want [Bob]", got.SplitWith)
		}
	})

	t.Run("DeleteTrip cascades to expenses", func(t *testing.T) {
		if err := store.DeleteTrip(ctx, trip.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, linked.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense after DeleteTrip error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStore_ShareLinks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Oslo"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	link := &models.ShareLink{TripID: trip.ID, PasscodeHash: "hash", ExpiresAt: 4102444800}
	if err := store.CreateShareLink(ctx, link); err != nil {
		t.Fatalf("CreateShareLink failed: %v", err)
	}

	got, err := store.GetShareLink(ctx, link.ID)
	if err != nil {
		t.Fatalf("GetShareLink failed: %v", err)
	}
	if got.TripID != trip.ID || !got.HasPasscode() || got.ExpiresAt != link.ExpiresAt {
		t.Errorf("unexpected share link: %+v", got)
	}

	if err := store.DeleteShareLink(ctx, link.ID); err != nil {
		t.Fatalf("DeleteShareLink failed: %v", err)
	}
	if _, err := store.GetShareLink(ctx, link.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetShareLink after delete error = %v, want ErrNotFound", err)
	}
}

func TestGenerateDescription(t *testing.T) {
	tests := []struct {
		splitWith    []string
		wantContains string
	}{
		{[]string{}, "Expense -"},
		{[]string{"Alice"}, "Split with Alice"},
		{[]string{"Alice", "Bob"}, "Split with Alice, Bob"},
		{[]string{"Alice", "Bob", "Charlie"}, "Split with Alice, Bob, Charlie"},
		{[]string{"Alice", "Bob", "Charlie", "Diana"}, "and 2 others"},
	}

	for _, tt := range tests {
		t.Run(tt.wantContains, func(t *testing.T) {
			got := generateDescription(tt.splitWith, 1700000000)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("generateDescription(%v) = %q, want to contain %q", tt.splitWith, got, tt.wantContains)
			}
		})
	}
}
