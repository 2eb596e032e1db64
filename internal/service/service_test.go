package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/settlement"
	"github.com/mmynk/tripsplit/internal/share"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api"
)

// testClients holds a client for every service mounted on the test server.
type testClients struct {
	trips       *api.TripServiceClient
	expenses    *api.ExpenseServiceClient
	settlements *api.SettlementServiceClient
	shared      *api.SharedServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New(prometheus.NewRegistry())
	shares := share.NewManager("test-secret", time.Hour)
	interceptors := connect.WithInterceptors(middleware.MetricsInterceptor(m))

	settlementSvc := NewSettlementService(store, settlement.NewEngine(), shares, m)

	mux := http.NewServeMux()
	mux.Handle(api.NewTripServiceHandler(NewTripService(store), interceptors))
	mux.Handle(api.NewExpenseServiceHandler(NewExpenseService(store), interceptors))
	mux.Handle(api.NewSettlementServiceHandler(settlementSvc, interceptors))
	mux.Handle(api.NewSharedServiceHandler(NewSharedService(settlementSvc),
		connect.WithInterceptors(middleware.MetricsInterceptor(m), middleware.RequireShareToken(shares)),
	))

	server := httptest.NewServer(mux)

	clients := &testClients{
		trips:       api.NewTripServiceClient(http.DefaultClient, server.URL),
		expenses:    api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		settlements: api.NewSettlementServiceClient(http.DefaultClient, server.URL),
		shared:      api.NewSharedServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

// createTrip creates a trip and fails the test on error.
func createTrip(t *testing.T, c *testClients, name string) *api.Trip {
	t.Helper()
	resp, err := c.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
		Name: name,
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return resp.Msg.Trip
}

// addCollaborator adds a named collaborator and returns their user ID.
func addCollaborator(t *testing.T, c *testClients, tripID, name string) string {
	t.Helper()
	resp, err := c.trips.AddCollaborator(context.Background(), connect.NewRequest(&api.AddCollaboratorRequest{
		TripId:      tripID,
		DisplayName: name,
	}))
	if err != nil {
		t.Fatalf("AddCollaborator %s failed: %v", name, err)
	}
	return resp.Msg.Collaborator.UserId
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected %v, got %v (%v)", want, got, err)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
