package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

func TestCreateTrip(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
		Name:       "Lisbon",
		Currency:   "eur",
		OwnerName:  "Alice",
		OwnerEmail: "alice@example.com",
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	trip := resp.Msg.Trip
	if trip.Id == "" {
		t.Error("expected non-empty trip ID")
	}
	if trip.Name != "Lisbon" {
		t.Errorf("name: expected 'Lisbon', got '%s'", trip.Name)
	}
	if trip.Currency != "EUR" {
		t.Errorf("currency: expected 'EUR', got '%s'", trip.Currency)
	}
	if resp.Msg.Owner == nil || resp.Msg.Owner.DisplayName != "Alice" {
		t.Fatalf("expected owner Alice, got %+v", resp.Msg.Owner)
	}

	getResp, err := c.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{
		TripId: trip.Id,
	}))
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if len(getResp.Msg.Collaborators) != 1 {
		t.Fatalf("collaborators: expected 1, got %d", len(getResp.Msg.Collaborators))
	}
	if getResp.Msg.Collaborators[0].UserId != resp.Msg.Owner.UserId {
		t.Error("expected owner to be the first collaborator")
	}
}

func TestCreateTrip_Defaults(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	if !strings.HasPrefix(resp.Msg.Trip.Name, "Trip - ") {
		t.Errorf("expected generated name, got '%s'", resp.Msg.Trip.Name)
	}
	if resp.Msg.Trip.Currency != "USD" {
		t.Errorf("currency: expected 'USD', got '%s'", resp.Msg.Trip.Currency)
	}
	if resp.Msg.Owner != nil {
		t.Errorf("expected no owner, got %+v", resp.Msg.Owner)
	}
}

func TestGetTrip_NotFound(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{
		TripId: "nonexistent-id",
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestListTrips(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	createTrip(t, c, "Trip A")
	createTrip(t, c, "Trip B")

	resp, err := c.trips.ListTrips(context.Background(), connect.NewRequest(&api.ListTripsRequest{}))
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(resp.Msg.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(resp.Msg.Trips))
	}
	// Newest first
	if resp.Msg.Trips[0].Name != "Trip B" {
		t.Errorf("expected 'Trip B' first, got '%s'", resp.Msg.Trips[0].Name)
	}
}

func TestUpdateTrip(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	trip := createTrip(t, c, "Before")

	resp, err := c.trips.UpdateTrip(context.Background(), connect.NewRequest(&api.UpdateTripRequest{
		TripId:   trip.Id,
		Name:     "After",
		Currency: "jpy",
	}))
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}
	if resp.Msg.Trip.Name != "After" {
		t.Errorf("name: expected 'After', got '%s'", resp.Msg.Trip.Name)
	}
	if resp.Msg.Trip.Currency != "JPY" {
		t.Errorf("currency: expected 'JPY', got '%s'", resp.Msg.Trip.Currency)
	}
	if resp.Msg.Trip.CreatedAt != trip.CreatedAt {
		t.Error("expected CreatedAt to be preserved")
	}

	// Empty fields keep the current value
	resp, err = c.trips.UpdateTrip(context.Background(), connect.NewRequest(&api.UpdateTripRequest{
		TripId: trip.Id,
	}))
	if err != nil {
		t.Fatalf("UpdateTrip failed: %v", err)
	}
	if resp.Msg.Trip.Name != "After" || resp.Msg.Trip.Currency != "JPY" {
		t.Errorf("expected unchanged trip, got %+v", resp.Msg.Trip)
	}
}

func TestUpdateTrip_NotFound(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.trips.UpdateTrip(context.Background(), connect.NewRequest(&api.UpdateTripRequest{
		TripId: "nonexistent-id",
		Name:   "Nope",
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestDeleteTrip(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	trip := createTrip(t, c, "Doomed")

	_, err := c.trips.DeleteTrip(context.Background(), connect.NewRequest(&api.DeleteTripRequest{
		TripId: trip.Id,
	}))
	if err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	_, err = c.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{
		TripId: trip.Id,
	}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = c.trips.DeleteTrip(context.Background(), connect.NewRequest(&api.DeleteTripRequest{
		TripId: trip.Id,
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestAddCollaborator_Validation(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	trip := createTrip(t, c, "Validation")
	addCollaborator(t, c, trip.Id, "Alice")

	tests := []struct {
		name string
		req  *api.AddCollaboratorRequest
		want connect.Code
	}{
		{"no name or email", &api.AddCollaboratorRequest{TripId: trip.Id, DisplayName: "  "}, connect.CodeInvalidArgument},
		{"duplicate label", &api.AddCollaboratorRequest{TripId: trip.Id, DisplayName: "Alice"}, connect.CodeAlreadyExists},
		{"unknown trip", &api.AddCollaboratorRequest{TripId: "nonexistent-id", DisplayName: "Bob"}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.trips.AddCollaborator(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, tt.want)
		})
	}
}

func TestAddCollaborator_EmailOnly(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	trip := createTrip(t, c, "Email")

	resp, err := c.trips.AddCollaborator(context.Background(), connect.NewRequest(&api.AddCollaboratorRequest{
		TripId: trip.Id,
		Email:  "bob@example.com",
	}))
	if err != nil {
		t.Fatalf("AddCollaborator failed: %v", err)
	}
	if resp.Msg.Collaborator.Email != "bob@example.com" {
		t.Errorf("email: expected 'bob@example.com', got '%s'", resp.Msg.Collaborator.Email)
	}
}

func TestRemoveCollaborator(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	trip := createTrip(t, c, "Remove")
	aliceID := addCollaborator(t, c, trip.Id, "Alice")
	addCollaborator(t, c, trip.Id, "Bob")

	_, err := c.trips.RemoveCollaborator(context.Background(), connect.NewRequest(&api.RemoveCollaboratorRequest{
		TripId: trip.Id,
		UserId: aliceID,
	}))
	if err != nil {
		t.Fatalf("RemoveCollaborator failed: %v", err)
	}

	getResp, err := c.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{
		TripId: trip.Id,
	}))
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if len(getResp.Msg.Collaborators) != 1 || getResp.Msg.Collaborators[0].DisplayName != "Bob" {
		t.Errorf("expected only Bob to remain, got %+v", getResp.Msg.Collaborators)
	}

	_, err = c.trips.RemoveCollaborator(context.Background(), connect.NewRequest(&api.RemoveCollaboratorRequest{
		TripId: trip.Id,
		UserId: aliceID,
	}))
	expectCode(t, err, connect.CodeNotFound)
}
