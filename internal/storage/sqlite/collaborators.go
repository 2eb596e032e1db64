package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
)

// AddCollaborator inserts a collaborator into the database.
// The trip must exist.
func (s *SQLiteStore) AddCollaborator(ctx context.Context, c *models.Collaborator) error {
	if _, err := s.GetTrip(ctx, c.TripID); err != nil {
		return err
	}
	if c.UserID == "" {
		c.UserID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO collaborators (user_id, trip_id, display_name, email, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.UserID,
		c.TripID,
		c.DisplayName,
		c.Email,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add collaborator: %w", err)
	}
	return nil
}

// ListCollaborators retrieves a trip's collaborators in the order they joined.
func (s *SQLiteStore) ListCollaborators(ctx context.Context, tripID string) ([]models.Collaborator, error) {
	query := `
		SELECT user_id, trip_id, display_name, email, created_at
		FROM collaborators
		WHERE trip_id = ?
		ORDER BY created_at, rowid
	`

	rows, err := s.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	defer rows.Close()

	var collaborators []models.Collaborator
	for rows.Next() {
		var c models.Collaborator
		if err := rows.Scan(
			&c.UserID,
			&c.TripID,
			&c.DisplayName,
			&c.Email,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}
		collaborators = append(collaborators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collaborators: %w", err)
	}

	return collaborators, nil
}

// RemoveCollaborator deletes a collaborator from a trip.
// Expenses that reference the collaborator are left as they are.
func (s *SQLiteStore) RemoveCollaborator(ctx context.Context, tripID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM collaborators WHERE trip_id = ? AND user_id = ?",
		tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}
	return requireAffected(result, "collaborator", userID)
}
