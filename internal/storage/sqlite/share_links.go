package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateShareLink persists a new share link. The trip must exist.
func (s *SQLiteStore) CreateShareLink(ctx context.Context, link *models.ShareLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if link.CreatedAt == 0 {
		link.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO share_links (id, trip_id, passcode_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		link.ID, link.TripID, link.PasscodeHash, link.ExpiresAt, link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert share link: %w", err)
	}
	return nil
}

// GetShareLink retrieves a share link by ID.
func (s *SQLiteStore) GetShareLink(ctx context.Context, linkID string) (*models.ShareLink, error) {
	link := &models.ShareLink{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, passcode_hash, expires_at, created_at
		 FROM share_links WHERE id = ?`,
		linkID,
	).Scan(&link.ID, &link.TripID, &link.PasscodeHash, &link.ExpiresAt, &link.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("share link %s: %w", linkID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share link: %w", err)
	}
	return link, nil
}

// DeleteShareLink removes a share link by ID, revoking its tokens.
func (s *SQLiteStore) DeleteShareLink(ctx context.Context, linkID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM share_links WHERE id = ?", linkID)
	if err != nil {
		return fmt.Errorf("failed to delete share link: %w", err)
	}
	return requireAffected(result, "share link", linkID)
}
