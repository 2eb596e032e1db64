package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/share"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ShareLinkIDKey is the context key for the validated share link ID.
	ShareLinkIDKey contextKey = "share_link_id"
	// ShareTripIDKey is the context key for the trip a share token grants access to.
	ShareTripIDKey contextKey = "share_trip_id"
)

// GetShareLinkID extracts the share link ID from the context.
// Returns empty string if not found.
func GetShareLinkID(ctx context.Context) string {
	linkID, _ := ctx.Value(ShareLinkIDKey).(string)
	return linkID
}

// GetShareTripID extracts the shared trip ID from the context.
// Returns empty string if not found.
func GetShareTripID(ctx context.Context) string {
	tripID, _ := ctx.Value(ShareTripIDKey).(string)
	return tripID
}

// WithShare returns a copy of ctx carrying a validated share link.
func WithShare(ctx context.Context, linkID, tripID string) context.Context {
	ctx = context.WithValue(ctx, ShareLinkIDKey, linkID)
	return context.WithValue(ctx, ShareTripIDKey, tripID)
}

// RequireShareToken returns an interceptor that validates the share token in
// the Authorization header and adds the link and trip IDs to the context.
func RequireShareToken(manager *share.Manager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				slog.Warn("Share token missing", "procedure", procedure, "peer", req.Peer().Addr)
				return nil, connect.NewError(connect.CodeUnauthenticated, share.ErrMissingToken)
			}

			// Parse Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				slog.Warn("Malformed authorization header", "procedure", procedure, "peer", req.Peer().Addr)
				return nil, connect.NewError(connect.CodeUnauthenticated, share.ErrInvalidToken)
			}

			claims, err := manager.Validate(parts[1])
			if err != nil {
				slog.Warn("Share token rejected", "procedure", procedure, "peer", req.Peer().Addr, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithShare(ctx, claims.LinkID, claims.TripID), req)
		}
	}
}
