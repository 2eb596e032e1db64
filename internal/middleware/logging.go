package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, peer address, share link (when installed after
// RequireShareToken), duration, and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			logger := slog.With("procedure", procedure, "peer", req.Peer().Addr)
			if linkID := GetShareLinkID(ctx); linkID != "" {
				logger = logger.With("share_link_id", linkID)
			}

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					logger.Warn("RPC error",
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"duration_ms", duration,
					)
				} else {
					logger.Error("RPC error",
						"error", err,
						"duration_ms", duration,
					)
				}
			} else {
				logger.Info("RPC ok", "duration_ms", duration)
			}

			return resp, err
		}
	}
}
