// Package middleware holds the gateway's HTTP middleware, most importantly
// the authorization gate in front of protected routes.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/clients"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/httpx"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/reqctx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/dmitrijs2005/blogmesh/internal/metrics"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
)

const (
	MsgMissingToken = "Unauthorized: missing token"
	MsgInvalidToken = "Unauthorized: invalid or expired token"
)

// TokenValidator resolves an access token through the identity service.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*pb.ValidateTokenResponse, error)
}

// AuthGate admits a request only after the identity service confirms its
// bearer token. Every request costs one ValidateToken call; nothing is cached.
type AuthGate struct {
	validator TokenValidator
	timeout   time.Duration
	logger    logging.Logger
}

// NewAuthGate builds the gate. A zero timeout leaves the validation call
// bounded only by the request context.
func NewAuthGate(v TokenValidator, timeout time.Duration, l logging.Logger) *AuthGate {
	return &AuthGate{validator: v, timeout: timeout, logger: l.With("module", "auth_gate")}
}

func (g *AuthGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := bearerToken(r.Header.Get(common.AuthorizationHeader))
		if !ok {
			g.reject(w, "missing_token", MsgMissingToken)
			return
		}

		callCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		resp, err := g.validator.ValidateToken(callCtx, token)
		if err != nil {
			// The caller sees the same 401 as for a bad token; the outage is
			// visible in logs and metrics only.
			outcome := "invalid_token"
			if errors.Is(err, clients.ErrUnavailable) {
				outcome = "unavailable"
			}
			g.logger.Warn(ctx, "Token validation failed", "outcome", outcome, "error", err.Error(), "request_id", reqctx.RequestID(ctx))
			g.reject(w, outcome, MsgInvalidToken)
			return
		}

		if resp == nil || !resp.IsValid || resp.UserID == "" {
			g.reject(w, "invalid_token", MsgInvalidToken)
			return
		}

		metrics.GateDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r.WithContext(reqctx.WithUserID(ctx, resp.UserID)))
	})
}

func (g *AuthGate) reject(w http.ResponseWriter, outcome, msg string) {
	metrics.GateDecisions.WithLabelValues(outcome).Inc()
	httpx.WriteError(w, http.StatusUnauthorized, common.CodeUnauthenticated, msg, nil)
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively; an empty token is rejected.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
