package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mickaelbalensi/ProductManager/internal/platform/httpx"
)

// OutcomeKind is the terminal state of one authentication attempt.
type OutcomeKind int

const (
	Authenticated OutcomeKind = iota + 1
	Rejected
	ServerError
)

// RejectReason explains a Rejected outcome.
type RejectReason string

const (
	MissingToken          RejectReason = "missing_token"
	MalformedHeader       RejectReason = "malformed_header"
	InvalidOrExpiredToken RejectReason = "invalid_or_expired_token"
	UserNotFound          RejectReason = "user_not_found"
)

// Message returns the client-facing text for the reason.
func (r RejectReason) Message() string {
	switch r {
	case MissingToken:
		return "Access token is required"
	case MalformedHeader:
		return "Invalid token format. Use: Bearer <token>"
	case UserNotFound:
		return "User not found"
	default:
		return "Invalid or expired token"
	}
}

// Outcome is the result of Gate.Authenticate.
type Outcome struct {
	Kind     OutcomeKind
	Reason   RejectReason
	Identity Identity
	Err      error
}

// TokenVerifier verifies bearer tokens and returns their subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Resolver maps a token subject to an identity.
type Resolver interface {
	Resolve(ctx context.Context, subject string) (Identity, bool, error)
}

// Gate authenticates inbound requests carrying a bearer token.
type Gate struct {
	tokens   TokenVerifier
	resolver Resolver
	logger   *slog.Logger
	onReject func(RejectReason)
}

// GateOption customises a Gate.
type GateOption func(*Gate)

// WithRejectionObserver registers fn to be called for every rejected request.
func WithRejectionObserver(fn func(RejectReason)) GateOption {
	return func(g *Gate) {
		g.onReject = fn
	}
}

// NewGate constructs a Gate.
func NewGate(tokens TokenVerifier, resolver Resolver, logger *slog.Logger, opts ...GateOption) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gate{tokens: tokens, resolver: resolver, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate runs extract, verify and resolve for r.
func (g *Gate) Authenticate(r *http.Request) Outcome {
	token, reason, ok := extractBearer(r.Header.Get("Authorization"))
	if !ok {
		return Outcome{Kind: Rejected, Reason: reason}
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		return Outcome{Kind: Rejected, Reason: InvalidOrExpiredToken}
	}

	identity, found, err := g.resolver.Resolve(r.Context(), subject)
	if err != nil {
		return Outcome{Kind: ServerError, Err: err}
	}
	if !found {
		return Outcome{Kind: Rejected, Reason: UserNotFound}
	}
	return Outcome{Kind: Authenticated, Identity: identity}
}

// Middleware rejects unauthenticated requests and attaches the identity
// for downstream handlers.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome := g.Authenticate(r)
		switch outcome.Kind {
		case Authenticated:
			ctx := ContextWithIdentity(r.Context(), outcome.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		case Rejected:
			if g.onReject != nil {
				g.onReject(outcome.Reason)
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", outcome.Reason.Message())
		default:
			g.logger.Error("authenticate request",
				slog.String("path", r.URL.Path),
				slog.Any("error", outcome.Err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
	})
}

func extractBearer(header string) (string, RejectReason, bool) {
	if header == "" {
		return "", MissingToken, false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", MalformedHeader, false
	}
	return parts[1], "", true
}
