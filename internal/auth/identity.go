package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
)

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// MemberLookup finds a member by ID.
type MemberLookup interface {
	GetMemberByID(ctx context.Context, id string) (*models.Member, error)
}

// IdentityResolver turns an Authorization header into the calling member.
type IdentityResolver struct {
	tokens  *JWTManager
	members MemberLookup
	logger  *slog.Logger
}

// NewIdentityResolver creates a resolver. A nil logger uses slog.Default().
func NewIdentityResolver(tokens *JWTManager, members MemberLookup, logger *slog.Logger) *IdentityResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityResolver{
		tokens:  tokens,
		members: members,
		logger:  logger,
	}
}

// Resolve returns the member named by a bearer token, or nil for an anonymous caller.
//
// A missing or short header, a header using another scheme, a token that fails
// verification and a token for an unknown member all yield nil. Failures are
// logged and counted; they are never returned to the caller.
func (r *IdentityResolver) Resolve(ctx context.Context, header string) *models.Member {
	if len(header) < len(BearerPrefix) {
		return nil
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		r.reject("unsupported authorization scheme")
		return nil
	}

	claims, err := r.tokens.Validate(strings.TrimSpace(header[len(BearerPrefix):]))
	if err != nil {
		r.reject("token verification failed", "error", err)
		return nil
	}

	member, err := r.members.GetMemberByID(ctx, claims.MemberID)
	if err != nil {
		r.logger.Error("Failed to load token member", "member_id", claims.MemberID, "error", err)
		return nil
	}
	if member == nil {
		r.reject("token references unknown member", "member_id", claims.MemberID)
		return nil
	}

	return member
}

func (r *IdentityResolver) reject(reason string, args ...any) {
	metrics.RecordAuthEvent(metrics.AuthTokenRejected)
	r.logger.Warn("Request treated as anonymous", append([]any{"reason", reason}, args...)...)
}
