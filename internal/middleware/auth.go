package middleware

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// MemberKey is the context key for storing the authenticated member.
const MemberKey contextKey = "member"

// WithMember returns a copy of ctx carrying member as the caller.
func WithMember(ctx context.Context, member *models.Member) context.Context {
	return context.WithValue(ctx, MemberKey, member)
}

// GetMember extracts the authenticated member from the context.
// Returns nil for anonymous requests.
func GetMember(ctx context.Context) *models.Member {
	member, _ := ctx.Value(MemberKey).(*models.Member)
	return member
}

// GetMemberID extracts the authenticated member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	if member := GetMember(ctx); member != nil {
		return member.ID
	}
	return ""
}

// CurrentUser returns HTTP middleware that resolves the Authorization header once
// per request and stores the member, if any, in the request context.
// Requests with a missing or unusable token continue anonymously.
func CurrentUser(resolver *auth.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if member != nil {
				r = r.WithContext(WithMember(r.Context(), member))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a Connect interceptor that rejects anonymous calls to the
// listed procedures. Other procedures pass through untouched.
func RequireAuth(procedures ...string) connect.UnaryInterceptorFunc {
	guarded := make(map[string]bool, len(procedures))
	for _, p := range procedures {
		guarded[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if guarded[req.Spec().Procedure] && GetMember(ctx) == nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}
			return next(ctx, req)
		}
	}
}
