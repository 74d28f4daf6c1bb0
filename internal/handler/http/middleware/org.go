package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type contextKey string

const memberContextKey contextKey = "org_member"

// MemberFromContext returns the caller's membership record resolved by
// OrgMember.
func MemberFromContext(ctx context.Context) (member.Member, bool) {
	m, ok := ctx.Value(memberContextKey).(member.Member)
	return m, ok
}

// UserIDFromContext extracts the user id from the verified token claims.
func UserIDFromContext(ctx context.Context) string {
	_, claims, _ := jwtauth.FromContext(ctx)
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// OrgMember resolves the caller's membership in the org named by the orgID
// URL parameter and stores it in the request context. Roles live in the
// members table, not in token claims, so they are looked up per request.
func OrgMember(memberRepo member.MemberRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			orgID := chi.URLParam(r, "orgID")
			if orgID == "" {
				response.BadRequest(w, "Organization ID is required", nil)
				return
			}

			userID := UserIDFromContext(r.Context())
			if userID == "" {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			m, err := memberRepo.GetByOrgAndUser(r.Context(), orgID, userID)
			if err != nil {
				response.Forbidden(w, "You are not a member of this organization")
				return
			}

			ctx := context.WithValue(r.Context(), memberContextKey, m)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a route on the caller's role holding the given
// permission. Must run after OrgMember.
func RequirePermission(permission member.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m, ok := MemberFromContext(r.Context())
			if !ok {
				response.Forbidden(w, "You are not a member of this organization")
				return
			}

			if !member.HasPermission(m.Role, permission) {
				response.Forbidden(w, "Your role does not allow this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
