package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose bearer token did not verify. Tokens are
// minted by the platform identity service; SSE tokens carry type "sse" and
// must not pass as access tokens.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			if tokenType, ok := claims["type"].(string); ok && tokenType == "sse" {
				response.Unauthorized(w, "SSE tokens are only valid on the stream endpoint")
				return
			}
			if userID, ok := claims["user_id"].(string); !ok || userID == "" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
