package api

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/pamfilico/stripe-sdk/errors"
)

// userIDKey is the context key under which the authenticated caller
// identifier is stored.
type userIDKey struct{}

// authenticator is a middleware that authenticates the caller. It requires a
// valid JWT token signed with the API secret and carrying a userId claim,
// which identifies the internal project or operator using the API. The
// identifier is added to the request context for the handlers.
func (a *API) authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			errors.ErrUnauthorized.Write(w)
			return
		}
		if token == nil || jwt.Validate(token, jwt.WithRequiredClaim("userId")) != nil {
			errors.ErrUnauthorized.Withf("userId claim not found in JWT token").Write(w)
			return
		}
		userID, ok := claims["userId"].(string)
		if !ok || userID == "" {
			errors.ErrUnauthorized.Withf("invalid userId claim").Write(w)
			return
		}
		// token is authenticated, pass it through with the caller identifier
		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext retrieves the authenticated caller identifier set by the
// authenticator middleware.
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}
