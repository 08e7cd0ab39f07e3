package middleware

import (
	"net/http"
	"strings"

	internaljwt "chat-rooms-backend/internal/jwt"
)

// ValidateUserJWT gates a route on a valid, unexpired access token. The
// handler behind it re-reads the claims itself when it needs the identity.
func ValidateUserJWT(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		if _, err := internaljwt.VerifyUser(tokenString); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}
