package jwt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"chat-rooms-backend/internal/env"

	"github.com/golang-jwt/jwt"
)

const TokenTTL = 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("jwt: token is invalid")
	ErrTokenExpired = errors.New("jwt: token is expired")

	secretMu sync.RWMutex
	secret   []byte
)

// SetSecret overrides the signing secret. Tests use this instead of the
// environment.
func SetSecret(s []byte) {
	if len(s) == 0 {
		return
	}
	secretMu.Lock()
	secret = make([]byte, len(s))
	copy(secret, s)
	secretMu.Unlock()
}

func signingSecret() []byte {
	secretMu.RLock()
	s := secret
	secretMu.RUnlock()
	if len(s) > 0 {
		return s
	}

	secretMu.Lock()
	defer secretMu.Unlock()
	if len(secret) == 0 {
		secret = []byte(env.Get(env.JWTSecretKey))
	}
	return secret
}

func CreateToken(user User, validUntil int64) (string, error) {
	if validUntil == 0 {
		validUntil = time.Now().Add(TokenTTL).Unix()
	}

	claims := jwt.MapClaims{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"photo":  user.Photo,
		"exp":    validUntil,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingSecret())
}

func ParseToken(tokenString string) (jwt.MapClaims, error) {
	if len(tokenString) == 0 {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return signingSecret(), nil
	})
	if err != nil {
		if validationErr, ok := err.(*jwt.ValidationError); ok &&
			validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// VerifyUser validates the token and rebuilds the identity from its claims.
// This is the only path a transport session identity comes from.
func VerifyUser(tokenString string) (User, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return User{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return User{}, ErrTokenInvalid
	}
	if time.Now().Unix() > int64(exp) {
		return User{}, ErrTokenExpired
	}

	user := User{
		ID:    claimString(claims, "userId"),
		Name:  claimString(claims, "name"),
		Email: claimString(claims, "email"),
		Photo: claimString(claims, "photo"),
	}
	if user.ID == "" || user.Name == "" {
		return User{}, ErrTokenInvalid
	}

	return user, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
