package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"chat-rooms-backend/internal/dto"
	internaljwt "chat-rooms-backend/internal/jwt"

	"github.com/google/uuid"
)

type AuthEndpoints interface {
	Login(http.ResponseWriter, *http.Request) error
	Verify(http.ResponseWriter, *http.Request) error
	Profile(http.ResponseWriter, *http.Request) error
}

type authEndpoints struct{}

func NewAuthEndpoints() AuthEndpoints {
	return &authEndpoints{}
}

func (h *authEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

func (h *authEndpoints) Verify(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleIdentity,
	})
}

func (h *authEndpoints) Profile(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleIdentity,
	})
}

// handleLogin is the demo login: no password, identity is whatever the
// caller claims. The signed token is what actually gates the chat server.
func (h *authEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode login request: %w", err),
		}
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Name and email are required",
			ErrorLog:   fmt.Errorf("login request missing name or email"),
		}
	}

	photo := strings.TrimSpace(req.Photo)
	if photo == "" {
		photo = fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
	}

	user := internaljwt.User{
		ID:    "user_" + uuid.NewString(),
		Name:  name,
		Email: email,
		Photo: photo,
	}

	token, err := internaljwt.CreateToken(user, 0)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("sign login token: %w", err),
		}
	}

	return WriteJSON(w, http.StatusOK, dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    user,
	})
}

func (h *authEndpoints) handleIdentity(w http.ResponseWriter, r *http.Request) error {
	user, err := internaljwt.VerifyUser(ExtractToken(r))
	if err != nil {
		return unauthorizedError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.VerifyResponse{
		Success: true,
		User:    user,
	})
}

func unauthorizedError(err error) error {
	message := "Invalid or expired token"
	if errors.Is(err, internaljwt.ErrTokenExpired) {
		message = "Token expired"
	}
	return &HTTPError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		ErrorLog:   fmt.Errorf("verify token: %w", err),
	}
}
