package dto

import "chat-rooms-backend/internal/jwt"

type LoginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    jwt.User `json:"user"`
}

type VerifyResponse struct {
	Success bool     `json:"success"`
	User    jwt.User `json:"user"`
}
