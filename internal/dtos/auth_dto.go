package dtos

import "github.com/justsurfingit/hirely/internal/models"

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// ProfileUpdateRequest leaves a field untouched when it is nil.
type ProfileUpdateRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

type AuthSession struct {
	User         models.UserAccount `json:"user"`
	IDToken      string             `json:"idToken"`
	RefreshToken string             `json:"refreshToken"`
	ExpiresIn    string             `json:"expiresIn"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
