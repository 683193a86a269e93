package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
)

const unverifiedMessage = "Please verify your email address. We've sent you a new verification email."

// AuthHandler fronts the end-user identity operations. Admin is optional and
// only used to revoke refresh tokens on sign-out.
type AuthHandler struct {
	Identity auth.IdentityProvider
	Admin    auth.UserAdmin
	Log      *logging.Logger
}

func NewAuthHandler(identity auth.IdentityProvider, admin auth.UserAdmin, log *logging.Logger) *AuthHandler {
	return &AuthHandler{Identity: identity, Admin: admin, Log: log}
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req dtos.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required", "field": auth.FieldGeneral})
		return
	}

	creds, err := h.Identity.SignIn(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.providerError(c, err)
		return
	}

	if !creds.User.EmailVerified {
		if err := h.Identity.SendVerification(c.Request.Context(), creds.IDToken); err != nil {
			h.Log.Warn("resend verification failed", "uid", creds.User.UID, "err", err)
		}
		_ = c.Error(auth.ErrEmailUnverified)
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": unverifiedMessage, "field": auth.FieldGeneral})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sessionDTO(creds)})
}

// SignUp creates the account and mails the verification link before answering.
func (h *AuthHandler) SignUp(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req dtos.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required", "field": auth.FieldGeneral})
		return
	}

	creds, err := h.Identity.SignUp(c.Request.Context(), strings.TrimSpace(req.Email), req.Password, strings.TrimSpace(req.DisplayName))
	if err != nil {
		h.providerError(c, err)
		return
	}
	if err := h.Identity.SendVerification(c.Request.Context(), creds.IDToken); err != nil {
		h.Log.Warn("send verification failed", "uid", creds.User.UID, "err", err)
	}

	h.Log.Info("user signed up", "uid", creds.User.UID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sessionDTO(creds)})
}

// SignOut revokes refresh tokens when admin credentials exist. The client drops
// its tokens either way.
func (h *AuthHandler) SignOut(c *gin.Context) {
	sess, _ := auth.SessionFrom(c)
	if h.Admin != nil && sess != nil {
		if err := h.Admin.RevokeSessions(c.Request.Context(), sess.UID); err != nil {
			h.Log.Warn("revoke sessions failed", "uid", sess.UID, "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) PasswordReset(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req dtos.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email is required", "field": auth.FieldEmail})
		return
	}

	if err := h.Identity.SendPasswordReset(c.Request.Context(), strings.TrimSpace(req.Email)); err != nil {
		h.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset email sent"})
}

func (h *AuthHandler) SendVerification(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	sess, _ := auth.SessionFrom(c)
	if err := h.Identity.SendVerification(c.Request.Context(), sess.IDToken); err != nil {
		h.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification email sent"})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format", "field": auth.FieldGeneral})
		return
	}

	sess, _ := auth.SessionFrom(c)
	user, err := h.Identity.UpdateProfile(c.Request.Context(), sess.IDToken, req.DisplayName, req.PhotoURL)
	if err != nil {
		h.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// Me reloads the caller's record from the provider.
func (h *AuthHandler) Me(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	sess, _ := auth.SessionFrom(c)
	user, err := h.Identity.Lookup(c.Request.Context(), sess.IDToken)
	if err != nil {
		h.providerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (h *AuthHandler) ready(c *gin.Context) bool {
	if h.Identity == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Authentication is not configured", "field": auth.FieldGeneral})
		return false
	}
	return true
}

func (h *AuthHandler) providerError(c *gin.Context, err error) {
	_ = c.Error(err)
	pe := auth.AsProviderError(err)

	var known *auth.ProviderError
	if !errors.As(err, &known) {
		h.Log.Error("identity provider unreachable", "err", err)
	}
	c.JSON(providerStatus(pe.Code, known != nil), gin.H{
		"success": false,
		"error":   pe.Message(),
		"field":   pe.Field(),
	})
}

func providerStatus(code auth.ErrorCode, fromProvider bool) int {
	switch code {
	case auth.CodeInvalidEmail, auth.CodeWeakPassword:
		return http.StatusBadRequest
	case auth.CodeUserNotFound, auth.CodeWrongPassword, auth.CodeInvalidCredential, auth.CodeInvalidSession:
		return http.StatusUnauthorized
	case auth.CodeUserDisabled:
		return http.StatusForbidden
	case auth.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case auth.CodeTooManyRequests:
		return http.StatusTooManyRequests
	}
	if fromProvider {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func sessionDTO(creds *auth.Credentials) dtos.AuthSession {
	return dtos.AuthSession{
		User:         creds.User,
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    auth.ExpiresInString(creds.ExpiresIn),
	}
}
