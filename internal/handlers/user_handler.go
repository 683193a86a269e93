package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/models"
)

const (
	adminNotConfigured = "Firebase Admin SDK not configured"
	adminHint          = "Please add service account credentials to .env"
	minPasswordLen     = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserHandler serves the admin user directory. Admin is nil without credentials.
type UserHandler struct {
	Admin auth.UserAdmin
	Log   *logging.Logger
}

func NewUserHandler(admin auth.UserAdmin, log *logging.Logger) *UserHandler {
	return &UserHandler{Admin: admin, Log: log}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	if h.Admin == nil {
		// The dashboard renders an empty table instead of an error here.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    dtos.UserListData{Users: []models.UserAccount{}},
			"message": adminNotConfigured + ". " + adminHint,
		})
		return
	}

	var q dtos.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid query parameters"})
		return
	}
	if q.MaxResults <= 0 {
		q.MaxResults = auth.DefaultPageSize
	}

	page, err := h.Admin.ListUsers(c.Request.Context(), q.MaxResults, q.PageToken)
	if err != nil {
		h.Log.Error("list users failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"hint":    "Make sure Firebase Admin SDK is properly configured with service account credentials",
		})
		return
	}

	data := dtos.UserListData{
		Users:      page.Users,
		TotalUsers: len(page.Users),
		PageToken:  page.NextPageToken,
	}
	for _, u := range page.Users {
		if u.EmailVerified {
			data.VerifiedUsers++
		}
	}
	data.UnverifiedUsers = data.TotalUsers - data.VerifiedUsers

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	if h.Admin == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": adminNotConfigured, "hint": adminHint})
		return
	}

	var req dtos.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	switch {
	case req.Email == "" || req.Password == "":
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		return
	case !emailPattern.MatchString(req.Email):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email format"})
		return
	case len(req.Password) < minPasswordLen:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password must be at least 6 characters long"})
		return
	}

	user, err := h.Admin.CreateUser(c.Request.Context(), auth.NewUser{
		Email:         req.Email,
		Password:      req.Password,
		DisplayName:   req.DisplayName,
		EmailVerified: req.EmailVerified,
	})
	if err != nil {
		h.Log.Error("create user failed", "email", req.Email, "err", err)
		var pe *auth.ProviderError
		if errors.As(err, &pe) && pe.Code == auth.CodeEmailAlreadyInUse {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": pe.Message()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.Log.Info("user created", "uid", user.UID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User created successfully",
		"data": dtos.CreatedUser{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if h.Admin == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": adminNotConfigured, "hint": adminHint})
		return
	}

	uid := strings.TrimSpace(c.Param("uid"))
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User ID is required"})
		return
	}

	if err := h.Admin.DeleteUser(c.Request.Context(), uid); err != nil {
		var pe *auth.ProviderError
		if errors.As(err, &pe) && pe.Code == auth.CodeUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": pe.Raw})
			return
		}
		h.Log.Error("delete user failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.Log.Info("user deleted", "uid", uid)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("User %s deleted successfully", uid)})
}
