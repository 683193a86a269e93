package dtos

import "github.com/justsurfingit/hirely/internal/models"

type UserListQuery struct {
	MaxResults int    `form:"maxResults"`
	PageToken  string `form:"pageToken"`
}

type UserListData struct {
	Users           []models.UserAccount `json:"users"`
	TotalUsers      int                  `json:"totalUsers"`
	VerifiedUsers   int                  `json:"verifiedUsers"`
	UnverifiedUsers int                  `json:"unverifiedUsers"`
	PageToken       string               `json:"pageToken,omitempty"`
}

type CreateUserRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
}

type CreatedUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
