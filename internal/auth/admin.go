package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/justsurfingit/hirely/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const DefaultPageSize = 1000

// NewUser holds the fields an administrator may set on creation.
type NewUser struct {
	Email         string
	Password      string
	DisplayName   string
	EmailVerified bool
}

type UserPage struct {
	Users         []models.UserAccount
	NextPageToken string
}

// UserAdmin is the privileged, service-account side of the identity service.
type UserAdmin interface {
	ListUsers(ctx context.Context, maxResults int, pageToken string) (*UserPage, error)
	CreateUser(ctx context.Context, u NewUser) (*models.UserAccount, error)
	DeleteUser(ctx context.Context, uid string) error
	RevokeSessions(ctx context.Context, uid string) error
}

type Admin struct {
	client *fbauth.Client
}

func NewAdmin(ctx context.Context, projectID string, credentialsJSON []byte) (*Admin, error) {
	if projectID == "" || len(credentialsJSON) == 0 {
		return nil, ErrNotConfigured
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("auth: init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: init admin client: %w", err)
	}
	return &Admin{client: client}, nil
}

func (a *Admin) ListUsers(ctx context.Context, maxResults int, pageToken string) (*UserPage, error) {
	if maxResults <= 0 || maxResults > DefaultPageSize {
		maxResults = DefaultPageSize
	}

	var records []*fbauth.ExportedUserRecord
	pager := iterator.NewPager(a.client.Users(ctx, ""), maxResults, pageToken)
	next, err := pager.NextPage(&records)
	if err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}

	page := &UserPage{NextPageToken: next, Users: make([]models.UserAccount, 0, len(records))}
	for _, r := range records {
		page.Users = append(page.Users, accountFromRecord(r.UserRecord))
	}
	return page, nil
}

func (a *Admin) CreateUser(ctx context.Context, u NewUser) (*models.UserAccount, error) {
	params := (&fbauth.UserToCreate{}).
		Email(u.Email).
		Password(u.Password).
		EmailVerified(u.EmailVerified)
	if u.DisplayName != "" {
		params = params.DisplayName(u.DisplayName)
	}

	rec, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return nil, fromAdmin(err)
	}
	acc := accountFromRecord(rec)
	return &acc, nil
}

func (a *Admin) DeleteUser(ctx context.Context, uid string) error {
	return fromAdmin(a.client.DeleteUser(ctx, uid))
}

func (a *Admin) RevokeSessions(ctx context.Context, uid string) error {
	return fromAdmin(a.client.RevokeRefreshTokens(ctx, uid))
}

func accountFromRecord(r *fbauth.UserRecord) models.UserAccount {
	if r == nil || r.UserInfo == nil {
		return models.UserAccount{}
	}
	acc := models.UserAccount{
		UID:           r.UID,
		Email:         r.Email,
		DisplayName:   r.DisplayName,
		PhotoURL:      r.PhotoURL,
		EmailVerified: r.EmailVerified,
		PhoneNumber:   r.PhoneNumber,
	}
	if r.UserMetadata != nil {
		acc.CreatedAt = formatMillis(r.UserMetadata.CreationTimestamp)
		acc.LastLoginAt = formatMillis(r.UserMetadata.LastLogInTimestamp)
	}
	return acc
}
