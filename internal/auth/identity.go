package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/justsurfingit/hirely/internal/models"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Credentials is what a successful sign-in or sign-up hands back to the client.
type Credentials struct {
	User         models.UserAccount
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}

// IdentityProvider covers the end-user side of the identity service.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Credentials, error)
	SignUp(ctx context.Context, email, password, displayName string) (*Credentials, error)
	SendVerification(ctx context.Context, idToken string) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, idToken string, displayName, photoURL *string) (*models.UserAccount, error)
	Lookup(ctx context.Context, idToken string) (*models.UserAccount, error)
}

// Identity talks to the Firebase Auth REST surface with the project's web API key.
type Identity struct {
	svc *identitytoolkit.Service
}

func NewIdentity(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Identity, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("auth: FIREBASE_API_KEY is required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("auth: create identity client: %w", err)
	}
	return &Identity{svc: svc}, nil
}

func (i *Identity) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	resp, err := i.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fromToolkit(err)
	}

	// verifyPassword does not report emailVerified, so read the full record.
	user, err := i.Lookup(ctx, resp.IdToken)
	if err != nil {
		return nil, err
	}
	return &Credentials{
		User:         *user,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (i *Identity) SignUp(ctx context.Context, email, password, displayName string) (*Credentials, error) {
	resp, err := i.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fromToolkit(err)
	}

	return &Credentials{
		User: models.UserAccount{
			UID:         resp.LocalId,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (i *Identity) SendVerification(ctx context.Context, idToken string) error {
	_, err := i.svc.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "VERIFY_EMAIL",
		IdToken:     idToken,
	}).Context(ctx).Do()
	return fromToolkit(err)
}

func (i *Identity) SendPasswordReset(ctx context.Context, email string) error {
	_, err := i.svc.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	return fromToolkit(err)
}

func (i *Identity) UpdateProfile(ctx context.Context, idToken string, displayName, photoURL *string) (*models.UserAccount, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{IdToken: idToken}
	if displayName != nil {
		if *displayName == "" {
			req.DeleteAttribute = append(req.DeleteAttribute, "DISPLAY_NAME")
		} else {
			req.DisplayName = *displayName
		}
	}
	if photoURL != nil {
		if *photoURL == "" {
			req.DeleteAttribute = append(req.DeleteAttribute, "PHOTO_URL")
		} else {
			req.PhotoUrl = *photoURL
		}
	}

	if _, err := i.svc.Relyingparty.SetAccountInfo(req).Context(ctx).Do(); err != nil {
		return nil, fromToolkit(err)
	}
	return i.Lookup(ctx, idToken)
}

// Lookup resolves an ID token to the current user record. It doubles as the
// "reload" operation and as session verification.
func (i *Identity) Lookup(ctx context.Context, idToken string) (*models.UserAccount, error) {
	resp, err := i.svc.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fromToolkit(err)
	}
	if len(resp.Users) == 0 {
		return nil, &ProviderError{Code: CodeInvalidSession, Raw: "USER_NOT_FOUND"}
	}

	u := resp.Users[0]
	return &models.UserAccount{
		UID:           u.LocalId,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		PhotoURL:      u.PhotoUrl,
		EmailVerified: u.EmailVerified,
		PhoneNumber:   u.PhoneNumber,
		CreatedAt:     formatMillis(u.CreatedAt),
		LastLoginAt:   formatMillis(u.LastLoginAt),
	}, nil
}

// formatMillis renders epoch milliseconds the way browsers print Date.toUTCString.
func formatMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(http.TimeFormat)
}

// ExpiresInString formats a token lifetime in seconds for JSON responses.
func ExpiresInString(seconds int64) string {
	return strconv.FormatInt(seconds, 10)
}
