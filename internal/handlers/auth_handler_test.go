package handlers_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/handlers"
	"github.com/justsurfingit/hirely/internal/models"
)

// fakeIdentity knows two verified users by token and one unverified account.
type fakeIdentity struct {
	mu            sync.Mutex
	verifications int
	resets        []string
}

var fakeUsers = map[string]models.UserAccount{
	"tok-ann":  {UID: "u-ann", Email: "ann@example.com", DisplayName: "Ann", EmailVerified: true},
	"tok-boss": {UID: "u-boss", Email: "boss@example.com", EmailVerified: true},
	"tok-new":  {UID: "u-new", Email: "new@example.com"},
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{}
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*auth.Credentials, error) {
	for token, u := range fakeUsers {
		if u.Email != email {
			continue
		}
		if password != "secret1" {
			return nil, &auth.ProviderError{Code: auth.CodeWrongPassword, Raw: "INVALID_PASSWORD"}
		}
		return &auth.Credentials{User: u, IDToken: token, RefreshToken: "refresh", ExpiresIn: 3600}, nil
	}
	return nil, &auth.ProviderError{Code: auth.CodeUserNotFound, Raw: "EMAIL_NOT_FOUND"}
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _, displayName string) (*auth.Credentials, error) {
	for _, u := range fakeUsers {
		if u.Email == email {
			return nil, &auth.ProviderError{Code: auth.CodeEmailAlreadyInUse, Raw: "EMAIL_EXISTS"}
		}
	}
	return &auth.Credentials{
		User:    models.UserAccount{UID: "u-signup", Email: email, DisplayName: displayName},
		IDToken: "tok-signup",
	}, nil
}

func (f *fakeIdentity) SendVerification(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications++
	return nil
}

func (f *fakeIdentity) SendPasswordReset(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, email)
	return nil
}

func (f *fakeIdentity) UpdateProfile(ctx context.Context, idToken string, displayName, _ *string) (*models.UserAccount, error) {
	u, err := f.Lookup(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		u.DisplayName = *displayName
	}
	return u, nil
}

func (f *fakeIdentity) Lookup(_ context.Context, idToken string) (*models.UserAccount, error) {
	u, ok := fakeUsers[idToken]
	if !ok {
		return nil, &auth.ProviderError{Code: auth.CodeInvalidSession, Raw: "INVALID_ID_TOKEN"}
	}
	return &u, nil
}

func TestSignIn(t *testing.T) {
	id := newFakeIdentity()
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = id })

	w, out := do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-in", body: map[string]any{"email": "ann@example.com", "password": "secret1"}})
	if w.Code != http.StatusOK || out["success"] != true {
		t.Fatalf("sign-in = %d %v", w.Code, out)
	}
	data := out["data"].(map[string]any)
	if data["idToken"] != "tok-ann" || data["expiresIn"] != "3600" {
		t.Errorf("data = %v", data)
	}

	w, out = do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-in", body: map[string]any{"email": "ann@example.com", "password": "nope"}})
	if w.Code != http.StatusUnauthorized || out["error"] != "Invalid password" || out["field"] != "password" {
		t.Errorf("wrong password = %d %v", w.Code, out)
	}

	w, out = do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-in", body: map[string]any{"email": "ghost@example.com", "password": "secret1"}})
	if w.Code != http.StatusUnauthorized || out["field"] != "email" {
		t.Errorf("unknown user = %d %v", w.Code, out)
	}
}

func TestSignIn_UnverifiedResendsVerification(t *testing.T) {
	id := newFakeIdentity()
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = id })

	w, out := do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-in", body: map[string]any{"email": "new@example.com", "password": "secret1"}})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d %v", w.Code, out)
	}
	if out["error"] != "Please verify your email address. We've sent you a new verification email." {
		t.Errorf("error = %v", out["error"])
	}
	if id.verifications != 1 {
		t.Errorf("verifications sent = %d, want 1", id.verifications)
	}
}

func TestSignUp(t *testing.T) {
	id := newFakeIdentity()
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = id })

	w, out := do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-up", body: map[string]any{"email": "fresh@example.com", "password": "secret1", "displayName": "Fresh"}})
	if w.Code != http.StatusCreated || out["success"] != true {
		t.Fatalf("sign-up = %d %v", w.Code, out)
	}
	if id.verifications != 1 {
		t.Errorf("verifications sent = %d, want 1", id.verifications)
	}

	w, out = do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-up", body: map[string]any{"email": "ann@example.com", "password": "secret1"}})
	if w.Code != http.StatusConflict || out["error"] != "This email is already registered" {
		t.Errorf("duplicate = %d %v", w.Code, out)
	}
}

func TestAuth_SessionRoutes(t *testing.T) {
	id := newFakeIdentity()
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = id })

	if w, _ := do(t, r, call{method: http.MethodGet, path: "/api/auth/me"}); w.Code != http.StatusUnauthorized {
		t.Errorf("me without token = %d", w.Code)
	}
	if w, _ := do(t, r, call{method: http.MethodGet, path: "/api/auth/me", token: "expired"}); w.Code != http.StatusUnauthorized {
		t.Errorf("me with bad token = %d", w.Code)
	}

	w, out := do(t, r, call{method: http.MethodGet, path: "/api/auth/me", token: "tok-ann"})
	if w.Code != http.StatusOK || out["data"].(map[string]any)["uid"] != "u-ann" {
		t.Fatalf("me = %d %v", w.Code, out)
	}

	w, out = do(t, r, call{method: http.MethodPatch, path: "/api/auth/profile", token: "tok-ann", body: map[string]any{"displayName": "Annie"}})
	if w.Code != http.StatusOK || out["data"].(map[string]any)["displayName"] != "Annie" {
		t.Errorf("profile = %d %v", w.Code, out)
	}

	if w, _ := do(t, r, call{method: http.MethodPost, path: "/api/auth/verify-email", token: "tok-ann"}); w.Code != http.StatusOK {
		t.Errorf("verify-email = %d", w.Code)
	}
	if w, _ := do(t, r, call{method: http.MethodPost, path: "/api/auth/sign-out", token: "tok-ann"}); w.Code != http.StatusOK {
		t.Errorf("sign-out = %d", w.Code)
	}
}

func TestPasswordReset(t *testing.T) {
	id := newFakeIdentity()
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = id })

	w, _ := do(t, r, call{method: http.MethodPost, path: "/api/auth/password-reset", body: map[string]any{"email": " ann@example.com "}})
	if w.Code != http.StatusOK || len(id.resets) != 1 || id.resets[0] != "ann@example.com" {
		t.Fatalf("reset = %d %v", w.Code, id.resets)
	}
	if w, _ := do(t, r, call{method: http.MethodPost, path: "/api/auth/password-reset", body: map[string]any{}}); w.Code != http.StatusBadRequest {
		t.Errorf("missing email = %d", w.Code)
	}
}

func TestAuth_NotConfigured(t *testing.T) {
	w, out := do(t, newRouter(t, nil), call{method: http.MethodPost, path: "/api/auth/sign-in", body: map[string]any{"email": "a@b.co", "password": "x"}})
	if w.Code != http.StatusServiceUnavailable || out["success"] != false {
		t.Fatalf("got %d %v", w.Code, out)
	}
}

func TestSavedJobs_Flow(t *testing.T) {
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = newFakeIdentity() })
	job := map[string]any{"jobId": 42, "jobTitle": "Go Developer", "employerName": "Acme", "minimumSalary": 40000}

	if w, _ := do(t, r, call{method: http.MethodPost, path: "/api/saved-jobs", body: job}); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous save = %d, want 401", w.Code)
	}

	_, out := do(t, r, call{method: http.MethodPost, path: "/api/saved-jobs", body: job, token: "tok-ann"})
	if out["saved"] != true {
		t.Fatalf("first save = %v", out)
	}
	_, out = do(t, r, call{method: http.MethodPost, path: "/api/saved-jobs", body: job, token: "tok-ann"})
	if out["saved"] != false {
		t.Errorf("duplicate save = %v", out)
	}

	_, out = do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs", token: "tok-ann"})
	data := out["data"].(map[string]any)
	if data["total"] != float64(1) {
		t.Fatalf("list = %v", out)
	}
	first := data["jobs"].([]any)[0].(map[string]any)
	if first["userId"] != "u-ann" || first["jobTitle"] != "Go Developer" {
		t.Errorf("saved job = %v", first)
	}

	_, out = do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs", token: "tok-boss"})
	if out["data"].(map[string]any)["total"] != float64(0) {
		t.Errorf("other user sees %v", out)
	}
	_, out = do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs"})
	if out["data"].(map[string]any)["total"] != float64(0) {
		t.Errorf("anonymous sees %v", out)
	}

	if _, out = do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs/42", token: "tok-ann"}); out["saved"] != true {
		t.Errorf("isSaved = %v", out)
	}
	if _, out = do(t, r, call{method: http.MethodDelete, path: "/api/saved-jobs/42", token: "tok-ann"}); out["removed"] != true {
		t.Errorf("unsave = %v", out)
	}
	if _, out = do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs/42", token: "tok-ann"}); out["saved"] != false {
		t.Errorf("isSaved after unsave = %v", out)
	}
	if w, _ := do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs/abc", token: "tok-ann"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad job id = %d", w.Code)
	}
}

func TestSavedJobs_ClearAll(t *testing.T) {
	r := newRouter(t, func(d *handlers.Deps) { d.Identity = newFakeIdentity() })
	for _, id := range []int{1, 2, 3} {
		do(t, r, call{method: http.MethodPost, path: "/api/saved-jobs", body: map[string]any{"jobId": id}, token: "tok-ann"})
	}

	if _, out := do(t, r, call{method: http.MethodDelete, path: "/api/saved-jobs", token: "tok-ann"}); out["success"] != true {
		t.Fatalf("clear = %v", out)
	}
	_, out := do(t, r, call{method: http.MethodGet, path: "/api/saved-jobs", token: "tok-ann"})
	if out["data"].(map[string]any)["total"] != float64(0) {
		t.Errorf("after clear = %v", out)
	}
}
