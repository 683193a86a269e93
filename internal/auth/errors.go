package auth

import (
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
)

var (
	ErrUnauthenticated = errors.New("auth: no authenticated session")
	ErrNotConfigured   = errors.New("auth: admin credentials not configured")
	ErrEmailUnverified = errors.New("auth: email address not verified")
)

// ErrorCode is the closed set of identity failures the UI knows how to explain.
type ErrorCode string

const (
	CodeUserNotFound      ErrorCode = "user-not-found"
	CodeWrongPassword     ErrorCode = "wrong-password"
	CodeInvalidEmail      ErrorCode = "invalid-email"
	CodeUserDisabled      ErrorCode = "user-disabled"
	CodeTooManyRequests   ErrorCode = "too-many-requests"
	CodeInvalidCredential ErrorCode = "invalid-credential"
	CodeEmailAlreadyInUse ErrorCode = "email-already-in-use"
	CodeWeakPassword      ErrorCode = "weak-password"
	CodeInvalidSession    ErrorCode = "invalid-session"
	CodeUnknown           ErrorCode = "unknown"
)

// Form fields an error message is attached to.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldGeneral  = "general"
)

type codeInfo struct {
	field   string
	message string
}

var codeTable = map[ErrorCode]codeInfo{
	CodeUserNotFound:      {FieldEmail, "No account found with this email address"},
	CodeWrongPassword:     {FieldPassword, "Invalid password"},
	CodeInvalidEmail:      {FieldEmail, "Invalid email address"},
	CodeUserDisabled:      {FieldGeneral, "This account has been disabled"},
	CodeTooManyRequests:   {FieldGeneral, "Too many failed attempts. Please try again later"},
	CodeInvalidCredential: {FieldGeneral, "Invalid email or password"},
	CodeEmailAlreadyInUse: {FieldEmail, "This email is already registered"},
	CodeWeakPassword:      {FieldPassword, "Password is too weak"},
	CodeInvalidSession:    {FieldGeneral, "Your session has expired. Please sign in again"},
	CodeUnknown:           {FieldGeneral, "An error occurred. Please try again."},
}

// identitytoolkit reports failures as an upper-case reason in the error message,
// sometimes followed by " : detail".
var toolkitCodes = map[string]ErrorCode{
	"EMAIL_NOT_FOUND":                CodeUserNotFound,
	"USER_NOT_FOUND":                 CodeUserNotFound,
	"INVALID_PASSWORD":               CodeWrongPassword,
	"INVALID_EMAIL":                  CodeInvalidEmail,
	"MISSING_EMAIL":                  CodeInvalidEmail,
	"USER_DISABLED":                  CodeUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER":    CodeTooManyRequests,
	"INVALID_LOGIN_CREDENTIALS":      CodeInvalidCredential,
	"INVALID_IDP_RESPONSE":           CodeInvalidCredential,
	"EMAIL_EXISTS":                   CodeEmailAlreadyInUse,
	"WEAK_PASSWORD":                  CodeWeakPassword,
	"INVALID_ID_TOKEN":               CodeInvalidSession,
	"TOKEN_EXPIRED":                  CodeInvalidSession,
	"CREDENTIAL_TOO_OLD_LOGIN_AGAIN": CodeInvalidSession,
}

// ProviderError is an identity provider failure narrowed to a known code.
type ProviderError struct {
	Code ErrorCode
	// Raw is the provider's own description, kept for logs and admin responses.
	Raw string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Raw != "" {
		return "auth: " + string(e.Code) + ": " + e.Raw
	}
	return "auth: " + string(e.Code)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Message is the user-facing text for the code.
func (e *ProviderError) Message() string {
	return lookupCode(e.Code).message
}

// Field names the form field the message belongs to.
func (e *ProviderError) Field() string {
	return lookupCode(e.Code).field
}

func lookupCode(code ErrorCode) codeInfo {
	if info, ok := codeTable[code]; ok {
		return info
	}
	return codeTable[CodeUnknown]
}

// AsProviderError extracts a ProviderError from err, or classifies err as unknown.
func AsProviderError(err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return &ProviderError{Code: CodeUnknown, Raw: err.Error(), Err: err}
}

// fromToolkit maps an identitytoolkit call error. Non-API errors pass through.
func fromToolkit(err error) error {
	if err == nil {
		return nil
	}
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return err
	}

	reason := strings.TrimSpace(gErr.Message)
	if i := strings.IndexAny(reason, " :"); i > 0 {
		reason = reason[:i]
	}
	code, ok := toolkitCodes[reason]
	if !ok {
		code = CodeUnknown
	}
	return &ProviderError{Code: code, Raw: gErr.Message, Err: err}
}

// fromAdmin maps a firebase admin SDK error.
func fromAdmin(err error) error {
	if err == nil {
		return nil
	}
	var code ErrorCode
	switch {
	case fbauth.IsUserNotFound(err):
		code = CodeUserNotFound
	case fbauth.IsEmailAlreadyExists(err):
		code = CodeEmailAlreadyInUse
	case fbauth.IsInvalidEmail(err):
		code = CodeInvalidEmail
	default:
		return err
	}
	return &ProviderError{Code: code, Raw: err.Error(), Err: err}
}
