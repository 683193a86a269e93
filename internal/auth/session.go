package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/models"
)

const sessionKey = "hirely.session"

// Session is the authenticated caller of one request.
type Session struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
	IDToken       string
}

// TokenVerifier turns a bearer ID token into the user it belongs to.
type TokenVerifier interface {
	Lookup(ctx context.Context, idToken string) (*models.UserAccount, error)
}

// OptionalSession attaches a Session when the request carries a valid bearer
// token. It never rejects the request.
func OptionalSession(v TokenVerifier, log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolve(c, v, log)
		c.Next()
	}
}

// RequireSession answers 401 unless a valid bearer token is present.
func RequireSession(v TokenVerifier, log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			resolve(c, v, log)
		}
		if _, ok := SessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route group to the listed emails. An empty list
// leaves the routes open.
func RequireAdmin(emails []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		allowed[strings.ToLower(e)] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}
		s, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		if _, ok := allowed[strings.ToLower(s.Email)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the caller attached by the middleware, if any.
func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}

// WithSession attaches s to the request. Tests use it to skip token verification.
func WithSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
}

func resolve(c *gin.Context, v TokenVerifier, log *logging.Logger) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" || v == nil {
		return
	}

	user, err := v.Lookup(c.Request.Context(), token)
	if err != nil {
		log.Debug("bearer token rejected", "err", err)
		return
	}
	WithSession(c, &Session{
		UID:           user.UID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		EmailVerified: user.EmailVerified,
		IDToken:       token,
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
