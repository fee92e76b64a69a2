package middleware

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	SessionCookie = "routeadmin_session"
	sessionKey    = "session_id"
	sessionInfo   = "routeadmin session v1"
)

// DeriveSessionKey turns the configured secret into an HS256 key. An empty
// secret yields a random key, so sessions do not survive a restart.
func DeriveSessionKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	if secret == "" {
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("random session key: %w", err)
		}
		return key, nil
	}
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionInfo)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

// Session binds each browser to a session id carried in a signed cookie.
// Missing, expired or tampered cookies start a new session.
func Session(key []byte, ttl time.Duration, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, exp := parseSession(c, key)
		if sid == "" || time.Until(exp) < ttl/2 {
			if sid == "" {
				sid = uuid.NewString()
			}
			token, err := signSession(key, sid, ttl)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secureCookie, true)
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session.
func GetSessionID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(sessionKey)
}

func signSession(key []byte, sid string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(key)
}

func parseSession(c *gin.Context, key []byte) (string, time.Time) {
	raw, err := c.Cookie(SessionCookie)
	if err != nil || raw == "" {
		return "", time.Time{}
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.ID == "" {
		return "", time.Time{}
	}
	return claims.ID, claims.ExpiresAt.Time
}
