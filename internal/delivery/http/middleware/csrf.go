package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/pkg/apperror"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must contain the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour

	cookieAuthKey = "cookie_auth"
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// IssueCSRFCookie sets a readable csrf_token cookie when the client has none.
func IssueCSRFCookie(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(CSRFTokenCookieName); err != nil || token == "" {
			if newToken, err := generateCSRFToken(); err == nil {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(CSRFTokenCookieName, newToken, int(CSRFTokenExpiry.Seconds()), "/", "", secure, false)
			}
		}
		c.Next()
	}
}

// CSRFMiddleware applies the double-submit check to state-changing requests
// authenticated by the session cookie. Bearer-token clients are not affected.
// It must run after AuthMiddleware.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if !c.GetBool(cookieAuthKey) {
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFTokenCookieName)
		header := c.GetHeader(CSRFTokenHeaderName)
		if err != nil || cookie == "" || header == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", response.ErrorBody{Kind: string(apperror.KindForbidden)})
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", response.ErrorBody{Kind: string(apperror.KindForbidden)})
			c.Abort()
			return
		}
		c.Next()
	}
}
