package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/auth"
	"go-cv-backend/pkg/security"
)

// SessionCookieName is the HttpOnly cookie carrying the session token.
const SessionCookieName = auth.CookieName

// TokenParser verifies session tokens. *auth.TokenManager satisfies it.
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// tokenFrom prefers the Authorization header and falls back to the session cookie.
func tokenFrom(c *gin.Context) (token string, fromCookie bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(after), false
		}
		return "", false
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, fromCookie := tokenFrom(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or jwt cookie required",
				response.ErrorBody{Kind: string(apperror.KindUnauthorized)})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil || claims.UserID == "" {
			response.Error(c, http.StatusUnauthorized, "Invalid token", response.ErrorBody{Kind: string(apperror.KindUnauthorized)})
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserType), claims.Type)
		c.Set(cookieAuthKey, fromCookie)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, domain.KeyUserType, claims.Type)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.NewNopSecurityLogger()
	}
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor.IsAdmin() {
			c.Next()
			return
		}
		secLog.LogAdminDenied(c.Request.Context(), actor.ID, c.ClientIP(),
			c.GetString(string(domain.KeyRequestID)), c.FullPath())
		response.Error(c, http.StatusForbidden, "Accès réservé aux administrateurs", response.ErrorBody{Kind: string(apperror.KindForbidden)})
		c.Abort()
	}
}

// ActorFrom returns the authenticated caller stored by AuthMiddleware.
func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.GetString(string(domain.KeyUserID)),
		Type: domain.UserType(c.GetString(string(domain.KeyUserType))),
	}
}
