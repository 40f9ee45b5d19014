package middleware

import (
	"context"
	"net/http"
	"time"

	"b2bportal/internal/domain"
	"b2bportal/internal/pkg/password"
	"b2bportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Cookie names for the two principal kinds. Both cookies are HTTP-only and
// resolved server-side against the sessions table.
const (
	ClientSessionCookie = "session_token"
	AdminSessionCookie  = "admin_session_token"
)

// Context keys set on successful resolution.
const (
	CtxClientID  = "client_id"
	CtxAdminID   = "admin_id"
	CtxAdminRole = "admin_role"
)

type sessionReader interface {
	GetByTokenHash(ctx context.Context, hash string) (*domain.Session, error)
}

type clientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type adminReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
}

// SessionAuth resolves the acting principal from an opaque cookie token.
// Expired rows are treated as invalid at lookup time; nothing here depends on
// the cleanup job having run.
type SessionAuth struct {
	sessions sessionReader
	clients  clientReader
	admins   adminReader
}

func NewSessionAuth(sessions sessionReader, clients clientReader, admins adminReader) *SessionAuth {
	return &SessionAuth{sessions: sessions, clients: clients, admins: admins}
}

func (a *SessionAuth) resolve(c *gin.Context, cookieName string, userType domain.UserType) *domain.Session {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		abortUnauthorized(c, "Missing session cookie")
		return nil
	}

	session, err := a.sessions.GetByTokenHash(c.Request.Context(), password.HashToken(token))
	if err != nil {
		abortUnauthorized(c, "Invalid session")
		return nil
	}
	if session.UserType != userType || session.Expired(time.Now()) {
		abortUnauthorized(c, "Invalid session")
		return nil
	}
	return session
}

// RequireClient guards client endpoints. Suspended clients are cut off even
// when they hold a live session.
func (a *SessionAuth) RequireClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := a.resolve(c, ClientSessionCookie, domain.UserTypeClient)
		if session == nil {
			return
		}

		client, err := a.clients.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid session")
			return
		}
		if client.Status == domain.ClientSuspended {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "Account is suspended"},
			})
			return
		}

		c.Set(CtxClientID, client.ID)
		c.Next()
	}
}

// RequireAdmin guards back-office endpoints; inactive admins are rejected.
func (a *SessionAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := a.resolve(c, AdminSessionCookie, domain.UserTypeAdmin)
		if session == nil {
			return
		}

		admin, err := a.admins.GetByID(c.Request.Context(), session.UserID)
		if err != nil || !admin.IsActive {
			abortUnauthorized(c, "Invalid session")
			return
		}

		c.Set(CtxAdminID, admin.ID)
		c.Set(CtxAdminRole, string(admin.Role))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}

// RequireRole gates an admin route to specific roles. Must run after
// RequireAdmin.
func RequireRole(roles ...domain.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.AdminRole(c.GetString(CtxAdminRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}
