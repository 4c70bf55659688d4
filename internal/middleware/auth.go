package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/session"
)

// Context keys set by the auth guard.
const (
	ContextDoctorID     = "doctor_id"
	ContextDoctorName   = "doctor_name"
	ContextSessionToken = "session_token"
)

// RememberCookie is the name of the remember-me cookie.
const RememberCookie = "remember_token"

// SessionReviver re-establishes a session from a remember-me token. Implemented
// by the auth service.
type SessionReviver interface {
	ReviveFromRememberToken(ctx context.Context, token string) (*model.Doctor, error)
}

// AuthMiddleware is the gate every protected page runs before doing anything
// else. It fails closed: no valid session means a redirect to the login page
// and no further work.
type AuthMiddleware struct {
	sessions *session.Manager
	reviver  SessionReviver
}

func NewAuthMiddleware(sessions *session.Manager, reviver SessionReviver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, reviver: reviver}
}

// RequireAuth verifies the session cookie and puts the acting doctor's id and
// name in the request context. A request without a valid session is redirected
// to /login before any handler logic or datastore access runs.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(m.sessions.CookieName())

		data, err := m.sessions.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
			token, data = m.reviveSession(c)
			if data == nil {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
		}

		c.Set(ContextDoctorID, data.DoctorID)
		c.Set(ContextDoctorName, data.DoctorName)
		c.Set(ContextSessionToken, token)
		c.Next()
	}
}

// RedirectIfAuthenticated sends already-logged-in doctors from the login and
// register pages straight to the dashboard.
func (m *AuthMiddleware) RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(m.sessions.CookieName())
		if _, err := m.sessions.Get(c.Request.Context(), token); err == nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// reviveSession restores a session from a valid remember-me cookie. Returns
// nil data when no usable cookie is present.
func (m *AuthMiddleware) reviveSession(c *gin.Context) (string, *session.Data) {
	if m.reviver == nil {
		return "", nil
	}
	remember, err := c.Cookie(RememberCookie)
	if err != nil || remember == "" {
		return "", nil
	}

	doctor, err := m.reviver.ReviveFromRememberToken(c.Request.Context(), remember)
	if err != nil {
		return "", nil
	}

	token, err := m.sessions.Start(c.Request.Context(), doctor.ID, doctor.FullName())
	if err != nil {
		return "", nil
	}
	c.SetCookie(m.sessions.CookieName(), token, int(m.sessions.TTL().Seconds()), "/", "", false, true)
	return token, &session.Data{DoctorID: doctor.ID, DoctorName: doctor.FullName()}
}

// DoctorID returns the authenticated doctor's id set by RequireAuth.
func DoctorID(c *gin.Context) int64 {
	return c.GetInt64(ContextDoctorID)
}

// DoctorName returns the authenticated doctor's display name.
func DoctorName(c *gin.Context) string {
	return c.GetString(ContextDoctorName)
}

// SessionToken returns the current session token.
func SessionToken(c *gin.Context) string {
	return c.GetString(ContextSessionToken)
}
