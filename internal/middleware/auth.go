package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUser is the authenticated identity carried on the request context
// for handlers behind RequireAuth.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserKey is the fiber.Ctx locals key holding the SessionUser.
const UserKey = "user"

// Session value keys written at login.
const (
	SessionUserID    = "uid"
	SessionUserEmail = "email"
	SessionUserRole  = "role"
)

// RequireAuth rejects requests without a logged-in session and threads the
// session identity through the request context instead of leaving handlers
// to re-read ambient session state.
func RequireAuth(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromSession(sessions, c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// UserFromSession reads the logged-in identity, if any.
func UserFromSession(sessions *session.Store, c *fiber.Ctx) (SessionUser, bool) {
	sess, err := sessions.Get(c)
	if err != nil {
		return SessionUser{}, false
	}
	id, _ := sess.Get(SessionUserID).(string)
	if id == "" {
		return SessionUser{}, false
	}
	email, _ := sess.Get(SessionUserEmail).(string)
	role, _ := sess.Get(SessionUserRole).(string)
	return SessionUser{ID: id, Email: email, Role: role}, true
}
