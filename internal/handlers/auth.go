package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/snowskye/clinic-backend/internal/middleware"
	"github.com/snowskye/clinic-backend/internal/models"
	"github.com/snowskye/clinic-backend/internal/storage"
	"github.com/snowskye/clinic-backend/internal/utils"
)

const minPasswordLength = 6

// AuthHandler handles registration, login and session introspection.
type AuthHandler struct {
	store    storage.Store
	sessions *session.Store
	logger   *zap.Logger
}

func NewAuthHandler(store storage.Store, sessions *session.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, sessions: sessions, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a dashboard account. Validation failures answer
// {success:false, message} with HTTP 200, matching the widget contract.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	_ = c.BodyParser(&req)

	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return c.JSON(fiber.Map{"success": false, "message": "Email and password required"})
	}
	if !utils.IsValidEmail(email) {
		return c.JSON(fiber.Map{"success": false, "message": "Invalid email"})
	}
	if len(req.Password) < minPasswordLength {
		return c.JSON(fiber.Map{"success": false, "message": "Password must be at least 6 characters"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Server error",
		})
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Created:  time.Now().UTC(),
	}
	if err := h.store.CreateUser(user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return c.JSON(fiber.Map{"success": false, "message": "User exists"})
		}
		h.logger.Error("create user failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Server error",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// Login checks credentials and opens a cookie session. Failures stay
// generic: no hint whether the email or the password was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	user, ok := h.authenticate(c)
	if !ok {
		return c.JSON(fiber.Map{"success": false})
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// AdminLogin is the dashboard variant of Login; the widget expects a token
// field confirming session-based auth.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	user, ok := h.authenticate(c)
	if !ok {
		return c.JSON(fiber.Map{"success": false})
	}
	return c.JSON(fiber.Map{"success": true, "user": user, "token": "session"})
}

func (h *AuthHandler) authenticate(c *fiber.Ctx) (middleware.SessionUser, bool) {
	var req credentialsRequest
	_ = c.BodyParser(&req)

	email := utils.NormalizeEmail(req.Email)
	user, err := h.store.GetUserByEmail(email)
	if err != nil {
		return middleware.SessionUser{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return middleware.SessionUser{}, false
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		h.logger.Error("session open failed", zap.Error(err))
		return middleware.SessionUser{}, false
	}
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionUserEmail, user.Email)
	sess.Set(middleware.SessionUserRole, user.Role)
	if err := sess.Save(); err != nil {
		h.logger.Error("session save failed", zap.Error(err))
		return middleware.SessionUser{}, false
	}

	return middleware.SessionUser{ID: user.ID, Email: user.Email, Role: user.Role}, true
}

// Logout destroys the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.sessions.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"success": true})
}

// Me returns the logged-in identity or 401.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.UserFromSession(h.sessions, c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not logged in",
		})
	}
	return c.JSON(user)
}
