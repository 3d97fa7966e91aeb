package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/localnerve/scenedir/internal/middleware"
	"github.com/localnerve/scenedir/internal/store"
	"github.com/localnerve/scenedir/internal/users"
	"github.com/localnerve/scenedir/internal/utils"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	Auth     *store.AuthClient
	Users    *users.Service
	Sessions *session.Store
}

// Login handles POST /api/auth/login
// @Summary Sign in
// @Description Exchange email/password for a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "Email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}
	if body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Email and password are required", fiber.StatusBadRequest, "auth.validation.input")
	}

	creds, err := h.Auth.SignIn(c.Context(), body.Email, body.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.signin")
	}

	// The directory document supplies role and display name. A missing
	// document still signs in, as a role-less account.
	var name, role string
	acct, err := h.Users.Get(c.Context(), creds.IDToken, creds.UID)
	if err == nil && acct != nil {
		name = acct.Name
		role = acct.Role
	} else if err != nil && !errors.Is(err, users.ErrNotFound) {
		return utils.ErrorResponse(c, "Account lookup failed", fiber.StatusBadGateway, "auth.account")
	}

	sess, err := h.Sessions.Get(c)
	if err != nil {
		return utils.ErrorResponse(c, "Session unavailable", fiber.StatusInternalServerError, "auth.session")
	}
	sess.Set(middleware.SessionUID, creds.UID)
	sess.Set(middleware.SessionIDToken, creds.IDToken)
	sess.Set(middleware.SessionRole, role)
	sess.Set(middleware.SessionEmail, creds.Email)
	if err := sess.Save(); err != nil {
		return utils.ErrorResponse(c, "Session unavailable", fiber.StatusInternalServerError, "auth.session")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":    true,
		"uid":   creds.UID,
		"email": creds.Email,
		"name":  name,
		"role":  role,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Sign out
// @Description Destroy the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return utils.MutationSuccessResponse(c, "Signed out")
}
