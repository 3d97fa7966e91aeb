package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/scenedir/internal/users"
	"github.com/localnerve/scenedir/internal/utils"
)

// UserHandler handles account directory and profile routes
type UserHandler struct {
	Users *users.Service
}

// ListAccounts handles GET /api/users
// @Summary List accounts
// @Description List every account in the directory
// @Tags Users
// @Produce json
// @Success 200 {array} users.Account
// @Router /users [get]
func (h *UserHandler) ListAccounts(c *fiber.Ctx) error {
	accounts := h.Users.List(c.Context(), sessionToken(c))
	return c.Status(fiber.StatusOK).JSON(accounts)
}

// RoleCounts handles GET /api/users/role-counts
// @Summary Count accounts per role
// @Description Tally admin and staff accounts
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]int
// @Router /users/role-counts [get]
func (h *UserHandler) RoleCounts(c *fiber.Ctx) error {
	admins, staff := h.Users.RoleCounts(c.Context(), sessionToken(c))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"admins": admins,
		"staff":  staff,
	})
}

// CreateAccount handles POST /api/users
// @Summary Create an account
// @Description Register a new account with the identity provider and the directory
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "Email, password, name and role"
// @Success 201 {object} users.Account
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateAccount(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}
	if body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Email and password are required", fiber.StatusBadRequest, "users.validation.input")
	}

	acct, err := h.Users.Create(c.Context(), sessionToken(c), body.Email, body.Password, body.Name, body.Role)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "users.create")
	}
	return c.Status(fiber.StatusCreated).JSON(acct)
}

// DeleteAccount handles DELETE /api/users/:uid
// @Summary Delete an account
// @Description Remove an account from the directory
// @Tags Users
// @Produce json
// @Param uid path string true "Account UID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{uid} [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	targetUID := c.Params("uid")

	err := h.Users.Delete(c.Context(), sessionToken(c), sessionUID(c), targetUID)
	switch {
	case err == nil:
		return utils.MutationSuccessResponse(c, "Account deleted")
	case errors.Is(err, users.ErrSelfDelete):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "users.delete.self")
	case errors.Is(err, users.ErrLastAdmin):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "users.delete.lastAdmin")
	case errors.Is(err, users.ErrNotFound):
		return utils.NotFoundResponse(c, "Account not found")
	default:
		return utils.ErrorResponse(c, "Account delete failed", fiber.StatusBadGateway, "users.delete")
	}
}

// GetProfile handles GET /api/profile
// @Summary Get the signed-in profile
// @Description Fetch the signed-in account's directory document
// @Tags Profile
// @Produce json
// @Success 200 {object} users.Account
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	acct, err := h.Users.Get(c.Context(), sessionToken(c), sessionUID(c))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return utils.NotFoundResponse(c, "Profile not found")
		}
		return utils.ErrorResponse(c, "Profile lookup failed", fiber.StatusBadGateway, "users.profile")
	}
	return c.Status(fiber.StatusOK).JSON(acct)
}

// EditProfile handles PATCH /api/profile
// @Summary Edit the signed-in profile
// @Description Merge name, phone and email into the signed-in account
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body object true "Name, phone and email"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /profile [patch]
func (h *UserHandler) EditProfile(c *fiber.Ctx) error {
	var body struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	ok, err := h.Users.EditProfile(c.Context(), sessionToken(c), sessionUID(c), body.Name, body.Phone, body.Email)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "users.validation.email")
	}
	if !ok {
		return utils.ErrorResponse(c, "Profile update failed", fiber.StatusBadGateway, "users.profile.update")
	}
	return utils.MutationSuccessResponse(c, "Profile updated")
}
