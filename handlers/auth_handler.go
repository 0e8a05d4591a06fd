package handlers

import (
	"github.com/gofiber/fiber/v2"

	"visitor-management/models"
	"visitor-management/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func sessionResponse(message string, session *services.Session) models.AuthSuccessResponse {
	return models.AuthSuccessResponse{
		Message: message,
		Token:   session.Token,
		User:    models.NewUserView(session.User),
	}
}

// SetupAdmin godoc
// @Summary Create the first admin
// @Description Creates the initial administrator. Only works while no admin exists.
// @Tags Setup
// @Accept json
// @Produce json
// @Param admin body models.SetupAdminPayload true "Admin account"
// @Success 201 {object} models.AuthSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Admin already exists"
// @Router /setup/admin [post]
func (h *AuthHandler) SetupAdmin(c *fiber.Ctx) error {
	var payload models.SetupAdminPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := h.auth.SetupAdmin(ctx, payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse("Admin account created", session))
}

// Register godoc
// @Summary Register a visitor
// @Description Self-registration. The account always gets the visitor role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body models.UserRegisterPayload true "Registration data"
// @Success 201 {object} models.AuthSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := h.auth.Register(ctx, payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse("Registration successful", session))
}

// Login godoc
// @Summary Login
// @Description Returns a PASETO bearer token when the credentials are valid
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Login credentials"
// @Success 200 {object} models.AuthSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Wrong email or password"
// @Failure 403 {object} models.ErrorResponse "Account deactivated"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := h.auth.Login(ctx, payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(sessionResponse("Login successful", session))
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserView
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.auth.Me(ctx, claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(models.NewUserView(user))
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body models.UserUpdatePayload true "Fields to change"
// @Success 200 {object} models.UserView
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var payload models.UserUpdatePayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.auth.UpdateProfile(ctx, claims.UserID, payload)
	if err != nil {
		return err
	}
	return c.JSON(models.NewUserView(user))
}

// ChangePassword godoc
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body models.ChangePasswordPayload true "Old and new password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Old password does not match"
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var payload models.ChangePasswordPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.auth.ChangePassword(ctx, claims.UserID, payload); err != nil {
		return err
	}
	return c.JSON(models.MessageResponse{Message: "Password changed"})
}
