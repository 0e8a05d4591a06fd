package handlers

import (
	"github.com/gofiber/fiber/v2"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
	"visitor-management/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetAllUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Success 200 {array} models.UserView
// @Router /admin/users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.users.List(ctx, models.Role(c.Query("role")))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param role body models.UpdateRolePayload true "New role"
// @Success 200 {object} models.UserView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateUserRole(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload models.UpdateRolePayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.UpdateRole(ctx, claims, id, payload)
	if err != nil {
		return err
	}
	return c.JSON(models.NewUserView(user))
}

// UpdateUserActive godoc
// @Summary Activate or deactivate a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param active body models.UpdateActivePayload true "Active flag"
// @Success 200 {object} models.UserView
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id}/active [put]
func (h *UserHandler) UpdateUserActive(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload models.UpdateActivePayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.SetActive(ctx, claims, id, *payload.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(models.NewUserView(user))
}

// UploadPhoto godoc
// @Summary Upload own photo
// @Description Multipart field "photo"; jpeg, jpg or png up to 1MB. Replaces the previous photo.
// @Tags Photo
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo"
// @Success 200 {object} object{message=string,photo=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /photo/upload [post]
func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return apperror.Validation("no file uploaded in field 'photo'")
	}
	src, err := file.Open()
	if err != nil {
		return apperror.Validation("cannot read uploaded file")
	}
	defer src.Close()

	ctx, cancel := requestContext(c)
	defer cancel()

	name, err := h.users.UploadPhoto(ctx, claims, file.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Photo uploaded", "photo": name})
}

// GetPhoto godoc
// @Summary Get a user's photo
// @Description Visitors may fetch their own photo; staff may fetch anyone's
// @Tags Photo
// @Produce image/jpeg
// @Produce image/png
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {file} binary
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photo/{userId} [get]
func (h *UserHandler) GetPhoto(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "userId")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	path, err := h.users.PhotoPath(ctx, claims, id)
	if err != nil {
		return err
	}
	return c.SendFile(path)
}
