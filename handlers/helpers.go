package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/config/middleware"
	"visitor-management/models"
	"visitor-management/pkg/apperror"
	util "visitor-management/pkg/utils"
)

const requestTimeout = 5 * time.Second

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// invalidPayload carries per-field validator messages to the error handler.
type invalidPayload struct {
	fields []*util.ErrorResponse
}

func (e *invalidPayload) Error() string { return "validation failed" }

func (e *invalidPayload) Unwrap() error { return apperror.ErrValidation }

// bind parses the JSON body into payload and runs the struct validator.
func bind(c *fiber.Ctx, payload interface{}) error {
	if err := c.BodyParser(payload); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}
	if fields := util.ValidateStruct(payload); fields != nil {
		return &invalidPayload{fields: fields}
	}
	return nil
}

func objectIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("invalid " + name)
	}
	return id, nil
}

func currentUser(c *fiber.Ctx) (*models.Claims, error) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperror.Unauthenticated("not authenticated or session data is corrupt")
	}
	return claims, nil
}
