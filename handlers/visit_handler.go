package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/services"
)

type VisitHandler struct {
	visits *services.VisitService
}

func NewVisitHandler(visits *services.VisitService) *VisitHandler {
	return &VisitHandler{visits: visits}
}

// RequestVisit godoc
// @Summary Request a visit
// @Description A visitor files a visit request; the host is notified by email
// @Tags Visitor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param visit body models.VisitCreatePayload true "Visit request"
// @Success 201 {object} models.VisitResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /visitor/visit [post]
func (h *VisitHandler) RequestVisit(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var payload models.VisitCreatePayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	visit, err := h.visits.Request(ctx, claims, payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.VisitResponse{Message: "Visit request submitted", Visit: *visit})
}

// MyVisits godoc
// @Summary List own visits
// @Tags Visitor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Visit
// @Router /visitor/visits [get]
func (h *VisitHandler) MyVisits(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	visits, err := h.visits.MyVisits(ctx, claims)
	if err != nil {
		return err
	}
	return c.JSON(visits)
}

// CancelVisit godoc
// @Summary Cancel own visit
// @Description Cancels a pending or approved visit
// @Tags Visitor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Visit ID"
// @Success 200 {object} models.VisitResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /visitor/visits/{id}/cancel [put]
func (h *VisitHandler) CancelVisit(c *fiber.Ctx) error {
	return h.transition(c, "Visit cancelled", h.visits.Cancel)
}

// CheckIn godoc
// @Summary Check in with a passcode
// @Description Redeems the passcode of an approved visit or an active pre-approval
// @Tags Visitor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passcode body models.CheckInPayload true "Passcode"
// @Success 200 {object} models.VisitResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Invalid or expired passcode"
// @Failure 409 {object} models.ErrorResponse "Passcode already used"
// @Router /visitor/checkin [post]
func (h *VisitHandler) CheckIn(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var payload models.CheckInPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	visit, err := h.visits.CheckIn(ctx, claims, payload.Passcode)
	if err != nil {
		return err
	}
	return c.JSON(models.VisitResponse{Message: "Checked in successfully", Visit: *visit})
}

// CheckOut godoc
// @Summary Check out
// @Tags Visitor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Visit ID"
// @Success 200 {object} models.VisitResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Visit is not checked in"
// @Router /visitor/checkout/{id} [put]
func (h *VisitHandler) CheckOut(c *fiber.Ctx) error {
	return h.transition(c, "Checked out successfully", h.visits.CheckOut)
}

type visitAction func(ctx context.Context, actor *models.Claims, id primitive.ObjectID) (*models.Visit, error)

func (h *VisitHandler) transition(c *fiber.Ctx, message string, action visitAction) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	visit, err := action(ctx, claims, id)
	if err != nil {
		return err
	}
	return c.JSON(models.VisitResponse{Message: message, Visit: *visit})
}

// ListVisits godoc
// @Summary List all visits
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.VisitListResponse
// @Router /admin/visits [get]
func (h *VisitHandler) ListVisits(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	visits, err := h.visits.List(ctx, models.VisitFilter{})
	return listResponse(c, visits, err)
}

// VisitsByStatus godoc
// @Summary List visits by status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status path string true "pending, approved, rejected, checked-in, checked-out or cancelled"
// @Success 200 {object} models.VisitListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/visits/status/{status} [get]
func (h *VisitHandler) VisitsByStatus(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	visits, err := h.visits.List(ctx, models.VisitFilter{Status: models.VisitStatus(c.Params("status"))})
	return listResponse(c, visits, err)
}

// TodayVisits godoc
// @Summary List today's visits
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.VisitListResponse
// @Router /admin/visits/today [get]
func (h *VisitHandler) TodayVisits(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	visits, err := h.visits.Today(ctx)
	return listResponse(c, visits, err)
}

// ActiveVisits godoc
// @Summary List visitors currently on site
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.VisitListResponse
// @Router /admin/visits/active [get]
func (h *VisitHandler) ActiveVisits(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	visits, err := h.visits.Active(ctx)
	return listResponse(c, visits, err)
}

func listResponse(c *fiber.Ctx, visits []models.VisitWithVisitor, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(models.VisitListResponse{Visits: visits, Total: len(visits)})
}

// DecideVisit godoc
// @Summary Approve or reject a visit
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Visit ID"
// @Param decision body models.VisitDecisionPayload true "approved or rejected, with optional notes"
// @Success 200 {object} models.VisitResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Visit is not pending"
// @Router /admin/visits/{id} [put]
func (h *VisitHandler) DecideVisit(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload models.VisitDecisionPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	visit, err := h.visits.Decide(ctx, claims, id, payload)
	if err != nil {
		return err
	}
	return c.JSON(models.VisitResponse{Message: "Visit " + string(visit.Status), Visit: *visit})
}

// Stats godoc
// @Summary Visit statistics
// @Description Counts by status, today's visits, visitors on site and host department distribution
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.VisitStats
// @Router /admin/stats [get]
func (h *VisitHandler) Stats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.visits.Stats(ctx)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
