package handlers

import (
	"github.com/gofiber/fiber/v2"

	"visitor-management/models"
	"visitor-management/services"
)

type PreApprovalHandler struct {
	preApprovals *services.PreApprovalService
}

func NewPreApprovalHandler(preApprovals *services.PreApprovalService) *PreApprovalHandler {
	return &PreApprovalHandler{preApprovals: preApprovals}
}

// CreatePreApproval godoc
// @Summary Issue a pre-approval
// @Description Creates an active pre-approval with a passcode and mails it to the visitor.
// @Description recurrence_rule is an optional RRULE (e.g. FREQ=WEEKLY;BYDAY=MO,WE) limiting the days it can be used.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preapproval body models.PreApprovalCreatePayload true "Pre-approval"
// @Success 201 {object} models.PreApprovalResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/preapproval [post]
func (h *PreApprovalHandler) CreatePreApproval(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var payload models.PreApprovalCreatePayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.preApprovals.Create(ctx, claims, payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.PreApprovalResponse{Message: "Pre-approval created", PreApproval: *p})
}

// ListPreApprovals godoc
// @Summary List pre-approvals
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PreApproval
// @Router /admin/preapproval [get]
func (h *PreApprovalHandler) ListPreApprovals(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.preApprovals.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// UpdatePreApprovalStatus godoc
// @Summary Cancel a pre-approval
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pre-approval ID"
// @Param status body models.PreApprovalStatusPayload true "New status (cancelled)"
// @Success 200 {object} models.PreApprovalResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Pre-approval is not active"
// @Router /admin/preapproval/{id} [put]
func (h *PreApprovalHandler) UpdatePreApprovalStatus(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := objectIDParam(c, "id")
	if err != nil {
		return err
	}

	var payload models.PreApprovalStatusPayload
	if err := bind(c, &payload); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := h.preApprovals.UpdateStatus(ctx, claims, id, payload.Status)
	if err != nil {
		return err
	}
	return c.JSON(models.PreApprovalResponse{Message: "Pre-approval " + string(p.Status), PreApproval: *p})
}

// ExpirePreApprovals godoc
// @Summary Expire stale pre-approvals
// @Description Marks every active pre-approval whose validity window has ended as expired
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,expired=int}
// @Router /admin/preapproval/expire [post]
func (h *PreApprovalHandler) ExpirePreApprovals(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.preApprovals.ExpireStale(ctx)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Stale pre-approvals expired", "expired": n})
}
