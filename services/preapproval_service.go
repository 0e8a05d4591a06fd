package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
	"visitor-management/pkg/credential"
	"visitor-management/repository"
)

type PreApprovalService struct {
	preApprovals repository.PreApprovalRepository
	issuer       *credential.Issuer
	rt           Runtime
}

func NewPreApprovalService(preApprovals repository.PreApprovalRepository, issuer *credential.Issuer, rt Runtime) *PreApprovalService {
	return &PreApprovalService{
		preApprovals: preApprovals,
		issuer:       issuer,
		rt:           rt.withDefaults(),
	}
}

// Create issues a pre-approval with a fresh passcode and mails it to the visitor.
func (s *PreApprovalService) Create(ctx context.Context, actor *models.Claims, payload models.PreApprovalCreatePayload) (*models.PreApproval, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, apperror.Forbidden("only admins can issue pre-approvals")
	}
	if !payload.ValidUntil.After(payload.ValidFrom) {
		return nil, apperror.Validation("valid_until must be after valid_from")
	}

	rule := strings.TrimSpace(payload.RecurrenceRule)
	if rule != "" {
		if _, err := buildRecurrence(rule, payload.ValidFrom.In(s.rt.Location)); err != nil {
			return nil, apperror.Validation(fmt.Sprintf("invalid recurrence_rule: %v", err))
		}
	}

	cred, err := s.issuer.Issue()
	if err != nil {
		return nil, err
	}

	now := s.rt.now()
	p := &models.PreApproval{
		Visitor: models.VisitorInfo{
			Name:    payload.VisitorName,
			Email:   strings.ToLower(payload.VisitorEmail),
			Phone:   payload.VisitorPhone,
			Company: payload.VisitorCompany,
		},
		Host:           payload.Host,
		Purpose:        payload.Purpose,
		ValidFrom:      payload.ValidFrom,
		ValidUntil:     payload.ValidUntil,
		RecurrenceRule: rule,
		Passcode:       cred.Passcode,
		QRCode:         cred.QRCode,
		Status:         models.PreApprovalActive,
		CreatedBy:      actor.UserID,
		CreatedAt:      now,
	}
	if err := s.preApprovals.Create(ctx, p); err != nil {
		return nil, apperror.Persistence("failed to save pre-approval", err)
	}

	s.rt.Logger.Info("pre-approval issued", "pre_approval_id", p.ID.Hex(), "created_by", actor.UserID.Hex())
	s.rt.notify(ctx, s.rt.preApprovalIssuedMessage(p))
	return p, nil
}

func (s *PreApprovalService) List(ctx context.Context) ([]models.PreApproval, error) {
	list, err := s.preApprovals.List(ctx)
	if err != nil {
		return nil, apperror.Persistence("failed to load pre-approvals", err)
	}
	return list, nil
}

// UpdateStatus applies an admin status change. Only active -> cancelled is allowed.
func (s *PreApprovalService) UpdateStatus(ctx context.Context, actor *models.Claims, id primitive.ObjectID, to models.PreApprovalStatus) (*models.PreApproval, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, apperror.Forbidden("only admins can change pre-approvals")
	}
	if to != models.PreApprovalCancelled {
		return nil, apperror.Validation("status must be cancelled")
	}

	current, err := s.preApprovals.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("failed to load pre-approval", err)
	}
	if current == nil {
		return nil, apperror.NotFound("pre-approval not found")
	}
	if current.Status != models.PreApprovalActive {
		return nil, apperror.InvalidTransition(fmt.Sprintf("cannot change pre-approval from %s to %s", current.Status, to))
	}

	updated, err := s.preApprovals.Transition(ctx, id, models.PreApprovalTransition{
		From: models.PreApprovalActive,
		To:   to,
		At:   s.rt.now(),
	})
	if err != nil {
		return nil, apperror.Persistence("failed to update pre-approval", err)
	}
	if updated == nil {
		return nil, apperror.InvalidTransition("pre-approval is no longer active")
	}

	s.rt.Metrics.Transition("preapproval", string(to))
	s.rt.Logger.Info("pre-approval status changed", "pre_approval_id", id.Hex(), "to", to)
	s.rt.notify(ctx, s.rt.preApprovalCancelledMessage(updated))
	return updated, nil
}

// ExpireStale marks every active pre-approval whose window has closed as expired.
func (s *PreApprovalService) ExpireStale(ctx context.Context) (int64, error) {
	n, err := s.preApprovals.ExpireStale(ctx, s.rt.now())
	if err != nil {
		return 0, apperror.Persistence("failed to expire pre-approvals", err)
	}
	if n > 0 {
		s.rt.Logger.Info("expired stale pre-approvals", "count", n)
	}
	return n, nil
}

func buildRecurrence(rule string, start time.Time) (*rrule.Set, error) {
	rOption, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	rOption.Dtstart = start

	rr, err := rrule.NewRRule(*rOption)
	if err != nil {
		return nil, err
	}

	ruleSet := rrule.Set{}
	ruleSet.RRule(rr)
	return &ruleSet, nil
}

// occursOn reports whether a pre-approval may be used on now's calendar day.
// Without a recurrence rule every day in the window qualifies.
func occursOn(p *models.PreApproval, now time.Time, loc *time.Location) bool {
	if p.RecurrenceRule == "" {
		return true
	}

	ruleSet, err := buildRecurrence(p.RecurrenceRule, p.ValidFrom.In(loc))
	if err != nil {
		return false
	}

	now = now.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return len(ruleSet.Between(dayStart, dayEnd, true)) > 0
}
