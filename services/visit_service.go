package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
	"visitor-management/pkg/credential"
	"visitor-management/repository"
)

type VisitService struct {
	visits       repository.VisitRepository
	preApprovals repository.PreApprovalRepository
	users        repository.UserRepository
	issuer       *credential.Issuer
	rt           Runtime
}

func NewVisitService(
	visits repository.VisitRepository,
	preApprovals repository.PreApprovalRepository,
	users repository.UserRepository,
	issuer *credential.Issuer,
	rt Runtime,
) *VisitService {
	return &VisitService{
		visits:       visits,
		preApprovals: preApprovals,
		users:        users,
		issuer:       issuer,
		rt:           rt.withDefaults(),
	}
}

// Request files a new pending visit for the calling visitor and tells the host.
func (s *VisitService) Request(ctx context.Context, actor *models.Claims, payload models.VisitCreatePayload) (*models.Visit, error) {
	if actor == nil || actor.Role != models.RoleVisitor {
		return nil, apperror.Forbidden("only visitors can request a visit")
	}

	visitor, err := s.users.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperror.Persistence("failed to load visitor", err)
	}
	if visitor == nil {
		return nil, apperror.NotFound("visitor account not found")
	}

	now := s.rt.now()
	dayStart, _ := s.rt.dayBounds(now)
	if payload.VisitDate.Before(dayStart) {
		return nil, apperror.Validation("visit date cannot be in the past")
	}

	cred, err := s.issuer.Issue()
	if err != nil {
		return nil, err
	}

	visit := &models.Visit{
		VisitorID: visitor.ID,
		Visitor: models.VisitorInfo{
			Name:    visitor.Name,
			Email:   visitor.Email,
			Phone:   visitor.Phone,
			Company: visitor.Company,
		},
		Host:      payload.Host,
		Purpose:   payload.Purpose,
		VisitDate: payload.VisitDate,
		Status:    models.VisitPending,
		Passcode:  cred.Passcode,
		QRCode:    cred.QRCode,
		CreatedBy: actor.UserID,
		CreatedAt: now,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, apperror.Persistence("failed to save visit", err)
	}

	s.rt.Logger.Info("visit requested", "visit_id", visit.ID.Hex(), "visitor_id", visitor.ID.Hex())
	s.rt.notify(ctx, s.rt.visitRequestedMessage(visit))
	return visit, nil
}

func (s *VisitService) MyVisits(ctx context.Context, actor *models.Claims) ([]models.Visit, error) {
	visits, err := s.visits.FindByVisitor(ctx, actor.UserID)
	if err != nil {
		return nil, apperror.Persistence("failed to load visits", err)
	}
	return visits, nil
}

// Decide approves or rejects a pending visit and tells the visitor.
func (s *VisitService) Decide(ctx context.Context, actor *models.Claims, id primitive.ObjectID, payload models.VisitDecisionPayload) (*models.Visit, error) {
	if payload.Status != models.VisitApproved && payload.Status != models.VisitRejected {
		return nil, apperror.Validation("status must be approved or rejected")
	}

	visit, err := s.transition(ctx, actor, id, payload.Status, payload.Notes)
	if err != nil {
		return nil, err
	}
	s.rt.notify(ctx, s.rt.visitDecidedMessage(visit))
	return visit, nil
}

func (s *VisitService) Cancel(ctx context.Context, actor *models.Claims, id primitive.ObjectID) (*models.Visit, error) {
	return s.transition(ctx, actor, id, models.VisitCancelled, "")
}

func (s *VisitService) CheckOut(ctx context.Context, actor *models.Claims, id primitive.ObjectID) (*models.Visit, error) {
	visit, err := s.transition(ctx, actor, id, models.VisitCheckedOut, "")
	if err != nil {
		return nil, err
	}
	s.rt.notify(ctx, s.rt.visitorArrivalMessage(visit))
	return visit, nil
}

func (s *VisitService) transition(ctx context.Context, actor *models.Claims, id primitive.ObjectID, to models.VisitStatus, notes string) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("failed to load visit", err)
	}
	if visit == nil {
		return nil, apperror.NotFound("visit not found")
	}

	t, err := AuthorizeVisitTransition(actor, visit, to)
	if err != nil {
		return nil, err
	}
	t.At = s.rt.now()
	t.Notes = notes
	if to == models.VisitApproved || to == models.VisitRejected {
		approver := actor.UserID
		t.ApprovedBy = &approver
	}

	return s.apply(ctx, visit, t)
}

// apply persists an authorized transition. A nil result from the store means
// another request moved the visit first.
func (s *VisitService) apply(ctx context.Context, visit *models.Visit, t models.VisitTransition) (*models.Visit, error) {
	updated, err := s.visits.Transition(ctx, visit.ID, t)
	if err != nil {
		return nil, apperror.Persistence("failed to update visit", err)
	}
	if updated == nil {
		return nil, invalidTransition(visit.Status, t.To)
	}

	s.rt.Metrics.Transition("visit", string(t.To))
	s.rt.Logger.Info("visit status changed",
		"visit_id", updated.ID.Hex(),
		"from", visit.Status,
		"to", updated.Status,
	)
	return updated, nil
}

// CheckIn redeems a passcode. An approved visit scheduled for today or later
// wins; otherwise an active pre-approval valid right now is consumed and turned
// into a checked-in visit.
func (s *VisitService) CheckIn(ctx context.Context, actor *models.Claims, passcode string) (*models.Visit, error) {
	passcode = strings.ToUpper(strings.TrimSpace(passcode))
	now := s.rt.now()
	dayStart, _ := s.rt.dayBounds(now)

	visit, err := s.visits.FindRedeemable(ctx, passcode, dayStart)
	if err != nil {
		return nil, apperror.Persistence("failed to look up passcode", err)
	}
	if visit != nil {
		return s.checkIn(ctx, actor, visit, "visit")
	}

	pre, err := s.findRedeemablePreApproval(ctx, passcode, now)
	if err != nil {
		return nil, err
	}
	if pre == nil {
		s.rt.Metrics.Redemption("none", "not_found")
		return nil, apperror.NotFound("invalid or expired passcode")
	}
	return s.redeemPreApproval(ctx, actor, pre, now)
}

func (s *VisitService) findRedeemablePreApproval(ctx context.Context, passcode string, now time.Time) (*models.PreApproval, error) {
	candidates, err := s.preApprovals.FindActiveByPasscode(ctx, passcode)
	if err != nil {
		return nil, apperror.Persistence("failed to look up passcode", err)
	}
	for i := range candidates {
		p := &candidates[i]
		if p.InWindow(now) && occursOn(p, now, s.rt.Location) {
			return p, nil
		}
	}
	return nil, nil
}

func (s *VisitService) redeemPreApproval(ctx context.Context, actor *models.Claims, pre *models.PreApproval, now time.Time) (*models.Visit, error) {
	visit := &models.Visit{
		Visitor:       pre.Visitor,
		Host:          pre.Host,
		Purpose:       pre.Purpose,
		VisitDate:     now,
		Status:        models.VisitApproved,
		Passcode:      pre.Passcode,
		QRCode:        pre.QRCode,
		CreatedBy:     pre.CreatedBy,
		PreApprovalID: &pre.ID,
		CreatedAt:     now,
	}
	if actor != nil && actor.Role == models.RoleVisitor {
		account, err := s.users.FindUserByID(ctx, actor.UserID)
		if err != nil {
			return nil, apperror.Persistence("failed to load visitor", err)
		}
		if account == nil {
			return nil, apperror.NotFound("visitor account not found")
		}
		// The visit belongs to whoever redeems it.
		visit.VisitorID = account.ID
		visit.Visitor = models.VisitorInfo{
			Name:    account.Name,
			Email:   account.Email,
			Phone:   account.Phone,
			Company: account.Company,
		}
	}
	approver := pre.CreatedBy
	visit.ApprovedBy = &approver

	// Refuse before touching the pre-approval.
	if _, err := AuthorizeVisitTransition(actor, visit, models.VisitCheckedIn); err != nil {
		return nil, err
	}

	usedBy := actor.UserID
	used, err := s.preApprovals.Transition(ctx, pre.ID, models.PreApprovalTransition{
		From:   models.PreApprovalActive,
		To:     models.PreApprovalUsed,
		At:     now,
		UsedBy: &usedBy,
	})
	if err != nil {
		return nil, apperror.Persistence("failed to update pre-approval", err)
	}
	if used == nil {
		s.rt.Metrics.Redemption("preapproval", "lost_race")
		return nil, apperror.InvalidTransition("passcode has already been used")
	}
	s.rt.Metrics.Transition("preapproval", string(models.PreApprovalUsed))

	if err := s.visits.Create(ctx, visit); err != nil {
		s.releasePreApproval(ctx, pre.ID, now)
		return nil, apperror.Persistence("failed to save visit", err)
	}
	if err := s.preApprovals.AttachVisit(ctx, pre.ID, visit.ID); err != nil {
		s.rt.Logger.Warn("failed to link visit to pre-approval",
			"pre_approval_id", pre.ID.Hex(),
			"visit_id", visit.ID.Hex(),
			"error", err,
		)
	}

	return s.checkIn(ctx, actor, visit, "preapproval")
}

// releasePreApproval puts a pre-approval consumed by a redemption that could
// not be completed back to active.
func (s *VisitService) releasePreApproval(ctx context.Context, id primitive.ObjectID, now time.Time) {
	restored, err := s.preApprovals.Transition(ctx, id, models.PreApprovalTransition{
		From: models.PreApprovalUsed,
		To:   models.PreApprovalActive,
		At:   now,
	})
	if err != nil || restored == nil {
		s.rt.Logger.Error("failed to release pre-approval after aborted redemption",
			"pre_approval_id", id.Hex(),
			"error", err,
		)
		return
	}
	s.rt.Metrics.Redemption("preapproval", "rolled_back")
	s.rt.Logger.Warn("pre-approval released after aborted redemption", "pre_approval_id", id.Hex())
}

func (s *VisitService) checkIn(ctx context.Context, actor *models.Claims, visit *models.Visit, source string) (*models.Visit, error) {
	t, err := AuthorizeVisitTransition(actor, visit, models.VisitCheckedIn)
	if err != nil {
		s.rt.Metrics.Redemption(source, "forbidden")
		return nil, err
	}
	t.At = s.rt.now()

	updated, err := s.apply(ctx, visit, t)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInvalidTransition {
			s.rt.Metrics.Redemption(source, "lost_race")
		}
		return nil, err
	}

	s.rt.Metrics.Redemption(source, "checked_in")
	s.rt.notify(ctx, s.rt.visitorArrivalMessage(updated))
	return updated, nil
}

func (s *VisitService) List(ctx context.Context, filter models.VisitFilter) ([]models.VisitWithVisitor, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.Validation("unknown visit status")
	}
	visits, err := s.visits.List(ctx, filter)
	if err != nil {
		return nil, apperror.Persistence("failed to load visits", err)
	}
	return visits, nil
}

func (s *VisitService) Today(ctx context.Context) ([]models.VisitWithVisitor, error) {
	start, end := s.rt.dayBounds(s.rt.now())
	return s.List(ctx, models.VisitFilter{From: start, To: end})
}

func (s *VisitService) Active(ctx context.Context) ([]models.VisitWithVisitor, error) {
	return s.List(ctx, models.VisitFilter{Status: models.VisitCheckedIn})
}

func (s *VisitService) Stats(ctx context.Context) (*models.VisitStats, error) {
	start, end := s.rt.dayBounds(s.rt.now())
	stats, err := s.visits.Stats(ctx, start, end)
	if err != nil {
		return nil, apperror.Persistence("failed to compute visit statistics", err)
	}
	if stats.ActivePreApprovals, err = s.preApprovals.CountActive(ctx); err != nil {
		return nil, apperror.Persistence("failed to count pre-approvals", err)
	}
	return stats, nil
}
