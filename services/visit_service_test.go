package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
	"visitor-management/pkg/credential"
	"visitor-management/repository"
)

func TestRequestVisitIssuesCredential(t *testing.T) {
	h := newHarness(t)
	visitor := h.createUser(t, "Rina", models.RoleVisitor)

	visit := h.requestVisit(t, visitor)

	assert.Equal(t, models.VisitPending, visit.Status)
	assert.Len(t, visit.Passcode, 6)
	for _, r := range visit.Passcode {
		assert.Contains(t, credential.Alphabet, string(r))
	}
	assert.Contains(t, visit.QRCode, "data:image/png;base64,")
	assert.Equal(t, "Rina", visit.Visitor.Name)
	assert.Nil(t, visit.CheckInTime)

	msgs := h.notes.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "budi@example.com", msgs[0].To)
	assert.Equal(t, "New Visit Request", msgs[0].Subject)
}

func TestRequestVisitRejectsPastDateAndStaff(t *testing.T) {
	h := newHarness(t)
	visitor := h.createUser(t, "Rina", models.RoleVisitor)

	_, err := h.visits.Request(context.Background(), visitor, models.VisitCreatePayload{
		Host:      models.Host{Name: "Budi"},
		Purpose:   "Too late",
		VisitDate: testNow.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = h.visits.Request(context.Background(), h.adminCtx, models.VisitCreatePayload{
		Host:      models.Host{Name: "Budi"},
		Purpose:   "Admins do not visit",
		VisitDate: testNow,
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestVisitLeavesPendingOnlyOnce(t *testing.T) {
	h := newHarness(t)
	visitor := h.createUser(t, "Rina", models.RoleVisitor)
	visit := h.requestVisit(t, visitor)
	ctx := context.Background()

	approved, err := h.visits.Decide(ctx, h.adminCtx, visit.ID, models.VisitDecisionPayload{Status: models.VisitApproved, Notes: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, models.VisitApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, h.adminCtx.UserID, *approved.ApprovedBy)

	_, err = h.visits.Decide(ctx, h.adminCtx, visit.ID, models.VisitDecisionPayload{Status: models.VisitRejected})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	stored, err := h.store.Visits().FindByID(ctx, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitApproved, stored.Status)
	assert.Equal(t, "welcome", stored.Notes)
}

func TestDecisionNotifiesVisitorWithPasscode(t *testing.T) {
	h := newHarness(t)
	visitor := h.createUser(t, "Rina", models.RoleVisitor)
	visit := h.approvedVisit(t, visitor)

	msgs := h.notes.messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, visitor.Email, last.To)
	assert.Equal(t, "Visit Request Approved", last.Subject)
	assert.Contains(t, last.Body, visit.Passcode)
}

func TestDecideUnknownVisit(t *testing.T) {
	h := newHarness(t)
	_, err := h.visits.Decide(context.Background(), h.adminCtx, primitive.NewObjectID(), models.VisitDecisionPayload{Status: models.VisitApproved})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestVisitEndToEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	session, err := h.auth.Register(ctx, models.UserRegisterPayload{
		Name:     "Rina Kusuma",
		Email:    "rina@example.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleVisitor, session.User.Role)
	visitor := &models.Claims{UserID: session.User.ID, Email: session.User.Email, Name: session.User.Name, Role: session.User.Role}

	visit := h.approvedVisit(t, visitor)

	h.advance(90 * time.Minute)
	checkedIn, err := h.visits.CheckIn(ctx, visitor, visit.Passcode)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCheckedIn, checkedIn.Status)
	require.NotNil(t, checkedIn.CheckInTime)
	checkInAt := *checkedIn.CheckInTime
	assert.True(t, checkInAt.Equal(*h.clock))

	h.advance(2 * time.Hour)
	checkedOut, err := h.visits.CheckOut(ctx, visitor, visit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCheckedOut, checkedOut.Status)
	require.NotNil(t, checkedOut.CheckOutTime)
	assert.True(t, checkedOut.CheckOutTime.Equal(*h.clock))
	require.NotNil(t, checkedOut.CheckInTime)
	assert.True(t, checkedOut.CheckInTime.Equal(checkInAt), "check-in time must not move")

	subjects := []string{}
	for _, m := range h.notes.messages() {
		subjects = append(subjects, m.Subject)
	}
	assert.Contains(t, subjects, "Visitor Check-in Notification")
	assert.Contains(t, subjects, "Visitor Check-out Notification")
}

func TestCheckInTimeOnlyOnCheckIn(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	visitor := h.createUser(t, "Rina", models.RoleVisitor)

	rejected := h.requestVisit(t, visitor)
	got, err := h.visits.Decide(ctx, h.adminCtx, rejected.ID, models.VisitDecisionPayload{Status: models.VisitRejected})
	require.NoError(t, err)
	assert.Nil(t, got.CheckInTime)

	cancelled := h.requestVisit(t, visitor)
	got, err = h.visits.Cancel(ctx, visitor, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCancelled, got.Status)
	assert.Nil(t, got.CheckInTime)
	assert.Nil(t, got.CheckOutTime)
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	h := newHarness(t)
	visitor := h.createUser(t, "Rina", models.RoleVisitor)
	visit := h.approvedVisit(t, visitor)

	_, err := h.visits.CheckOut(context.Background(), visitor, visit.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestVisitorCannotRedeemSomeoneElsesPasscode(t *testing.T) {
	h := newHarness(t)
	owner := h.createUser(t, "Rina", models.RoleVisitor)
	other := h.createUser(t, "Joko", models.RoleVisitor)
	visit := h.approvedVisit(t, owner)

	_, err := h.visits.CheckIn(context.Background(), other, visit.Passcode)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	guard := h.createUser(t, "Pak Satpam", models.RoleGuard)
	got, err := h.visits.CheckIn(context.Background(), guard, visit.Passcode)
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, got.VisitorID)
}

func TestCheckInIgnoresPastVisits(t *testing.T) {
	h := newHarness(t)
	visitor := h.createUser(t, "Rina", models.RoleVisitor)
	visit := h.approvedVisit(t, visitor)

	h.advance(48 * time.Hour)
	_, err := h.visits.CheckIn(context.Background(), visitor, visit.Passcode)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnknownPasscode(t *testing.T) {
	h := newHarness(t)
	guard := h.createUser(t, "Pak Satpam", models.RoleGuard)

	_, err := h.visits.CheckIn(context.Background(), guard, "NOPE00")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPreApprovalEndToEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	visitor := h.createUser(t, "Sari", models.RoleVisitor)

	pre := h.preApproval(t, testNow.Add(-time.Hour), testNow.Add(8*time.Hour), "")
	assert.Equal(t, models.PreApprovalActive, pre.Status)

	visit, err := h.visits.CheckIn(ctx, visitor, pre.Passcode)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCheckedIn, visit.Status)
	require.NotNil(t, visit.CheckInTime)
	require.NotNil(t, visit.PreApprovalID)
	assert.Equal(t, pre.ID, *visit.PreApprovalID)
	assert.Equal(t, visitor.UserID, visit.VisitorID)
	assert.Equal(t, pre.Host, visit.Host)
	assert.Equal(t, "Sari", visit.Visitor.Name, "snapshot follows the redeeming account")
	assert.Equal(t, visitor.Email, visit.Visitor.Email)

	stored, err := h.store.PreApprovals().FindByID(ctx, pre.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PreApprovalUsed, stored.Status)
	require.NotNil(t, stored.VisitID)
	assert.Equal(t, visit.ID, *stored.VisitID)
	require.NotNil(t, stored.UsedBy)
	assert.Equal(t, visitor.UserID, *stored.UsedBy)

	_, err = h.visits.CheckIn(ctx, visitor, pre.Passcode)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "a used pre-approval cannot be redeemed again")
}

func TestPreApprovalOutsideWindowIsNotMutated(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		until time.Time
	}{
		{"not yet valid", testNow.Add(time.Hour), testNow.Add(5 * time.Hour)},
		{"already expired", testNow.Add(-5 * time.Hour), testNow.Add(-time.Hour)},
		{"exactly at valid_from", testNow, testNow.Add(time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			ctx := context.Background()
			guard := h.createUser(t, "Pak Satpam", models.RoleGuard)
			pre := h.preApproval(t, tt.from, tt.until, "")

			_, err := h.visits.CheckIn(ctx, guard, pre.Passcode)
			assert.ErrorIs(t, err, apperror.ErrNotFound)

			stored, err := h.store.PreApprovals().FindByID(ctx, pre.ID)
			require.NoError(t, err)
			assert.Equal(t, models.PreApprovalActive, stored.Status)
			assert.Nil(t, stored.UsedAt)
			assert.Equal(t, pre.UpdatedAt, stored.UpdatedAt)
		})
	}
}

func TestPreApprovalRecurrence(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	guard := h.createUser(t, "Pak Satpam", models.RoleGuard)

	// testNow is a Tuesday.
	mondays := h.preApproval(t, testNow.AddDate(0, 0, -8), testNow.AddDate(0, 1, 0), "FREQ=WEEKLY;BYDAY=MO")
	_, err := h.visits.CheckIn(ctx, guard, mondays.Passcode)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	tuesdays := h.preApproval(t, testNow.AddDate(0, 0, -7), testNow.AddDate(0, 1, 0), "FREQ=WEEKLY;BYDAY=TU")
	visit, err := h.visits.CheckIn(ctx, guard, tuesdays.Passcode)
	require.NoError(t, err)
	assert.Equal(t, models.VisitCheckedIn, visit.Status)
	assert.Equal(t, tuesdays.Visitor, visit.Visitor)
}

type failingVisitStore struct {
	repository.VisitRepository
	err error
}

func (f failingVisitStore) Create(context.Context, *models.Visit) error {
	return f.err
}

func TestPreApprovalReleasedWhenVisitCannotBeSaved(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	guard := h.createUser(t, "Pak Satpam", models.RoleGuard)
	pre := h.preApproval(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), "")

	broken := NewVisitService(
		failingVisitStore{VisitRepository: h.store.Visits(), err: errors.New("db down")},
		h.store.PreApprovals(), h.store.Users(), h.issuer, h.runtime,
	)
	_, err := broken.CheckIn(ctx, guard, pre.Passcode)
	assert.ErrorIs(t, err, apperror.ErrPersistence)

	stored, err := h.store.PreApprovals().FindByID(ctx, pre.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PreApprovalActive, stored.Status)
	assert.Nil(t, stored.UsedAt)
	assert.Nil(t, stored.UsedBy)
	assert.Nil(t, stored.VisitID)

	visit, err := h.visits.CheckIn(ctx, guard, pre.Passcode)
	require.NoError(t, err, "the passcode survives a failed attempt")
	assert.Equal(t, models.VisitCheckedIn, visit.Status)
}

func TestConcurrentRedemptionHasOneWinner(t *testing.T) {
	for _, kind := range []string{"visit", "preapproval"} {
		t.Run(kind, func(t *testing.T) {
			h := newHarness(t)
			ctx := context.Background()

			var passcode string
			if kind == "visit" {
				passcode = h.approvedVisit(t, h.createUser(t, "Rina", models.RoleVisitor)).Passcode
			} else {
				passcode = h.preApproval(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), "").Passcode
			}

			const attempts = 16
			actors := make([]*models.Claims, attempts)
			for i := range actors {
				actors[i] = h.createUser(t, "Guard", models.RoleGuard)
			}

			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				wins     int
				failures []error
			)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(actor *models.Claims) {
					defer wg.Done()
					_, err := h.visits.CheckIn(ctx, actor, passcode)
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						wins++
						return
					}
					failures = append(failures, err)
				}(actors[i])
			}
			wg.Wait()

			assert.Equal(t, 1, wins)
			for _, err := range failures {
				kind := apperror.KindOf(err)
				assert.True(t, kind == apperror.KindNotFound || kind == apperror.KindInvalidTransition, "unexpected failure: %v", err)
			}

			checkedIn, err := h.visits.Active(ctx)
			require.NoError(t, err)
			assert.Len(t, checkedIn, 1)
		})
	}
}

func TestTodayActiveAndStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	visitor := h.createUser(t, "Rina", models.RoleVisitor)

	first := h.approvedVisit(t, visitor)
	h.requestVisit(t, visitor)
	_, err := h.visits.CheckIn(ctx, visitor, first.Passcode)
	require.NoError(t, err)
	h.preApproval(t, testNow, testNow.Add(24*time.Hour), "")

	today, err := h.visits.Today(ctx)
	require.NoError(t, err)
	assert.Len(t, today, 2)

	active, err := h.visits.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	stats, err := h.visits.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVisits)
	assert.Equal(t, int64(1), stats.CurrentlyCheckedIn)
	assert.Equal(t, int64(1), stats.PendingApprovals)
	assert.Equal(t, int64(1), stats.ActivePreApprovals)

	_, err = h.visits.List(ctx, models.VisitFilter{Status: "teleported"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
