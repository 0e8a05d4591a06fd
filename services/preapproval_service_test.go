package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
)

func TestCreatePreApprovalMailsPasscode(t *testing.T) {
	h := newHarness(t)
	pre := h.preApproval(t, testNow, testNow.Add(48*time.Hour), "")

	assert.Equal(t, models.PreApprovalActive, pre.Status)
	assert.Equal(t, h.adminCtx.UserID, pre.CreatedBy)
	assert.Len(t, pre.Passcode, 6)

	msgs := h.notes.messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, "sari@example.com", last.To)
	assert.Contains(t, last.Body, pre.Passcode)
}

func TestCreatePreApprovalValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	base := models.PreApprovalCreatePayload{
		VisitorName:  "Sari",
		VisitorEmail: "sari@example.com",
		Host:         models.Host{Name: "Budi"},
		Purpose:      "Audit",
		ValidFrom:    testNow,
		ValidUntil:   testNow.Add(time.Hour),
	}

	badRule := base
	badRule.RecurrenceRule = "FREQ=SOMETIMES"
	_, err := h.pre.Create(ctx, h.adminCtx, badRule)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	inverted := base
	inverted.ValidUntil = testNow.Add(-time.Hour)
	_, err = h.pre.Create(ctx, h.adminCtx, inverted)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	guard := h.createUser(t, "Pak Satpam", models.RoleGuard)
	_, err = h.pre.Create(ctx, guard, base)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCancelPreApproval(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	guard := h.createUser(t, "Pak Satpam", models.RoleGuard)
	pre := h.preApproval(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), "")

	cancelled, err := h.pre.UpdateStatus(ctx, h.adminCtx, pre.ID, models.PreApprovalCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.PreApprovalCancelled, cancelled.Status)

	_, err = h.pre.UpdateStatus(ctx, h.adminCtx, pre.ID, models.PreApprovalCancelled)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	_, err = h.visits.CheckIn(ctx, guard, pre.Passcode)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	last := h.notes.messages()[len(h.notes.messages())-1]
	assert.Equal(t, "Pre-approval Cancelled", last.Subject)
}

func TestExpireStalePreApprovals(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	stale := h.preApproval(t, testNow.Add(-48*time.Hour), testNow.Add(-time.Hour), "")
	live := h.preApproval(t, testNow.Add(-time.Hour), testNow.Add(time.Hour), "")

	n, err := h.pre.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := h.store.PreApprovals().FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PreApprovalExpired, got.Status)

	got, err = h.store.PreApprovals().FindByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PreApprovalActive, got.Status)

	_, err = h.pre.UpdateStatus(ctx, h.adminCtx, stale.ID, models.PreApprovalCancelled)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}
