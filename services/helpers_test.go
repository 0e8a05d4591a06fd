package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"visitor-management/models"
	"visitor-management/pkg/credential"
	"visitor-management/pkg/metrics"
	"visitor-management/pkg/notifier"
	"visitor-management/repository/memory"
)

var userSeq atomic.Int64

// Tuesday.
var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifier.Message
}

func (r *recordingNotifier) Notify(_ context.Context, msg notifier.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return true
}

func (r *recordingNotifier) messages() []notifier.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifier.Message(nil), r.sent...)
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(user *models.User) (string, error) {
	return "token-" + user.ID.Hex(), nil
}

type harness struct {
	store    *memory.Store
	notes    *recordingNotifier
	clock    *time.Time
	visits   *VisitService
	pre      *PreApprovalService
	auth     *AuthService
	users    *UserService
	issuer   *credential.Issuer
	runtime  Runtime
	adminCtx *models.Claims
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	now := testNow
	h := &harness{
		store:  memory.New(),
		notes:  &recordingNotifier{},
		clock:  &now,
		issuer: credential.NewIssuer(6),
	}
	h.runtime = Runtime{
		Metrics:  metrics.New(),
		Notifier: h.notes,
		Location: time.UTC,
		Now:      func() time.Time { return *h.clock },
	}
	h.visits = NewVisitService(h.store.Visits(), h.store.PreApprovals(), h.store.Users(), h.issuer, h.runtime)
	h.pre = NewPreApprovalService(h.store.PreApprovals(), h.issuer, h.runtime)
	h.auth = NewAuthService(h.store.Users(), fakeTokens{}, h.runtime)
	h.users = NewUserService(h.store.Users(), nil, h.runtime)

	admin := h.createUser(t, "Admin User", models.RoleAdmin)
	h.adminCtx = admin
	return h
}

func (h *harness) advance(d time.Duration) {
	*h.clock = h.clock.Add(d)
}

func (h *harness) createUser(t *testing.T, name string, role models.Role) *models.Claims {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@example.com", role, userSeq.Add(1)),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, h.store.Users().CreateUser(context.Background(), user))
	return &models.Claims{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
}

func (h *harness) requestVisit(t *testing.T, visitor *models.Claims) *models.Visit {
	t.Helper()
	visit, err := h.visits.Request(context.Background(), visitor, models.VisitCreatePayload{
		Host:      models.Host{Name: "Budi", Email: "budi@example.com", Department: "Engineering"},
		Purpose:   "Quarterly review",
		VisitDate: testNow.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	return visit
}

func (h *harness) approvedVisit(t *testing.T, visitor *models.Claims) *models.Visit {
	t.Helper()
	visit := h.requestVisit(t, visitor)
	approved, err := h.visits.Decide(context.Background(), h.adminCtx, visit.ID, models.VisitDecisionPayload{Status: models.VisitApproved})
	require.NoError(t, err)
	return approved
}

func (h *harness) preApproval(t *testing.T, from, until time.Time, rule string) *models.PreApproval {
	t.Helper()
	p, err := h.pre.Create(context.Background(), h.adminCtx, models.PreApprovalCreatePayload{
		VisitorName:    "Sari Wulandari",
		VisitorEmail:   "sari@example.com",
		Host:           models.Host{Name: "Budi", Email: "budi@example.com", Department: "Engineering"},
		Purpose:        "Contractor onboarding",
		ValidFrom:      from,
		ValidUntil:     until,
		RecurrenceRule: rule,
	})
	require.NoError(t, err)
	return p
}
