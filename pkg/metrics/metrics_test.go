package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	m := New()

	m.Transition("visit", "approved")
	m.Transition("visit", "approved")
	m.Redemption("preapproval", "checked_in")
	m.Notification("email", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("visit", "approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.redemptions.WithLabelValues("preapproval", "checked_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("email", "failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Transition("visit", "approved")
		m.Redemption("visit", "checked_in")
		m.Notification("telegram", true)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Transition("preapproval", "used")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `visitor_management_status_transitions_total{entity="preapproval",to="used"} 1`))
}
