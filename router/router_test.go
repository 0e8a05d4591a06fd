package router

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/config"
	"visitor-management/models"
	"visitor-management/pkg/credential"
	"visitor-management/pkg/metrics"
	"visitor-management/pkg/paseto"
	"visitor-management/pkg/photostore"
	util "visitor-management/pkg/utils"
	"visitor-management/repository/memory"
	"visitor-management/services"
)

const testPassword = "Password123"

type testServer struct {
	t     *testing.T
	app   *fiber.App
	maker *paseto.Maker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.AppConfig{
		AppEnv:        "test",
		MaxPhotoBytes: 1_000_000,
		Location:      time.UTC,
	}
	secret, err := util.GenerateBase64Key(32)
	require.NoError(t, err)
	maker, err := paseto.NewPasetoMaker(secret, time.Hour)
	require.NoError(t, err)
	photos, err := photostore.New(t.TempDir(), cfg.MaxPhotoBytes)
	require.NoError(t, err)

	store := memory.New()
	stats := metrics.New()
	issuer := credential.NewIssuer(6)
	rt := services.Runtime{Metrics: stats, Location: time.UTC}

	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), io.Discard)
	SetupRoutes(app, Dependencies{
		Auth:         services.NewAuthService(store.Users(), maker, rt),
		Visits:       services.NewVisitService(store.Visits(), store.PreApprovals(), store.Users(), issuer, rt),
		PreApprovals: services.NewPreApprovalService(store.PreApprovals(), issuer, rt),
		Users:        services.NewUserService(store.Users(), photos, rt),
		Tokens:       maker,
		Metrics:      stats,
	})
	return &testServer{t: t, app: app, maker: maker}
}

func (s *testServer) send(req *http.Request, token string) (int, []byte) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, body
}

func (s *testServer) do(method, path, token string, payload interface{}) (int, map[string]interface{}) {
	s.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	status, raw := s.send(req, token)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

func (s *testServer) list(path, token string) []interface{} {
	s.t.Helper()
	status, raw := s.send(httptest.NewRequest(http.MethodGet, path, nil), token)
	require.Equal(s.t, http.StatusOK, status, string(raw))
	var out []interface{}
	require.NoError(s.t, json.Unmarshal(raw, &out))
	return out
}

// session returns the token and user id from an auth response.
func session(t *testing.T, body map[string]interface{}) (string, string) {
	t.Helper()
	token, _ := body["token"].(string)
	require.NotEmpty(t, token, body)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

func (s *testServer) setupAdmin() string {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/api/v1/setup/admin", "", map[string]string{
		"name": "Site Admin", "email": "admin@example.com", "password": testPassword,
	})
	require.Equal(s.t, http.StatusCreated, status, body)
	token, _ := session(s.t, body)
	return token
}

func (s *testServer) register(name, email string) (string, string) {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": name, "email": email, "password": testPassword, "company": "PT Nusantara",
	})
	require.Equal(s.t, http.StatusCreated, status, body)
	return session(s.t, body)
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	status, body := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": testPassword,
	})
	require.Equal(s.t, http.StatusOK, status, body)
	token, _ := session(s.t, body)
	return token
}

func visitOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	visit, ok := body["visit"].(map[string]interface{})
	require.True(t, ok, body)
	return visit
}

func TestHealthAndDocs(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "running", body["status"])

	status, raw := s.send(httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "/visitor/checkin")
}

func TestVisitFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	visitor, _ := s.register("Dewi Lestari", "dewi@example.com")

	status, body := s.do(http.MethodPost, "/api/v1/visitor/visit", visitor, map[string]interface{}{
		"host":       map[string]string{"name": "Budi", "email": "budi@example.com", "department": "Engineering"},
		"purpose":    "Contract review",
		"visit_date": time.Now().Add(time.Hour).UTC(),
	})
	require.Equal(t, http.StatusCreated, status, body)
	visit := visitOf(t, body)
	id := visit["id"].(string)
	passcode := visit["passcode"].(string)
	assert.Equal(t, "pending", visit["status"])
	assert.Len(t, passcode, 6)

	// Not redeemable until approved.
	status, _ = s.do(http.MethodPost, "/api/v1/visitor/checkin", visitor, map[string]string{"passcode": passcode})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(http.MethodPut, "/api/v1/admin/visits/"+id, admin, map[string]string{"status": "approved", "notes": "Welcome"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "approved", visitOf(t, body)["status"])

	status, body = s.do(http.MethodPut, "/api/v1/admin/visits/"+id, admin, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, status, body)

	status, body = s.do(http.MethodPost, "/api/v1/visitor/checkin", visitor, map[string]string{"passcode": strings.ToLower(passcode)})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "checked-in", visitOf(t, body)["status"])

	status, _ = s.do(http.MethodPost, "/api/v1/visitor/checkin", visitor, map[string]string{"passcode": passcode})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(http.MethodGet, "/api/v1/admin/visits/active", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])

	status, body = s.do(http.MethodPut, "/api/v1/visitor/checkout/"+id, visitor, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "checked-out", visitOf(t, body)["status"])

	status, _ = s.do(http.MethodPut, "/api/v1/visitor/checkout/"+id, visitor, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = s.do(http.MethodGet, "/api/v1/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total_visits"])
	assert.EqualValues(t, 0, body["currently_checked_in"])

	assert.Len(t, s.list("/api/v1/visitor/visits", visitor), 1)

	status, raw := s.send(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `visitor_management_passcode_redemptions_total{outcome="checked_in",source="visit"} 1`)
	assert.Contains(t, string(raw), `visitor_management_status_transitions_total{entity="visit",to="checked-out"} 1`)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	visitor, _ := s.register("Dewi Lestari", "dewi@example.com")

	status, _ := s.do(http.MethodGet, "/api/v1/admin/visits", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/v1/admin/visits", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/v1/admin/visits", visitor, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(http.MethodPost, "/api/v1/visitor/visit", admin, map[string]interface{}{
		"host": map[string]string{"name": "Budi"}, "purpose": "Audit", "visit_date": time.Now().Add(time.Hour),
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(http.MethodGet, "/api/v1/admin/visits/status/unknown", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status, body)

	status, _ = s.do(http.MethodPut, "/api/v1/admin/visits/not-an-id", admin, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthErrors(t *testing.T) {
	s := newTestServer(t)
	s.setupAdmin()

	status, _ := s.do(http.MethodPost, "/api/v1/setup/admin", "", map[string]string{
		"name": "Second Admin", "email": "second@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Dewi", "email": "not-an-email", "password": "lowercase1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", body["error"])
	assert.Len(t, body["errors"], 2)

	s.register("Dewi Lestari", "dewi@example.com")
	status, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Dewi Again", "email": "DEWI@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "dewi@example.com", "password": "WrongPassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAccountManagement(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	visitor, visitorID := s.register("Dewi Lestari", "dewi@example.com")

	status, body := s.do(http.MethodGet, "/api/v1/auth/me", visitor, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "visitor", body["role"])
	assert.NotEmpty(t, body["permissions"])

	status, body = s.do(http.MethodPut, "/api/v1/auth/me", visitor, map[string]string{"company": "PT Baru"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "PT Baru", body["company"])

	status, _ = s.do(http.MethodPut, "/api/v1/auth/password", visitor, map[string]string{
		"old_password": "WrongPassword1", "new_password": "Password456",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	assert.Len(t, s.list("/api/v1/admin/users?role=visitor", admin), 1)

	status, body = s.do(http.MethodPut, "/api/v1/admin/users/"+visitorID+"/active", admin, map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, false, body["is_active"])

	status, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "dewi@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDeactivatedTokenIsRefused(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	visitor, visitorID := s.register("Dewi Lestari", "dewi@example.com")

	status, body := s.do(http.MethodPut, "/api/v1/admin/users/"+visitorID+"/active", admin, map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, status, body)

	status, body = s.do(http.MethodPost, "/api/v1/visitor/visit", visitor, map[string]interface{}{
		"host":       map[string]string{"name": "Budi", "email": "budi@example.com", "department": "Engineering"},
		"purpose":    "Contract review",
		"visit_date": time.Now().Add(time.Hour).UTC(),
	})
	assert.Equal(t, http.StatusForbidden, status, body)
	assert.Equal(t, "Account is deactivated", body["error"])

	status, _ = s.do(http.MethodGet, "/api/v1/auth/me", visitor, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = s.do(http.MethodPut, "/api/v1/admin/users/"+visitorID+"/active", admin, map[string]bool{"is_active": true})
	require.Equal(t, http.StatusOK, status, body)
	status, _ = s.do(http.MethodGet, "/api/v1/auth/me", visitor, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestDemotedAdminTokenLosesAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	_, userID := s.register("Rudi Hartono", "rudi@example.com")

	status, body := s.do(http.MethodPut, "/api/v1/admin/users/"+userID+"/role", admin, map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, status, body)
	promoted := s.login("rudi@example.com")

	status, _ = s.do(http.MethodGet, "/api/v1/admin/visits", promoted, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(http.MethodPut, "/api/v1/admin/users/"+userID+"/role", admin, map[string]string{"role": "visitor"})
	require.Equal(t, http.StatusOK, status, body)

	status, _ = s.do(http.MethodGet, "/api/v1/admin/visits", promoted, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = s.do(http.MethodGet, "/api/v1/auth/me", promoted, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "visitor", body["role"])
}

func TestTokenForMissingAccount(t *testing.T) {
	s := newTestServer(t)
	token, err := s.maker.GenerateToken(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ghost",
		Email: "ghost@example.com",
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)

	status, body := s.do(http.MethodGet, "/api/v1/admin/visits", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Account no longer exists", body["error"])
}

func TestPreApprovalRedeemedByGuard(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	_, guardID := s.register("Joko Santoso", "joko@example.com")

	status, body := s.do(http.MethodPut, "/api/v1/admin/users/"+guardID+"/role", admin, map[string]string{"role": "guard"})
	require.Equal(t, http.StatusOK, status, body)
	guard := s.login("joko@example.com")

	now := time.Now().UTC()
	status, body = s.do(http.MethodPost, "/api/v1/admin/preapproval", admin, map[string]interface{}{
		"visitor_name":  "Sari Wulandari",
		"visitor_email": "sari@example.com",
		"host":          map[string]string{"name": "Budi", "department": "Engineering"},
		"purpose":       "Contractor onboarding",
		"valid_from":    now.Add(-time.Hour),
		"valid_until":   now.Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, status, body)
	pre := body["pre_approval"].(map[string]interface{})
	preID := pre["id"].(string)
	passcode := pre["passcode"].(string)
	assert.True(t, strings.HasPrefix(pre["qr_code"].(string), "data:image/png;base64,"))

	status, body = s.do(http.MethodPost, "/api/v1/visitor/checkin", guard, map[string]string{"passcode": passcode})
	require.Equal(t, http.StatusOK, status, body)
	visit := visitOf(t, body)
	assert.Equal(t, "checked-in", visit["status"])
	assert.Equal(t, preID, visit["pre_approval_id"])

	status, _ = s.do(http.MethodPost, "/api/v1/visitor/checkin", guard, map[string]string{"passcode": passcode})
	assert.Equal(t, http.StatusNotFound, status)

	list := s.list("/api/v1/admin/preapproval", admin)
	require.Len(t, list, 1)
	assert.Equal(t, "used", list[0].(map[string]interface{})["status"])

	status, _ = s.do(http.MethodPut, "/api/v1/admin/preapproval/"+preID, admin, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, status)

	status, body = s.do(http.MethodPost, "/api/v1/admin/preapproval/expire", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["expired"])
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photo/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestPhotoUploadAndAccess(t *testing.T) {
	s := newTestServer(t)
	admin := s.setupAdmin()
	owner, ownerID := s.register("Dewi Lestari", "dewi@example.com")
	other, _ := s.register("Andi Pratama", "andi@example.com")
	photo := pngBytes(t)

	status, raw := s.send(uploadRequest(t, "me.png", photo), owner)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), ownerID+"-")

	status, raw = s.send(httptest.NewRequest(http.MethodGet, "/api/v1/photo/"+ownerID, nil), owner)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, photo, raw)

	status, _ = s.send(httptest.NewRequest(http.MethodGet, "/api/v1/photo/"+ownerID, nil), admin)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.send(httptest.NewRequest(http.MethodGet, "/api/v1/photo/"+ownerID, nil), other)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.send(uploadRequest(t, "notes.txt", []byte("hello")), owner)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.send(uploadRequest(t, "fake.png", []byte("definitely not a png")), owner)
	assert.Equal(t, http.StatusBadRequest, status)
}
