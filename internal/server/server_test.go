package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kolahope/kolahope/internal/config"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	"github.com/kolahope/kolahope/internal/ratelimit"
	userroledomain "github.com/kolahope/kolahope/internal/userrole/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDonationSvc struct {
	initResp   donationdomain.InitializeResponse
	initErr    error
	verifyResp donationdomain.VerifyResponse
	verifyErr  error
}

func (s *stubDonationSvc) Initialize(ctx context.Context, req donationdomain.InitializeRequest) (donationdomain.InitializeResponse, error) {
	return s.initResp, s.initErr
}

func (s *stubDonationSvc) Verify(ctx context.Context, req donationdomain.VerifyRequest) (donationdomain.VerifyResponse, error) {
	return s.verifyResp, s.verifyErr
}

func (s *stubDonationSvc) List(ctx context.Context, req donationdomain.ListDonationRequest) (donationdomain.ListDonationResponse, error) {
	return donationdomain.ListDonationResponse{}, nil
}

func (s *stubDonationSvc) RecentPublic(ctx context.Context, limit int) ([]donationdomain.PublicView, error) {
	return nil, nil
}

type stubRoleSvc struct {
	roles map[string]string
}

func (s *stubRoleSvc) HasRole(ctx context.Context, userID, role string) (bool, error) {
	return s.roles[userID] == role, nil
}

func (s *stubRoleSvc) Grant(ctx context.Context, userID, role string) (userroledomain.UserRole, error) {
	return userroledomain.UserRole{}, nil
}

func (s *stubRoleSvc) Revoke(ctx context.Context, userID, role string) error { return nil }

func (s *stubRoleSvc) ListRoles(ctx context.Context, userID string) ([]userroledomain.UserRole, error) {
	return nil, nil
}

func newTestServer(t *testing.T, donationSvc donationdomain.Service, roleSvc userroledomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	svc := &Server{
		engine:      engine,
		log:         zap.NewNop(),
		site:        config.NewStaticSiteConfigHolder(config.DefaultSiteConfig()),
		donationSvc: donationSvc,
		roleSvc:     roleSvc,
		limiter:     ratelimit.NewPublicLimiter(config.Config{}),
	}
	svc.registerPublicRoutes()
	svc.registerAdminRoutes()
	return svc
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestInitializeDonationOK(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{
		initResp: donationdomain.InitializeResponse{
			AuthorizationURL: "https://checkout.paystack.com/abc",
			Reference:        "ref-1",
		},
	}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodPost, "/api/donations/initialize", gin.H{
		"amount": 5000,
		"email":  "a@b.com",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ref-1")
}

func TestInitializeDonationValidationError(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{initErr: donationdomain.ErrAmountBelowFloor}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodPost, "/api/donations/initialize", gin.H{
		"amount": 10,
		"email":  "a@b.com",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestInitializeDonationGatewayError(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{
		initErr: fmt.Errorf("%w: Invalid amount", donationdomain.ErrGateway),
	}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodPost, "/api/donations/initialize", gin.H{
		"amount": 5000,
		"email":  "a@b.com",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "gateway_error")
	assert.Contains(t, rec.Body.String(), "Invalid amount")
}

func TestVerifyDonationMissingReference(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodPost, "/api/donations/verify", gin.H{}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestVerifyDonationPersistenceErrorIsRetryable(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{verifyErr: donationdomain.ErrPersistence}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodPost, "/api/donations/verify", gin.H{
		"reference": "ref-1",
	}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "persistence_error")
	assert.Contains(t, rec.Body.String(), `"retry":true`)
}

func TestVerifyDonationGatewayTimeout(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{verifyErr: donationdomain.ErrGatewayTimeout}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodPost, "/api/donations/verify", gin.H{
		"reference": "ref-1",
	}, nil)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), "gateway_timeout")
}

func TestAdminRoutesRequireIdentity(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{}, &stubRoleSvc{roles: map[string]string{
		"admin-1": userroledomain.RoleAdmin,
	}})

	rec := doJSON(t, svc.Engine(), http.MethodGet, "/admin/donations", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, svc.Engine(), http.MethodGet, "/admin/donations", nil, map[string]string{
		HeaderUserID: "intruder",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, svc.Engine(), http.MethodGet, "/admin/donations", nil, map[string]string{
		HeaderUserID: "admin-1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSiteInfoHidesAdminEmails(t *testing.T) {
	svc := newTestServer(t, &stubDonationSvc{}, nil)

	rec := doJSON(t, svc.Engine(), http.MethodGet, "/api/site", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_donation")
	assert.NotContains(t, rec.Body.String(), "admin_emails")
}
