package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/auth"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier() *auth.TokenVerifier {
	return auth.NewTokenVerifier(config.JWTConfig{
		Enabled: true,
		Secret:  "test-secret-key-at-least-32-chars",
		Issuer:  "test-issuer",
	})
}

func newJWTRouter(verifier *auth.TokenVerifier) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(DefaultJWTConfig(verifier)))
	router.Use(Tenant(DefaultTenantConfig(true)))
	router.GET("/api/v1/documents", func(c *gin.Context) {
		tenantID, _ := GetTenantID(c)
		ctxTenant, _ := logger.GetTenantID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"tenant":     tenantID.String(),
			"ctx_tenant": ctxTenant.String(),
			"subject":    GetJWTSubject(c),
			"log_sub":    logger.GetSubject(c.Request.Context()),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func authRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, token)
	}
	return req
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuth_ValidToken(t *testing.T) {
	verifier := newTestVerifier()
	tenantID := uuid.New()
	token, err := verifier.Sign(tenantID, "billing-clerk", time.Minute)
	require.NoError(t, err)

	w := serve(newJWTRouter(verifier), authRequest(BearerPrefix+token))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, tenantID.String(), body["tenant"])
	assert.Equal(t, tenantID.String(), body["ctx_tenant"])
	assert.Equal(t, "billing-clerk", body["subject"])
	assert.Equal(t, "billing-clerk", body["log_sub"])
}

func TestJWTAuth_Rejections(t *testing.T) {
	verifier := newTestVerifier()
	expired, err := verifier.Sign(uuid.New(), "clerk", -time.Hour)
	require.NoError(t, err)
	foreign, err := auth.NewTokenVerifier(config.JWTConfig{Secret: "another-secret-key-of-32-characters", Issuer: "test-issuer"}).
		Sign(uuid.New(), "clerk", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeTokenInvalid},
		{"wrong scheme", "Basic abc", dto.ErrCodeTokenInvalid},
		{"empty token", BearerPrefix, dto.ErrCodeTokenInvalid},
		{"garbage token", BearerPrefix + "not-a-jwt", dto.ErrCodeTokenInvalid},
		{"foreign signature", BearerPrefix + foreign, dto.ErrCodeTokenInvalid},
		{"expired", BearerPrefix + expired, dto.ErrCodeTokenExpired},
	}

	router := newJWTRouter(verifier)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, authRequest(tt.header))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestJWTAuth_HeaderTenantIgnored(t *testing.T) {
	req := authRequest("")
	req.Header.Set(TenantHeaderKey, uuid.NewString())

	w := serve(newJWTRouter(newTestVerifier()), req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	w := serve(newJWTRouter(newTestVerifier()), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetJWTClaims_NotFound(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	claims, ok := GetJWTClaims(c)
	assert.False(t, ok)
	assert.Nil(t, claims)
	assert.Empty(t, GetJWTSubject(c))
}
