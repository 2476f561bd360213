package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callboard/internal/analytics"
	"callboard/internal/auth"
	"callboard/internal/calls"
	"callboard/internal/clients"
	"callboard/internal/httpapi"
	"callboard/internal/services"
	"callboard/internal/webhook"
)

// stubAuth injects the identity carried by the X-Test-Role header, standing
// in for the JWT middleware so routing and RBAC can be tested alone.
func stubAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetHeader("X-Test-Role")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), "test-user", role))
		c.Next()
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, httpapi.Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clientRepo := clients.NewMemoryRepo()
	clientSvc := clients.NewService(clientRepo)
	callRepo := calls.NewMemoryRepo()
	catalog := services.NewCatalog(services.NewMemoryRepo())

	h := httpapi.Handlers{
		Clients:   clientSvc,
		Calls:     callRepo,
		Services:  catalog,
		Analytics: analytics.NewService(analytics.NewMemoryRepo()),
		Webhooks:  webhook.NewService(webhook.NewMemoryRepo(), callRepo, clientSvc, clientRepo),
	}

	r := gin.New()
	registerRoutes(r, h, stubAuth())
	return r, h
}

func do(r *gin.Engine, method, path, role string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestClientDeleteIsAdminOnly(t *testing.T) {
	r, h := newTestRouter(t)

	created, err := h.Clients.Create(context.Background(), clients.CreateInput{
		Name: "Acme", Phone: "+15550001111", Email: "ops@acme.test",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/v1/clients/"+created.ID, "operator").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/v1/clients/"+created.ID, "viewer").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/v1/clients/"+created.ID, "admin").Code)
}

func TestEstimateIsAGetWithQueryParam(t *testing.T) {
	r, h := newTestRouter(t)

	svc, err := h.Services.Create(context.Background(), services.Input{
		Name: "Support Line", PricePerMinute: 0.5, PricePerCall: 1, Active: true,
	})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/v1/services/"+svc.ID+"/estimate?duration_seconds=90", "viewer")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"billable_minutes":2`)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/v1/services/"+svc.ID+"/estimate?duration_seconds=abc", "viewer").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(r, http.MethodPost, "/v1/services/"+svc.ID+"/estimate", "viewer").Code)
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/v1/clients", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)
}
