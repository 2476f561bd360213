package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"callboard/internal/analytics"
	"callboard/internal/auth"
	"callboard/internal/calls"
	"callboard/internal/clients"
	"callboard/internal/services"
	"callboard/internal/webhook"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth      *auth.Manager
	Clients   *clients.Service
	Calls     calls.Repository
	Services  *services.Catalog
	Analytics *analytics.Service
	Webhooks  *webhook.Service
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Clients ---

type clientRequest struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Company    string   `json:"company"`
	Status     string   `json:"status"`
	ServiceIDs []string `json:"service_ids"`
}

func (h Handlers) ListClients(c *gin.Context) {
	rows, err := h.Clients.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "client listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": rows})
}

func (h Handlers) GetClient(c *gin.Context) {
	row, err := h.Clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortClientErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h Handlers) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	row, err := h.Clients.Create(c.Request.Context(), clients.CreateInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Company:    req.Company,
		Status:     req.Status,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		abortClientErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h Handlers) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	row, err := h.Clients.Update(c.Request.Context(), c.Param("id"), clients.UpdateInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Company:    req.Company,
		Status:     req.Status,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		abortClientErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h Handlers) DeleteClient(c *gin.Context) {
	if err := h.Clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortClientErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortClientErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, clients.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "client not found"})
	case errors.Is(err, clients.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "client operation failed"})
	}
}

// --- Calls ---

func (h Handlers) ListCalls(c *gin.Context) {
	f := calls.ListFilter{
		ClientID:  c.Query("client_id"),
		ServiceID: c.Query("service_id"),
	}
	if v := c.Query("outcome"); v != "" {
		if !calls.ValidOutcome(v) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid outcome filter"})
			return
		}
		f.Outcome = calls.Outcome(v)
	}
	var err error
	if f.From, f.To, err = parseRange(c); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, listErr := h.Calls.List(c.Request.Context(), f)
	if listErr != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": rows})
}

func (h Handlers) GetCall(c *gin.Context) {
	row, err := h.Calls.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, calls.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "call not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call lookup failed"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// --- Services catalog ---

type serviceRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PricePerMinute float64 `json:"price_per_minute"`
	PricePerCall   float64 `json:"price_per_call"`
	Active         bool    `json:"active"`
}

func (h Handlers) ListServices(c *gin.Context) {
	rows, err := h.Services.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "service listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": rows})
}

func (h Handlers) GetService(c *gin.Context) {
	row, err := h.Services.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h Handlers) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	row, err := h.Services.Create(c.Request.Context(), services.Input(req))
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h Handlers) UpdateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	row, err := h.Services.Update(c.Request.Context(), c.Param("id"), services.Input(req))
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h Handlers) DeleteService(c *gin.Context) {
	if err := h.Services.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortServiceErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) EstimateServiceCost(c *gin.Context) {
	seconds, err := strconv.Atoi(c.DefaultQuery("duration_seconds", "0"))
	if err != nil || seconds < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "duration_seconds must be a non-negative integer"})
		return
	}
	est, err := h.Services.EstimateCallCost(c.Request.Context(), c.Param("id"), seconds)
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func abortServiceErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "service not found"})
	case errors.Is(err, services.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "service operation failed"})
	}
}

// --- Analytics ---

func (h Handlers) AnalyticsSummary(c *gin.Context) {
	r, ok := analyticsRange(c)
	if !ok {
		return
	}
	out, err := h.Analytics.CallsSummary(c.Request.Context(), r)
	if err != nil {
		abortAnalyticsErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) AnalyticsServices(c *gin.Context) {
	r, ok := analyticsRange(c)
	if !ok {
		return
	}
	out, err := h.Analytics.ServiceBreakdown(c.Request.Context(), r)
	if err != nil {
		abortAnalyticsErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}

func (h Handlers) AnalyticsDaily(c *gin.Context) {
	r, ok := analyticsRange(c)
	if !ok {
		return
	}
	out, err := h.Analytics.DailyVolume(c.Request.Context(), r)
	if err != nil {
		abortAnalyticsErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": out})
}

func (h Handlers) AnalyticsClients(c *gin.Context) {
	out, err := h.Analytics.ClientStatus(c.Request.Context())
	if err != nil {
		abortAnalyticsErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func analyticsRange(c *gin.Context) (analytics.TimeRange, bool) {
	from, to, err := parseRange(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return analytics.TimeRange{}, false
	}
	return analytics.TimeRange{From: from, To: to}, true
}

func abortAnalyticsErr(c *gin.Context, err error) {
	if errors.Is(err, analytics.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from and to must form a valid range"})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "analytics query failed"})
}

// --- Webhook records ---

func (h Handlers) ListPendingWebhooks(c *gin.Context) {
	rows, err := h.Webhooks.ListPending(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "webhook listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": rows})
}

func (h Handlers) ListWebhookHistory(c *gin.Context) {
	rows, err := h.Webhooks.History(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "webhook listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": rows})
}

// ProcessWebhook replays a stored webhook record through the pipeline.
func (h Handlers) ProcessWebhook(c *gin.Context) {
	res, err := h.Webhooks.Process(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "webhook record not found"})
		case errors.Is(err, webhook.ErrAlreadyProcessed):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "webhook already processed"})
		case errors.Is(err, webhook.ErrNormalization):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// parseRange reads optional from/to query params as RFC 3339 timestamps.
func parseRange(c *gin.Context) (from, to time.Time, err error) {
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be RFC 3339")
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be RFC 3339")
		}
	}
	return from, to, nil
}
