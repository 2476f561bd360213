package webhook

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler exposes the public ingestion endpoint. It is deliberately open:
// external automation systems post here, so CORS allows all origins and
// there is no bearer auth (unlike the /v1 dashboard API).
type Handler struct {
	Svc *Service
}

const maxBodyBytes = 1 << 20 // 1 MiB

// Register mounts the endpoint. Non-POST methods are answered by the
// router's method-not-allowed handler (see MethodNotAllowed).
func (h Handler) Register(r *gin.Engine) {
	r.POST("/webhooks", CORS(), h.handleInbound)
	r.OPTIONS("/webhooks", CORS(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

// CORS sets the permissive headers every webhook response carries,
// preflight included.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Next()
	}
}

// MethodNotAllowed answers requests with a known path but wrong method.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}

func (h Handler) handleInbound(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	res, err := h.Svc.Ingest(c.Request.Context(), body)
	if err != nil {
		status, payload := errorResponse(err)
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusOK, successResponse(res))
}

func successResponse(res Result) gin.H {
	switch res.Kind {
	case KindClient:
		return gin.H{
			"success":    true,
			"message":    "Client data processed successfully",
			"client_id":  res.ClientID,
			"webhook_id": res.WebhookID,
		}
	default:
		return gin.H{
			"success":    true,
			"message":    "Call data processed successfully",
			"call_id":    res.CallID,
			"webhook_id": res.WebhookID,
		}
	}
}

// errorResponse maps the pipeline error taxonomy onto the wire contract.
// The body strings below are consumed by external integrations; keep them
// stable.
func errorResponse(err error) (int, gin.H) {
	var missing *MissingFieldsError
	var badEnum *InvalidEnumError
	var unsupported *UnsupportedKindError
	var persistence *PersistenceError

	switch {
	case errors.Is(err, ErrMalformedPayload):
		return http.StatusBadRequest, gin.H{"error": "Invalid payload: type and data are required"}

	case errors.As(err, &missing):
		return http.StatusBadRequest, gin.H{"error": "Missing required fields: " + strings.Join(missing.Fields, ", ")}

	case errors.As(err, &badEnum):
		return http.StatusBadRequest, gin.H{"error": "Invalid result. Must be one of: success, failed, no_answer, busy"}

	case errors.As(err, &unsupported):
		return http.StatusBadRequest, gin.H{"error": "Unsupported webhook type: " + unsupported.Kind}

	case errors.Is(err, ErrNormalization):
		// The audit record exists and stays pending for retry.
		return http.StatusBadRequest, gin.H{"error": err.Error()}

	case errors.As(err, &persistence):
		return http.StatusInternalServerError, gin.H{
			"error":   "Failed to " + persistence.Op,
			"details": persistence.Err.Error(),
		}

	default:
		return http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()}
	}
}
