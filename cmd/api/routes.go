package main

import (
	"callboard/internal/httpapi"
	"callboard/internal/rbac"
	"callboard/internal/webhook"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(webhook.MethodNotAllowed())

	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Provider webhooks (public): the ingestion endpoint authenticates
	// nothing by design, callers are external systems.
	webhook.Handler{Svc: h.Webhooks}.Register(r)

	// AUTH routes (token issuance). Public: callers do not have a token yet.
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		// CLIENTS routes
		clientsGroup := v1.Group("/clients")
		clientsGroup.Use(rbac.RequireAnyRole(rbac.RoleOperator, rbac.RoleViewer))
		{
			clientsGroup.GET("", h.ListClients)
			clientsGroup.GET("/:id", h.GetClient)
		}
		clientsWrite := v1.Group("/clients")
		clientsWrite.Use(rbac.RequireAnyRole(rbac.RoleOperator))
		{
			clientsWrite.POST("", h.CreateClient)
			clientsWrite.PUT("/:id", h.UpdateClient)
		}
		// deleting a client discards history attribution; admin only
		v1.DELETE("/clients/:id", rbac.RequireAnyRole(rbac.RoleAdmin), h.DeleteClient)

		// CALLS routes (read-only; rows come from the pipeline)
		callsGroup := v1.Group("/calls")
		callsGroup.Use(rbac.RequireAnyRole(rbac.RoleOperator, rbac.RoleViewer))
		{
			callsGroup.GET("", h.ListCalls)
			callsGroup.GET("/:id", h.GetCall)
		}

		// SERVICES catalog routes
		servicesGroup := v1.Group("/services")
		servicesGroup.Use(rbac.RequireAnyRole(rbac.RoleOperator, rbac.RoleViewer))
		{
			servicesGroup.GET("", h.ListServices)
			servicesGroup.GET("/:id", h.GetService)
			servicesGroup.GET("/:id/estimate", h.EstimateServiceCost)
		}
		servicesWrite := v1.Group("/services")
		servicesWrite.Use(rbac.RequireAnyRole(rbac.RoleOperator))
		{
			servicesWrite.POST("", h.CreateService)
			servicesWrite.PUT("/:id", h.UpdateService)
			servicesWrite.DELETE("/:id", h.DeleteService)
		}

		// ANALYTICS routes
		analyticsGroup := v1.Group("/analytics")
		analyticsGroup.Use(rbac.RequireAnyRole(rbac.RoleOperator, rbac.RoleViewer))
		{
			analyticsGroup.GET("/summary", h.AnalyticsSummary)
			analyticsGroup.GET("/services", h.AnalyticsServices)
			analyticsGroup.GET("/daily", h.AnalyticsDaily)
			analyticsGroup.GET("/clients", h.AnalyticsClients)
		}

		// WEBHOOK record routes (audit trail inspection and replay)
		hooks := v1.Group("/webhooks")
		hooks.Use(rbac.RequireAnyRole(rbac.RoleOperator))
		{
			hooks.GET("/pending", h.ListPendingWebhooks)
			hooks.GET("/history", h.ListWebhookHistory)
			hooks.POST("/:id/process", h.ProcessWebhook)
		}
	}
}
