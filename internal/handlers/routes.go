package handlers

import (
	"github.com/gofiber/fiber/v2"

	"imobcrm/internal/config/di"
	"imobcrm/internal/shared/middleware"
)

// RegisterRoutes wires all HTTP routes to their handlers.
func RegisterRoutes(app *fiber.App, container *di.Container) {
	authHandler := NewAuthHandler(container.AuthService)
	leadHandler := NewLeadHandler(container.LeadService)
	propertyHandler := NewPropertyHandler(container.PropertyService, container.SchemaValidator)
	publishingHandler := NewPublishingHandler(container.PublishingService, container.PropertyService)
	dashboardHandler := NewDashboardHandler(container.DashboardService)

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	authenticated := middleware.AuthMiddleware(container.AuthService)

	me := app.Group("/auth/me", authenticated)
	me.Get("/", authHandler.Me)
	me.Patch("/", authHandler.UpdateMe)

	leads := app.Group("/leads", authenticated)
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/:id", leadHandler.Get)
	leads.Patch("/:id", leadHandler.Update)
	leads.Patch("/:id/status", leadHandler.UpdateStatus)
	leads.Delete("/:id", leadHandler.Delete)

	properties := app.Group("/properties", authenticated)
	properties.Get("/", propertyHandler.List)
	properties.Post("/", propertyHandler.Create)
	properties.Get("/:id", propertyHandler.Get)
	properties.Put("/:id", propertyHandler.Update)
	properties.Patch("/:id/status", propertyHandler.UpdateStatus)
	properties.Delete("/:id", propertyHandler.Delete)
	properties.Post("/:id/photos", propertyHandler.UploadPhoto)

	properties.Get("/:id/publish/validate", publishingHandler.Validate)
	properties.Post("/:id/publish", publishingHandler.Publish)
	properties.Get("/:id/publishing-results", publishingHandler.Results)

	app.Get("/dashboard/stats", authenticated, dashboardHandler.Stats)
}
