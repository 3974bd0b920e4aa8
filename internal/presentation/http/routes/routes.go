// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/application/container"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/microsite-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Processed logo uploads are served straight off disk.
	r.Static("/media", container.MediaDir)

	templateHandlers := handlers.NewTemplateHandlers(container.TemplateService, container.Logger)
	builderHandlers := handlers.NewBuilderHandlers(container.BuilderService, container.FootprintService, container.Logger)
	footprintHandlers := handlers.NewFootprintHandlers(container.FootprintService, container.Logger)
	shareHandlers := handlers.NewShareHandlers(container.BuilderService, container.ShareBroadcaster, container.Logger)
	outboundHandlers := handlers.NewOutboundHandlers(container.BuilderService, container.OutboundService, container.Logger)
	mediaHandlers := handlers.NewMediaHandlers(container.ValidationService, container.Logger)
	previewHandlers := handlers.NewPreviewHandlers(container.PreviewService, container.Logger)

	session := middleware.SessionMiddleware(container.Sessions)

	api := r.Group("/api/v1")
	{
		api.GET("/templates", templateHandlers.ListTemplates)
		api.GET("/templates/:templateId", templateHandlers.GetTemplate)

		api.POST("/media/validate", mediaHandlers.ValidateURL)

		builder := api.Group("/builder/:templateId/:instanceId")
		builder.Use(session)
		{
			builder.GET("", builderHandlers.GetState)
			builder.POST("/sections/:sectionId", builderHandlers.SaveSection)
			builder.DELETE("/sections/:sectionId", builderHandlers.DeleteSection)
			builder.POST("/sections/:sectionId/restore", builderHandlers.RestoreSection)
			builder.POST("/site", builderHandlers.UpdateSite)
			builder.POST("/form", builderHandlers.UpdateForm)
			builder.POST("/reset", builderHandlers.Reset)

			builder.GET("/footprints", footprintHandlers.GetFootprints)
			builder.DELETE("/footprints", footprintHandlers.ClearFootprints)

			builder.GET("/share", shareHandlers.GetShareLink)
			builder.POST("/share/copied", shareHandlers.LinkCopied)
			builder.GET("/share/live", shareHandlers.Live)

			builder.POST("/build-request", outboundHandlers.SendBuildRequest)
			builder.POST("/whatsapp", outboundHandlers.WhatsAppShare)
		}
	}

	r.GET("/preview/:templateId/:payload", session, previewHandlers.Open)

	return r
}
