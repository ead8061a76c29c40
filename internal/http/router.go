package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Yasser-Essafi/SRM/internal/http/middleware"
)

// NewRouter builds the gin engine with CORS, request IDs, and the full route
// table. The admin report routes sit behind the JWT auth middleware.
func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}))

	handler.Register(router, authMiddleware)
	return router
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/health", h.health)
	router.POST("/chat", h.chat)
	router.POST("/ocr/extract-contract", h.extractContract)
	router.POST("/contracts/status", h.contractStatus)

	admin := router.Group("/admin")
	admin.Use(authMiddleware)
	{
		admin.POST("/reports/export", h.exportReport)
		admin.POST("/reports/export/pdf", h.exportReportPDF)
	}
}
