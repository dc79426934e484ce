package v1

import (
	"github.com/gin-gonic/gin"

	httpHandler "github.com/zennajjames/TheVillage/internal/pkg/messaging/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api
func RegisterRoutes(r *gin.Engine, deps httpHandler.Dependencies) {
	api := r.Group("/api")
	httpHandler.RegisterRoutes(api, deps)
}
