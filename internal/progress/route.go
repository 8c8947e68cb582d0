package progress

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	h := NewProgressHandler(db)

	r.POST("/courses/:id/content/:contentId/complete", middleware.JWTAuth(), h.MarkComplete)
	r.GET("/progress", middleware.JWTAuth(), h.Overview)
}
