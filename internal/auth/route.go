package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	h := NewAuthHandler(db)

	g := r.Group("/auth")
	{
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
		g.GET("/profile", middleware.JWTAuth(), h.Profile)
	}
}
