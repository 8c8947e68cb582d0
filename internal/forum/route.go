package forum

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	h := NewForumHandler(db)

	g := r.Group("/forum", middleware.JWTAuth())
	{
		g.GET("/posts", h.List)
		g.POST("/posts", h.CreatePost)
		g.POST("/posts/:id/replies", h.CreateReply)
		g.DELETE("/posts/:id", h.DeletePost)
		g.DELETE("/replies/:id", h.DeleteReply)
	}
}
