package course

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/upload"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, store *upload.Store) {
	h := NewCourseHandler(db, store)

	g := r.Group("/courses", middleware.JWTAuth())
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.GET("/:id/content/:contentId/download", h.Download)

		manage := g.Group("", middleware.RequireRoles(user.RoleTeacher, user.RoleAdmin))
		{
			manage.POST("", h.Create)
			manage.PUT("/:id", h.Update)
			manage.DELETE("/:id", h.Delete)
			manage.POST("/:id/content", h.AddContent)
			manage.PUT("/:id/content/:contentId", h.UpdateContent)
			manage.DELETE("/:id/content/:contentId", h.DeleteContent)
		}
	}
}
