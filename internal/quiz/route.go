package quiz

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
	"openclass/lms-backend/internal/model/user"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	h := NewQuizHandler(db)

	g := r.Group("/quiz", middleware.JWTAuth())
	{
		g.GET("/:id", h.Get)
		g.POST("/:id/submit", h.Submit)
		g.GET("/:id/submissions", h.Submissions)
	}

	// Quiz creation lives under the owning course.
	r.POST("/courses/:id/quizzes",
		middleware.JWTAuth(),
		middleware.RequireRoles(user.RoleTeacher, user.RoleAdmin),
		h.Create)
}
