// Package route assembles the HTTP router.
package route

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/config"
	"openclass/lms-backend/internal/auth"
	"openclass/lms-backend/internal/course"
	"openclass/lms-backend/internal/forum"
	"openclass/lms-backend/internal/progress"
	"openclass/lms-backend/internal/quiz"
	"openclass/lms-backend/internal/upload"
)

// SetupRouter wires every feature package under /api.
func SetupRouter(db *gorm.DB) *gin.Engine {
	if config.Conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := upload.NewStore(config.Conf.Upload.Dir, config.Conf.Upload.MaxSize)

	api := r.Group("/api")
	{
		auth.RegisterRoutes(api, db)
		course.RegisterRoutes(api, db, store)
		quiz.RegisterRoutes(api, db)
		forum.RegisterRoutes(api, db)
		progress.RegisterRoutes(api, db)
	}

	return r
}
