package model

import (
	"gorm.io/gorm"

	"openclass/lms-backend/internal/model/course"
	"openclass/lms-backend/internal/model/forum"
	"openclass/lms-backend/internal/model/progress"
	"openclass/lms-backend/internal/model/quiz"
	"openclass/lms-backend/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&course.Course{},
		&course.CourseContent{},
		&quiz.Quiz{},
		&quiz.QuizQuestion{},
		&quiz.QuizSubmission{},
		&forum.ForumPost{},
		&forum.ForumReply{},
		&progress.ContentCompletion{},
	)
}
