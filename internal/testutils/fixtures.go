package testutils

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	coursemodel "openclass/lms-backend/internal/model/course"
	forummodel "openclass/lms-backend/internal/model/forum"
	quizmodel "openclass/lms-backend/internal/model/quiz"
	"openclass/lms-backend/internal/model/user"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "password123"

type UserOption func(*user.User)

func WithRole(role string) UserOption {
	return func(u *user.User) { u.Role = role }
}

func WithEmail(email string) UserOption {
	return func(u *user.User) { u.Email = email }
}

// CreateTestUser inserts a student user with a unique email. Options
// override the defaults.
func CreateTestUser(t *testing.T, db *gorm.DB, opts ...UserOption) *user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash fixture password: %v", err)
	}

	u := &user.User{
		Name:         "Test User",
		Email:        "user-" + uuid.NewString() + "@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleStudent,
	}
	for _, opt := range opts {
		opt(u)
	}

	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create fixture user: %v", err)
	}
	return u
}

type CourseOption func(*coursemodel.Course)

func WithTitle(title string) CourseOption {
	return func(c *coursemodel.Course) { c.Title = title }
}

// CreateTestCourse inserts a course owned by the given teacher.
func CreateTestCourse(t *testing.T, db *gorm.DB, teacherID uint, opts ...CourseOption) *coursemodel.Course {
	t.Helper()

	crs := &coursemodel.Course{
		Title:       "Course " + uuid.NewString()[:8],
		Description: "fixture course",
		TeacherID:   &teacherID,
	}
	for _, opt := range opts {
		opt(crs)
	}

	if err := db.Create(crs).Error; err != nil {
		t.Fatalf("create fixture course: %v", err)
	}
	return crs
}

// CreateTestContent inserts a text content row for a course.
func CreateTestContent(t *testing.T, db *gorm.DB, courseID uint) *coursemodel.CourseContent {
	t.Helper()

	content := &coursemodel.CourseContent{
		CourseID:    courseID,
		Title:       "Content " + uuid.NewString()[:8],
		ContentType: coursemodel.ContentTypeDocument,
		Content:     "fixture content body",
	}
	if err := db.Create(content).Error; err != nil {
		t.Fatalf("create fixture content: %v", err)
	}
	return content
}

// CreateTestQuiz inserts a quiz with the given correct answers, one
// two-option question per entry.
func CreateTestQuiz(t *testing.T, db *gorm.DB, courseID uint, correctAnswers ...int) *quizmodel.Quiz {
	t.Helper()

	q := &quizmodel.Quiz{
		CourseID: courseID,
		Title:    "Quiz " + uuid.NewString()[:8],
	}
	for _, answer := range correctAnswers {
		q.Questions = append(q.Questions, quizmodel.QuizQuestion{
			Question:      "pick one",
			Options:       datatypes.NewJSONSlice([]string{"first", "second"}),
			CorrectAnswer: answer,
		})
	}

	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create fixture quiz: %v", err)
	}
	return q
}

// CreateTestPost inserts a forum post.
func CreateTestPost(t *testing.T, db *gorm.DB, courseID, userID uint) *forummodel.ForumPost {
	t.Helper()

	post := &forummodel.ForumPost{
		CourseID: courseID,
		UserID:   userID,
		Title:    "Post " + uuid.NewString()[:8],
		Content:  "fixture post body",
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create fixture post: %v", err)
	}
	return post
}
