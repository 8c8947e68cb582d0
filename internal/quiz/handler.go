package quiz

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/dto"
	"openclass/lms-backend/internal/middleware"
	"openclass/lms-backend/internal/response"
)

type QuizHandler struct {
	service *QuizService
}

func NewQuizHandler(db *gorm.DB) *QuizHandler {
	return &QuizHandler{service: NewQuizService(NewQuizRepository(db))}
}

// Get handles GET /quiz/:id.
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, bizErr := h.service.GetQuiz(id)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, view)
}

// Create handles POST /courses/:id/quizzes.
func (h *QuizHandler) Create(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	view, bizErr := h.service.CreateQuiz(middleware.CurrentIdentity(c), courseID, req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.CreatedResponse(c, view)
}

// Submit handles POST /quiz/:id/submit.
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, bizErr := h.service.SubmitQuiz(middleware.CurrentIdentity(c), id, req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Submissions handles GET /quiz/:id/submissions.
func (h *QuizHandler) Submissions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	subs, bizErr := h.service.Submissions(middleware.CurrentIdentity(c), id)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, subs)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("invalid "+name+" parameter"),
		))
		return 0, false
	}
	return uint(id), true
}
