package progress

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/dto"
	"openclass/lms-backend/internal/middleware"
	"openclass/lms-backend/internal/response"
)

type ProgressHandler struct {
	service *ProgressService
}

func NewProgressHandler(db *gorm.DB) *ProgressHandler {
	return &ProgressHandler{service: NewProgressService(NewProgressRepository(db))}
}

// MarkComplete handles POST /courses/:id/content/:contentId/complete.
func (h *ProgressHandler) MarkComplete(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}

	if bizErr := h.service.MarkComplete(middleware.CurrentIdentity(c), courseID, contentID); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "content marked complete"})
}

// Overview handles GET /progress.
func (h *ProgressHandler) Overview(c *gin.Context) {
	overview, bizErr := h.service.Overview(middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, overview)
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
