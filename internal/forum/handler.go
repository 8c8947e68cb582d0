package forum

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/dto"
	"openclass/lms-backend/internal/middleware"
	"openclass/lms-backend/internal/response"
)

type ForumHandler struct {
	service *ForumService
}

func NewForumHandler(db *gorm.DB) *ForumHandler {
	return &ForumHandler{service: NewForumService(NewForumRepository(db))}
}

// List handles GET /forum/posts, with an optional course_id query filter.
func (h *ForumHandler) List(c *gin.Context) {
	var courseID uint
	if raw := c.Query("course_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.ParseError),
				response.WithErrorMessage("invalid course_id parameter"),
			))
			return
		}
		courseID = uint(parsed)
	}

	posts, bizErr := h.service.ListPosts(courseID)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, posts)
}

// CreatePost handles POST /forum/posts.
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	post, bizErr := h.service.CreatePost(middleware.CurrentIdentity(c), req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.CreatedResponse(c, post)
}

// CreateReply handles POST /forum/posts/:id/replies.
func (h *ForumHandler) CreateReply(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	reply, bizErr := h.service.CreateReply(middleware.CurrentIdentity(c), postID, req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.CreatedResponse(c, reply)
}

// DeletePost handles DELETE /forum/posts/:id.
func (h *ForumHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if bizErr := h.service.DeletePost(middleware.CurrentIdentity(c), postID); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "post deleted successfully"})
}

// DeleteReply handles DELETE /forum/replies/:id.
func (h *ForumHandler) DeleteReply(c *gin.Context) {
	replyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if bizErr := h.service.DeleteReply(middleware.CurrentIdentity(c), replyID); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "reply deleted successfully"})
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
