package course

import (
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/dto"
	"openclass/lms-backend/internal/middleware"
	"openclass/lms-backend/internal/response"
	"openclass/lms-backend/internal/upload"
)

type CourseHandler struct {
	service *CourseService
}

func NewCourseHandler(db *gorm.DB, store *upload.Store) *CourseHandler {
	return &CourseHandler{service: NewCourseService(NewCourseRepository(db), store)}
}

// List handles GET /courses.
func (h *CourseHandler) List(c *gin.Context) {
	courses, bizErr := h.service.ListCourses()
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, courses)
}

// Get handles GET /courses/:id.
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, bizErr := h.service.GetCourse(id)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, detail)
}

// Create handles POST /courses.
func (h *CourseHandler) Create(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	crs, bizErr := h.service.CreateCourse(middleware.CurrentIdentity(c), req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.CreatedResponse(c, crs)
}

// Update handles PUT /courses/:id.
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	crs, bizErr := h.service.UpdateCourse(middleware.CurrentIdentity(c), id, req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, crs)
}

// Delete handles DELETE /courses/:id.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if bizErr := h.service.DeleteCourse(middleware.CurrentIdentity(c), id); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "course deleted successfully"})
}

// AddContent handles POST /courses/:id/content (multipart form, file
// optional).
func (h *CourseHandler) AddContent(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	content, bizErr := h.service.AddContent(middleware.CurrentIdentity(c), courseID, req, formFile(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.CreatedResponse(c, content)
}

// UpdateContent handles PUT /courses/:id/content/:contentId.
func (h *CourseHandler) UpdateContent(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}

	var req ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	content, bizErr := h.service.UpdateContent(middleware.CurrentIdentity(c), courseID, contentID, req, formFile(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, content)
}

// DeleteContent handles DELETE /courses/:id/content/:contentId.
func (h *CourseHandler) DeleteContent(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}

	if bizErr := h.service.DeleteContent(middleware.CurrentIdentity(c), courseID, contentID); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "content deleted successfully"})
}

// Download handles GET /courses/:id/content/:contentId/download, streaming
// the stored file under its original name.
func (h *CourseHandler) Download(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}

	info, bizErr := h.service.Download(courseID, contentID)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	c.FileAttachment(info.Path, info.FileName)
}

// formFile returns the optional "file" part of a multipart request, or nil
// when the request carries none.
func formFile(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return fh
}

// pathID parses a numeric path parameter, answering 400 itself on garbage.
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
