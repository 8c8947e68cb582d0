package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/dto"
	"openclass/lms-backend/internal/middleware"
)

type AuthHandler struct {
	service *AuthService
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{service: NewAuthService(db)}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, bizErr := h.service.Register(req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.CreatedResponse(c, gin.H{
		"message": "user registered successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, bizErr := h.service.Login(req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.SuccessResponse(c, gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	account, bizErr := h.service.Profile(identity.UserID)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.SuccessResponse(c, account)
}
