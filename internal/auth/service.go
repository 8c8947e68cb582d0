package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/pkg"
	"openclass/lms-backend/internal/response"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates an account and signs a token for it. The role is fixed
// here and never changes afterwards.
func (s *AuthService) Register(req RegisterRequest) (*AuthResult, *response.BusinessError) {
	if !user.ValidRole(req.Role) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidInput),
			response.WithErrorMessage("invalid role specified"),
		)
	}

	var existing user.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("user already exists"),
		)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error registering user"),
			response.WithError(err),
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error registering user"),
			response.WithError(err),
		)
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}
	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error registering user"),
			response.WithError(err),
		)
	}

	token, err := pkg.GenerateAccessToken(newUser.ID, newUser.Name, newUser.Email, newUser.Role)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error generating token"),
			response.WithError(err),
		)
	}

	return &AuthResult{User: &newUser, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password answer
// identically so accounts cannot be enumerated.
func (s *AuthService) Login(req LoginRequest) (*AuthResult, *response.BusinessError) {
	invalidCredentials := func() *response.BusinessError {
		return response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("invalid credentials"),
		)
	}

	var account user.User
	if err := s.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error logging in"),
			response.WithError(err),
		)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := pkg.GenerateAccessToken(account.ID, account.Name, account.Email, account.Role)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error generating token"),
			response.WithError(err),
		)
	}

	return &AuthResult{User: &account, Token: token}, nil
}

// Profile re-fetches the live user row; name or role may have changed since
// the token was issued.
func (s *AuthService) Profile(userID uint) (*user.User, *response.BusinessError) {
	var account user.User
	if err := s.db.First(&account, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("user not found"),
			)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("error fetching user profile"),
			response.WithError(err),
		)
	}
	return &account, nil
}
