package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scentworks/scentworks-api/internal/domain/entity"
	"github.com/scentworks/scentworks-api/internal/domain/enum"
	"github.com/scentworks/scentworks-api/internal/domain/repository"
	"github.com/scentworks/scentworks-api/pkg/apperror"
	"github.com/scentworks/scentworks-api/pkg/oauth"
	"github.com/scentworks/scentworks-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	google     *oauth.GoogleProvider
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, google *oauth.GoogleProvider) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		google:     google,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Register creates a new operator account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperror.NewValidationError("Email and password are required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewValidationError("Password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An account with this email already exists")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Role:     enum.UserRoleOperator,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RefreshToken generates a new token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(user)
}

// GoogleAuthURL returns the Google consent page URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.google.Configured() {
		return "", apperror.NewBadRequestError("Google sign-in is not configured")
	}
	return s.google.AuthURL(state), nil
}

// GoogleLogin completes the Google OAuth code flow. A returning Google
// account signs into its linked user; a known email gets linked; anyone
// else gets a fresh operator account.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginOutput, error) {
	if !s.google.Configured() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	account, err := s.google.ExchangeAccount(ctx, code)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByGoogleID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(account.Email))
		if err != nil {
			return nil, err
		}
		if user != nil {
			user.GoogleID = &account.ID
			if user.Photo == nil && account.Picture != "" {
				photo := account.Picture
				user.Photo = &photo
			}
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	if user == nil {
		var photo *string
		if account.Picture != "" {
			p := account.Picture
			photo = &p
		}
		user = &entity.User{
			Name:     account.Name,
			Email:    strings.ToLower(account.Email),
			Role:     enum.UserRoleOperator,
			GoogleID: &account.ID,
			Photo:    photo,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

// GetProfile returns the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}
