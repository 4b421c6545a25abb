package service

import (
	"errors"
	"strings"

	"go-stock-tracker/internal/apperror"
	"go-stock-tracker/internal/model"
	"go-stock-tracker/internal/repository"
	"go-stock-tracker/pkg/jwt"
	"go-stock-tracker/pkg/logger"
	"go-stock-tracker/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Register(username, email, password string) (*model.User, error)
	Login(username, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	log      *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, log *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (s *authService) Register(username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, apperror.InvalidInput("Username, email and password are required")
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Role:     model.RoleUser,
	}
	if err := validator.ValidateStruct(user); err != nil {
		return nil, apperror.InvalidInput(err.Error())
	}
	if err := user.SetPassword(password); err != nil {
		return nil, apperror.Storage(err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("Username or email already exists")
		}
		return nil, apperror.Storage(err)
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Rotate the token version so only the newest login stays valid.
	version := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, version); err != nil {
		return nil, apperror.Storage(err)
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.Email, user.Role, version)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Logout rotates the stored token version, which invalidates every token
// issued before the call.
func (s *authService) Logout(userID uuid.UUID) error {
	if err := s.userRepo.UpdateTokenVersion(userID, uuid.New().String()); err != nil {
		return apperror.Storage(err)
	}
	return nil
}
