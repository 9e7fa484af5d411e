package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"github.com/Eursukkul/hotel-booking-service/pkg/jwtutil"
	"github.com/Eursukkul/hotel-booking-service/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const RegisteredMessage = "User registered successfully. Please log in."

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

type TokenPair struct {
	Access  string
	Refresh string
}

// TokenIssuer is satisfied by *jwtutil.Manager.
type TokenIssuer interface {
	GenerateAccess(userID uint, username string) (string, error)
	GenerateRefresh(userID uint, username string) (string, error)
	Validate(tokenString, expectedType string) (*jwtutil.UserClaims, error)
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	metrics    *metrics.Metrics
	log        *zap.Logger
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, m *metrics.Metrics, log *zap.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		metrics:    m,
		log:        log,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func validateRegistration(in RegisterInput) error {
	verr := &ValidationError{}

	if in.Username == "" {
		verr.add("username", "This field is required.")
	} else if len(in.Username) > 150 {
		verr.add("username", "Ensure this field has no more than 150 characters.")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			verr.add("email", "Enter a valid email address.")
		}
	}
	if in.Password == "" {
		verr.add("password", "This field is required.")
	}
	if in.Password2 == "" {
		verr.add("password2", "This field is required.")
	}
	if in.Password != "" && in.Password2 != "" && in.Password != in.Password2 {
		verr.add("password", "Password fields didn't match.")
	}
	// bcrypt rejects inputs longer than 72 bytes
	if len(in.Password) > 72 {
		verr.add("password", "Ensure this field has no more than 72 characters.")
	}

	return verr.orNil()
}

// Register creates a user with a bcrypt-hashed password. It issues no token.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateRegistration(in); err != nil {
		s.metrics.RecordRegistration("invalid")
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		s.metrics.RecordRegistration("invalid")
		return nil, newValidationError("username", "A user with that username already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newValidationError("username", "A user with that username already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.RecordRegistration("created")
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.RecordAuth("failed")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordAuth("failed")
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccess(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAuth("success")
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Validate(refreshToken, jwtutil.TokenRefresh)
	if err != nil {
		s.metrics.RecordAuth("refresh_failed")
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	access, err := s.tokens.GenerateAccess(claims.UserID, claims.Username)
	if err != nil {
		return "", err
	}
	s.metrics.RecordAuth("refreshed")
	return access, nil
}
