package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"botboard/internal/domain/user"
	"botboard/pkg/auth"
	"botboard/pkg/errors"
	"botboard/pkg/logger"
)

var (
	// ErrInvalidCredentials is returned when email/password don't match
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyExists is returned when registering an existing email
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service handles session lifecycle: register, login, token validation.
// The session context is explicit: populated at login, cleared on sign-out.
type Service struct {
	userRepo   user.Repository
	jwtService *auth.JWTService
	log        *logger.Logger
}

// NewService creates a new auth service
func NewService(userRepo user.Repository, jwtService *auth.JWTService) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		log:        logger.Get().With("service", "auth"),
	}
}

// Credentials contains email/password input from the auth screen
type Credentials struct {
	Email    string
	Password string
}

// Session contains the auth result handed to the cookie layer
type Session struct {
	Token string
	User  *user.User
}

// Register creates a new account and opens a session
func (s *Service) Register(ctx context.Context, input Credentials) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	usr := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, usr); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := s.jwtService.GenerateToken(usr.ID, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	s.log.Infow("User registered", "user_id", usr.ID, "email", email)

	return &Session{Token: token, User: usr}, nil
}

// Login verifies credentials and opens a session
func (s *Service) Login(ctx context.Context, input Credentials) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.ErrInvalidInput
	}

	usr, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	s.log.Infow("User logged in", "user_id", usr.ID)

	return &Session{Token: token, User: usr}, nil
}

// ValidateToken resolves a session token into its user
func (s *Service) ValidateToken(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	usr, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for token")
	}

	return usr, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
