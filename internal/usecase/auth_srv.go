package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"
	"movie-favorites/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on the session created at signup/signin.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	SignUp(ctx context.Context, req *request.CredentialsRequest, client ClientInfo) (*response.AuthResponse, error)
	SignIn(ctx context.Context, req *request.CredentialsRequest, client ClientInfo) (*response.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// dummyPasswordHash is compared against when the email is unknown, so
// signin takes about as long whether or not the account exists.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, _ := utils.HashPassword("movie-favorites-unknown-user")
	return hash
})

type authService struct {
	repo          *repository.Repository // grouping userRepo & sessionRepo
	ttl           time.Duration
	log           *zap.Logger
	now           func() time.Time
	checkPassword func(plain, hash string) bool
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	ttl := time.Duration(config.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		repo:          repo,
		ttl:           ttl,
		log:           log.With(zap.String("service", "auth")),
		now:           time.Now,
		checkPassword: utils.CheckPasswordHash,
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.CredentialsRequest, client ClientInfo) (*response.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Signup validation failed", zap.Error(err))
		return nil, err
	}
	email := req.Email

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrStore(err)
	}
	if existing != nil {
		return nil, utils.ErrConflict("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, utils.ErrConflict("email already registered")
		}
		return nil, utils.ErrStore(err)
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, utils.ErrStore(err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) SignIn(ctx context.Context, req *request.CredentialsRequest, client ClientInfo) (*response.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Signin validation failed", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrStore(err)
	}

	if user == nil {
		s.checkPassword(req.Password, dummyPasswordHash())
	}
	if user == nil || !s.checkPassword(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", req.Email))
		return nil, utils.ErrUnauthorized("invalid credentials")
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, utils.ErrStore(err)
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return utils.ErrUnauthorized("invalid token")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return utils.ErrUnauthorized("invalid or expired session")
		}
		return utils.ErrStore(err)
	}

	s.log.Info("Session revoked")
	return nil
}

// Authenticate resolves a bearer token to the owning user's id.
func (s *authService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, utils.ErrUnauthorized("invalid token")
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID)
	if err != nil {
		return uuid.Nil, utils.ErrStore(err)
	}
	if session == nil {
		return uuid.Nil, utils.ErrUnauthorized("invalid or expired session")
	}

	return session.UserID, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
