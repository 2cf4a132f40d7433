package user

import (
	"context"
	"fmt"
	"time"

	userRepo "mindwell/database/repository/user"
	"mindwell/models"
	"mindwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// UserService defines account operations for students and admins.
type UserService interface {
	Register(ctx context.Context, reg models.UserRegistration) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a student account and issues an auth token.
func (s *DefaultUserService) Register(ctx context.Context, reg models.UserRegistration) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, &utils.ConflictError{Message: "an account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(ctx, u)
}

// Authenticate verifies credentials and issues a fresh auth token.
func (s *DefaultUserService) Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if u == nil {
		return nil, &utils.ForbiddenError{Message: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, &utils.ForbiddenError{Message: "invalid email or password"}
	}
	return s.issueToken(ctx, u)
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, &utils.NotFoundError{Message: "user not found"}
	}
	return u, nil
}

func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, u.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}
	return &models.AuthResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}, nil
}
