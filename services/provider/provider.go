package provider

import (
	"context"
	"fmt"
	"time"

	providerRepo "mindwell/database/repository/provider"
	"mindwell/models"
	"mindwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// ProviderService defines account operations for psychiatrists.
type ProviderService interface {
	Register(ctx context.Context, reg models.ProviderRegistration) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetAll(ctx context.Context) ([]models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

// Register creates a psychiatrist account with an empty availability set.
func (s *DefaultProviderService) Register(ctx context.Context, reg models.ProviderRegistration) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing provider: %w", err)
	}
	if existing != nil {
		return nil, &utils.ConflictError{Message: "an account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	p := &models.Provider{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hash),
		Specialty:    reg.Specialty,
		Bio:          reg.Bio,
		Availability: []models.Slot{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return s.issueToken(ctx, p)
}

// Authenticate verifies credentials and issues a fresh auth token.
func (s *DefaultProviderService) Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	p, err := s.Repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch provider", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if p == nil {
		return nil, &utils.ForbiddenError{Message: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, &utils.ForbiddenError{Message: "invalid email or password"}
	}
	return s.issueToken(ctx, p)
}

func (s *DefaultProviderService) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if p == nil {
		return nil, &utils.NotFoundError{Message: "provider not found"}
	}
	return p, nil
}

func (s *DefaultProviderService) GetAll(ctx context.Context) ([]models.Provider, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultProviderService) issueToken(ctx context.Context, p *models.Provider) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(p.ID, models.RolePsychiatrist, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, p.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}
	return &models.AuthResponse{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  models.RolePsychiatrist,
		Token: token,
	}, nil
}
