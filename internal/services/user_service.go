package services

import (
	"context"
	"strings"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/auth"
	"dairy-backend/internal/cache"
	"dairy-backend/internal/models"
	"dairy-backend/internal/repositories"
)

// User roles
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type UserService struct {
	Repo *repositories.UserRepository
	JWT  *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwt *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWT: jwt}
}

// Login authenticates with email and password. Users with 2FA enabled get
// a short-lived temp token back instead of a session token; they finish
// with Verify2FA.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.InvalidInputf("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		// Uniform error so login does not leak which emails exist.
		return nil, apperrors.InvalidInputf("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperrors.InvalidInputf("invalid credentials")
	}

	// Redis shortcut skips bcrypt (~100ms) for repeat logins.
	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, apperrors.InvalidInputf("invalid credentials")
		}
		cache.CacheAuth(ctx, email, req.Password, user.ID)
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWT.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{Token: tempToken, Requires2FA: true}, nil
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// IssueToken finishes login for a user whose second factor already checked
// out.
func (s *UserService) IssueToken(ctx context.Context, userID int) (*models.AuthResponse, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.InvalidInputf("name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.InvalidInputf("password must be at least 8 characters")
	}
	if req.Role != RoleAdmin && req.Role != RoleOperator {
		return nil, apperrors.InvalidInputf("role must be admin or operator")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	if req.Role != "" && req.Role != RoleAdmin && req.Role != RoleOperator {
		return nil, apperrors.InvalidInputf("role must be admin or operator")
	}

	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword lets a user rotate their own password. The old cached
// credentials are dropped so the Redis login shortcut cannot resurrect them.
func (s *UserService) ChangePassword(ctx context.Context, id int, req *models.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return apperrors.InvalidInputf("password must be at least 8 characters")
	}

	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.InvalidInputf("current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	cache.InvalidateAuth(ctx, user.Email, req.CurrentPassword)
	return nil
}

func (s *UserService) ToggleActive(ctx context.Context, id int) error {
	return s.Repo.ToggleActive(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
