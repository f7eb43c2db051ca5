package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vcardqr/internal/entity"
	"vcardqr/internal/repo"
	"vcardqr/pkg/logger"
	"vcardqr/pkg/types/errs"
)

const (
	defaultAdminUsername = "admin"
)

type tokenClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type UserUseCase struct {
	userRepo repo.UserRepo

	jwtSecret     []byte
	tokenTTL      time.Duration
	adminPassword string

	logger logger.Interface
}

func New(
	userRepo repo.UserRepo,
	jwtSecret string,
	tokenTTL time.Duration,
	adminPassword string,
	l logger.Interface,
) *UserUseCase {
	return &UserUseCase{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
		adminPassword: adminPassword,
		logger:        l,
	}
}

// EnsureDefaultAdmin bootstraps the admin account when the users table is
// empty, so a fresh deployment is reachable.
func (uc *UserUseCase) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("UserUseCase - EnsureDefaultAdmin - uc.userRepo.Count: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = uc.CreateUser(ctx, defaultAdminUsername, uc.adminPassword, true)
	if err != nil {
		return fmt.Errorf("UserUseCase - EnsureDefaultAdmin - uc.CreateUser: %w", err)
	}

	uc.logger.Warn("created default admin account, change its password")

	return nil
}

func (uc *UserUseCase) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return "", fmt.Errorf("UserUseCase - Authenticate: %w", errs.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("UserUseCase - Authenticate - uc.userRepo.GetByUsername: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", fmt.Errorf("UserUseCase - Authenticate: %w", errs.ErrInvalidCredentials)
	}

	now := time.Now()
	claims := tokenClaims{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("UserUseCase - Authenticate - token.SignedString: %w", err)
	}

	return token, nil
}

func (uc *UserUseCase) ParseToken(token string) (*entity.TokenClaims, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - ParseToken - jwt.ParseWithClaims: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("UserUseCase - ParseToken: %w", errs.ErrInvalidCredentials)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - ParseToken - uuid.Parse: %w", err)
	}

	return &entity.TokenClaims{
		UserID:   userID,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - GetByID - uc.userRepo.GetByID: %w", err)
	}

	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("UserUseCase - ChangePassword - uc.userRepo.GetByID: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return fmt.Errorf("UserUseCase - ChangePassword: %w", errs.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("UserUseCase - ChangePassword - bcrypt.GenerateFromPassword: %w", err)
	}

	err = uc.userRepo.UpdatePassword(ctx, id, string(hash))
	if err != nil {
		return fmt.Errorf("UserUseCase - ChangePassword - uc.userRepo.UpdatePassword: %w", err)
	}

	return nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - ListUsers - uc.userRepo.List: %w", err)
	}

	return users, nil
}

func (uc *UserUseCase) CreateUser(ctx context.Context, username, password string, isAdmin bool) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - CreateUser - bcrypt.GenerateFromPassword: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - CreateUser - uc.userRepo.Create: %w", err)
	}

	return user, nil
}

func (uc *UserUseCase) UpdateUser(ctx context.Context, id uuid.UUID, username, password string, isAdmin bool) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("UserUseCase - UpdateUser - uc.userRepo.GetByID: %w", err)
	}

	user.Username = username
	user.IsAdmin = isAdmin
	user.UpdatedAt = time.Now()

	err = uc.userRepo.Update(ctx, user)
	if err != nil {
		return fmt.Errorf("UserUseCase - UpdateUser - uc.userRepo.Update: %w", err)
	}

	// optional password reset
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("UserUseCase - UpdateUser - bcrypt.GenerateFromPassword: %w", err)
		}

		err = uc.userRepo.UpdatePassword(ctx, id, string(hash))
		if err != nil {
			return fmt.Errorf("UserUseCase - UpdateUser - uc.userRepo.UpdatePassword: %w", err)
		}
	}

	return nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fmt.Errorf("UserUseCase - DeleteUser: %w", errs.ErrSelfDelete)
	}

	err := uc.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("UserUseCase - DeleteUser - uc.userRepo.Delete: %w", err)
	}

	return nil
}
