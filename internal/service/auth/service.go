package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/fixtures"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
	branch.BranchRepository
	auth.RefreshTokenRepository
	jwt.Service
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, companyRepository company.CompanyRepository, branchRepository branch.BranchRepository, refreshTokenRepository auth.RefreshTokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		CompanyRepository:      companyRepository,
		BranchRepository:       branchRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Refresh tokens are stored hashed so a database leak does not leak usable
// tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register implements auth.AuthService. The company and its first manager are
// created together; a partial signup must not survive.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if _, err := a.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTxContext(ctx, tx)

		companyData, err := a.CompanyRepository.Create(txCtx, company.Company{Name: req.CompanyName})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		userData, err := a.UserRepository.Create(txCtx, user.User{
			CompanyID:    &companyData.ID,
			Email:        req.Email,
			PasswordHash: &passwordHash,
			FullName:     req.FullName,
			Role:         user.RoleCompanyManager,
		})
		if err != nil {
			return fmt.Errorf("failed to create manager account: %w", err)
		}

		if err := a.CompanyRepository.Update(txCtx, company.UpdateCompanyRequest{ID: companyData.ID, OwnerUserID: &userData.ID}); err != nil {
			return fmt.Errorf("failed to set company owner: %w", err)
		}

		if _, err := a.BranchRepository.Create(txCtx, fixtures.GetDefaultBranch(companyData.ID, companyData.Name)); err != nil {
			return fmt.Errorf("failed to create default branch: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrUserInactive
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTxContext(ctx, tx)
		tokenResponse, err = a.issueTokens(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Refresh implements auth.AuthService. The presented token is rotated: the
// old row is revoked and a new pair is issued.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.Service.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := a.RefreshTokenRepository.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !stored.IsUsable(time.Now()) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if stored.UserID != userID {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrUserInactive
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.WithTxContext(ctx, tx)

		if err := a.RefreshTokenRepository.Revoke(txCtx, hashToken(refreshToken)); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, userData)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := a.RefreshTokenRepository.Revoke(ctx, hashToken(refreshToken))
	if err == auth.ErrInvalidToken {
		// Already revoked or unknown; logout is idempotent.
		return nil
	}
	return err
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, scope user.Scope) (user.UserResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, scope.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(userData), nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.CompanyID, userData.BranchID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	resp.RefreshToken, resp.RefreshTokenExpiresAt, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	_, err = a.RefreshTokenRepository.Store(ctx, userData.ID, hashToken(resp.RefreshToken), time.Unix(resp.RefreshTokenExpiresAt, 0))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	resp.User = user.ToResponse(userData)
	return resp, nil
}
