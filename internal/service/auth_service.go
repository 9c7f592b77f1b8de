package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Omc12/StockSimple/internal/config"
	"github.com/Omc12/StockSimple/internal/dto"
	"github.com/Omc12/StockSimple/internal/model"
	"github.com/Omc12/StockSimple/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RefreshTokenStore tracks issued refresh tokens so rotation can revoke them.
// A token absent from the store is treated as revoked or expired.
type RefreshTokenStore interface {
	Save(ctx context.Context, token, userID string) error
	Exists(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens RefreshTokenStore
	cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, tokens RefreshTokenStore, cfg *config.Config) AuthService {
	return &authService{repo: repo, tokens: tokens, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:    strings.ToLower(req.Email),
		Password: string(hash),
		Name:     req.Name,
		Role:     "staff",
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Unique index is the last line of defense against a concurrent register
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !s.checkPassword(ctx, user, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

// checkPassword verifies the credential and transparently migrates rows that
// still hold a legacy plaintext password. A failed hash persist is logged and
// swallowed; it must not block a successful login.
func (s *authService) checkPassword(ctx context.Context, user *model.User, password string) bool {
	if strings.HasPrefix(user.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
	}

	if user.Password != password {
		return false
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err == nil {
		if uerr := s.repo.UpdatePassword(ctx, user.ID, string(hash)); uerr != nil {
			log.Warn().Err(uerr).Str("user_id", user.ID.String()).
				Msg("legacy password migration failed, login continues")
		} else {
			user.Password = string(hash)
		}
	}
	return true
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Rotation: a refresh token is single-use. Absence from the store means it
	// was already rotated or revoked.
	live, err := s.tokens.Exists(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, ErrInvalidToken
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	access, err := s.signToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, refresh, user.ID.String()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:        access,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}

func (s *authService) signToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
