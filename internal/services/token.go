package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const (
	DefaultIssuer    = "CleanArchAPI"
	DefaultAudience  = "CleanArchClient"
	DefaultAccessTTL = 24 * time.Hour
)

type TokenConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

// JWTClaims are the claims carried by an access token.
type JWTClaims struct {
	Username string   `json:"unique_name"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name,omitempty"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type TokenService interface {
	Issue(user *types.User) (IssuedToken, error)
	Parse(tokenString string) (*ctxutil.RequestData, error)
	AccessTTL() time.Duration
}

type tokenService struct {
	log *logger.Logger
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(log *logger.Logger, cfg TokenConfig) (TokenService, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("JWT secret key not configured")
	}
	if len(cfg.SecretKey) < 32 {
		return nil, fmt.Errorf("JWT secret key must be at least 32 characters")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	return &tokenService{
		log: log.With("service", "TokenService"),
		cfg: cfg,
		now: time.Now,
	}, nil
}

func (s *tokenService) AccessTTL() time.Duration { return s.cfg.AccessTTL }

func (s *tokenService) Issue(user *types.User) (IssuedToken, error) {
	if user == nil {
		return IssuedToken{}, fmt.Errorf("user required")
	}
	now := s.now().UTC()
	expires := now.Add(s.cfg.AccessTTL)
	claims := JWTClaims{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.RoleNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{AccessToken: signed, RefreshToken: refresh, ExpiresAt: expires}, nil
}

// Parse validates signature, issuer, audience and lifetime, and returns the
// principal the token names.
func (s *tokenService) Parse(tokenString string) (*ctxutil.RequestData, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("empty token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired JWT token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return &ctxutil.RequestData{
		UserID:      userID,
		Username:    claims.Username,
		Email:       claims.Email,
		FullName:    claims.FullName,
		Roles:       claims.Roles,
		TokenString: tokenString,
	}, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
