package services

import (
	"errors"
	"fmt"

	"masshouse/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims are the claims this service reads from tokens issued by the
// external identity provider. Only the admin capability matters here; user
// management itself is out of scope.
type AdminClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// AuthService verifies admin tokens. It deliberately implements nothing
// beyond the capability check: residents never authenticate, and admin
// accounts live with the identity provider.
type AuthService struct {
	secret []byte
	log    logger.Logger
}

func NewAuthService(config config.Config) (*AuthService, error) {
	log := logger.New("authService")

	if config.AdminJWTSecret == "" {
		return nil, log.ErrMsg("admin JWT secret is not configured")
	}

	return &AuthService{
		secret: []byte(config.AdminJWTSecret),
		log:    log,
	}, nil
}

// ValidateAdminToken parses and verifies a token and confirms the admin
// capability claim. Returns ErrInvalidToken for anything unverifiable.
func (s *AuthService) ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	log := s.log.Function("ValidateAdminToken")

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, log.ErrorWithType(ErrInvalidToken, "token validation failed", "error", err)
	}

	if !token.Valid {
		return nil, log.ErrorWithType(ErrInvalidToken, "token is not valid")
	}

	return claims, nil
}
