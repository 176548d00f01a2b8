package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// --- Service Interface ---

// AuthService authenticates the single practitioner against the configured
// bcrypt password hash and issues bearer tokens. When no hash is
// configured, authentication is disabled and the API runs open.
type AuthService interface {
	Login(password string) (token string, err error)
	Enabled() bool
}

// --- Service Implementation ---

type authService struct {
	passwordHash  string
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(passwordHash, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Enabled reports whether authentication is configured.
func (s *authService) Enabled() bool {
	return s.passwordHash != "" && s.jwtSecret != ""
}

// Login verifies the password and returns a signed JWT.
func (s *authService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrAuthenticationFailed
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   "practitioner",
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    "yoga-app",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", ErrTokenGeneration
	}
	return signedToken, nil
}
