package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lms/apperrors"
	"lms/models"
)

var (
	ErrExpiredToken     = apperrors.New(apperrors.KindAuthorization, "ExpiredToken", "Token has expired!")
	ErrInvalidSignature = apperrors.New(apperrors.KindAuthorization, "InvalidSignature", "Invalid token!")
	ErrTokenMismatch    = apperrors.New(apperrors.KindAuthorization, "TokenMismatch", "Refresh token is no longer valid!")
)

// Clock abstracts time for deterministic expiry tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// AccountStore is the slice of account persistence the token service
// needs: the single refresh-token slot and the role for claims.
type AccountStore interface {
	RoleByUser(userID uint) (models.Role, error)
	RefreshTokenByUser(userID uint) (string, error)
	SaveRefreshToken(userID uint, token string) error
}

// Claims is the verified content of an access or refresh token.
type Claims struct {
	UserID uint
	Role   models.Role
}

// Service issues and validates JWTs and owns the rotation policy.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	accounts   AccountStore
	clock      Clock
}

func NewService(secret string, accessTTL, refreshTTL time.Duration, accounts AccountStore, clock Clock) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		accounts:   accounts,
		clock:      clock,
	}
}

// IssueAccessToken generates a short-lived access token for the user.
func (s *Service) IssueAccessToken(userID uint, role models.Role) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   string(role),
		"iat":    now.Unix(),
		"exp":    now.Add(s.accessTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueRefreshToken generates a long-lived refresh token and persists it
// on the account, overwriting any previous one. That makes refresh
// tokens single-use per account without a revocation list.
func (s *Service) IssueRefreshToken(userID uint) (string, error) {
	role, err := s.accounts.RoleByUser(userID)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   string(role),
		"jti":    uuid.NewString(),
		"iat":    now.Unix(),
		"exp":    now.Add(s.refreshTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err := s.accounts.SaveRefreshToken(userID, signed); err != nil {
		return "", err
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(tokenString string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithTimeFunc(s.clock.Now))
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidSignature
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || mapClaims["userId"] == nil {
		return Claims{}, ErrInvalidSignature
	}

	userID, ok := mapClaims["userId"].(float64)
	if !ok {
		return Claims{}, ErrInvalidSignature
	}

	role, _ := mapClaims["role"].(string)

	return Claims{UserID: uint(userID), Role: models.Role(role)}, nil
}

// Rotate exchanges a refresh token for a fresh access/refresh pair. The
// presented token must equal the one stored for the account; a mismatch
// means a superseded token is being replayed.
func (s *Service) Rotate(oldRefreshToken string) (access string, refresh string, err error) {
	claims, err := s.Verify(oldRefreshToken)
	if err != nil {
		return "", "", err
	}

	stored, err := s.accounts.RefreshTokenByUser(claims.UserID)
	if err != nil {
		return "", "", err
	}
	if stored == "" || stored != oldRefreshToken {
		return "", "", ErrTokenMismatch
	}

	access, err = s.IssueAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return "", "", err
	}

	refresh, err = s.IssueRefreshToken(claims.UserID)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}
