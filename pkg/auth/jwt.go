package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
)

// Claims carries the identity a validated token grants.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(user *model.User) (string, error)
	Validate(token string) (*Claims, error)
	Expiry() time.Duration
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) TokenService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) Expiry() time.Duration {
	return s.expiry
}

func (s *jwtService) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	email, _ := claims["email"].(string)
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}
