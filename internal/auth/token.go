package auth

import (
	"errors"
	"fmt"
	"time"

	"exam-scoring-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies HS256 bearer tokens carrying the caller identity.
type TokenService struct {
	hmac   []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{hmac: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"` // "student", "teacher" or "admin"
	jwt.RegisteredClaims
}

func (s *TokenService) Issue(who domain.Identity) (string, error) {
	if who.UserID == "" {
		return "", errors.New("token subject is required")
	}
	now := s.now()
	claims := &Claims{
		Name: who.Name,
		Role: string(who.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   who.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.hmac)
}

// Parse verifies a token and returns the identity it carries.
func (s *TokenService) Parse(tokenStr string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return domain.Identity{
		UserID: claims.Subject,
		Name:   claims.Name,
		Role:   domain.Role(claims.Role),
	}, nil
}
