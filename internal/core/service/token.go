package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// ErrInvalidToken is returned by Parse for any token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid token")

// JWTIssuer signs HS256 tokens carrying the user id, role and purpose.
type JWTIssuer struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

func NewJWTIssuer(secret string, sessionTTL, resetTTL time.Duration) *JWTIssuer {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	return &JWTIssuer{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL, now: time.Now}
}

func (i *JWTIssuer) Issue(user *domain.User, purpose ports.TokenPurpose) (string, error) {
	ttl := i.sessionTTL
	if purpose == ports.PurposeReset {
		ttl = i.resetTTL
	}
	now := i.now()
	claims := jwt.MapClaims{
		"_id":     user.ID,
		"role":    user.Role,
		"purpose": string(purpose),
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Parse(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	purpose, _ := claims["purpose"].(string)
	if purpose == "" {
		purpose = string(ports.PurposeSession)
	}
	return &ports.TokenClaims{UserID: userID, Role: role, Purpose: ports.TokenPurpose(purpose)}, nil
}
