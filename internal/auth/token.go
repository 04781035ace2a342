package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uint
	Role   access.Role
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(u *models.User) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.UserType,
		"exp":  now.Add(i.ttl).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return Claims{}, ErrInvalidToken
	}
	roleName, _ := mc["role"].(string)
	role, ok := access.ParseRole(roleName)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: uint(sub), Role: role}, nil
}
