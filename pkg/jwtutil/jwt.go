package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSubject is returned for tokens that do not name a user
var ErrMissingSubject = errors.New("token has no subject")

// UserClaims represents the JWT claims for user authentication. The
// subject is the identity provider's user id.
type UserClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the caller identity carried by the token
func (c *UserClaims) UserID() string {
	return c.Subject
}

// JWTUtil signs and verifies HS256 tokens with one shared key
type JWTUtil struct {
	secret     []byte
	expiration time.Duration
}

func New(signingKey string, expirationHours int) *JWTUtil {
	return &JWTUtil{
		secret:     []byte(signingKey),
		expiration: time.Duration(expirationHours) * time.Hour,
	}
}

// GenerateToken creates a JWT token for userID
func (j *JWTUtil) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
