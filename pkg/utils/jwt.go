package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const devIssuer = "amigo-admin-dev"

// DevClaims is the payload of locally signed tokens used when DEV_AUTH is on
type DevClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateDevToken signs an HS256 token for uid
func GenerateDevToken(secret []byte, uid, email string, ttl time.Duration) (string, error) {
	if uid == "" {
		return "", errors.New("uid is required")
	}
	now := time.Now()
	claims := DevClaims{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    devIssuer,
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateDevToken(secret []byte, tokenString string) (*DevClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DevClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuer(devIssuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*DevClaims); ok && token.Valid && claims.UID != "" {
		return claims, nil
	}

	return nil, jwt.ErrTokenSignatureInvalid
}
