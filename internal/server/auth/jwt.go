// Package auth mints and verifies the signed access tokens that carry a
// session identity between requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the standard claims (jti holds the session id) and the
// user id and name of the session owner.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	UserName string `json:"name"`
}

func GenerateToken(id *models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   id.UserID,
		UserName: id.Name,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the identity carried
// by the token. It does not check that the session still exists.
func ParseToken(tokenString string, secretKey []byte) (*models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.ID == "" || claims.UserName == "" {
		return nil, common.ErrInvalidToken
	}

	return &models.Identity{UserID: claims.UserID, Name: claims.UserName, SessionID: claims.ID}, nil
}
