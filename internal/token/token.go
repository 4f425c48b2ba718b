package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammedaliasad/fantasy-football/configs"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	accessTTL  = 24 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

var ErrWrongType = errors.New("wrong token type")

type Claims struct {
	UserID uint64 `json:"user_id"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Pair is the access/refresh credential pair handed out on registration,
// login and refresh.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func secret() []byte {
	return []byte(configs.AppConfig.JWT.SECRET)
}

func sign(userID uint64, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

func NewPair(userID uint64) (Pair, error) {
	access, err := sign(userID, TypeAccess, accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := sign(userID, TypeRefresh, refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// ParseAccess validates an access token and returns its claims.
func ParseAccess(tokenStr string) (*Claims, error) {
	claims, err := parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Type != TypeAccess {
		return nil, ErrWrongType
	}
	return claims, nil
}

// ParseRefresh validates a refresh token and returns its claims.
func ParseRefresh(tokenStr string) (*Claims, error) {
	claims, err := parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Type != TypeRefresh {
		return nil, ErrWrongType
	}
	return claims, nil
}
