package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenTTL is how long a seller token stays valid
const TokenTTL = 24 * time.Hour

// signingMethod is the only algorithm seller tokens are issued or accepted with
var signingMethod = jwt.SigningMethodHS256

// Claims identify the seller a token was issued to
type Claims struct {
	SellerID uint `json:"seller_id"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a seller token valid for TokenTTL
func GenerateJWT(sellerID uint, secret string) (string, error) {
	issued := time.Now()
	claims := Claims{
		SellerID: sellerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign seller token")
	}
	return signed, nil
}

// ParseJWT verifies a seller token and returns its claims.
// Expired tokens and tokens signed with another algorithm are rejected.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	keyFunc := func(*jwt.Token) (any, error) { return []byte(secret), nil }
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil {
		return nil, errors.Wrap(err, "parse seller token")
	}
	if !token.Valid {
		return nil, errors.WithStack(jwt.ErrTokenSignatureInvalid)
	}
	return claims, nil
}
