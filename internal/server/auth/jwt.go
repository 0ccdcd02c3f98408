// Package auth issues and verifies session tokens and hashes account
// passwords. Nothing in this package touches storage.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims plus the owning user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Identity is the verified claim a request acts on behalf of.
type Identity struct {
	UserID string
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken validates tokenString and returns its user id.
// Expired tokens yield common.ErrTokenExpired, everything else that fails
// validation yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// Authenticator binds the process-wide signing secret and token lifetime.
// It is immutable after construction and safe for concurrent use.
type Authenticator struct {
	secret   []byte
	validity time.Duration
}

func NewAuthenticator(secret []byte, validity time.Duration) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	if validity <= 0 {
		return nil, errors.New("token validity must be positive")
	}

	s := make([]byte, len(secret))
	copy(s, secret)

	return &Authenticator{secret: s, validity: validity}, nil
}

// Validity is the lifetime of issued tokens.
func (a *Authenticator) Validity() time.Duration {
	return a.validity
}

// Issue signs a token for userID.
func (a *Authenticator) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	return GenerateToken(userID, a.secret, a.validity)
}

// Verify returns the identity carried by token. A missing, malformed,
// mis-signed or expired token all yield common.ErrorUnauthorized.
func (a *Authenticator) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, common.ErrorUnauthorized
	}

	userID, err := GetUserIDFromToken(token, a.secret)
	if err != nil {
		return Identity{}, common.ErrorUnauthorized
	}

	return Identity{UserID: userID}, nil
}
