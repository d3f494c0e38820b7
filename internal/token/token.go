package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// input, wrong token class, expired. Callers must not learn which one it was.
var ErrInvalidToken = errors.New("token is invalid or expired")

// Payload is the set of claims embedded in every signed token.
type Payload struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type claims struct {
	Payload
	jwt.RegisteredClaims
}

// Issuer signs and verifies access and refresh tokens. The two classes use
// distinct secrets, so a refresh token never verifies as an access token and
// vice versa. Secrets and expiries are fixed for the process lifetime.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (i *Issuer) IssueAccess(p Payload) (string, error) {
	return sign(p, i.accessSecret, i.accessExpiry)
}

func (i *Issuer) IssueRefresh(p Payload) (string, error) {
	return sign(p, i.refreshSecret, i.refreshExpiry)
}

func (i *Issuer) IssuePair(p Payload) (Pair, error) {
	accessToken, err := i.IssueAccess(p)
	if err != nil {
		return Pair{}, err
	}

	refreshToken, err := i.IssueRefresh(p)
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (i *Issuer) VerifyAccess(tokenString string) (*Payload, error) {
	return verify(tokenString, i.accessSecret)
}

func (i *Issuer) VerifyRefresh(tokenString string) (*Payload, error) {
	return verify(tokenString, i.refreshSecret)
}

func sign(p Payload, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Payload: p,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// Expiry is checked against the verifier's clock with no slack: a token valid
// one instant before its expiry fails one instant after it.
func verify(tokenString string, secret []byte) (*Payload, error) {
	c := &claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &c.Payload, nil
}
