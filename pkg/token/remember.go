package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid remember token")

// RememberClaims are the claims carried by a remember-me cookie. Series is a
// random identifier that must also match the value persisted on the doctors
// row, so a stolen cookie dies with the next explicit logout.
type RememberClaims struct {
	Series string `json:"series"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies remember-me tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Generate returns a signed token for the doctor together with the series
// value the caller must persist alongside the doctor record.
func (i *Issuer) Generate(doctorID int64) (signed, series string, expires time.Time, err error) {
	series = uuid.NewString()
	expires = time.Now().Add(i.ttl)

	claims := RememberClaims{
		Series: series,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(doctorID, 10),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign remember token: %w", err)
	}
	return signed, series, expires, nil
}

// Parse verifies the signature and expiry and returns the doctor id and series.
// Callers must still compare the series against the persisted value.
func (i *Issuer) Parse(signed string) (doctorID int64, series string, err error) {
	var claims RememberClaims
	tok, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidToken
	}

	doctorID, err = strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || doctorID <= 0 || claims.Series == "" {
		return 0, "", ErrInvalidToken
	}
	return doctorID, claims.Series, nil
}
