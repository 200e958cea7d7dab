package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	domainauth "prioritizer/internal/domain/auth"
)

const tokenIssuer = "prioritizer"

// sessionClaims are the claims carried by a session token
type sessionClaims struct {
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer; a zero ttl issues tokens that never expire
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		now:    time.Now,
	}, nil
}

// Issue signs a new session for the given identity
func (i *TokenIssuer) Issue(userID, email, provider string) (*domainauth.Session, error) {
	issued := i.now().Truncate(time.Second)
	claims := sessionClaims{
		Email:    email,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(issued),
		},
	}

	var expires time.Time
	if i.ttl > 0 {
		expires = issued.Add(i.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expires)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domainauth.Session{
		UserID:    userID,
		Email:     email,
		Provider:  provider,
		Token:     signed,
		IssuedAt:  issued,
		ExpiresAt: expires,
	}, nil
}

// Verify checks a token's signature and expiry and returns the session it describes
func (i *TokenIssuer) Verify(token string) (*domainauth.Session, error) {
	var claims sessionClaims
	_, err := i.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !claims.VerifyIssuer(tokenIssuer, true) {
		return nil, errors.New("invalid issuer")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing sub")
	}

	session := &domainauth.Session{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Provider: claims.Provider,
		Token:    token,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
