package jwt

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the verified token payload. The subject carries the
// user ID issued by the auth service; role is either "worker" or "admin".
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager verifies RS256 bearer tokens issued by the platform auth service.
// This service never signs tokens, it only holds the public key.
type Manager struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

// NewManager creates a verifier from an already parsed public key.
func NewManager(publicKey *rsa.PublicKey, issuer, audience string) *Manager {
	return &Manager{
		publicKey: publicKey,
		issuer:    issuer,
		audience:  audience,
	}
}

// NewManagerFromFile loads a PEM-encoded RSA public key from disk.
func NewManagerFromFile(publicKeyPath, issuer, audience string) (*Manager, error) {
	pemBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return NewManager(publicKey, issuer, audience), nil
}

// VerifyToken validates signature, expiry, issuer and audience, and
// returns the parsed claims.
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.publicKey, nil
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
	)

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
