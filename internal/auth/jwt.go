// Package auth verifies RS512 access tokens issued by the identity provider.
// #IMPLEMENTATION_DECISION: RS512 chosen for asymmetric signing - the API only needs the public key
// #INTEGRATION_POINT: The private key is only loaded by cmd/issue-dev-token for local development
package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Custom errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrKeyNotFound      = errors.New("key file not found")
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrSigningDisabled  = errors.New("token signing requires a private key")
)

// DefaultAccessTokenExpiry is used when JWTConfig leaves the expiry unset
const DefaultAccessTokenExpiry = time.Hour

// Claims represents the JWT claims of an access token
// #DATA_ASSUMPTION: user_id carries the hex ObjectID of the user; sub is used when it is absent
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Identity returns the user id carried by the token
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// JWTService validates access tokens and, given a private key, issues them
// #IMPLEMENTATION_DECISION: Service interface for testability
type JWTService interface {
	ValidateAccessToken(tokenString string) (*Claims, error)
	GenerateAccessToken(userID string) (string, time.Time, error)
}

// jwtService implements JWTService
type jwtService struct {
	privateKey        *rsa.PrivateKey
	publicKey         *rsa.PublicKey
	accessTokenExpiry time.Duration
	issuer            string
}

// JWTConfig holds JWT service configuration
type JWTConfig struct {
	PublicKeyPath     string
	PrivateKeyPath    string // optional
	AccessTokenExpiry time.Duration
	Issuer            string
}

// NewJWTService creates a new JWT service instance
// #LIBRARY_CHOICE: golang-jwt/jwt/v5 - well-maintained, supports RS512
func NewJWTService(cfg JWTConfig) (JWTService, error) {
	publicKey, err := loadPublicKey(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load public key: %w", err)
	}

	svc := &jwtService{
		publicKey:         publicKey,
		accessTokenExpiry: cfg.AccessTokenExpiry,
		issuer:            cfg.Issuer,
	}
	if svc.accessTokenExpiry <= 0 {
		svc.accessTokenExpiry = DefaultAccessTokenExpiry
	}

	if cfg.PrivateKeyPath != "" {
		privateKey, err := loadPrivateKey(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		svc.privateKey = privateKey
	}

	return svc, nil
}

// GenerateAccessToken signs an access token for the user
func (s *jwtService) GenerateAccessToken(userID string) (string, time.Time, error) {
	if s.privateKey == nil {
		return "", time.Time{}, ErrSigningDisabled
	}

	now := time.Now()
	expiresAt := now.Add(s.accessTokenExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS512, claims)
	tokenString, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateAccessToken validates an access token and returns the claims
// #SECURITY_ASSUMPTION: Only RS512 is accepted; the issuer is enforced when configured
func (s *jwtService) ValidateAccessToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS512.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Identity() == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// loadPrivateKey loads an RSA private key from a PEM file
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	// Try PKCS#1 format first
	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return privateKey, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyFormat, err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidKeyFormat)
	}

	return rsaKey, nil
}

// loadPublicKey loads an RSA public key from a PEM file
func loadPublicKey(path string) (*rsa.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	// Try PKIX format first
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err == nil {
		rsaKey, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidKeyFormat)
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyFormat, err)
	}

	return rsaKey, nil
}

func readPEM(path string) (*pem.Block, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, ErrInvalidKeyFormat
	}
	return block, nil
}
