package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiration is the token lifetime used when JWTConfig.Expiration is zero.
const DefaultExpiration = time.Hour

var (
	// ErrInvalidToken wraps every ValidateToken failure.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNoSigningKey is returned by GenerateToken on a validation-only service.
	ErrNoSigningKey = errors.New("no signing key configured")
)

// JWTConfig holds JWT configuration. Exactly one source of key material is
// used, in the order PrivateKeyPEM, PublicKeyPEM, Secret.
type JWTConfig struct {
	// Secret is the HS256 shared key.
	Secret string

	// PrivateKeyPEM is an RSA private key; the service signs and validates RS256.
	PrivateKeyPEM string

	// PublicKeyPEM is an RSA public key; the service only validates RS256.
	PublicKeyPEM string

	// Issuer is stamped on issued tokens and, when set, required on validated ones.
	Issuer string

	Expiration time.Duration

	// Leeway tolerates clock skew on exp and nbf.
	Leeway time.Duration
}

// JWTService signs and validates bearer tokens.
type JWTService struct {
	method     jwt.SigningMethod
	signKey    any
	verifyKey  any
	parser     *jwt.Parser
	issuer     string
	expiration time.Duration
}

// NewJWTService builds a service from cfg.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{issuer: cfg.Issuer, expiration: cfg.Expiration}
	if svc.expiration == 0 {
		svc.expiration = DefaultExpiration
	}

	switch {
	case cfg.PrivateKeyPEM != "":
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		svc.method, svc.signKey, svc.verifyKey = jwt.SigningMethodRS256, key, &key.PublicKey

	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.method, svc.verifyKey = jwt.SigningMethodRS256, key

	case cfg.Secret != "":
		svc.method, svc.signKey, svc.verifyKey = jwt.SigningMethodHS256, []byte(cfg.Secret), []byte(cfg.Secret)

	default:
		return nil, errors.New("jwt configuration requires a private key, public key or secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{svc.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	svc.parser = jwt.NewParser(opts...)

	return svc, nil
}

// Algorithm reports the signing algorithm, HS256 or RS256.
func (s *JWTService) Algorithm() string {
	return s.method.Alg()
}

// GenerateToken signs a token for subject carrying roles.
func (s *JWTService) GenerateToken(subject string, roles []string) (string, error) {
	if s.signKey == nil {
		return "", fmt.Errorf("cannot generate token: %w", ErrNoSigningKey)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Roles: roles,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and registered claims of tokenString.
// Every failure wraps ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.verifyKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %q: %w", path, err)
	}
	if block, _ := pem.Decode(data); block == nil {
		return nil, fmt.Errorf("key file %q holds no PEM block", path)
	}
	return data, nil
}

// GenerateKeyPair returns a new 2048-bit RSA key pair as PKCS#1 private and
// PKIX public PEM blocks.
func GenerateKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	privateKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privateKeyPEM, publicKeyPEM, nil
}
