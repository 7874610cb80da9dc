// Package exporttoken issues and verifies short-lived download grants for
// exported model artifacts. Grants are Ed25519-signed JWTs so a download
// endpoint can authorize requests without shared storage.
package exporttoken

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid indicates a malformed or badly signed grant.
	ErrInvalid = errors.New("export grant is invalid")
	// ErrExpired indicates a grant past its expiry.
	ErrExpired = errors.New("export grant is expired")
	// ErrMismatch indicates a grant for a different artifact or audience.
	ErrMismatch = errors.New("export grant mismatch")
)

// signerEnv holds raw env values before post-parse validation.
type signerEnv struct {
	Issuer     string        `env:"GEARFORGE_EXPORT_GRANT_ISSUER"`
	Audience   string        `env:"GEARFORGE_EXPORT_GRANT_AUDIENCE"`
	PrivateKey string        `env:"GEARFORGE_EXPORT_GRANT_PRIVATE_KEY"`
	TTL        time.Duration `env:"GEARFORGE_EXPORT_GRANT_TTL"         envDefault:"5m"`
}

// SignerConfig defines how export grants are issued.
type SignerConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PrivateKey
	TTL      time.Duration
	Now      func() time.Time
}

// VerifierConfig defines how export grants are verified.
type VerifierConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Claims captures validated export grant claims.
type Claims struct {
	Issuer     string
	Audience   []string
	ExpiresAt  time.Time
	IssuedAt   time.Time
	JWTID      string
	ArtifactID string
	Filename   string
}

// grantClaims is the internal claims type used for JWT parsing.
type grantClaims struct {
	jwt.RegisteredClaims
	ArtifactID string `json:"artifact_id"`
	Filename   string `json:"filename"`
}

// LoadSignerConfigFromEnv reads export grant signing configuration.
func LoadSignerConfigFromEnv(now func() time.Time) (SignerConfig, error) {
	var raw signerEnv
	if err := env.Parse(&raw); err != nil {
		return SignerConfig{}, fmt.Errorf("parse export grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	privateKey := strings.TrimSpace(raw.PrivateKey)
	if issuer == "" {
		return SignerConfig{}, fmt.Errorf("GEARFORGE_EXPORT_GRANT_ISSUER is required")
	}
	if audience == "" {
		return SignerConfig{}, fmt.Errorf("GEARFORGE_EXPORT_GRANT_AUDIENCE is required")
	}
	if privateKey == "" {
		return SignerConfig{}, fmt.Errorf("GEARFORGE_EXPORT_GRANT_PRIVATE_KEY is required")
	}
	keyBytes, err := decodeBase64(privateKey)
	if err != nil {
		return SignerConfig{}, fmt.Errorf("decode export grant private key: %w", err)
	}
	if len(keyBytes) != ed25519.PrivateKeySize {
		return SignerConfig{}, fmt.Errorf("export grant private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if raw.TTL <= 0 {
		return SignerConfig{}, fmt.Errorf("export grant ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return SignerConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PrivateKey(keyBytes),
		TTL:      raw.TTL,
		Now:      now,
	}, nil
}

// Issue signs a download grant for one artifact.
func Issue(cfg SignerConfig, jwtID, artifactID, filename string) (string, error) {
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PrivateKeySize {
		return "", errors.New("export grant signer is not configured")
	}
	jwtID = strings.TrimSpace(jwtID)
	if jwtID == "" {
		return "", errors.New("export grant jti is required")
	}
	artifactID = strings.TrimSpace(artifactID)
	if artifactID == "" {
		return "", errors.New("export grant artifact id is required")
	}
	if cfg.TTL <= 0 {
		return "", errors.New("export grant ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	now := cfg.Now().UTC()
	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        jwtID,
		},
		ArtifactID: artifactID,
		Filename:   strings.TrimSpace(filename),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(cfg.Key)
	if err != nil {
		return "", fmt.Errorf("sign export grant: %w", err)
	}
	return signed, nil
}

// Validate verifies an export grant and checks it names the expected artifact.
func Validate(grant, expectedArtifactID string, cfg VerifierConfig) (Claims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return Claims{}, fmt.Errorf("%w: grant is required", ErrInvalid)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return Claims{}, errors.New("export grant verifier is not configured")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return Claims{}, fmt.Errorf("%w: issuer", ErrMismatch)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return Claims{}, fmt.Errorf("%w: audience", ErrMismatch)
	}
	if parsed.ID == "" {
		return Claims{}, fmt.Errorf("%w: jti is required", ErrInvalid)
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: exp is required", ErrInvalid)
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Claims{}, ErrExpired
	}

	if strings.TrimSpace(parsed.ArtifactID) == "" || parsed.ArtifactID != expectedArtifactID {
		return Claims{}, fmt.Errorf("%w: artifact", ErrMismatch)
	}

	claims := Claims{
		Issuer:     parsed.Issuer,
		Audience:   []string(parsed.Audience),
		ExpiresAt:  exp,
		JWTID:      parsed.ID,
		ArtifactID: parsed.ArtifactID,
		Filename:   parsed.Filename,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to package errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return fmt.Errorf("%w: signature", ErrInvalid)
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return fmt.Errorf("%w: alg", ErrInvalid)
	}
	return ErrInvalid
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
