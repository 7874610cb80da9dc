package exporttoken

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func testKeys(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return pub, priv
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
}

func testSigner(priv ed25519.PrivateKey) SignerConfig {
	return SignerConfig{
		Issuer:   "gearforge-fitting",
		Audience: "gearforge-export",
		Key:      priv,
		TTL:      5 * time.Minute,
		Now:      fixedNow,
	}
}

func testVerifier(pub ed25519.PublicKey) VerifierConfig {
	return VerifierConfig{
		Issuer:   "gearforge-fitting",
		Audience: "gearforge-export",
		Key:      pub,
		Now:      fixedNow,
	}
}

func TestIssueAndValidate(t *testing.T) {
	pub, priv := testKeys(t)

	grant, err := Issue(testSigner(priv), "grant-1", "artifact-1", "fitted.glb")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	claims, err := Validate(grant, "artifact-1", testVerifier(pub))
	if err != nil {
		t.Fatalf("validate grant: %v", err)
	}
	if claims.ArtifactID != "artifact-1" {
		t.Fatalf("expected artifact-1, got %q", claims.ArtifactID)
	}
	if claims.Filename != "fitted.glb" {
		t.Fatalf("expected filename, got %q", claims.Filename)
	}
	if claims.JWTID != "grant-1" {
		t.Fatalf("expected jti grant-1, got %q", claims.JWTID)
	}
	want := fixedNow().Add(5 * time.Minute)
	if !claims.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, claims.ExpiresAt)
	}
}

func TestValidateExpired(t *testing.T) {
	pub, priv := testKeys(t)

	grant, err := Issue(testSigner(priv), "grant-1", "artifact-1", "")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	verifier := testVerifier(pub)
	verifier.Now = func() time.Time { return fixedNow().Add(time.Hour) }
	if _, err := Validate(grant, "artifact-1", verifier); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected %v, got %v", ErrExpired, err)
	}
}

func TestValidateArtifactMismatch(t *testing.T) {
	pub, priv := testKeys(t)

	grant, err := Issue(testSigner(priv), "grant-1", "artifact-1", "")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	if _, err := Validate(grant, "artifact-2", testVerifier(pub)); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected %v, got %v", ErrMismatch, err)
	}
}

func TestValidateWrongKey(t *testing.T) {
	_, priv := testKeys(t)
	otherPub, _ := testKeys(t)

	grant, err := Issue(testSigner(priv), "grant-1", "artifact-1", "")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	if _, err := Validate(grant, "artifact-1", testVerifier(otherPub)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected %v, got %v", ErrInvalid, err)
	}
}

func TestValidateIssuerMismatch(t *testing.T) {
	pub, priv := testKeys(t)

	signer := testSigner(priv)
	signer.Issuer = "someone-else"
	grant, err := Issue(signer, "grant-1", "artifact-1", "")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	if _, err := Validate(grant, "artifact-1", testVerifier(pub)); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected %v, got %v", ErrMismatch, err)
	}
}

func TestValidateRequiresGrant(t *testing.T) {
	pub, _ := testKeys(t)
	if _, err := Validate("  ", "artifact-1", testVerifier(pub)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected %v, got %v", ErrInvalid, err)
	}
}

func TestIssueValidation(t *testing.T) {
	_, priv := testKeys(t)

	if _, err := Issue(testSigner(priv), "", "artifact-1", ""); err == nil {
		t.Fatal("expected error for missing jti")
	}
	if _, err := Issue(testSigner(priv), "grant-1", " ", ""); err == nil {
		t.Fatal("expected error for missing artifact id")
	}
	if _, err := Issue(SignerConfig{}, "grant-1", "artifact-1", ""); err == nil {
		t.Fatal("expected error for unconfigured signer")
	}
}

func TestLoadSignerConfigFromEnv(t *testing.T) {
	_, priv := testKeys(t)
	encoded := base64.StdEncoding.EncodeToString(priv)

	t.Setenv("GEARFORGE_EXPORT_GRANT_ISSUER", "gearforge-fitting")
	t.Setenv("GEARFORGE_EXPORT_GRANT_AUDIENCE", "gearforge-export")
	t.Setenv("GEARFORGE_EXPORT_GRANT_PRIVATE_KEY", encoded)
	t.Setenv("GEARFORGE_EXPORT_GRANT_TTL", "10m")

	cfg, err := LoadSignerConfigFromEnv(fixedNow)
	if err != nil {
		t.Fatalf("load signer config: %v", err)
	}
	if cfg.Issuer != "gearforge-fitting" {
		t.Fatalf("expected issuer, got %q", cfg.Issuer)
	}
	if cfg.TTL != 10*time.Minute {
		t.Fatalf("expected ttl 10m, got %v", cfg.TTL)
	}
	if len(cfg.Key) != ed25519.PrivateKeySize {
		t.Fatalf("expected private key, got %d bytes", len(cfg.Key))
	}
}

func TestLoadSignerConfigRequiresKey(t *testing.T) {
	t.Setenv("GEARFORGE_EXPORT_GRANT_ISSUER", "gearforge-fitting")
	t.Setenv("GEARFORGE_EXPORT_GRANT_AUDIENCE", "gearforge-export")
	t.Setenv("GEARFORGE_EXPORT_GRANT_PRIVATE_KEY", "")

	if _, err := LoadSignerConfigFromEnv(nil); err == nil {
		t.Fatal("expected error for missing private key")
	}
}
