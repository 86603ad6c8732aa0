package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Keys generated once for the whole package.
var (
	testJwtPrivateKey  *ecdsa.PrivateKey
	otherJwtPrivateKey *ecdsa.PrivateKey
)

const (
	validKeyFile   = "test_valid_private.pem"
	invalidKeyFile = "test_invalid_private.pem"
)

// TestMain generates the signing keys and PEM fixtures used below.
func TestMain(m *testing.M) {
	var err error
	testJwtPrivateKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate ECDSA private key for tests: %v", err)
	}
	otherJwtPrivateKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate second ECDSA private key for tests: %v", err)
	}

	if err := writeECDSAPrivateKeyPEM(validKeyFile, testJwtPrivateKey); err != nil {
		log.Fatalf("Failed to write valid private key PEM: %v", err)
	}

	invalidContent := "-----BEGIN INVALID KEY-----\nnot-a-real-key\n-----END INVALID KEY-----\n"
	if err := os.WriteFile(invalidKeyFile, []byte(invalidContent), 0o600); err != nil {
		log.Fatalf("Failed to write invalid private key PEM: %v", err)
	}

	code := m.Run()

	_ = os.Remove(validKeyFile)
	_ = os.Remove(invalidKeyFile)

	os.Exit(code)
}

func writeECDSAPrivateKeyPEM(path string, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}
	block := &pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: der,
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return pem.Encode(out, block)
}

func TestCreateToken(t *testing.T) {
	type args struct {
		userID     string
		privateKey *ecdsa.PrivateKey
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "Successful token creation for valid user id",
			args: args{
				userID:     "64f1c2e8a1b2c3d4e5f60718",
				privateKey: testJwtPrivateKey,
			},
			wantErr: false,
		},
		{
			name: "Empty user id still produces a token",
			args: args{
				userID:     "",
				privateKey: testJwtPrivateKey,
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateToken(tt.args.userID, tt.args.privateKey)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateToken() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got == "" {
				t.Error("CreateToken() returned an empty token")
			}
		})
	}
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("64f1c2e8a1b2c3d4e5f60718", testJwtPrivateKey)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	claims, err := VerifyToken(token, &testJwtPrivateKey.PublicKey)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.UserID != "64f1c2e8a1b2c3d4e5f60718" {
		t.Errorf("VerifyToken() UserID = %q, want %q", claims.UserID, "64f1c2e8a1b2c3d4e5f60718")
	}
	if claims.Issuer != ISSUER {
		t.Errorf("VerifyToken() Issuer = %q, want %q", claims.Issuer, ISSUER)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	// Sign a token whose expiry is already in the past.
	now := time.Now().Add(-48 * time.Hour)
	claims := CustomClaims{
		UserID: "64f1c2e8a1b2c3d4e5f60718",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(testJwtPrivateKey)
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	_, err = VerifyToken(signed, &testJwtPrivateKey.PublicKey)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("VerifyToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTokenTamperedSignature(t *testing.T) {
	// A token signed by a different key must not verify.
	token, err := CreateToken("64f1c2e8a1b2c3d4e5f60718", otherJwtPrivateKey)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	_, err = VerifyToken(token, &testJwtPrivateKey.PublicKey)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("VerifyToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("not.a.token", &testJwtPrivateKey.PublicKey)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("VerifyToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokensDiffer(t *testing.T) {
	first, err := CreateToken("user-a", testJwtPrivateKey)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}
	second, err := CreateToken("user-a", testJwtPrivateKey)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}
	if first == second {
		t.Error("two tokens for the same user should differ (uuid token id)")
	}
}
