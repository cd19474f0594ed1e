package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Test helpers for generating key material and signed tokens. These are
// only referenced from _test.go files.

// GenerateTestKey creates a fresh RSA key pair for test signing.
func GenerateTestKey() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 2048)
}

// PublicKeyToPKCS8PEM encodes the public half of the key as a PKIX
// ("BEGIN PUBLIC KEY") PEM block.
func PublicKeyToPKCS8PEM(key *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// PublicKeyToPKCS1PEM encodes the public half of the key as a PKCS#1
// ("BEGIN RSA PUBLIC KEY") PEM block.
func PublicKeyToPKCS1PEM(key *rsa.PrivateKey) string {
	der := x509.MarshalPKCS1PublicKey(&key.PublicKey)
	block := &pem.Block{Type: "RSA PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block))
}

// SignTestToken signs the given claims with RS256 using the provided key.
func SignTestToken(key *rsa.PrivateKey, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(key)
}

// SignTestTokenHS256 signs the given claims with HMAC-SHA256. Used to
// verify that the validator rejects tokens declaring a weaker algorithm.
func SignTestTokenHS256(secret []byte, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// NewRSAValidatorWithTimeFunc creates an RSA validator whose clock is
// controlled by the given function. Used to test expiry behavior
// deterministically.
func NewRSAValidatorWithTimeFunc(
	publicKeyPEM string,
	timeFunc func() time.Time,
) (Validator, error) {
	v, err := NewRSAValidator(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	// The parser's time function reads timeFunc through the validator,
	// so overriding the field is enough.
	rv := v.(*rsaValidator)
	rv.timeFunc = timeFunc
	return rv, nil
}
