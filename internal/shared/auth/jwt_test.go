package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key")

	userID := int64(123)
	email := "test@example.com"

	token, err := j.Generate(userID, email)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %d, want %d", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Validate() got Email %s, want %s", claims.Email, email)
	}
}

func TestJWT_TamperedToken(t *testing.T) {
	j := NewJWT("my-secret-key")
	token, _ := j.Generate(1, "a@b.c")

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"
	if _, err := j.Validate(tampered); err == nil {
		t.Error("Validate() accepted tampered signature")
	}

	if _, err := j.Validate("not.a-token"); err == nil {
		t.Error("Validate() accepted malformed token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, _ := NewJWT("secret-a").Generate(1, "a@b.c")
	if _, err := NewJWT("secret-b").Validate(token); err == nil {
		t.Error("Validate() accepted token signed with different secret")
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	secret := "my-secret-key"
	claims := Claims{
		UserID: 1,
		Email:  "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := NewJWT(secret).Validate(expired); err == nil {
		t.Error("Validate() accepted expired token")
	}
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := NewJWT("my-secret-key").Validate(unsigned); err == nil {
		t.Error("Validate() accepted token with none algorithm")
	}
}
