package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitas-games/hexgrid/internal/config"
)

type fakeBlacklist struct {
	ids map[string]bool
	err error
}

func (b *fakeBlacklist) IsBlacklisted(ctx context.Context, userID string) (bool, error) {
	return b.ids[userID], b.err
}

func newTestValidator(t *testing.T) (*JWTValidator, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("failed to marshal public key: %v", err)
	}
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	keyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pemData)
	}))
	t.Cleanup(keyServer.Close)

	cfg := config.Default()
	cfg.JWT.Issuer = "login"
	cfg.JWT.PublicKeyURL = keyServer.URL

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	v, err := NewJWTValidator(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}
	return v, key
}

func signToken(t *testing.T, key *ecdsa.PrivateKey, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func validClaims() Claims {
	return Claims{
		UserID:      7,
		Username:    "ada",
		Email:       "ada@example.com",
		Permissions: 3,
		Activated:   1,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "login",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	v, key := newTestValidator(t)

	player, err := v.ValidateToken(signToken(t, key, validClaims()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.ID != "7" || player.Username != "ada" || player.Anonymous {
		t.Fatalf("unexpected player %+v", player)
	}
	if !player.Can(3) {
		t.Fatalf("expected permissions from claims")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	v, key := newTestValidator(t)
	otherKey, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "elsewhere"
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	inactive := validClaims()
	inactive.Activated = 0
	banned := validClaims()
	banned.Activated = -1

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong key", signToken(t, otherKey, validClaims())},
		{"wrong issuer", signToken(t, key, wrongIssuer)},
		{"expired", signToken(t, key, expired)},
		{"not activated", signToken(t, key, inactive)},
		{"banned", signToken(t, key, banned)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.ValidateToken(tt.token); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestValidateTokenBlacklist(t *testing.T) {
	v, key := newTestValidator(t)
	token := signToken(t, key, validClaims())

	v.blacklist = &fakeBlacklist{ids: map[string]bool{"7": true}}
	if _, err := v.ValidateToken(token); err == nil {
		t.Fatalf("expected blacklisted token to be rejected")
	}

	// an unreachable blacklist does not block logins
	v.blacklist = &fakeBlacklist{err: errors.New("connection refused")}
	if _, err := v.ValidateToken(token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		query  string
		want   string
	}{
		{"protocol", http.Header{"Sec-Websocket-Protocol": {"access_token, abc"}}, "", "abc"},
		{"bearer", http.Header{"Authorization": {"Bearer xyz"}}, "", "xyz"},
		{"query", http.Header{}, "?token=q1", "q1"},
		{"basic auth ignored", http.Header{"Authorization": {"Basic zzz"}}, "", ""},
		{"none", http.Header{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws"+tt.query, nil)
			r.Header = tt.header
			if got := extractTokenFromHeader(r); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
