package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-0123456789")

func testCodec(t *testing.T, ttl time.Duration, now time.Time) *Codec {
	t.Helper()
	codec, err := NewCodec(Config{Secret: testSecret, TTL: ttl})
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	codec.now = func() time.Time { return now }
	return codec
}

func TestNewCodecValidation(t *testing.T) {
	if _, err := NewCodec(Config{Secret: nil, TTL: time.Hour}); err == nil {
		t.Fatal("expected missing secret to be rejected")
	}
	if _, err := NewCodec(Config{Secret: testSecret, TTL: 0}); err == nil {
		t.Fatal("expected zero TTL to be rejected")
	}
}

func TestIssueAndVerify(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := testCodec(t, time.Hour, issued.Add(30*time.Minute))

	tok, err := codec.Issue("alice@example.com", issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected three-part compact token, got %d parts", len(parts))
	}

	subject, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %q", subject)
	}
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := testCodec(t, time.Hour, issued)

	tok, err := codec.Issue("alice@example.com", issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	checks := []struct {
		name string
		at   time.Time
		want error
	}{
		{"just before expiry", issued.Add(time.Hour - time.Second), nil},
		{"exactly at expiry", issued.Add(time.Hour), ErrExpired},
		{"after expiry", issued.Add(2 * time.Hour), ErrExpired},
	}
	for _, tc := range checks {
		codec.now = func() time.Time { return tc.at }
		_, err := codec.Verify(tok)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestVerifyBadSignature(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := testCodec(t, time.Hour, issued)

	tok, err := codec.Issue("alice@example.com", issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")

	// Re-encode a tampered payload, keeping the original signature.
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	tampered := strings.Replace(string(payload), "alice", "mallory", 1)
	forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(tampered)) + "." + parts[2]

	if _, err := codec.Verify(forged); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("tampered payload: got %v, want ErrBadSignature", err)
	}

	// Flip one signature character to a different base64url character.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	flipped := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := codec.Verify(flipped); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("tampered signature: got %v, want ErrBadSignature", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := testCodec(t, time.Hour, issued)

	other, err := NewCodec(Config{Secret: []byte("a-different-secret-key"), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	tok, err := other.Issue("alice@example.com", issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := codec.Verify(tok); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("wrong secret: got %v, want ErrBadSignature", err)
	}
}

func TestVerifyExpiredSignatureStillChecked(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := testCodec(t, time.Hour, issued.Add(48*time.Hour))

	other, err := NewCodec(Config{Secret: []byte("a-different-secret-key"), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	tok, err := other.Issue("alice@example.com", issued)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Expired and forged: the signature gate comes first.
	if _, err := codec.Verify(tok); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expired forged token: got %v, want ErrBadSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := testCodec(t, time.Hour, time.Now())

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "this-is-not-a-jwt"},
		{"two parts", "aaaa.bbbb"},
		{"four parts", "aaaa.bbbb.cccc.dddd"},
		{"non-base64 segments", "this.is.not"},
	}
	for _, tc := range cases {
		if _, err := codec.Verify(tc.token); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: got %v, want ErrMalformed", tc.name, err)
		}
	}
}
