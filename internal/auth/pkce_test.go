package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
)

func TestGenerateCodeVerifier_Length(t *testing.T) {
	v, err := GenerateCodeVerifier()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != codeVerifierLength {
		t.Errorf("got length %d, want %d", len(v), codeVerifierLength)
	}
}

func TestGenerateCodeVerifier_CharacterSet(t *testing.T) {
	v, err := GenerateCodeVerifier()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range v {
		if !strings.ContainsRune(unreservedChars, c) {
			t.Errorf("invalid character %q in verifier", c)
		}
	}
}

func TestGenerateCodeVerifier_Uniqueness(t *testing.T) {
	v1, _ := GenerateCodeVerifier()
	v2, _ := GenerateCodeVerifier()
	if v1 == v2 {
		t.Error("two verifiers are identical")
	}
}

func TestGenerateCodeChallenge_Deterministic(t *testing.T) {
	v, _ := GenerateCodeVerifier()
	if GenerateCodeChallenge(v) != GenerateCodeChallenge(v) {
		t.Error("challenge is not deterministic over the same verifier")
	}
}

func TestGenerateCodeChallenge_KnownVector(t *testing.T) {
	verifier := "test"
	got := GenerateCodeChallenge(verifier)
	h := sha256.Sum256([]byte(verifier))
	want := base64.RawURLEncoding.EncodeToString(h[:])
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerateCodeChallenge_NoPadding(t *testing.T) {
	v, _ := GenerateCodeVerifier()
	challenge := GenerateCodeChallenge(v)
	if strings.Contains(challenge, "=") {
		t.Error("challenge contains padding character '='")
	}
}

func TestGenerateState_Length(t *testing.T) {
	s, err := GenerateState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 32 bytes → 64 hex chars
	if len(s) != 64 {
		t.Errorf("got length %d, want 64", len(s))
	}
}

func TestGenerateState_PairwiseDistinct(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		s, err := GenerateState()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[s]; dup {
			t.Fatalf("state %q repeated within 100 generations", s)
		}
		seen[s] = struct{}{}
	}
}
