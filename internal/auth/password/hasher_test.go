package password

import (
	"errors"
	"strings"
	"testing"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(WithCost(4)) // min cost keeps the test fast

	hash, err := h.Hash("SecurePassword123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "SecurePassword123!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt format, got %q", hash)
	}

	if err := h.Verify("SecurePassword123!", hash); err != nil {
		t.Errorf("expected verify to succeed, got %v", err)
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))

	a, _ := h.Hash("SecurePassword123!")
	b, _ := h.Hash("SecurePassword123!")
	if a == b {
		t.Error("two hashes of the same password must differ (random salt)")
	}
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))

	hash, _ := h.Hash("SecurePassword123!")
	err := h.Verify("wrong-password", hash)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher()

	// A malformed stored hash is a verification failure, not a crash, and is
	// indistinguishable from a wrong password.
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		err := h.Verify("SecurePassword123!", hash)
		if !errors.Is(err, ErrMismatch) {
			t.Errorf("hash %q: expected ErrMismatch, got %v", hash, err)
		}
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	if _, err := h.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("expected error for password over the bcrypt limit")
	}
}

func TestWithCost_IgnoresOutOfRange(t *testing.T) {
	h := NewBcryptHasher(WithCost(99))
	if h.cost != 12 {
		t.Errorf("out-of-range cost should keep the default, got %d", h.cost)
	}
}
