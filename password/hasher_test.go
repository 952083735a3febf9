package password

import (
	"strings"
	"testing"
)

func testHasher(t *testing.T) *Hasher {
	t.Helper()
	// Minimum legal memory keeps the tests fast.
	h, err := NewHasher(Params{MemoryKB: 8 * 1024, Time: 1, Parallelism: 1})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher(t)

	encoded, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected PHC prefix: %q", encoded)
	}
	if strings.Contains(encoded, "Abcd1234") {
		t.Fatal("hash must not contain the plaintext password")
	}

	ok, err := h.Verify("Abcd1234", encoded)
	if err != nil || !ok {
		t.Fatalf("Verify correct password: ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("Abcd12345", encoded)
	if err != nil {
		t.Fatalf("Verify wrong password errored: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher(t)

	a, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := testHasher(t)

	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$notbase64!!$x",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5",
	} {
		if _, err := h.Verify("x", bad); err == nil {
			t.Errorf("expected error for malformed hash %q", bad)
		}
	}
}

func TestParamDefaultsAndBounds(t *testing.T) {
	if _, err := NewHasher(Params{}); err != nil {
		t.Fatalf("zero params should take defaults: %v", err)
	}
	if _, err := NewHasher(Params{MemoryKB: 1024}); err == nil {
		t.Fatal("expected rejection of sub-minimum memory")
	}
	if _, err := NewHasher(Params{SaltLength: 8}); err == nil {
		t.Fatal("expected rejection of short salt")
	}
}
