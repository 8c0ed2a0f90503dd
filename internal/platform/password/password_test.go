package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !Verify(hash, "correct horse battery staple") {
		t.Error("correct password did not verify")
	}
	if Verify(hash, "wrong password") {
		t.Error("wrong password verified")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	t.Parallel()

	first, err := Hash("same input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Hash("same input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same input are identical, salt is not random")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"plaintext stored as hash", "password123"},
		{"truncated hash", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if Verify(tt.hash, "password123") {
				t.Error("malformed hash verified")
			}
		})
	}
}

func TestDummyHash_IsComparable(t *testing.T) {
	t.Parallel()

	// The dummy must be a parseable bcrypt blob so a comparison against it
	// costs the same as a real one. No plaintext should ever match it.
	if Verify(DummyHash, "") || Verify(DummyHash, "password123") {
		t.Error("dummy hash matched a plaintext")
	}
}
