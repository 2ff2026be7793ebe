package exports

import (
	"strings"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if !strings.HasPrefix(plaintext, "off_") {
		t.Errorf("plaintext missing prefix: %q", plaintext)
	}
	if len(plaintext) != len("off_")+64 {
		t.Errorf("unexpected plaintext length %d", len(plaintext))
	}
	if prefix != plaintext[:12] {
		t.Errorf("prefix %q does not match plaintext %q", prefix, plaintext)
	}
	if hash != HashKey(plaintext) {
		t.Error("stored hash does not match HashKey of plaintext")
	}
}

func TestGenerateAPIKeyUnique(t *testing.T) {
	a, _, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	b, _, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if a == b {
		t.Error("two generated keys are identical")
	}
}

func TestHashKeyDeterministic(t *testing.T) {
	if HashKey("off_abc") != HashKey("off_abc") {
		t.Error("HashKey is not deterministic")
	}
	if HashKey("off_abc") == HashKey("off_abd") {
		t.Error("different keys hash equal")
	}
}
