package backup

import (
	"bytes"
	"testing"
)

// testIterations keeps key stretching fast in tests. The iteration count is
// a free parameter of the engine, so low counts exercise the same code.
const testIterations = 1024

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0xA5}, SaltSize)

	key1 := DeriveKey("correct horse battery staple", salt, testIterations)
	key2 := DeriveKey("correct horse battery staple", salt, testIterations)

	if !bytes.Equal(key1, key2) {
		t.Error("Expected identical inputs to derive identical keys")
	}
	if len(key1) != 32 {
		t.Errorf("Expected a 32-byte key, got: %d", len(key1))
	}
}

func TestDeriveKey_SaltChangesKey(t *testing.T) {
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	key1 := DeriveKey("correct horse battery staple", salt1, testIterations)
	key2 := DeriveKey("correct horse battery staple", salt2, testIterations)

	if bytes.Equal(key1, key2) {
		t.Error("Expected different salts to derive different keys")
	}
}

func TestDeriveKey_IterationsChangeKey(t *testing.T) {
	salt := bytes.Repeat([]byte{0x03}, SaltSize)

	key1 := DeriveKey("correct horse battery staple", salt, testIterations)
	key2 := DeriveKey("correct horse battery staple", salt, testIterations+1)

	if bytes.Equal(key1, key2) {
		t.Error("Expected different iteration counts to derive different keys")
	}
}

func TestDeriveKey_PassphraseChangesKey(t *testing.T) {
	salt := bytes.Repeat([]byte{0x04}, SaltSize)

	key1 := DeriveKey("passphrase one", salt, testIterations)
	key2 := DeriveKey("passphrase two", salt, testIterations)

	if bytes.Equal(key1, key2) {
		t.Error("Expected different passphrases to derive different keys")
	}
}

func TestIterationConstants(t *testing.T) {
	if RecommendedIterations <= LegacyIterations {
		t.Errorf("Expected recommended count (%d) to exceed legacy count (%d)",
			RecommendedIterations, LegacyIterations)
	}
	candidates := DefaultIterationCandidates()
	if len(candidates) != 2 || candidates[0] != RecommendedIterations || candidates[1] != LegacyIterations {
		t.Errorf("Expected default candidates [recommended, legacy], got: %v", candidates)
	}
}
