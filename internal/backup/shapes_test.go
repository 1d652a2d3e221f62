package backup

import (
	"errors"
	"testing"

	kerrors "github.com/quillsec/keybak/internal/errors"
)

// classifyKind is a helper asserting that the payload classifies as the
// expected variant.
func classifyKind(t *testing.T, obj map[string]any, want Kind) Backup {
	t.Helper()
	b, err := Classify(obj)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if b.Kind() != want {
		t.Fatalf("Expected %s, got: %s", want, b.Kind())
	}
	return b
}

func TestClassify_MasterLegacy(t *testing.T) {
	b := classifyKind(t, map[string]any{
		"ids":      "encrypted-id-bundle",
		"xprv":     "xprv9s21ZrQH1",
		"mnemonic": "abandon abandon about",
	}, KindMasterLegacy)

	master, ok := b.(MasterLegacy)
	if !ok {
		t.Fatalf("Expected MasterLegacy struct, got: %T", b)
	}
	if master.XPrv != "xprv9s21ZrQH1" {
		t.Errorf("Expected xprv to survive decoding, got: %q", master.XPrv)
	}
}

func TestClassify_MasterType42(t *testing.T) {
	classifyKind(t, map[string]any{
		"ids":    "encrypted-id-bundle",
		"rootPk": "KxFC1jm",
	}, KindMasterType42)
}

func TestClassify_MasterType42_XprvWins(t *testing.T) {
	// A payload with both xprv and rootPk is legacy: the xprv rule runs first.
	classifyKind(t, map[string]any{
		"ids":      "encrypted-id-bundle",
		"xprv":     "xprv9s21ZrQH1",
		"mnemonic": "abandon abandon about",
		"rootPk":   "KxFC1jm",
	}, KindMasterLegacy)
}

func TestClassify_Member(t *testing.T) {
	classifyKind(t, map[string]any{
		"wif": "L1aW4aubDFB7yfras2S1mN3bqg9nwySY8nkoLmJebSLD5BWv3ENZ",
		"id":  "1Hv9UQ2Y4rEBnL6DCaDTXqRzobHbSF3FcK",
	}, KindMember)
}

func TestClassify_BareSecret(t *testing.T) {
	classifyKind(t, map[string]any{
		"wif": "L1aW4aubDFB7yfras2S1mN3bqg9nwySY8nkoLmJebSLD5BWv3ENZ",
	}, KindBareSecret)
}

func TestClassify_TriKey(t *testing.T) {
	classifyKind(t, map[string]any{
		"ordPk":      "KzQ1",
		"payPk":      "Kx9a",
		"identityPk": "L3vC",
	}, KindTriKey)
}

func TestClassify_Vault(t *testing.T) {
	classifyKind(t, map[string]any{
		"encryptedVault": "AAECAwQFBgcICQ==",
	}, KindVault)
}

func TestClassify_DerivedKeySet_ByDerivationPath(t *testing.T) {
	// payPk + ordPk + a derivation marker is a derived key set, never a
	// tri-key, even though no identityPk is present.
	classifyKind(t, map[string]any{
		"payPk":             "Kx9a",
		"ordPk":             "KzQ1",
		"payDerivationPath": "m/44'/236'/0'/1/0",
	}, KindDerivedKeySet)
}

func TestClassify_DerivedKeySet_ByMnemonic(t *testing.T) {
	classifyKind(t, map[string]any{
		"payPk":    "Kx9a",
		"ordPk":    "KzQ1",
		"mnemonic": "abandon abandon about",
	}, KindDerivedKeySet)
}

func TestClassify_TriKey_NotDerivedKeySet(t *testing.T) {
	// All three keys and no derivation marker is a tri-key.
	classifyKind(t, map[string]any{
		"payPk":      "Kx9a",
		"ordPk":      "KzQ1",
		"identityPk": "L3vC",
	}, KindTriKey)
}

func TestClassify_ArchiveBundle(t *testing.T) {
	b := classifyKind(t, map[string]any{
		"chromeStorage": map[string]any{"accounts": map[string]any{"0": "data"}},
		"accountData":   []any{"entry"},
	}, KindArchiveBundle)

	bundle := b.(ArchiveBundle)
	if bundle.ChromeStorage == nil {
		t.Error("Expected chromeStorage to survive decoding")
	}
}

func TestClassify_ArchiveBundle_RequiresObjectStorage(t *testing.T) {
	// chromeStorage must be a nested object, not a string.
	_, err := Classify(map[string]any{
		"chromeStorage": "not-an-object",
		"accountData":   []any{},
	})
	if !errors.Is(err, kerrors.ErrUnrecognizedShape) {
		t.Errorf("Expected ErrUnrecognizedShape, got: %v", err)
	}
}

func TestClassify_VaultBeatsLooserShapes(t *testing.T) {
	// encryptedVault alone is sufficient and exclusive.
	classifyKind(t, map[string]any{
		"encryptedVault": "AAECAw==",
		"label":          "my vault",
	}, KindVault)
}

func TestClassify_NoMatch(t *testing.T) {
	_, err := Classify(map[string]any{"foo": "bar"})
	if !errors.Is(err, kerrors.ErrUnrecognizedShape) {
		t.Errorf("Expected ErrUnrecognizedShape, got: %v", err)
	}
}

func TestClassify_EmptyObject(t *testing.T) {
	_, err := Classify(map[string]any{})
	if !errors.Is(err, kerrors.ErrUnrecognizedShape) {
		t.Errorf("Expected ErrUnrecognizedShape, got: %v", err)
	}
}

func TestClassify_WrongValueType(t *testing.T) {
	// Presence checks require the expected primitive type: a numeric wif is
	// not a bare secret.
	_, err := Classify(map[string]any{"wif": 42.0})
	if !errors.Is(err, kerrors.ErrUnrecognizedShape) {
		t.Errorf("Expected ErrUnrecognizedShape, got: %v", err)
	}
}

func TestClassify_MetaFieldsPreserved(t *testing.T) {
	b := classifyKind(t, map[string]any{
		"wif":       "L1aW4aub",
		"id":        "1Hv9UQ2Y",
		"label":     "work identity",
		"createdAt": "2024-06-01T12:00:00Z",
	}, KindMember)

	member := b.(Member)
	if member.Label != "work identity" {
		t.Errorf("Expected label to survive decoding, got: %q", member.Label)
	}
	if member.CreatedAt != "2024-06-01T12:00:00Z" {
		t.Errorf("Expected createdAt to survive decoding, got: %q", member.CreatedAt)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	obj := map[string]any{
		"payPk":             "Kx9a",
		"ordPk":             "KzQ1",
		"ordDerivationPath": "m/44'/236'/1'/0/0",
	}
	first := classifyKind(t, obj, KindDerivedKeySet)
	second := classifyKind(t, obj, KindDerivedKeySet)
	if first.Kind() != second.Kind() {
		t.Error("Expected repeated classification to agree")
	}
}

func TestClassifyPlaintext_LegacyBareString(t *testing.T) {
	b, err := ClassifyPlaintext([]byte("L1aW4aubDFB7yfras2S1mN3bqg9nwySY8nkoLmJebSLD5BWv3ENZ"))
	if err != nil {
		t.Fatalf("ClassifyPlaintext failed: %v", err)
	}
	bare, ok := b.(BareSecret)
	if !ok {
		t.Fatalf("Expected BareSecret, got: %T", b)
	}
	if bare.WIF != "L1aW4aubDFB7yfras2S1mN3bqg9nwySY8nkoLmJebSLD5BWv3ENZ" {
		t.Errorf("Expected the raw plaintext as WIF, got: %q", bare.WIF)
	}
	if bare.Label != "" || bare.CreatedAt != "" {
		t.Error("Expected a legacy bare secret to carry no label or timestamp")
	}
}

func TestClassifyPlaintext_NonObjectJSON(t *testing.T) {
	// Valid JSON that is not an object cannot be a pre-JSON legacy secret.
	for _, plaintext := range []string{`42`, `[1,2,3]`, `"quoted"`, `null`} {
		_, err := ClassifyPlaintext([]byte(plaintext))
		if !errors.Is(err, kerrors.ErrUnrecognizedShape) {
			t.Errorf("Expected ErrUnrecognizedShape for %q, got: %v", plaintext, err)
		}
	}
}

func TestClassifyPlaintext_Object(t *testing.T) {
	b, err := ClassifyPlaintext([]byte(`{"encryptedVault":"AAECAw=="}`))
	if err != nil {
		t.Fatalf("ClassifyPlaintext failed: %v", err)
	}
	if b.Kind() != KindVault {
		t.Errorf("Expected vault, got: %s", b.Kind())
	}
}
