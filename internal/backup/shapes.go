package backup

import (
	"encoding/json"
	"fmt"

	kerrors "github.com/quillsec/keybak/internal/errors"
)

// Kind identifies which structural variant a backup payload takes.
type Kind string

const (
	// KindMasterLegacy is a legacy master backup carrying an extended private key.
	KindMasterLegacy Kind = "master-legacy"
	// KindMasterType42 is a type-42 master backup carrying a root private key.
	KindMasterType42 Kind = "master-type42"
	// KindMember is a member key backup (WIF plus identity address).
	KindMember Kind = "member"
	// KindBareSecret is a single WIF with no other structure, including the
	// pre-JSON legacy format.
	KindBareSecret Kind = "bare-secret"
	// KindTriKey is a three-key wallet backup (ordinals, payment, identity).
	KindTriKey Kind = "tri-key"
	// KindVault is an opaque encrypted vault blob.
	KindVault Kind = "vault"
	// KindDerivedKeySet is a derived-key wallet backup carrying a mnemonic
	// or derivation paths alongside the payment and ordinals keys.
	KindDerivedKeySet Kind = "derived-key-set"
	// KindArchiveBundle is a full browser-extension archive export.
	KindArchiveBundle Kind = "archive-bundle"
)

// Backup is the tagged union of all backup payload variants. It is a sealed
// interface: only the variant structs in this package implement it, so
// callers can switch exhaustively on the concrete type or on Kind().
type Backup interface {
	// Kind reports which variant this payload is.
	Kind() Kind

	sealed()
}

// Meta holds the optional fields shared by every variant.
type Meta struct {
	// Label is free-text supplied by the user.
	Label string `json:"label,omitempty"`

	// CreatedAt is an ISO-8601 timestamp. If absent at encryption time it is
	// stamped by the codec engine.
	CreatedAt string `json:"createdAt,omitempty"`
}

// MasterLegacy is a legacy master backup: encrypted identity bundle plus an
// extended private key and its mnemonic.
type MasterLegacy struct {
	Meta
	IDs      string `json:"ids"`
	XPrv     string `json:"xprv"`
	Mnemonic string `json:"mnemonic"`
}

// MasterType42 is a type-42 master backup: encrypted identity bundle plus a
// root private key. It never carries an xprv.
type MasterType42 struct {
	Meta
	IDs    string `json:"ids"`
	RootPk string `json:"rootPk"`
}

// Member is a member key backup.
type Member struct {
	Meta
	WIF string `json:"wif"`
	ID  string `json:"id"`
}

// BareSecret is a single WIF-encoded key. Plaintexts that predate the
// structured JSON formats decrypt to this variant with empty Meta.
type BareSecret struct {
	Meta
	WIF string `json:"wif"`
}

// TriKey is a three-key wallet backup.
type TriKey struct {
	Meta
	OrdPk      string `json:"ordPk"`
	PayPk      string `json:"payPk"`
	IdentityPk string `json:"identityPk"`
}

// Vault wraps an opaque, separately encrypted vault blob.
type Vault struct {
	Meta
	EncryptedVault string `json:"encryptedVault"`
}

// DerivedKeySet is a derived-key wallet backup. It shares payPk/ordPk with
// TriKey and is told apart by the presence of at least one derivation
// marker: a mnemonic or a derivation path.
type DerivedKeySet struct {
	Meta
	PayPk             string `json:"payPk"`
	OrdPk             string `json:"ordPk"`
	Mnemonic          string `json:"mnemonic,omitempty"`
	PayDerivationPath string `json:"payDerivationPath,omitempty"`
	OrdDerivationPath string `json:"ordDerivationPath,omitempty"`
}

// ArchiveBundle is a full browser-extension archive export.
type ArchiveBundle struct {
	Meta
	ChromeStorage map[string]any `json:"chromeStorage"`
	AccountData   any            `json:"accountData"`
}

func (MasterLegacy) Kind() Kind  { return KindMasterLegacy }
func (MasterType42) Kind() Kind  { return KindMasterType42 }
func (Member) Kind() Kind        { return KindMember }
func (BareSecret) Kind() Kind    { return KindBareSecret }
func (TriKey) Kind() Kind        { return KindTriKey }
func (Vault) Kind() Kind         { return KindVault }
func (DerivedKeySet) Kind() Kind { return KindDerivedKeySet }
func (ArchiveBundle) Kind() Kind { return KindArchiveBundle }

func (MasterLegacy) sealed()  {}
func (MasterType42) sealed()  {}
func (Member) sealed()        {}
func (BareSecret) sealed()    {}
func (TriKey) sealed()        {}
func (Vault) sealed()         {}
func (DerivedKeySet) sealed() {}
func (ArchiveBundle) sealed() {}

// rule pairs a presence predicate with the variant it selects and a decoder
// that materializes the typed struct.
type rule struct {
	kind   Kind
	match  func(obj map[string]any) bool
	decode func(data []byte) (Backup, error)
}

// shapeRules is the single ordered predicate table shared by the
// encrypt-side payload validator and the decrypt-side classifier. Rules run
// most-constrained-first so that overlapping field sets always resolve to
// the most specific variant. The order is load-bearing: DerivedKeySet must
// precede TriKey, Member must precede BareSecret, and the master variants
// must precede both.
var shapeRules = []rule{
	{
		kind: KindArchiveBundle,
		match: func(obj map[string]any) bool {
			return hasObject(obj, "chromeStorage") && present(obj, "accountData")
		},
		decode: decodeInto[ArchiveBundle],
	},
	{
		kind: KindVault,
		match: func(obj map[string]any) bool {
			return hasString(obj, "encryptedVault")
		},
		decode: decodeInto[Vault],
	},
	{
		kind: KindMasterLegacy,
		match: func(obj map[string]any) bool {
			return hasString(obj, "ids") && hasString(obj, "xprv") && hasString(obj, "mnemonic")
		},
		decode: decodeInto[MasterLegacy],
	},
	{
		kind: KindMasterType42,
		match: func(obj map[string]any) bool {
			return hasString(obj, "ids") && hasString(obj, "rootPk") && !present(obj, "xprv")
		},
		decode: decodeInto[MasterType42],
	},
	{
		kind: KindDerivedKeySet,
		match: func(obj map[string]any) bool {
			if !hasString(obj, "payPk") || !hasString(obj, "ordPk") {
				return false
			}
			return hasString(obj, "mnemonic") ||
				hasString(obj, "payDerivationPath") ||
				hasString(obj, "ordDerivationPath")
		},
		decode: decodeInto[DerivedKeySet],
	},
	{
		kind: KindTriKey,
		match: func(obj map[string]any) bool {
			return hasString(obj, "ordPk") && hasString(obj, "payPk") && hasString(obj, "identityPk")
		},
		decode: decodeInto[TriKey],
	},
	{
		kind: KindMember,
		match: func(obj map[string]any) bool {
			return hasString(obj, "wif") && hasString(obj, "id") &&
				!present(obj, "xprv") && !present(obj, "rootPk")
		},
		decode: decodeInto[Member],
	},
	{
		kind: KindBareSecret,
		match: func(obj map[string]any) bool {
			return hasString(obj, "wif") && !present(obj, "id") &&
				!present(obj, "xprv") && !present(obj, "rootPk")
		},
		decode: decodeInto[BareSecret],
	},
}

// Classify maps a decoded payload object onto exactly one backup variant.
// It is a pure function over key presence: values are only checked for the
// expected primitive type, never for content. Returns ErrUnrecognizedShape
// if no rule matches.
func Classify(obj map[string]any) (Backup, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding payload for classification: %w", err)
	}
	for _, r := range shapeRules {
		if r.match(obj) {
			b, err := r.decode(data)
			if err != nil {
				return nil, fmt.Errorf("decoding %s payload: %w", r.kind, err)
			}
			return b, nil
		}
	}
	return nil, kerrors.ErrUnrecognizedShape
}

// decodeInto unmarshals the payload bytes into the concrete variant struct.
func decodeInto[T Backup](data []byte) (Backup, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// present reports whether the key exists at all, regardless of value type.
func present(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

// hasString reports whether the key is present with a string value.
func hasString(obj map[string]any, key string) bool {
	v, ok := obj[key]
	if !ok {
		return false
	}
	_, ok = v.(string)
	return ok
}

// hasObject reports whether the key is present with a nested object value.
func hasObject(obj map[string]any, key string) bool {
	v, ok := obj[key]
	if !ok {
		return false
	}
	_, ok = v.(map[string]any)
	return ok
}
