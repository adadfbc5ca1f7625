package walletdesc

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg"
)

// ScriptKind is the kind of one node in the linear chain of a descriptor.
type ScriptKind uint8

const (
	// KindPK is a bare pk() leaf. No address type uses it.
	KindPK ScriptKind = iota

	// KindPKH is the legacy pay-to-pubkey-hash leaf pkh().
	KindPKH

	// KindWPKH is the segwit v0 pubkey-hash leaf wpkh().
	KindWPKH

	// KindSH is the script-hash wrapper sh().
	KindSH

	// KindWSH is the segwit v0 script wrapper wsh().
	KindWSH

	// KindTR is the taproot leaf tr().
	KindTR

	// KindSortedMulti is the sorted multisig leaf sortedmulti().
	KindSortedMulti

	// KindMulti is the unsorted multisig leaf multi(). It is recognized in
	// input only; no address type ends in it.
	KindMulti
)

var scriptKindStrings = map[ScriptKind]string{
	KindPK:          "pk",
	KindPKH:         "pkh",
	KindWPKH:        "wpkh",
	KindSH:          "sh",
	KindWSH:         "wsh",
	KindTR:          "tr",
	KindSortedMulti: "sortedmulti",
	KindMulti:       "multi",
}

// String returns the descriptor function name of the kind.
func (k ScriptKind) String() string {
	if s, ok := scriptKindStrings[k]; ok {
		return s
	}
	return "Unknown ScriptKind (" + strconv.Itoa(int(k)) + ")"
}

// IsMultisig reports whether the kind is a multisig leaf.
func (k ScriptKind) IsMultisig() bool {
	return k == KindSortedMulti || k == KindMulti
}

// DeviceAddressType is the address type a hardware signer is asked to
// display or register.
type DeviceAddressType uint8

const (
	DeviceLegacy DeviceAddressType = iota + 1
	DeviceWit
	DeviceShWit
	DeviceTap
)

var deviceAddressTypeStrings = map[DeviceAddressType]string{
	DeviceLegacy: "LEGACY",
	DeviceWit:    "WIT",
	DeviceShWit:  "SH_WIT",
	DeviceTap:    "TAP",
}

// String returns the device address type name.
func (t DeviceAddressType) String() string {
	if s, ok := deviceAddressTypeStrings[t]; ok {
		return s
	}
	return "Unknown DeviceAddressType (" + strconv.Itoa(int(t)) + ")"
}

// AddressType is one supported wallet template: a fixed chain of script
// kinds plus the BIP that defines its key origin.
type AddressType struct {
	shortName   string
	name        string
	isMultisig  bool
	kinds       []ScriptKind
	device      DeviceAddressType
	infoURL     string
	description string

	// purpose is the first level of the canonical key origin, scriptType
	// the optional BIP48 script type level after the account.
	purpose    uint32
	scriptType uint32
}

var (
	// P2PKH is the BIP44 legacy single key template.
	P2PKH = &AddressType{
		shortName:   "p2pkh",
		name:        "Single Sig (Legacy/p2pkh)",
		kinds:       []ScriptKind{KindPKH},
		device:      DeviceLegacy,
		purpose:     44,
		infoURL:     "https://learnmeabitcoin.com/technical/derivation-paths",
		description: "Legacy (single sig) addresses that look like 1addresses",
	}

	// P2SHP2WPKH is the BIP49 nested segwit single key template.
	P2SHP2WPKH = &AddressType{
		shortName:   "p2sh-p2wpkh",
		name:        "Single Sig (Nested/p2sh-p2wpkh)",
		kinds:       []ScriptKind{KindSH, KindWPKH},
		device:      DeviceShWit,
		purpose:     49,
		infoURL:     "https://learnmeabitcoin.com/technical/derivation-paths",
		description: "Nested (single sig) addresses that look like 3addresses",
	}

	// P2WPKH is the BIP84 native segwit single key template.
	P2WPKH = &AddressType{
		shortName:   "p2wpkh",
		name:        "Single Sig (SegWit/p2wpkh)",
		kinds:       []ScriptKind{KindWPKH},
		device:      DeviceWit,
		purpose:     84,
		infoURL:     "https://learnmeabitcoin.com/technical/derivation-paths",
		description: "SegWit (single sig) addresses that look like bc1addresses",
	}

	// P2TR is the BIP86 taproot single key template.
	P2TR = &AddressType{
		shortName:   "p2tr",
		name:        "Single Sig (Taproot/p2tr)",
		kinds:       []ScriptKind{KindTR},
		device:      DeviceTap,
		purpose:     86,
		infoURL:     "https://github.com/bitcoin/bips/blob/master/bip-0386.mediawiki",
		description: "Taproot (single sig) addresses ",
	}

	// P2SHP2WSH is the BIP48 nested segwit multisig template.
	P2SHP2WSH = &AddressType{
		shortName:   "p2sh-p2wsh",
		name:        "Multi Sig (Nested/p2sh-p2wsh)",
		isMultisig:  true,
		kinds:       []ScriptKind{KindSH, KindWSH, KindSortedMulti},
		device:      DeviceShWit,
		purpose:     48,
		scriptType:  1,
		infoURL:     "https://github.com/bitcoin/bips/blob/master/bip-0048.mediawiki",
		description: "Nested (multi sig) addresses that look like 3addresses",
	}

	// P2WSH is the BIP48 native segwit multisig template.
	P2WSH = &AddressType{
		shortName:   "p2wsh",
		name:        "Multi Sig (SegWit/p2wsh)",
		isMultisig:  true,
		kinds:       []ScriptKind{KindWSH, KindSortedMulti},
		device:      DeviceWit,
		purpose:     48,
		scriptType:  2,
		infoURL:     "https://github.com/bitcoin/bips/blob/master/bip-0048.mediawiki",
		description: "SegWit (multi sig) addresses that look like bc1addresses",
	}

	// addressTypes is the catalog in matching order.
	addressTypes = []*AddressType{
		P2PKH, P2SHP2WPKH, P2WPKH, P2TR, P2SHP2WSH, P2WSH,
	}
)

func init() {
	for _, t := range addressTypes {
		if err := t.validate(); err != nil {
			panic(err)
		}
	}
}

// validate checks that the last kind of the chain agrees with the multisig
// flag and that no template ends in an unsorted multisig.
func (t *AddressType) validate() error {
	if len(t.kinds) == 0 {
		return fmt.Errorf("address type %s has no script kinds",
			t.shortName)
	}
	last := t.kinds[len(t.kinds)-1]
	if last.IsMultisig() != t.isMultisig {
		return fmt.Errorf("address type %s: multisig flag does not "+
			"match terminal kind %v", t.shortName, last)
	}
	if last == KindMulti {
		return fmt.Errorf("address type %s must end in sortedmulti",
			t.shortName)
	}
	return nil
}

// ShortName returns the identifier of the address type, e.g. p2wsh.
func (t *AddressType) ShortName() string {
	return t.shortName
}

// Name returns the display name of the address type.
func (t *AddressType) Name() string {
	return t.name
}

// IsMultisig reports whether the address type is a multisig template.
func (t *AddressType) IsMultisig() bool {
	return t.isMultisig
}

// Kinds returns the chain of script kinds, outermost first.
func (t *AddressType) Kinds() []ScriptKind {
	kinds := make([]ScriptKind, len(t.kinds))
	copy(kinds, t.kinds)
	return kinds
}

// InfoURL returns a link documenting the address type.
func (t *AddressType) InfoURL() string {
	return t.infoURL
}

// Description returns a short description for display.
func (t *AddressType) Description() string {
	return t.description
}

// DeviceAddressType returns the address type a hardware signer uses for
// this template.
func (t *AddressType) DeviceAddressType() DeviceAddressType {
	return t.device
}

// KeyOrigin returns the canonical key origin of the first account on the
// given network, e.g. m/84h/1h/0h on testnet. params must not be nil.
func (t *AddressType) KeyOrigin(params *chaincfg.Params) string {
	indexes := []uint32{
		t.purpose | hardenedFlag,
		params.HDCoinType | hardenedFlag,
		hardenedFlag,
	}
	if t.scriptType != 0 {
		indexes = append(indexes, t.scriptType|hardenedFlag)
	}
	return KeyOriginIndexesToString(indexes)
}

// BIP32Path returns the path of an address relative to the account key.
func (t *AddressType) BIP32Path(keychain Keychain, index uint32) string {
	return fmt.Sprintf("m/%d/%d", uint32(keychain), index)
}

// String returns the display name.
func (t *AddressType) String() string {
	return t.name
}

// AddressTypes returns all supported address types in matching order.
func AddressTypes() []*AddressType {
	types := make([]*AddressType, len(addressTypes))
	copy(types, addressTypes)
	return types
}

// AddressTypesByMultisig returns the single key or the multisig address
// types.
func AddressTypesByMultisig(isMultisig bool) []*AddressType {
	var types []*AddressType
	for _, t := range addressTypes {
		if t.isMultisig == isMultisig {
			types = append(types, t)
		}
	}
	return types
}

// AddressTypeByShortName looks up an address type by its identifier.
func AddressTypeByShortName(shortName string) (*AddressType, bool) {
	for _, t := range addressTypes {
		if t.shortName == shortName {
			return t, true
		}
	}
	return nil, false
}

// SupportedShortNames returns the identifiers of all address types in
// matching order.
func SupportedShortNames() []string {
	names := make([]string, 0, len(addressTypes))
	for _, t := range addressTypes {
		names = append(names, t.shortName)
	}
	return names
}
