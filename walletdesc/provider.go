package walletdesc

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"xpdesc/descriptor"
)

// Keychain selects the receive or the change branch of a wallet.
type Keychain uint32

const (
	KeychainExternal Keychain = 0
	KeychainInternal Keychain = 1
)

// String returns the name of the keychain.
func (k Keychain) String() string {
	switch k {
	case KeychainExternal:
		return "external"
	case KeychainInternal:
		return "internal"
	}
	return "Unknown Keychain (" + strconv.Itoa(int(k)) + ")"
}

// SimplePubKeyProvider is the key material one signer contributes to a
// wallet: an extended public key, the fingerprint of the master key it was
// derived from, the key origin leading to it and the derivation suffix
// appended after it.
//
// A SimplePubKeyProvider is immutable.
type SimplePubKeyProvider struct {
	xpub           string
	fingerprint    string
	keyOrigin      string
	derivationPath string
}

// NewSimplePubKeyProvider validates and normalizes the parts of a key
// provider. The extended key must survive a decode and re-encode unchanged.
func NewSimplePubKeyProvider(xpub, fingerprint, keyOrigin,
	derivationPath string) (*SimplePubKeyProvider, error) {

	xpub = strings.TrimSpace(xpub)
	if err := checkExtendedKey(xpub); err != nil {
		return nil, err
	}

	fingerprint, err := FormatFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	keyOrigin, err = FormatKeyOrigin(keyOrigin, true)
	if err != nil {
		return nil, err
	}
	derivationPath, err = FormatDerivationPath(derivationPath)
	if err != nil {
		return nil, err
	}

	return &SimplePubKeyProvider{
		xpub:           xpub,
		fingerprint:    fingerprint,
		keyOrigin:      keyOrigin,
		derivationPath: derivationPath,
	}, nil
}

func checkExtendedKey(xpub string) error {
	key, err := hdkeychain.NewKeyFromString(xpub)
	if err != nil {
		return formatError(fmt.Sprintf("%s is not a valid extended "+
			"key", xpub), err)
	}
	if key.IsPrivate() {
		return formatError("expected an extended public key, got a "+
			"private key", nil)
	}
	if key.String() != xpub {
		return formatError(fmt.Sprintf("xpub %s changed during "+
			"deserialize/serialize", xpub), nil)
	}
	return nil
}

// ProviderFromDescriptorKey converts a key of a parsed descriptor. The key
// must carry key origin information.
func ProviderFromDescriptorKey(key *descriptor.PubkeyProvider) (
	*SimplePubKeyProvider, error) {

	if key.Origin == nil {
		return nil, formatError(fmt.Sprintf("key %s has no key "+
			"origin information", key.Pubkey), nil)
	}
	return NewSimplePubKeyProvider(key.Pubkey, key.Origin.FingerprintHex(),
		key.Origin.DerivationPath(), key.DerivPath)
}

// XPub returns the extended public key.
func (p *SimplePubKeyProvider) XPub() string {
	return p.xpub
}

// Fingerprint returns the upper case master key fingerprint.
func (p *SimplePubKeyProvider) Fingerprint() string {
	return p.fingerprint
}

// KeyOrigin returns the canonical key origin, e.g. m/84h/1h/0h.
func (p *SimplePubKeyProvider) KeyOrigin() string {
	return p.keyOrigin
}

// DerivationPath returns the derivation suffix, e.g. /0/*.
func (p *SimplePubKeyProvider) DerivationPath() string {
	return p.derivationPath
}

// Clone returns a copy of the provider.
func (p *SimplePubKeyProvider) Clone() *SimplePubKeyProvider {
	c := *p
	return &c
}

// IsTestnet reports whether the network level of the key origin is the
// testnet coin type. The level must be hardened and either 0 or 1.
func (p *SimplePubKeyProvider) IsTestnet() (bool, error) {
	indexes, _ := RobustParsePath(p.keyOrigin)
	if len(indexes) <= networkDepth {
		return false, makeError(ErrDomain, fmt.Sprintf("the key origin "+
			"%s has no network level", p.keyOrigin), nil)
	}

	network := indexes[networkDepth]
	if network < hardenedFlag {
		return false, makeError(ErrDomain, fmt.Sprintf("the network "+
			"part %d of the key origin %s must be hardened",
			network, p.keyOrigin), nil)
	}

	switch network &^ hardenedFlag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, makeError(ErrDomain, fmt.Sprintf("unknown network/coin "+
		"type %dh in %s", network&^hardenedFlag, p.keyOrigin), nil)
}

// DescriptorKey returns the provider as a descriptor key, with the
// fingerprint and key origin joined in the key origin brackets.
func (p *SimplePubKeyProvider) DescriptorKey() *descriptor.PubkeyProvider {
	origin := &descriptor.KeyOrigin{}
	fp, _ := hex.DecodeString(p.fingerprint)
	copy(origin.Fingerprint[:], fp)
	origin.Path, _ = RobustParsePath(p.keyOrigin)

	return &descriptor.PubkeyProvider{
		Origin:    origin,
		Pubkey:    p.xpub,
		DerivPath: p.derivationPath,
	}
}

// AddressBIP32Path returns the full path from the master key to the address
// at index on the given keychain.
func (p *SimplePubKeyProvider) AddressBIP32Path(keychain Keychain,
	index uint32) string {

	return fmt.Sprintf("%s/%d/%d", p.keyOrigin, uint32(keychain), index)
}

// String returns the provider in descriptor key notation.
func (p *SimplePubKeyProvider) String() string {
	return p.DescriptorKey().String()
}
