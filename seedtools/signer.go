package seedtools

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"xpdesc/descriptor"
	"xpdesc/walletdesc"
)

// AccountXpub is the account level extended public key of one address type.
type AccountXpub struct {
	AddressType *walletdesc.AddressType
	KeyOrigin   string
	XPub        string
}

// SoftwareSigner holds the keys of a mnemonic in memory.
type SoftwareSigner struct {
	wallet *Wallet
}

// NewSoftwareSigner creates a signer for mnemonic and passphrase.
func NewSoftwareSigner(mnemonic, passphrase string,
	params *chaincfg.Params) (*SoftwareSigner, error) {

	w, err := NewWallet(mnemonic, passphrase, params)
	if err != nil {
		return nil, err
	}
	return &SoftwareSigner{wallet: w}, nil
}

// Fingerprint returns the lower case master key fingerprint.
func (s *SoftwareSigner) Fingerprint() string {
	return s.wallet.Fingerprint()
}

// Derive returns the extended public key at keyOrigin and the master
// fingerprint.
func (s *SoftwareSigner) Derive(keyOrigin string) (string, string, error) {
	return s.wallet.Derive(keyOrigin)
}

// Xpubs returns the account xpub of every supported address type in
// catalog order.
func (s *SoftwareSigner) Xpubs() ([]AccountXpub, error) {
	addressTypes := walletdesc.AddressTypes()
	xpubs := make([]AccountXpub, 0, len(addressTypes))
	for _, addressType := range addressTypes {
		key, err := s.wallet.DeriveAccount(addressType, 0)
		if err != nil {
			return nil, err
		}
		xpub, err := key.Neuter()
		if err != nil {
			return nil, err
		}
		xpubs = append(xpubs, AccountXpub{
			AddressType: addressType,
			KeyOrigin:   addressType.KeyOrigin(s.wallet.params),
			XPub:        xpub.String(),
		})
	}
	return xpubs, nil
}

// DescriptorWithSecrets returns publicDescriptor with the extended public
// keys of this signer replaced by the matching extended private keys. Key
// origins are written with ' and a new checksum is appended.
func (s *SoftwareSigner) DescriptorWithSecrets(publicDescriptor string) (
	string, error) {

	tree, err := descriptor.Parse(publicDescriptor)
	if err != nil {
		return "", err
	}
	text := tree.StringNoChecksum('\'')

	replaced := 0
	for _, key := range descriptorKeys(tree) {
		if key.Origin == nil ||
			key.Origin.FingerprintHex() != s.wallet.fingerprint {

			continue
		}

		priv, err := s.wallet.DeriveKey(key.Origin.DerivationPath())
		if err != nil {
			return "", err
		}
		pub, err := priv.Neuter()
		if err != nil {
			return "", err
		}
		if pub.String() != key.Pubkey {
			log.Debugf("Key %s has the fingerprint of the signer but "+
				"was not derived from it", key.Pubkey)
			continue
		}

		public := &descriptor.PubkeyProvider{
			Origin: key.Origin,
			Pubkey: key.Pubkey,
		}
		secret := &descriptor.PubkeyProvider{
			Origin: key.Origin,
			Pubkey: priv.String(),
		}
		text = strings.ReplaceAll(text, public.Format('\''),
			secret.Format('\''))
		replaced++
	}
	if replaced == 0 {
		log.Warnf("No key of %s belongs to the signer %s",
			publicDescriptor, s.wallet.fingerprint)
	}

	out, err := descriptor.AddChecksum(text)
	if err != nil {
		return "", fmt.Errorf("failed to add checksum: %w", err)
	}
	return out, nil
}

// descriptorKeys returns every key of the descriptor tree in textual order.
func descriptorKeys(d *descriptor.Descriptor) []*descriptor.PubkeyProvider {
	keys := append([]*descriptor.PubkeyProvider(nil), d.Keys...)
	for _, sub := range d.Subdescriptors() {
		keys = append(keys, descriptorKeys(sub)...)
	}
	return keys
}
