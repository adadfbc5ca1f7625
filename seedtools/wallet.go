package seedtools

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"xpdesc/walletdesc"
)

// Wallet is the master key of a mnemonic on one network.
type Wallet struct {
	master      *hdkeychain.ExtendedKey
	params      *chaincfg.Params
	fingerprint string
}

// NewWallet creates the master key of mnemonic and passphrase.
func NewWallet(mnemonic, passphrase string, params *chaincfg.Params) (*Wallet,
	error) {

	seed, err := MnemonicSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	pubKey, err := master.ECPubKey()
	if err != nil {
		return nil, err
	}
	fingerprint := btcutil.Hash160(pubKey.SerializeCompressed())[:4]

	return &Wallet{
		master:      master,
		params:      params,
		fingerprint: hex.EncodeToString(fingerprint),
	}, nil
}

// Fingerprint returns the lower case fingerprint of the master key.
func (w *Wallet) Fingerprint() string {
	return w.fingerprint
}

// Params returns the network of the wallet.
func (w *Wallet) Params() *chaincfg.Params {
	return w.params
}

// DeriveKey derives the extended private key at keyOrigin, e.g.
// m/84h/1h/0h.
func (w *Wallet) DeriveKey(keyOrigin string) (*hdkeychain.ExtendedKey, error) {
	canonical, err := walletdesc.FormatKeyOrigin(keyOrigin, true)
	if err != nil {
		return nil, err
	}
	path, _ := walletdesc.RobustParsePath(canonical)

	key := w.master
	for _, index := range path {
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s at index "+
				"%d: %w", canonical, index, err)
		}
	}
	log.Debugf("Derived %s of master key %s", canonical, w.fingerprint)
	return key, nil
}

// DeriveAccount derives the private key of an account of addressType, e.g.
// m/84'/coin_type'/account' for p2wpkh or m/48'/coin_type'/account'/2' for
// p2wsh.
func (w *Wallet) DeriveAccount(addressType *walletdesc.AddressType,
	account uint32) (*hdkeychain.ExtendedKey, error) {

	if account >= hdkeychain.HardenedKeyStart {
		return nil, fmt.Errorf("invalid account: %d", account)
	}

	path, _ := walletdesc.RobustParsePath(addressType.KeyOrigin(w.params))
	path[2] = hdkeychain.HardenedKeyStart + account // account

	currentKey := w.master
	for _, index := range path {
		var err error
		currentKey, err = currentKey.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive at index %d: %w",
				index, err)
		}
	}
	return currentKey, nil
}

// Derive returns the extended public key at keyOrigin and the master
// fingerprint.
func (w *Wallet) Derive(keyOrigin string) (string, string, error) {
	key, err := w.DeriveKey(keyOrigin)
	if err != nil {
		return "", "", err
	}
	xpub, err := key.Neuter()
	if err != nil {
		return "", "", err
	}
	return xpub.String(), w.fingerprint, nil
}

// DeriveProvider returns the key provider of the account at keyOrigin with
// the given derivation suffix.
func (w *Wallet) DeriveProvider(keyOrigin,
	derivationPath string) (*walletdesc.SimplePubKeyProvider, error) {

	xpub, fingerprint, err := w.Derive(keyOrigin)
	if err != nil {
		return nil, err
	}
	return walletdesc.NewSimplePubKeyProvider(xpub, fingerprint, keyOrigin,
		derivationPath)
}

// Derive returns the extended public key of mnemonic at keyOrigin and the
// master fingerprint. No passphrase is used.
func Derive(mnemonic, keyOrigin string, params *chaincfg.Params) (string,
	string, error) {

	w, err := NewWallet(mnemonic, "", params)
	if err != nil {
		return "", "", err
	}
	return w.Derive(keyOrigin)
}

// DeriveProvider is the package level form of Wallet.DeriveProvider.
func DeriveProvider(mnemonic, keyOrigin string, params *chaincfg.Params,
	derivationPath string) (*walletdesc.SimplePubKeyProvider, error) {

	w, err := NewWallet(mnemonic, "", params)
	if err != nil {
		return nil, err
	}
	return w.DeriveProvider(keyOrigin, derivationPath)
}
