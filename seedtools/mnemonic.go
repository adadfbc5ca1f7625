// Package seedtools derives wallet key material from BIP39 mnemonics.
package seedtools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cosmos/go-bip39"
)

// ErrInvalidMnemonic is returned for a mnemonic with an unknown word or a
// bad checksum.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// GenerateMnemonic returns a new mnemonic. entropyBits must be a multiple of
// 32 between 128 and 256.
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits%32 != 0 || entropyBits < 128 || entropyBits > 256 {
		return "", fmt.Errorf("invalid entropy bits: %d", entropyBits)
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// NormalizeMnemonic lower cases the mnemonic and collapses runs of
// whitespace to single spaces.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// MnemonicSeed validates the mnemonic and returns its BIP39 seed.
func MnemonicSeed(mnemonic, passphrase string) ([]byte, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}
