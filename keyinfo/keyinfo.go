// Package keyinfo decodes BIP32 extended keys for display.
package keyinfo

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/blockchainspectre/go-bip32"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// KeyInfo holds the decoded fields of an extended key.
type KeyInfo struct {
	Raw               string
	Network           string
	KeyType           string
	Depth             uint8
	ParentFingerprint string
	ChildNumber       uint32
	ChainCode         string
	PublicKey         string
	PublicKeyHash160  string
	Fingerprint       string
	IsPrivate         bool
	Version           []byte
}

// Hardened reports whether the key was derived with a hardened index.
func (k *KeyInfo) Hardened() bool {
	return k.ChildNumber >= hdkeychain.HardenedKeyStart
}

// NetworkParams returns the chain parameters of a network name.
func NetworkParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "mainnet", "main":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3", "test":
		return &chaincfg.TestNet3Params, nil
	case "regtest", "reg":
		return &chaincfg.RegressionNetParams, nil
	case "signet", "sig":
		return &chaincfg.SigNetParams, nil
	}
	return nil, fmt.Errorf("unknown network: %s", network)
}

// Analyzer decodes extended keys, using its network for keys whose prefix
// does not name one.
type Analyzer struct {
	params *chaincfg.Params
}

// NewAnalyzer creates an analyzer for the named network.
func NewAnalyzer(network string) (*Analyzer, error) {
	params, err := NetworkParams(network)
	if err != nil {
		return nil, err
	}
	return &Analyzer{params: params}, nil
}

// Analyze decodes xkey.
func (a *Analyzer) Analyze(xkey string) (*KeyInfo, error) {
	xkey = strings.TrimSpace(xkey)
	extKey, err := hdkeychain.NewKeyFromString(xkey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extended key: %w", err)
	}

	pubKey, err := extKey.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}
	compressed := pubKey.SerializeCompressed()
	pubKeyHash := btcutil.Hash160(compressed)

	network, keyType := a.identifyKeyType(xkey)
	info := &KeyInfo{
		Raw:               xkey,
		Network:           network,
		KeyType:           keyType,
		Depth:             extKey.Depth(),
		ParentFingerprint: fmt.Sprintf("%08x", extKey.ParentFingerprint()),
		ChildNumber:       extKey.ChildIndex(),
		ChainCode:         hex.EncodeToString(extKey.ChainCode()),
		PublicKey:         hex.EncodeToString(compressed),
		PublicKeyHash160:  hex.EncodeToString(pubKeyHash),
		Fingerprint:       hex.EncodeToString(pubKeyHash[:4]),
		IsPrivate:         extKey.IsPrivate(),
	}

	// The version bytes are not exposed by hdkeychain.
	if bip32Key, err := bip32.B58Deserialize(xkey); err == nil {
		info.Version = bip32Key.Version
	}
	return info, nil
}

// keyPrefixes maps the SLIP-0132 prefixes to their network.
var keyPrefixes = []struct {
	prefix  string
	network string
}{
	{"xpub", "mainnet"}, {"xprv", "mainnet"},
	{"ypub", "mainnet"}, {"yprv", "mainnet"},
	{"zpub", "mainnet"}, {"zprv", "mainnet"},
	{"Ypub", "mainnet"}, {"Yprv", "mainnet"},
	{"Zpub", "mainnet"}, {"Zprv", "mainnet"},
	{"tpub", "testnet"}, {"tprv", "testnet"},
	{"upub", "testnet"}, {"uprv", "testnet"},
	{"vpub", "testnet"}, {"vprv", "testnet"},
	{"Upub", "testnet"}, {"Uprv", "testnet"},
	{"Vpub", "testnet"}, {"Vprv", "testnet"},
}

func (a *Analyzer) identifyKeyType(xkey string) (network, keyType string) {
	for _, p := range keyPrefixes {
		if strings.HasPrefix(xkey, p.prefix) {
			return p.network, p.prefix
		}
	}
	if a.params.Name == chaincfg.MainNetParams.Name {
		return "mainnet", "unknown"
	}
	return "testnet", "unknown"
}

// DisplayInfo writes info in a human readable form.
func DisplayInfo(w io.Writer, info *KeyInfo) {
	fmt.Fprintln(w, "=== Extended Key ===")
	fmt.Fprintf(w, "Raw: %s\n", info.Raw)
	fmt.Fprintf(w, "Network: %s\n", info.Network)
	fmt.Fprintf(w, "Key Type: %s\n", info.KeyType)
	fmt.Fprintf(w, "Depth: %d\n", info.Depth)
	fmt.Fprintf(w, "Parent Fingerprint: %s\n", info.ParentFingerprint)
	fmt.Fprintf(w, "Child Number: %d\n", info.ChildNumber)
	if info.Hardened() {
		fmt.Fprintf(w, "  (Hardened: %d)\n",
			info.ChildNumber-hdkeychain.HardenedKeyStart)
	}
	fmt.Fprintf(w, "Chain Code: %s\n", info.ChainCode)
	fmt.Fprintf(w, "Public Key: %s\n", info.PublicKey)
	fmt.Fprintf(w, "Public Key Hash160: %s\n", info.PublicKeyHash160)
	fmt.Fprintf(w, "Fingerprint: %s\n", info.Fingerprint)
	fmt.Fprintf(w, "Is Private: %v\n", info.IsPrivate)
	if info.Version != nil {
		fmt.Fprintf(w, "Version Bytes: %x\n", info.Version)
	}
}
