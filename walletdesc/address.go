package walletdesc

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ChildPath resolves the derivation suffix for one address. A multipath
// group such as <0;1> selects the element at the keychain position and the
// wildcard is replaced with index. Suffixes without multipath group ignore
// the keychain. Hardened steps cannot be derived from a public key.
func (p *SimplePubKeyProvider) ChildPath(keychain Keychain,
	index uint32) ([]uint32, error) {

	steps := strings.Split(strings.TrimPrefix(p.derivationPath, "/"), "/")
	path := make([]uint32, 0, len(steps))
	for _, step := range steps {
		switch {
		case step == "*":
			path = append(path, index)

		case strings.HasPrefix(step, "<") && strings.HasSuffix(step, ">"):
			alts := strings.Split(step[1:len(step)-1], ";")
			if int(keychain) >= len(alts) {
				return nil, formatError(fmt.Sprintf("multipath "+
					"group %s has no element for keychain %v",
					step, keychain), nil)
			}
			child, err := parseUnhardenedStep(alts[keychain])
			if err != nil {
				return nil, err
			}
			path = append(path, child)

		default:
			child, err := parseUnhardenedStep(step)
			if err != nil {
				return nil, err
			}
			path = append(path, child)
		}
	}
	return path, nil
}

func parseUnhardenedStep(step string) (uint32, error) {
	child, err := strconv.ParseUint(step, 10, 32)
	if err != nil || child >= hardenedFlag {
		return 0, formatError(fmt.Sprintf("derivation step %q cannot "+
			"be derived from an extended public key", step), err)
	}
	return uint32(child), nil
}

// ChildPubKey derives the public key for the address at index on keychain.
func (p *SimplePubKeyProvider) ChildPubKey(keychain Keychain,
	index uint32) (*btcec.PublicKey, error) {

	path, err := p.ChildPath(keychain, index)
	if err != nil {
		return nil, err
	}

	key, err := hdkeychain.NewKeyFromString(p.xpub)
	if err != nil {
		return nil, formatError("invalid extended key", err)
	}
	for _, child := range path {
		key, err = key.Derive(child)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child %d: %w",
				child, err)
		}
	}
	return key.ECPubKey()
}

// AddressAt derives the address at index on keychain.
func (d *DescriptorInfo) AddressAt(params *chaincfg.Params, keychain Keychain,
	index uint32) (btcutil.Address, error) {

	if params == nil {
		return nil, errMissingParams
	}
	if len(d.providers) == 0 {
		return nil, makeError(ErrProviderCount, "no key providers", nil)
	}

	pubKeys := make([]*btcec.PublicKey, 0, len(d.providers))
	for _, p := range d.providers {
		pubKey, err := p.ChildPubKey(keychain, index)
		if err != nil {
			return nil, err
		}
		pubKeys = append(pubKeys, pubKey)
	}

	kinds := d.addressType.kinds
	addr, script, err := leafAddress(kinds[len(kinds)-1], pubKeys,
		d.threshold, params)
	if err != nil {
		return nil, err
	}
	for i := len(kinds) - 2; i >= 0; i-- {
		addr, script, err = wrapAddress(kinds[i], script, params)
		if err != nil {
			return nil, err
		}
	}
	if addr == nil {
		return nil, makeError(ErrTemplate, fmt.Sprintf("address type "+
			"%s has no address", d.addressType.shortName), nil)
	}
	return addr, nil
}

// leafAddress returns the address of the terminal script together with the
// script an enclosing wrapper commits to. Multisig scripts have no address
// of their own.
func leafAddress(kind ScriptKind, pubKeys []*btcec.PublicKey, threshold int,
	params *chaincfg.Params) (btcutil.Address, []byte, error) {

	if kind == KindSortedMulti {
		script, err := sortedMultiSigScript(pubKeys, threshold)
		return nil, script, err
	}

	pubKeyHash := btcutil.Hash160(pubKeys[0].SerializeCompressed())

	var (
		addr btcutil.Address
		err  error
	)
	switch kind {
	case KindPKH:
		addr, err = btcutil.NewAddressPubKeyHash(pubKeyHash, params)
	case KindWPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, params)
	case KindTR:
		outputKey := txscript.ComputeTaprootKeyNoScript(pubKeys[0])
		addr, err = btcutil.NewAddressTaproot(
			schnorr.SerializePubKey(outputKey), params,
		)
	default:
		return nil, nil, makeError(ErrTemplate, fmt.Sprintf("no address "+
			"for script kind %v", kind), nil)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %v address: %w",
			kind, err)
	}

	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, nil, err
	}
	return addr, script, nil
}

// wrapAddress commits to script with a sh or wsh wrapper.
func wrapAddress(kind ScriptKind, script []byte,
	params *chaincfg.Params) (btcutil.Address, []byte, error) {

	var (
		addr btcutil.Address
		err  error
	)
	switch kind {
	case KindSH:
		addr, err = btcutil.NewAddressScriptHash(script, params)
	case KindWSH:
		scriptHash := sha256.Sum256(script)
		addr, err = btcutil.NewAddressWitnessScriptHash(
			scriptHash[:], params,
		)
	default:
		return nil, nil, makeError(ErrTemplate, fmt.Sprintf("%v "+
			"cannot wrap a script", kind), nil)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %v address: %w",
			kind, err)
	}

	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, nil, err
	}
	return addr, pkScript, nil
}

// sortedMultiSigScript builds a bare multisig script over the public keys
// in lexicographic order of their compressed encoding.
func sortedMultiSigScript(pubKeys []*btcec.PublicKey,
	threshold int) ([]byte, error) {

	serialized := make([][]byte, 0, len(pubKeys))
	for _, pubKey := range pubKeys {
		serialized = append(serialized, pubKey.SerializeCompressed())
	}
	sort.Slice(serialized, func(i, j int) bool {
		return bytes.Compare(serialized[i], serialized[j]) < 0
	})

	builder := txscript.NewScriptBuilder().AddInt64(int64(threshold))
	for _, pubKey := range serialized {
		builder.AddData(pubKey)
	}
	builder.AddInt64(int64(len(serialized)))
	builder.AddOp(txscript.OP_CHECKMULTISIG)
	return builder.Script()
}
