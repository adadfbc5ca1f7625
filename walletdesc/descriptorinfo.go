package walletdesc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"xpdesc/descriptor"
)

// Diagnostic reports a key provider whose key origin differs from the
// canonical key origin of the address type. It does not prevent building
// the descriptor.
type Diagnostic struct {
	AddressType       *AddressType
	Provider          *SimplePubKeyProvider
	ProviderIndex     int
	ExpectedKeyOrigin string
}

// String returns the human readable diagnostic.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s does not match the default key origin %s for "+
		"this address type %s!", d.Provider.KeyOrigin(),
		d.ExpectedKeyOrigin, d.AddressType.Name())
}

// DiagnosticFunc receives the diagnostics found while building a
// descriptor.
type DiagnosticFunc func(Diagnostic)

// LogDiagnostic writes a diagnostic to the package logger as a warning.
func LogDiagnostic(d Diagnostic) {
	log.Warn(d)
}

// DescriptorInfo is a descriptor decomposed into an address type, the key
// providers of its signers and the signing threshold.
type DescriptorInfo struct {
	addressType *AddressType
	providers   []*SimplePubKeyProvider
	threshold   int
}

// NewDescriptorInfo checks the provider count against the address type. A
// single key address type takes at most one provider and always has a
// threshold of 1. A multisig address type needs a threshold between 1 and
// the number of providers.
func NewDescriptorInfo(addressType *AddressType,
	providers []*SimplePubKeyProvider, threshold int) (*DescriptorInfo, error) {

	if addressType == nil {
		return nil, makeError(ErrTemplate, "missing address type", nil)
	}

	if !addressType.isMultisig {
		if len(providers) > 1 {
			return nil, makeError(ErrProviderCount, fmt.Sprintf(
				"address type %s takes at most one key "+
					"provider, got %d", addressType.shortName,
				len(providers)), nil)
		}
		threshold = 1
	} else if threshold < 1 || threshold > len(providers) {
		return nil, makeError(ErrProviderCount, fmt.Sprintf("threshold "+
			"%d is not possible with %d key providers", threshold,
			len(providers)), nil)
	}

	info := &DescriptorInfo{
		addressType: addressType,
		providers:   make([]*SimplePubKeyProvider, len(providers)),
		threshold:   threshold,
	}
	copy(info.providers, providers)
	return info, nil
}

// FromString decomposes a descriptor into a DescriptorInfo. A trailing
// checksum is ignored.
func FromString(desc string) (*DescriptorInfo, error) {
	tree, err := descriptor.Parse(desc)
	if err != nil {
		return nil, formatError(fmt.Sprintf("unable to parse "+
			"descriptor %s", desc), err)
	}
	chain, err := ExtractChain(tree)
	if err != nil {
		return nil, err
	}

	addressType := MatchAddressType(chain.Kinds, addressTypes)
	if addressType == nil {
		return nil, makeError(ErrTemplate, fmt.Sprintf("descriptor %s "+
			"cannot be matched to a supported template. Supported "+
			"templates are %s", desc,
			strings.Join(SupportedShortNames(), ", ")), nil)
	}
	log.Debugf("Matched %s to address type %s", kindsString(chain.Kinds),
		addressType.shortName)

	providers := make([]*SimplePubKeyProvider, 0, len(chain.Keys))
	for _, key := range chain.Keys {
		provider, err := ProviderFromDescriptorKey(key)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	return NewDescriptorInfo(addressType, providers, chain.Threshold)
}

// AddressType returns the address type of the descriptor.
func (d *DescriptorInfo) AddressType() *AddressType {
	return d.addressType
}

// Providers returns the key providers in descriptor order.
func (d *DescriptorInfo) Providers() []*SimplePubKeyProvider {
	providers := make([]*SimplePubKeyProvider, len(d.providers))
	copy(providers, d.providers)
	return providers
}

// Threshold returns the number of signatures needed to spend.
func (d *DescriptorInfo) Threshold() int {
	return d.threshold
}

// CheckKeyOrigins compares the key origin of every provider with the
// canonical key origin of the address type on the given network. Without
// network parameters there is no canonical key origin and nil is returned.
func (d *DescriptorInfo) CheckKeyOrigins(params *chaincfg.Params) []Diagnostic {
	if params == nil {
		return nil
	}
	expected := d.addressType.KeyOrigin(params)

	var diagnostics []Diagnostic
	for i, p := range d.providers {
		if p.keyOrigin == expected {
			continue
		}
		diagnostics = append(diagnostics, Diagnostic{
			AddressType:       d.addressType,
			Provider:          p,
			ProviderIndex:     i,
			ExpectedKeyOrigin: expected,
		})
	}
	return diagnostics
}

// Descriptor builds the descriptor tree. Providers with a non-canonical key
// origin are passed to diag, or logged if diag is nil, and the descriptor is
// built regardless. The keys of a sortedmulti are written in lexicographic
// order of their extended keys, so the result does not depend on the order
// of the providers.
func (d *DescriptorInfo) Descriptor(params *chaincfg.Params,
	diag DiagnosticFunc) (*descriptor.Descriptor, error) {

	if params == nil {
		return nil, errMissingParams
	}
	if diag == nil {
		diag = LogDiagnostic
	}
	for _, diagnostic := range d.CheckKeyOrigins(params) {
		diag(diagnostic)
	}

	kinds := d.addressType.kinds
	terminal := kinds[len(kinds)-1]

	var node *descriptor.Descriptor
	switch {
	case terminal == KindSortedMulti:
		keys := make([]*descriptor.PubkeyProvider, 0, len(d.providers))
		for _, p := range d.providers {
			keys = append(keys, p.DescriptorKey())
		}
		sort.SliceStable(keys, func(i, j int) bool {
			return keys[i].Pubkey < keys[j].Pubkey
		})
		node = descriptor.NewMulti(d.threshold, keys, true)

	case len(d.providers) != 1:
		return nil, makeError(ErrProviderCount, fmt.Sprintf("address "+
			"type %s needs exactly one key provider, got %d",
			d.addressType.shortName, len(d.providers)), nil)

	default:
		key := d.providers[0].DescriptorKey()
		switch terminal {
		case KindPKH:
			node = descriptor.NewPKH(key)
		case KindWPKH:
			node = descriptor.NewWPKH(key)
		case KindTR:
			node = descriptor.NewTR(key, nil)
		default:
			return nil, makeError(ErrTemplate, fmt.Sprintf("%v "+
				"cannot terminate a descriptor", terminal), nil)
		}
	}

	for i := len(kinds) - 2; i >= 0; i-- {
		switch kinds[i] {
		case KindSH:
			node = descriptor.NewSH(node)
		case KindWSH:
			node = descriptor.NewWSH(node)
		default:
			return nil, makeError(ErrTemplate, fmt.Sprintf("%v "+
				"cannot wrap a script", kinds[i]), nil)
		}
	}
	return node, nil
}

// DescriptorString builds the descriptor and serializes it with a checksum.
func (d *DescriptorInfo) DescriptorString(params *chaincfg.Params,
	diag DiagnosticFunc) (string, error) {

	tree, err := d.Descriptor(params, diag)
	if err != nil {
		return "", err
	}
	return tree.String(), nil
}

// String returns a short summary such as "p2wsh 2-of-3".
func (d *DescriptorInfo) String() string {
	if !d.addressType.isMultisig {
		return d.addressType.shortName
	}
	return fmt.Sprintf("%s %d-of-%d", d.addressType.shortName,
		d.threshold, len(d.providers))
}
