package walletdesc

import (
	"fmt"
	"strings"

	"xpdesc/descriptor"
)

// Chain is a descriptor tree flattened into its single branch.
type Chain struct {
	// Kinds lists the script kind of every node, outermost first.
	Kinds []ScriptKind

	// Keys are the keys of the terminal node.
	Keys []*descriptor.PubkeyProvider

	// Threshold is the multisig threshold of the terminal node, or 1.
	Threshold int
}

// ExtractChain walks a parsed descriptor from the top and records the kind
// of every node. A node with more than one sub-branch cannot be expressed as
// a chain and fails with ErrStructure.
func ExtractChain(desc *descriptor.Descriptor) (*Chain, error) {
	chain := &Chain{Threshold: 1}
	for node := desc; ; {
		kind, err := scriptKind(node)
		if err != nil {
			return nil, err
		}
		chain.Kinds = append(chain.Kinds, kind)

		subs := node.Subdescriptors()
		switch len(subs) {
		case 0:
			chain.Keys = node.Keys
			if kind.IsMultisig() {
				chain.Threshold = node.Threshold
			}
			return chain, nil

		case 1:
			node = subs[0]

		default:
			return nil, makeError(ErrStructure, fmt.Sprintf("%s() "+
				"has %d branches, descriptors with more than "+
				"one branch at some level are not supported",
				node.Function(), len(subs)), nil)
		}
	}
}

func scriptKind(node *descriptor.Descriptor) (ScriptKind, error) {
	switch node.Type {
	case descriptor.TypePK:
		return KindPK, nil
	case descriptor.TypePKH:
		return KindPKH, nil
	case descriptor.TypeWPKH:
		return KindWPKH, nil
	case descriptor.TypeSH:
		return KindSH, nil
	case descriptor.TypeWSH:
		return KindWSH, nil
	case descriptor.TypeTR:
		return KindTR, nil
	case descriptor.TypeMulti:
		if node.Sorted {
			return KindSortedMulti, nil
		}
		return KindMulti, nil
	}
	return 0, makeError(ErrTemplate, fmt.Sprintf("unsupported script "+
		"type %v", node.Type), nil)
}

// MatchAddressType returns the first address type whose chain of script
// kinds equals kinds, or nil.
func MatchAddressType(kinds []ScriptKind, candidates []*AddressType) *AddressType {
	for _, t := range candidates {
		if kindsEqual(t.kinds, kinds) {
			return t
		}
	}
	return nil
}

func kindsEqual(a, b []ScriptKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func kindsString(kinds []ScriptKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, "/")
}
