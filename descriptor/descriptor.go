// Package descriptor parses Bitcoin output descriptors into a tree of typed
// script nodes and serializes such trees back to text. See
// https://github.com/bitcoin/bitcoin/blob/master/doc/descriptors.md
//
// Only the script functions used by single-key and multisig wallets are
// understood: pk, pkh, wpkh, sh, wsh, tr, multi and sortedmulti.
package descriptor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var (
	// ErrMalformedDescriptor is returned when a provided descriptor string does
	// not match the expected format for a descriptor.
	ErrMalformedDescriptor = errors.New("malformed descriptor")
)

const hardened = hdkeychain.HardenedKeyStart

// Type identifies the script function of a descriptor node.
type Type uint8

const (
	TypePK Type = iota
	TypePKH
	TypeWPKH
	TypeSH
	TypeWSH
	TypeTR
	TypeMulti
)

var typeFunctions = map[Type]string{
	TypePK:    "pk",
	TypePKH:   "pkh",
	TypeWPKH:  "wpkh",
	TypeSH:    "sh",
	TypeWSH:   "wsh",
	TypeTR:    "tr",
	TypeMulti: "multi",
}

// String returns the descriptor function name of the type.
func (t Type) String() string {
	if s, ok := typeFunctions[t]; ok {
		return s
	}
	return "Unknown Type (" + strconv.Itoa(int(t)) + ")"
}

// KeyOrigin is the optional [fingerprint/path] part of a KEY expression. The
// fingerprint identifies the master key and the path leads from it to the
// key that follows.
type KeyOrigin struct {
	Fingerprint [4]byte

	// Path is the derivation from the master key. Hardened indexes are
	// offset by 2^31.
	Path []uint32
}

// FingerprintHex returns the lowercase hex encoding of the fingerprint.
func (ko *KeyOrigin) FingerprintHex() string {
	return hex.EncodeToString(ko.Fingerprint[:])
}

// DerivationPath returns the path from the master key in the form
// m/48h/1h/0h/2h. A key origin without steps returns "m".
func (ko *KeyOrigin) DerivationPath() string {
	return "m" + formatPath(ko.Path, 'h')
}

func (ko *KeyOrigin) format(hardenedChar byte) string {
	return ko.FingerprintHex() + formatPath(ko.Path, hardenedChar)
}

// PubkeyProvider is a KEY expression: an optional key origin, the key itself
// and the derivation suffix that follows the key, e.g. /<0;1>/*.
type PubkeyProvider struct {
	Origin    *KeyOrigin
	Pubkey    string
	DerivPath string
}

// String returns the KEY expression using h as the hardened marker.
func (p *PubkeyProvider) String() string {
	return p.Format('h')
}

// Format returns the KEY expression using hardenedChar as the hardened marker
// of the key origin. The derivation suffix is written as stored.
func (p *PubkeyProvider) Format(hardenedChar byte) string {
	var b strings.Builder
	if p.Origin != nil {
		b.WriteByte('[')
		b.WriteString(p.Origin.format(hardenedChar))
		b.WriteByte(']')
	}
	b.WriteString(p.Pubkey)
	b.WriteString(p.DerivPath)
	return b.String()
}

// Descriptor is one node of a parsed descriptor. Key functions carry Keys,
// sh and wsh carry Sub, tr carries its internal key and an optional Tree.
type Descriptor struct {
	Type Type

	// Keys holds a single key for pk, pkh, wpkh and tr, and all keys of a
	// multisig node in their written order.
	Keys []*PubkeyProvider

	// Threshold and Sorted are only meaningful for TypeMulti.
	Threshold int
	Sorted    bool

	Sub  *Descriptor
	Tree *TapTree
}

// TapTree is a taproot script tree. A node is either a leaf script or a
// branch with exactly two children.
type TapTree struct {
	Leaf        *Descriptor
	Left, Right *TapTree
}

// Leaves returns the leaf scripts of the tree in written order.
func (t *TapTree) Leaves() []*Descriptor {
	if t == nil {
		return nil
	}
	if t.Leaf != nil {
		return []*Descriptor{t.Leaf}
	}
	return append(t.Left.Leaves(), t.Right.Leaves()...)
}

// NewPK returns a pk(KEY) node.
func NewPK(key *PubkeyProvider) *Descriptor {
	return &Descriptor{Type: TypePK, Keys: []*PubkeyProvider{key}}
}

// NewPKH returns a pkh(KEY) node.
func NewPKH(key *PubkeyProvider) *Descriptor {
	return &Descriptor{Type: TypePKH, Keys: []*PubkeyProvider{key}}
}

// NewWPKH returns a wpkh(KEY) node.
func NewWPKH(key *PubkeyProvider) *Descriptor {
	return &Descriptor{Type: TypeWPKH, Keys: []*PubkeyProvider{key}}
}

// NewSH returns a sh(SCRIPT) node.
func NewSH(sub *Descriptor) *Descriptor {
	return &Descriptor{Type: TypeSH, Sub: sub}
}

// NewWSH returns a wsh(SCRIPT) node.
func NewWSH(sub *Descriptor) *Descriptor {
	return &Descriptor{Type: TypeWSH, Sub: sub}
}

// NewTR returns a tr(KEY) or tr(KEY,TREE) node.
func NewTR(key *PubkeyProvider, tree *TapTree) *Descriptor {
	return &Descriptor{Type: TypeTR, Keys: []*PubkeyProvider{key}, Tree: tree}
}

// NewMulti returns a multi or, when sorted is set, a sortedmulti node.
func NewMulti(threshold int, keys []*PubkeyProvider, sorted bool) *Descriptor {
	return &Descriptor{
		Type:      TypeMulti,
		Keys:      keys,
		Threshold: threshold,
		Sorted:    sorted,
	}
}

// Function returns the name of the node's script function.
func (d *Descriptor) Function() string {
	if d.Type == TypeMulti && d.Sorted {
		return "sortedmulti"
	}
	return d.Type.String()
}

// Subdescriptors returns the script nodes directly nested in d: the wrapped
// script of sh and wsh, or the leaf scripts of a taproot tree.
func (d *Descriptor) Subdescriptors() []*Descriptor {
	switch d.Type {
	case TypeSH, TypeWSH:
		if d.Sub == nil {
			return nil
		}
		return []*Descriptor{d.Sub}
	case TypeTR:
		return d.Tree.Leaves()
	default:
		return nil
	}
}

// String returns the descriptor with h hardened markers and a checksum. If
// the descriptor contains characters outside the checksum charset it is
// returned without checksum.
func (d *Descriptor) String() string {
	s := d.StringNoChecksum('h')
	withChecksum, err := AddChecksum(s)
	if err != nil {
		return s
	}
	return withChecksum
}

// StringNoChecksum returns the descriptor using hardenedChar as the hardened
// marker in key origins.
func (d *Descriptor) StringNoChecksum(hardenedChar byte) string {
	var b strings.Builder
	d.write(&b, hardenedChar)
	return b.String()
}

func (d *Descriptor) write(b *strings.Builder, hardenedChar byte) {
	b.WriteString(d.Function())
	b.WriteByte('(')
	switch d.Type {
	case TypePK, TypePKH, TypeWPKH:
		writeKeys(b, d.Keys, hardenedChar)
	case TypeSH, TypeWSH:
		if d.Sub != nil {
			d.Sub.write(b, hardenedChar)
		}
	case TypeTR:
		writeKeys(b, d.Keys, hardenedChar)
		if d.Tree != nil {
			b.WriteByte(',')
			d.Tree.write(b, hardenedChar)
		}
	case TypeMulti:
		b.WriteString(strconv.Itoa(d.Threshold))
		b.WriteByte(',')
		writeKeys(b, d.Keys, hardenedChar)
	}
	b.WriteByte(')')
}

func (t *TapTree) write(b *strings.Builder, hardenedChar byte) {
	if t.Leaf != nil {
		t.Leaf.write(b, hardenedChar)
		return
	}
	b.WriteByte('{')
	t.Left.write(b, hardenedChar)
	b.WriteByte(',')
	t.Right.write(b, hardenedChar)
	b.WriteByte('}')
}

func writeKeys(b *strings.Builder, keys []*PubkeyProvider, hardenedChar byte) {
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(key.Format(hardenedChar))
	}
}

func formatPath(path []uint32, hardenedChar byte) string {
	var b strings.Builder
	for _, step := range path {
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(step&^hardened), 10))
		if step >= hardened {
			b.WriteByte(hardenedChar)
		}
	}
	return b.String()
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedDescriptor,
		fmt.Sprintf(format, args...))
}
