package descriptor

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// context is the script context a function appears in. It decides which
// functions are allowed at that position.
type context uint8

const (
	contextTop context = iota
	contextSH
	contextWSH
	contextTapLeaf
)

// Parse parses a descriptor string into its tree form. Surrounding whitespace
// is ignored and a trailing #checksum is stripped without being verified; use
// VerifyChecksum when the checksum matters.
func Parse(desc string) (*Descriptor, error) {
	desc = strings.TrimSpace(desc)
	if i := strings.IndexByte(desc, '#'); i != -1 {
		desc = desc[:i]
	}
	if desc == "" {
		return nil, malformed("empty descriptor")
	}

	p := &parser{
		tokens: splitString(desc, func(c rune) bool {
			return c == '(' || c == ')' || c == ',' || c == '{' ||
				c == '}'
		}),
	}
	d, err := p.parseScript(contextTop)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, malformed("unexpected %q after end of descriptor",
			p.tokens[p.pos])
	}
	return d, nil
}

// splitString splits s at every separator and keeps the separators as
// single-character elements.
func splitString(s string, isSeparator func(c rune) bool) []string {
	substrings := make([]string, 0)
	i := 0
	for i < len(s) {
		j := strings.IndexFunc(s[i:], isSeparator)
		if j == -1 {
			substrings = append(substrings, s[i:])
			return substrings
		}
		j += i

		if j > i {
			substrings = append(substrings, s[i:j])
		}
		substrings = append(substrings, s[j:j+1])
		i = j + 1
	}
	return substrings
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() string {
	if p.done() {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) expect(sep string) error {
	if p.done() {
		return malformed("expected %q, reached end of descriptor", sep)
	}
	if tok := p.tokens[p.pos]; tok != sep {
		return malformed("expected %q, got %q", sep, tok)
	}
	p.pos++
	return nil
}

// word consumes the next token, which must not be a separator.
func (p *parser) word() (string, error) {
	if p.done() {
		return "", malformed("unexpected end of descriptor")
	}
	tok := p.tokens[p.pos]
	switch tok {
	case "(", ")", ",", "{", "}":
		return "", malformed("unexpected %q", tok)
	}
	p.pos++
	return tok, nil
}

func (p *parser) key() (*PubkeyProvider, error) {
	tok, err := p.word()
	if err != nil {
		return nil, err
	}
	return parseKey(tok)
}

func (p *parser) parseScript(ctx context) (*Descriptor, error) {
	name, err := p.word()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var d *Descriptor
	switch name {
	case "pk", "pkh":
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		if name == "pk" {
			d = NewPK(key)
		} else {
			d = NewPKH(key)
		}

	case "wpkh":
		if ctx != contextTop && ctx != contextSH {
			return nil, malformed("wpkh is only allowed at top " +
				"level or inside sh")
		}
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		d = NewWPKH(key)

	case "sh":
		if ctx != contextTop {
			return nil, malformed("sh is only allowed at top level")
		}
		sub, err := p.parseScript(contextSH)
		if err != nil {
			return nil, err
		}
		d = NewSH(sub)

	case "wsh":
		if ctx != contextTop && ctx != contextSH {
			return nil, malformed("wsh is only allowed at top " +
				"level or inside sh")
		}
		sub, err := p.parseScript(contextWSH)
		if err != nil {
			return nil, err
		}
		d = NewWSH(sub)

	case "tr":
		if ctx != contextTop {
			return nil, malformed("tr is only allowed at top level")
		}
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		var tree *TapTree
		if p.peek() == "," {
			p.pos++
			if tree, err = p.parseTree(); err != nil {
				return nil, err
			}
		}
		d = NewTR(key, tree)

	case "multi", "sortedmulti":
		if ctx == contextTapLeaf {
			return nil, malformed("%s is not allowed in tapscript",
				name)
		}
		d, err = p.parseMulti(name == "sortedmulti")
		if err != nil {
			return nil, err
		}

	default:
		return nil, malformed("unknown function %q", name)
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *parser) parseMulti(sorted bool) (*Descriptor, error) {
	tok, err := p.word()
	if err != nil {
		return nil, err
	}
	threshold, err := strconv.Atoi(tok)
	if err != nil {
		return nil, malformed("invalid multisig threshold %q", tok)
	}

	var keys []*PubkeyProvider
	for p.peek() == "," {
		p.pos++
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, malformed("multisig without keys")
	}
	if threshold < 1 || threshold > len(keys) {
		return nil, malformed("multisig threshold %d out of range "+
			"for %d keys", threshold, len(keys))
	}
	return NewMulti(threshold, keys, sorted), nil
}

func (p *parser) parseTree() (*TapTree, error) {
	if p.peek() != "{" {
		leaf, err := p.parseScript(contextTapLeaf)
		if err != nil {
			return nil, err
		}
		return &TapTree{Leaf: leaf}, nil
	}

	p.pos++
	left, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	right, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return &TapTree{Left: left, Right: right}, nil
}

// ParseKey parses a single KEY expression such as
// [7c85f2b5/84h/1h/0h]tpub.../<0;1>/*.
func ParseKey(key string) (*PubkeyProvider, error) {
	return parseKey(strings.TrimSpace(key))
}

// parseKey parses a KEY expression: [fingerprint/origin/path]key/deriv/path.
func parseKey(s string) (*PubkeyProvider, error) {
	var origin *KeyOrigin
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end == -1 {
			return nil, malformed("key origin %q is not closed", s)
		}
		var err error
		origin, err = parseKeyOrigin(s[1:end])
		if err != nil {
			return nil, err
		}
		s = s[end+1:]
	}

	pubkey, derivPath := s, ""
	if i := strings.IndexByte(s, '/'); i != -1 {
		pubkey, derivPath = s[:i], s[i:]
	}
	if pubkey == "" {
		return nil, malformed("missing key")
	}
	if err := checkDerivPath(derivPath); err != nil {
		return nil, err
	}

	return &PubkeyProvider{
		Origin:    origin,
		Pubkey:    pubkey,
		DerivPath: derivPath,
	}, nil
}

// parseKeyOrigin parses the inside of the brackets of a key origin. An
// explicit m after the fingerprint, as in [45f35351/m/48h], is accepted.
func parseKeyOrigin(s string) (*KeyOrigin, error) {
	if len(s) < 8 {
		return nil, malformed("key origin %q is too short", s)
	}
	fp, err := hex.DecodeString(s[:8])
	if err != nil {
		return nil, malformed("invalid fingerprint %q", s[:8])
	}

	ko := &KeyOrigin{}
	copy(ko.Fingerprint[:], fp)

	rest := s[8:]
	if rest == "" {
		return ko, nil
	}
	if rest[0] != '/' {
		return nil, malformed("invalid key origin %q", s)
	}
	pieces := strings.Split(rest[1:], "/")
	if pieces[0] == "m" {
		pieces = pieces[1:]
	}
	for _, piece := range pieces {
		step, err := parseStep(piece)
		if err != nil {
			return nil, err
		}
		ko.Path = append(ko.Path, step)
	}
	return ko, nil
}

// parseStep parses a single path element such as 48, 48h or 48'.
func parseStep(piece string) (uint32, error) {
	var harden bool
	if n := len(piece); n > 0 {
		switch piece[n-1] {
		case '\'', 'h', 'H':
			harden = true
			piece = piece[:n-1]
		}
	}
	if piece == "" || strings.TrimLeft(piece, "0123456789") != "" {
		return 0, malformed("invalid path element %q", piece)
	}
	i, err := strconv.ParseUint(piece, 10, 32)
	if err != nil || i >= hardened {
		return 0, malformed("path element %q out of range", piece)
	}
	step := uint32(i)
	if harden {
		step |= hardened
	}
	return step, nil
}

// checkDerivPath validates the derivation suffix that follows a key. Every
// element is a step, a <a;b;...> multipath group or, in last position only,
// a wildcard.
func checkDerivPath(path string) error {
	if path == "" {
		return nil
	}
	pieces := strings.Split(path[1:], "/")
	for i, piece := range pieces {
		switch {
		case piece == "*" || piece == "*'" || piece == "*h":
			if i != len(pieces)-1 {
				return malformed("wildcard must be the last "+
					"element of %q", path)
			}

		case strings.HasPrefix(piece, "<"):
			if !strings.HasSuffix(piece, ">") {
				return malformed("unterminated multipath "+
					"group in %q", path)
			}
			alts := strings.Split(piece[1:len(piece)-1], ";")
			if len(alts) < 2 {
				return malformed("multipath group in %q needs "+
					"at least two elements", path)
			}
			for _, alt := range alts {
				if _, err := parseStep(alt); err != nil {
					return err
				}
			}

		default:
			if _, err := parseStep(piece); err != nil {
				return err
			}
		}
	}
	return nil
}
