package walletdesc

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// hardenedFlag marks a hardened BIP32 index.
	hardenedFlag = hdkeychain.HardenedKeyStart

	// rootMarker is a key origin without derivation steps.
	rootMarker = "m"

	networkDepth = 1
	accountDepth = 2
)

// Derivation suffixes appended after the key origin.
const (
	DerivationReceive   = "/0/*"
	DerivationChange    = "/1/*"
	DerivationMultipath = "/<0;1>/*"
)

var (
	errMissingRoot   = errors.New("path must start with m")
	errEmptyLevel    = errors.New("path contains an empty level")
	errInvalidLevel  = errors.New("invalid path level")
	errLevelTooLarge = errors.New("path level must be smaller than 2^31")
)

func removeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// FormatDerivationPath normalizes a derivation suffix such as "/ 0'/15 " to
// "/0h/15". The suffix must start with a slash.
func FormatDerivationPath(value string) (string, error) {
	value = removeWhitespace(value)
	if !strings.HasPrefix(value, "/") {
		return "", formatError(fmt.Sprintf("derivation path %q must "+
			"start with a /", value), nil)
	}
	return strings.ReplaceAll(value, "'", "h"), nil
}

// FormatKeyOrigin parses a key origin such as "m/48'/1'/0'/2'" and returns
// its canonical form "m/48h/1h/0h/2h". The bare root marker is returned
// unchanged.
func FormatKeyOrigin(value string, removeSpaces bool) (string, error) {
	if removeSpaces {
		value = removeWhitespace(value)
	}
	if value == rootMarker {
		return value, nil
	}

	indexes, err := parsePath(value)
	if err != nil {
		return "", formatError(fmt.Sprintf("could not parse the key "+
			"origin %q", value), err)
	}
	if len(indexes) == 0 {
		return "", formatError(fmt.Sprintf("key origin %q has no "+
			"levels", value), nil)
	}
	return KeyOriginIndexesToString(indexes), nil
}

// parsePath parses a BIP32 path that starts with the root marker.
func parsePath(path string) ([]uint32, error) {
	levels := strings.Split(path, "/")
	if levels[0] != rootMarker {
		return nil, errMissingRoot
	}

	indexes := make([]uint32, 0, len(levels)-1)
	for _, level := range levels[1:] {
		index, err := parseLevel(level)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// parseLevel parses one path level: decimal digits followed by at most one
// hardening marker.
func parseLevel(level string) (uint32, error) {
	if level == "" {
		return 0, errEmptyLevel
	}

	var hardened bool
	switch level[len(level)-1] {
	case '\'', 'h', 'H':
		hardened = true
		level = level[:len(level)-1]
	}
	if level == "" || strings.TrimLeft(level, "0123456789") != "" {
		return 0, errInvalidLevel
	}

	index, err := strconv.ParseUint(level, 10, 32)
	if err != nil || index >= hardenedFlag {
		return 0, errLevelTooLarge
	}
	if hardened {
		index |= hardenedFlag
	}
	return uint32(index), nil
}

// RobustParsePath parses a key origin and reports whether that succeeded.
// The root marker alone parses to an empty index list.
func RobustParsePath(keyOrigin string) ([]uint32, bool) {
	indexes, err := parsePath(keyOrigin)
	if err != nil {
		return nil, false
	}
	return indexes, true
}

// hardenedLevel returns the unhardened value of the index at depth. It
// reports false if the key origin does not parse, is too short, or the
// level is not hardened.
func hardenedLevel(keyOrigin string, depth int) (uint32, bool) {
	indexes, ok := RobustParsePath(keyOrigin)
	if !ok || len(indexes) <= depth {
		return 0, false
	}
	if indexes[depth] < hardenedFlag {
		return 0, false
	}
	return indexes[depth] &^ hardenedFlag, true
}

// NetworkIndex returns the hardened network (coin type) level of a key
// origin, e.g. 1 for m/84h/1h/0h.
func NetworkIndex(keyOrigin string) (uint32, bool) {
	return hardenedLevel(keyOrigin, networkDepth)
}

// AccountIndex returns the hardened account level of a key origin, e.g. 0
// for m/84h/1h/0h.
func AccountIndex(keyOrigin string) (uint32, bool) {
	return hardenedLevel(keyOrigin, accountDepth)
}

// KeyOriginIndexesToString serializes BIP32 indexes to a key origin using h
// as hardening marker. An empty list serializes to "m".
func KeyOriginIndexesToString(indexes []uint32) string {
	var b strings.Builder
	b.WriteString(rootMarker)
	for _, index := range indexes {
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(index&^hardenedFlag), 10))
		if index >= hardenedFlag {
			b.WriteByte('h')
		}
	}
	return b.String()
}

// KeyOriginIdenticalDisregardingAccount reports whether a equals b once b's
// account level is replaced with a's account level. The comparison is on
// the text of a, so only a canonical a, written with h, can be identical.
//
// The relation is not symmetric: it answers whether a is what b would look
// like with a's account. It is false whenever either side does not parse or
// lacks a hardened account level.
func KeyOriginIdenticalDisregardingAccount(a, b string) bool {
	indexesB, ok := RobustParsePath(b)
	if !ok {
		return false
	}

	accountA, okA := AccountIndex(a)
	_, okB := AccountIndex(b)
	if !okA || !okB {
		return false
	}

	withAccountA := make([]uint32, len(indexesB))
	copy(withAccountA, indexesB)
	withAccountA[accountDepth] = accountA | hardenedFlag

	return a == KeyOriginIndexesToString(withAccountA)
}

// IsFingerprintValid reports whether fingerprint is exactly 8 hex characters.
func IsFingerprintValid(fingerprint string) bool {
	if len(fingerprint) != 8 {
		return false
	}
	_, err := hex.DecodeString(fingerprint)
	return err == nil
}

// FormatFingerprint removes whitespace from a master key fingerprint,
// validates it and returns it in upper case.
func FormatFingerprint(value string) (string, error) {
	value = removeWhitespace(value)
	if !IsFingerprintValid(value) {
		return "", formatError(fmt.Sprintf("%s is not a valid "+
			"fingerprint", value), nil)
	}
	return strings.ToUpper(value), nil
}
