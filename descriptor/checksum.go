package descriptor

import (
	"fmt"
	"strings"
)

const (
	// inputCharset groups characters so that common case and typing errors
	// change only the low bits of a symbol.
	inputCharset = "0123456789()[],'/*abcdefgh@:$%{}" +
		"IJKLMNOPQRSTUVWXYZ&+-.;<=>?!^_|~" +
		"ijklmnopqrstuvwxyzABCDEFGH`#\"\\ "

	checksumCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

	checksumLength = 8
)

var checksumGenerator = [5]uint64{
	0xf5dee51989, 0xa9fdca3312, 0x1bab10e32d, 0x3706b1677a, 0x644d626ffd,
}

func polymod(symbols []uint64) uint64 {
	chk := uint64(1)
	for _, value := range symbols {
		top := chk >> 35
		chk = (chk&0x7ffffffff)<<5 ^ value
		for i, gen := range checksumGenerator {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen
			}
		}
	}
	return chk
}

// expand maps every character to its 5-bit position and appends one symbol
// for each group of three characters' class bits.
func expand(s string) ([]uint64, error) {
	symbols := make([]uint64, 0, len(s)+len(s)/3+1)
	groups := make([]uint64, 0, 3)
	for _, c := range s {
		v := strings.IndexRune(inputCharset, c)
		if v < 0 {
			return nil, fmt.Errorf("%w: character %q is not allowed",
				ErrMalformedDescriptor, c)
		}
		symbols = append(symbols, uint64(v&31))
		groups = append(groups, uint64(v>>5))
		if len(groups) == 3 {
			symbols = append(symbols, groups[0]*9+groups[1]*3+groups[2])
			groups = groups[:0]
		}
	}
	switch len(groups) {
	case 1:
		symbols = append(symbols, groups[0])
	case 2:
		symbols = append(symbols, groups[0]*3+groups[1])
	}
	return symbols, nil
}

// Checksum computes the 8 character checksum of a descriptor string that
// carries no checksum.
func Checksum(desc string) (string, error) {
	symbols, err := expand(desc)
	if err != nil {
		return "", err
	}
	symbols = append(symbols, make([]uint64, checksumLength)...)
	c := polymod(symbols) ^ 1

	var out [checksumLength]byte
	for i := range out {
		out[i] = checksumCharset[(c>>(5*uint(checksumLength-1-i)))&31]
	}
	return string(out[:]), nil
}

// AddChecksum returns desc followed by # and its checksum.
func AddChecksum(desc string) (string, error) {
	checksum, err := Checksum(desc)
	if err != nil {
		return "", err
	}
	return desc + "#" + checksum, nil
}

// VerifyChecksum checks the checksum of desc. A descriptor without checksum
// is an error.
func VerifyChecksum(desc string) error {
	desc = strings.TrimSpace(desc)
	i := strings.LastIndexByte(desc, '#')
	if i == -1 {
		return fmt.Errorf("%w: missing checksum", ErrMalformedDescriptor)
	}
	want, err := Checksum(desc[:i])
	if err != nil {
		return err
	}
	if got := desc[i+1:]; got != want {
		return fmt.Errorf("%w: checksum %q does not match expected %q",
			ErrMalformedDescriptor, got, want)
	}
	return nil
}
