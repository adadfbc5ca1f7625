package walletdesc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDerivationPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/ 0'/15 ", "/0h/15"},
		{"/ 1/15 ", "/1/15"},
		{"/ 1/* ", "/1/*"},
		{"/<0; 1>/ *", "/<0;1>/*"},
		{"\t/0/*\n", "/0/*"},
	}
	for _, test := range tests {
		got, err := FormatDerivationPath(test.in)
		require.NoError(t, err, test.in)
		require.Equal(t, test.want, got)
	}

	for _, in := range []string{"", "0/*", " 1/15"} {
		_, err := FormatDerivationPath(in)
		require.True(t, IsErrorCode(err, ErrFormat), "%q: %v", in, err)
	}
}

func TestFormatKeyOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{" m /   48' / 1' / 1' / 2' ", "m/48h/1h/1h/2h"},
		{"m/84h/1h/0h", "m/84h/1h/0h"},
		{"m/84H/1'/0h", "m/84h/1h/0h"},
		{"m/1234567/0h/1", "m/1234567/0h/1"},
		{"m", "m"},
		{" m ", "m"},
	}
	for _, test := range tests {
		got, err := FormatKeyOrigin(test.in, true)
		require.NoError(t, err, test.in)
		require.Equal(t, test.want, got)
	}

	bad := []string{
		" / 48' / 1' / 1' / 2' ",
		"  48' / m/ 1' / 1' / 2' ",
		"m/48hh/1h/1h/2h",
		"m/h/1h/1h/2h",
		"m/h4/1h/1h/2h",
		"m/1h1h4/1h/1h/2h",
		"m//1h",
		"m/84h/",
		"m/2147483648",
		"",
		"84h/1h/0h",
	}
	for _, in := range bad {
		_, err := FormatKeyOrigin(in, true)
		require.True(t, IsErrorCode(err, ErrFormat), "%q: %v", in, err)
	}

	// Without whitespace removal spaces are rejected by the parser.
	_, err := FormatKeyOrigin("m/ 84h", false)
	require.True(t, IsErrorCode(err, ErrFormat))
}

func TestRobustParsePath(t *testing.T) {
	t.Parallel()

	indexes, ok := RobustParsePath("m/48h/1/0'")
	require.True(t, ok)
	require.Equal(t, []uint32{48 + hardenedFlag, 1, hardenedFlag}, indexes)

	indexes, ok = RobustParsePath("m")
	require.True(t, ok)
	require.Empty(t, indexes)

	_, ok = RobustParsePath("m/48hh")
	require.False(t, ok)
}

func TestNetworkAndAccountIndex(t *testing.T) {
	t.Parallel()

	type result struct {
		index uint32
		ok    bool
	}
	tests := []struct {
		origin  string
		network result
		account result
	}{
		{"m/48h/0h/0h/2h", result{0, true}, result{0, true}},
		{"m/48h/1h/0h/2h", result{1, true}, result{0, true}},
		{"m/48h/1h/7h/2h", result{1, true}, result{7, true}},
		{"m/48h/1/0h/2h", result{}, result{0, true}},
		{"m/48h/1h/0/2h", result{1, true}, result{}},
		{"m/4", result{}, result{}},
		{"m/44h/1h", result{1, true}, result{}},
		{"m", result{}, result{}},
		{"garbage", result{}, result{}},
	}
	for _, test := range tests {
		index, ok := NetworkIndex(test.origin)
		require.Equal(t, test.network, result{index, ok},
			"network index of %s", test.origin)

		index, ok = AccountIndex(test.origin)
		require.Equal(t, test.account, result{index, ok},
			"account index of %s", test.origin)
	}
}

func TestKeyOriginIndexesToString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "m", KeyOriginIndexesToString(nil))
	require.Equal(t, "m/48h/1h/0h/2h", KeyOriginIndexesToString([]uint32{
		48 | hardenedFlag, 1 | hardenedFlag, hardenedFlag, 2 | hardenedFlag,
	}))
	require.Equal(t, "m/0/2147483647h", KeyOriginIndexesToString([]uint32{
		0, 0xffffffff,
	}))
}

func TestKeyOriginIdenticalDisregardingAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"m/48h/1h/0h/2h", "m/48h/1h/0h/2h", true},
		{"m/48h/1h/5h/2h", "m/48h/1h/0h/2h", true},
		{"m/48'/1'/5'/2'", "m/48h/1h/0h/2h", false},
		{"m/84'/1'/5'", "m/84h/1h/0h", false},
		{"m/84h/1h/5h", "m/84'/1'/0'", true},
		{" m/84h/1h/5h", "m/84h/1h/0h", false},
		{"m/84h/1h/3h", "m/84h/1h/0h", true},
		{"m/48h/1h/0h/2h", "m/48h/1h/0h/1h", false},
		{"m/48h/0h/0h/2h", "m/48h/1h/0h/2h", false},
		{"m/48h/1h/0h", "m/48h/1h/0h/2h", false},
		{"m/48h/1h/0/2h", "m/48h/1h/0h/2h", false},
		{"m/48h/1h/0h/2h", "m/48h/1h/0/2h", false},
		{"m/48h/1h", "m/48h/1h", false},
		{"m", "m", false},
		{"nonsense", "m/48h/1h/0h/2h", false},
		{"m/48h/1h/0h/2h", "nonsense", false},
	}
	for _, test := range tests {
		got := KeyOriginIdenticalDisregardingAccount(test.a, test.b)
		require.Equal(t, test.want, got, "%s vs %s", test.a, test.b)
	}

	// Every well formed key origin with an account level is identical to
	// itself.
	for _, origin := range []string{
		"m/44h/0h/0h", "m/49h/1h/2h", "m/86h/1h/0h/0/1", "m/48h/0h/9h/1h",
	} {
		require.True(t, KeyOriginIdenticalDisregardingAccount(origin,
			origin), origin)
	}
}

func TestFormatFingerprint(t *testing.T) {
	t.Parallel()

	got, err := FormatFingerprint(" 1  1  1  1  1  1  1  1 ")
	require.NoError(t, err)
	require.Equal(t, "11111111", got)

	got, err = FormatFingerprint("7c85f2b5")
	require.NoError(t, err)
	require.Equal(t, "7C85F2B5", got)

	again, err := FormatFingerprint(got)
	require.NoError(t, err)
	require.Equal(t, got, again)

	for _, in := range []string{"1111111", "11", "111111111", "hhhhhhhh", ""} {
		_, err := FormatFingerprint(in)
		require.True(t, IsErrorCode(err, ErrFormat), "%q: %v", in, err)
		require.False(t, IsFingerprintValid(in), in)
	}
	require.True(t, IsFingerprintValid("aaaaaaaa"))
}
