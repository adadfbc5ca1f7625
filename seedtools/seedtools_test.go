package seedtools

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/go-bip39"
	"github.com/stretchr/testify/require"

	"xpdesc/descriptor"
	"xpdesc/walletdesc"
)

const (
	seed1 = "spider manual inform reject arch raccoon betray moon document across main build"
	seed2 = "similar seek stock parent depart rug adjust acoustic oppose sell roast hockey"
	seed3 = "debris yellow child maze hen lamp law venue pluck ketchup melody sick"

	abandon = "abandon abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon about"

	seed1P2PKH     = "tpubDCwGRkTC8E2QbbUPZvpXQad4zRHqo24YTJpAFDtJh1x6nTBojiKTorqCm2JQdnDEwLruKry8NTont7tG6jqZCFnp5c2evppfedDdRRAJxrX"
	seed1P2SHWPKH  = "tpubDDtnZN5GZwVXizwUky68uqH1JdwpMQjDaQ9K9k6Y7D1CSCADvt1MccYkP5Po52gRpaCzifCmxeTLD985FETuwZ9kwQVZGNy8FYCDF2mGzdk"
	seed1P2WPKH    = "tpubDCPkYWRWsTRZji1938hvWzdDsfQ39aasHz47s3htaKyYSHGdZBoNynBzwQsFS4xn4X4basMr1qL3DcPbjhcVNCzLzGhLoZixu2CAke9Q3hK"
	seed1P2TR      = "tpubDC6KnM1LSNv8uvtSen17Um6xTVh2rjmJxZHdVijZmAUSvaAcDjGmaJmR4VPKqebsf1AMYFWGU7ftCSWPjKrD72AKoQ8Z9TXugXP4y9Rg1F7"
	seed1P2SHP2WSH = "tpubDEBYeoKBCaY1fZ3PSpdYjeedEx5oWowEn8Pa8pS19RWQK5bvAJVFa7Qe8N8e6uCxtwJvwtWiGnHawY3GwbHiUtv17RUpL3FYxckC5QmRWip"
	seed1P2WSH     = "tpubDEBYeoKBCaY1h6353GCojAoPdi7GGz4JYhyac8StrxBWKZCb5nQQQJCFndXFmFGgakmPxS3zQkkCxzKGuLGBKhgfL96jrc6L3rn1D5bAhjo"
	seed2P2WSH     = "tpubDEGiMrEBpyW7ebPDipDBwgxi4Ct4VqDApRcDEZy6uT8HoE5jUduJiXH7axkuQdcf7ZGamBbng7Ym3MPwLHqkugswt1uCParZBGyGsfEZ7PQ"
	seed3P2WSH     = "tpubDEmjAPbjr9QfDidVmgSGdK6JYXiFy1xw9pVmXXSbZxa8qz2ixtZhaRyLdMS3wwECPao4PRC4dGWXnpwnzGUAaVewbW9VtkYaMg4neeTFLm6"

	seed1P2WPKHPriv = "tprv8fhiQ6PGj5jtrEyM9V3L7ay7Jdt6zFPxigTLaXfbA4B9bo1rvnynoHa8mF9DHoMEGn9P7MvRhXGS8S8h9zKgmfVYoE86EvL6Ukp6fqk1oUN"
)

var regtest = &chaincfg.RegressionNetParams

func TestGenerateMnemonic(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{128, 160, 192, 224, 256} {
		mnemonic, err := GenerateMnemonic(bits)
		require.NoError(t, err)
		require.Len(t, strings.Fields(mnemonic), bits/32*3)
		require.True(t, bip39.IsMnemonicValid(mnemonic))

		_, err = MnemonicSeed(mnemonic, "")
		require.NoError(t, err)
	}

	for _, bits := range []int{0, 96, 127, 288} {
		_, err := GenerateMnemonic(bits)
		require.Error(t, err, bits)
	}
}

func TestMnemonicSeed(t *testing.T) {
	t.Parallel()

	seed, err := MnemonicSeed(seed1, "")
	require.NoError(t, err)
	require.Len(t, seed, 64)

	// Whitespace and case do not change the seed.
	again, err := MnemonicSeed("  SPIDER manual\tinform reject arch "+
		"raccoon betray moon document across main\nbuild ", "")
	require.NoError(t, err)
	require.Equal(t, seed, again)

	other, err := MnemonicSeed(seed1, "passphrase")
	require.NoError(t, err)
	require.NotEqual(t, seed, other)

	// Unknown words are rejected.
	_, err = MnemonicSeed(strings.Replace(seed1, "build", "xyzzy", 1), "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)

	_, err = MnemonicSeed("not a mnemonic", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestDerive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin string
		xpub   string
	}{
		{"m/44h/1h/0h", seed1P2PKH},
		{"m/49'/1'/0'", seed1P2SHWPKH},
		{"m/84h/1h/0h", seed1P2WPKH},
		{"m/86h/1h/0h", seed1P2TR},
		{"m/48h/1h/0h/1h", seed1P2SHP2WSH},
		{"m/48h/1h/0h/2h", seed1P2WSH},
		{"m", "tpubD6NzVbkrYhZ4YjD4x8pv3PDE9bzSdF6FLsCroncohJbjpx4X9KykvHvZt2E2ybcrAuiNXWkVMt8TuJxYV7YMcgkfytvjMoCssXpL6pUp4Sc"},
		{"m/1234567", "tpubD9BDKDcxLHML2kmMeCuMF5QBETNQncf35TnwPvC5qhtLZupbxLEa4mhrpZZzfgmL8cxVTVUhgmUticQNWipZd19zatMmwg7LLgYjmFkqXpM"},
		{"m/1234567/0h/1", "tpubDDXENRdKZmizWdFbbgVf37n9zZ6yykSUdLYfhoPG2ubUgBVaUShGvdU17BPRwNNtLRrt8jVayR96JoW8yg9TdDo9tg7LeCWCqJ9V7NFnQqL"},
	}
	for _, test := range tests {
		xpub, fingerprint, err := Derive(seed1, test.origin, regtest)
		require.NoError(t, err, test.origin)
		require.Equal(t, test.xpub, xpub, test.origin)
		require.Equal(t, "7c85f2b5", fingerprint)
	}

	for mnemonic, want := range map[string]string{
		seed2: seed2P2WSH,
		seed3: seed3P2WSH,
	} {
		xpub, _, err := Derive(mnemonic, "m/48h/1h/0h/2h", regtest)
		require.NoError(t, err)
		require.Equal(t, want, xpub)
	}

	_, _, err := Derive(seed1, "m/84h/x", regtest)
	require.True(t, walletdesc.IsErrorCode(err, walletdesc.ErrFormat))

	_, _, err = Derive("abandon abandon", "m/84h/1h/0h", regtest)
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestDeriveProvider(t *testing.T) {
	t.Parallel()

	p, err := DeriveProvider(seed1, "m/84'/1'/0'", regtest,
		walletdesc.DerivationMultipath)
	require.NoError(t, err)
	require.Equal(t, seed1P2WPKH, p.XPub())
	require.Equal(t, "7C85F2B5", p.Fingerprint())
	require.Equal(t, "m/84h/1h/0h", p.KeyOrigin())
	require.Equal(t, "/<0;1>/*", p.DerivationPath())

	info, err := walletdesc.NewDescriptorInfo(walletdesc.P2WPKH,
		[]*walletdesc.SimplePubKeyProvider{p}, 1)
	require.NoError(t, err)
	addr, err := info.AddressAt(regtest, walletdesc.KeychainExternal, 0)
	require.NoError(t, err)
	require.Equal(t, "bcrt1q36rvrdyduh5zczavywnj0dqmmna85mrpyk9z0k",
		addr.EncodeAddress())
}

// TestReferenceAddresses checks the first addresses of the BIP44, BIP49,
// BIP84 and BIP86 test vectors.
func TestReferenceAddresses(t *testing.T) {
	t.Parallel()

	w, err := NewWallet(abandon, "", &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, "73c5da0a", w.Fingerprint())

	xpub, _, err := w.Derive("m")
	require.NoError(t, err)
	require.Equal(t, "xpub661MyMwAqRbcFkPHucMnrGNzDwb6teAX1RbKQmqtEF8kK3Z7LZ59qafCjB9eCRLiTVG3uxBxgKvRgbubRhqSKXnGGb1aoaqLrpMBDrVxga8", xpub)

	xpub, _, err = w.Derive("m/84h/0h/0h")
	require.NoError(t, err)
	require.Equal(t, "xpub6CatWdiZiodmUeTDp8LT5or8nmbKNcuyvz7WyksVFkKB4RHwCD3XyuvPEbvqAQY3rAPshWcMLoP2fMFMKHPJ4ZeZXYVUhLv1VMrjPC7PW6V", xpub)

	tests := []struct {
		addressType *walletdesc.AddressType
		params      *chaincfg.Params
		keychain    walletdesc.Keychain
		want        string
	}{
		{walletdesc.P2PKH, &chaincfg.MainNetParams,
			walletdesc.KeychainExternal, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"},
		{walletdesc.P2SHP2WPKH, &chaincfg.TestNet3Params,
			walletdesc.KeychainExternal, "2Mww8dCYPUpKHofjgcXcBCEGmniw9CoaiD2"},
		{walletdesc.P2WPKH, &chaincfg.MainNetParams,
			walletdesc.KeychainExternal, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu"},
		{walletdesc.P2WPKH, &chaincfg.MainNetParams,
			walletdesc.KeychainInternal, "bc1q8c6fshw2dlwun7ekn9qwf37cu2rn755upcp6el"},
		{walletdesc.P2TR, &chaincfg.MainNetParams,
			walletdesc.KeychainExternal, "bc1p5cyxnuxmeuwuvkwfem96lqzszd02n6xdcjrs20cac6yqjjwudpxqkedrcr"},
	}
	for _, test := range tests {
		w, err := NewWallet(abandon, "", test.params)
		require.NoError(t, err)

		origin := test.addressType.KeyOrigin(test.params)
		p, err := w.DeriveProvider(origin, walletdesc.DerivationMultipath)
		require.NoError(t, err, origin)

		info, err := walletdesc.NewDescriptorInfo(test.addressType,
			[]*walletdesc.SimplePubKeyProvider{p}, 1)
		require.NoError(t, err)

		addr, err := info.AddressAt(test.params, test.keychain, 0)
		require.NoError(t, err, origin)
		require.Equal(t, test.want, addr.EncodeAddress(), origin)
	}
}

func TestSoftwareSignerXpubs(t *testing.T) {
	t.Parallel()

	signer, err := NewSoftwareSigner(seed1, "", regtest)
	require.NoError(t, err)
	require.Equal(t, "7c85f2b5", signer.Fingerprint())

	xpubs, err := signer.Xpubs()
	require.NoError(t, err)
	require.Len(t, xpubs, len(walletdesc.AddressTypes()))

	want := []string{
		seed1P2PKH, seed1P2SHWPKH, seed1P2WPKH, seed1P2TR,
		seed1P2SHP2WSH, seed1P2WSH,
	}
	for i, xpub := range xpubs {
		require.Same(t, walletdesc.AddressTypes()[i], xpub.AddressType)
		require.Equal(t, xpub.AddressType.KeyOrigin(regtest), xpub.KeyOrigin)
		require.Equal(t, want[i], xpub.XPub, xpub.KeyOrigin)
	}

	xpub, fingerprint, err := signer.Derive("m/84h/1h/0h")
	require.NoError(t, err)
	require.Equal(t, seed1P2WPKH, xpub)
	require.Equal(t, "7c85f2b5", fingerprint)
}

func TestDeriveAccount(t *testing.T) {
	t.Parallel()

	w, err := NewWallet(seed1, "", regtest)
	require.NoError(t, err)

	key, err := w.DeriveAccount(walletdesc.P2WSH, 0)
	require.NoError(t, err)
	pub, err := key.Neuter()
	require.NoError(t, err)
	require.Equal(t, seed1P2WSH, pub.String())

	// Other accounts follow the same template.
	key, err = w.DeriveAccount(walletdesc.P2WPKH, 1)
	require.NoError(t, err)
	pub, err = key.Neuter()
	require.NoError(t, err)
	xpub, _, err := w.Derive("m/84h/1h/1h")
	require.NoError(t, err)
	require.Equal(t, xpub, pub.String())
	require.NotEqual(t, seed1P2WPKH, xpub)

	_, err = w.DeriveAccount(walletdesc.P2WPKH, hdkeychain.HardenedKeyStart)
	require.Error(t, err)
}

func TestDescriptorWithSecrets(t *testing.T) {
	t.Parallel()

	signer, err := NewSoftwareSigner(seed1, "", regtest)
	require.NoError(t, err)

	single := "wpkh([7c85f2b5/84h/1h/0h]" + seed1P2WPKH + "/<0;1>/*)"
	out, err := signer.DescriptorWithSecrets(single)
	require.NoError(t, err)
	require.NoError(t, descriptor.VerifyChecksum(out))
	require.Equal(t, "wpkh([7c85f2b5/84'/1'/0']"+seed1P2WPKHPriv+"/<0;1>/*)",
		out[:strings.IndexByte(out, '#')])

	multisig := "wsh(sortedmulti(2," +
		"[7c85f2b5/48h/1h/0h/2h]" + seed1P2WSH + "/0/*," +
		"[34be20d9/48h/1h/0h/2h]" + seed2P2WSH + "/0/*," +
		"[3b8adfc3/48h/1h/0h/2h]" + seed3P2WSH + "/0/*))"
	out, err = signer.DescriptorWithSecrets(multisig)
	require.NoError(t, err)
	require.NoError(t, descriptor.VerifyChecksum(out))
	require.Equal(t, 1, strings.Count(out, "tprv"))
	require.NotContains(t, out, seed1P2WSH)
	require.Contains(t, out, "[34be20d9/48'/1'/0'/2']"+seed2P2WSH+"/0/*")
	require.Contains(t, out, "[3b8adfc3/48'/1'/0'/2']"+seed3P2WSH+"/0/*")

	// The substituted private key belongs to the replaced public key.
	tree, err := descriptor.Parse(out)
	require.NoError(t, err)
	priv, err := hdkeychain.NewKeyFromString(tree.Sub.Keys[0].Pubkey)
	require.NoError(t, err)
	require.True(t, priv.IsPrivate())
	pub, err := priv.Neuter()
	require.NoError(t, err)
	require.Equal(t, seed1P2WSH, pub.String())

	// A key with the signer fingerprint but a foreign xpub stays public.
	foreign := "wpkh([7c85f2b5/84h/1h/0h]" + seed2P2WSH + "/0/*)"
	out, err = signer.DescriptorWithSecrets(foreign)
	require.NoError(t, err)
	require.NotContains(t, out, "tprv")

	_, err = signer.DescriptorWithSecrets("wpkh(")
	require.ErrorIs(t, err, descriptor.ErrMalformedDescriptor)
}
