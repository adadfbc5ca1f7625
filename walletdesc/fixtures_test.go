package walletdesc

// Extended keys derived on regtest from the test mnemonics
//
//	seed1: spider manual inform reject arch raccoon betray moon document across main build
//	seed2: similar seek stock parent depart rug adjust acoustic oppose sell roast hockey
//	seed3: debris yellow child maze hen lamp law venue pluck ketchup melody sick
const (
	seed1Fingerprint = "7c85f2b5"
	seed2Fingerprint = "34be20d9"
	seed3Fingerprint = "3b8adfc3"

	seed1P2PKH     = "tpubDCwGRkTC8E2QbbUPZvpXQad4zRHqo24YTJpAFDtJh1x6nTBojiKTorqCm2JQdnDEwLruKry8NTont7tG6jqZCFnp5c2evppfedDdRRAJxrX"
	seed1P2SHWPKH  = "tpubDDtnZN5GZwVXizwUky68uqH1JdwpMQjDaQ9K9k6Y7D1CSCADvt1MccYkP5Po52gRpaCzifCmxeTLD985FETuwZ9kwQVZGNy8FYCDF2mGzdk"
	seed1P2WPKH    = "tpubDCPkYWRWsTRZji1938hvWzdDsfQ39aasHz47s3htaKyYSHGdZBoNynBzwQsFS4xn4X4basMr1qL3DcPbjhcVNCzLzGhLoZixu2CAke9Q3hK"
	seed1P2TR      = "tpubDC6KnM1LSNv8uvtSen17Um6xTVh2rjmJxZHdVijZmAUSvaAcDjGmaJmR4VPKqebsf1AMYFWGU7ftCSWPjKrD72AKoQ8Z9TXugXP4y9Rg1F7"
	seed1P2SHP2WSH = "tpubDEBYeoKBCaY1fZ3PSpdYjeedEx5oWowEn8Pa8pS19RWQK5bvAJVFa7Qe8N8e6uCxtwJvwtWiGnHawY3GwbHiUtv17RUpL3FYxckC5QmRWip"
	seed2P2SHP2WSH = "tpubDEGiMrEBpyW7bqPePiQQ9FV2FsLnqwewrVL4HRByVoXnAohhi73iBGMFc5zKfRJ5ZipYmumysgxR7Uw6ZPz5NaAjzZuxWv2CfU7gutnV52o"
	seed3P2SHP2WSH = "tpubDEmjAPbjr9QfBH2cvPgWHiKam5b8izfawmQSFWwFR5jagDc1244YuFU7HM8xDi6JvMbhpwhe9ogAKrg9gCyfz4r16QJ3JarsxuxRZFwtvc7"
	seed1P2WSH     = "tpubDEBYeoKBCaY1h6353GCojAoPdi7GGz4JYhyac8StrxBWKZCb5nQQQJCFndXFmFGgakmPxS3zQkkCxzKGuLGBKhgfL96jrc6L3rn1D5bAhjo"
	seed2P2WSH     = "tpubDEGiMrEBpyW7ebPDipDBwgxi4Ct4VqDApRcDEZy6uT8HoE5jUduJiXH7axkuQdcf7ZGamBbng7Ym3MPwLHqkugswt1uCParZBGyGsfEZ7PQ"
	seed3P2WSH     = "tpubDEmjAPbjr9QfDidVmgSGdK6JYXiFy1xw9pVmXXSbZxa8qz2ixtZhaRyLdMS3wwECPao4PRC4dGWXnpwnzGUAaVewbW9VtkYaMg4neeTFLm6"

	// hwiXpub is the key of the HWI descriptor tests.
	hwiXpub = "tpubDEY3tNWvDs8J6xAmwoirxgff61gPN1V6U5numeb6xjvZRB883NPPpRYHt2A6fUE3YyzDLezFfuosBdXsdXJhJUcpqYWF9EEBmWqG3rG8sdy"

	// The 2-of-3 p2wsh wallet of the three seeds.
	multisigDesc = "wsh(sortedmulti(2," +
		"[7c85f2b5/48h/1h/0h/2h]" + seed1P2WSH + "/0/*," +
		"[34be20d9/48h/1h/0h/2h]" + seed2P2WSH + "/0/*," +
		"[3b8adfc3/48h/1h/0h/2h]" + seed3P2WSH + "/0/*))"
)
