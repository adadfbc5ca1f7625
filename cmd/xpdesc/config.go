package main

import (
	"github.com/btcsuite/btcd/chaincfg"

	"xpdesc/keyinfo"
)

const (
	defaultNetwork    = "regtest"
	defaultDebugLevel = "info"
)

var (
	activeNetParams = &chaincfg.RegressionNetParams

	// Default global config.
	cfg = &config{
		Network:    defaultNetwork,
		DebugLevel: defaultDebugLevel,
	}
)

// config defines the global configuration options.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to an INI file with default option values" no-ini:"true"`
	Network    string `short:"n" long:"network" description:"Bitcoin network {mainnet, testnet, regtest, signet}"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
}

// mnemonicOptions are shared by the commands that work on a mnemonic.
type mnemonicOptions struct {
	Mnemonic   string `short:"m" long:"mnemonic" description:"BIP39 mnemonic" required:"true"`
	Passphrase string `short:"p" long:"passphrase" description:"BIP39 passphrase"`
}

// setupGlobalConfig validates the global configuration options and applies
// them.
func setupGlobalConfig() error {
	params, err := keyinfo.NetworkParams(cfg.Network)
	if err != nil {
		return err
	}
	activeNetParams = params

	return setLogLevels(cfg.DebugLevel)
}
