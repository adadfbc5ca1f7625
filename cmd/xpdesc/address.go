package main

import (
	"errors"
	"fmt"

	"xpdesc/walletdesc"
)

// addressCmd defines the configuration options for the address command.
type addressCmd struct {
	Index  uint32 `short:"i" long:"index" description:"Index of the first address"`
	Count  uint32 `short:"c" long:"count" description:"Number of addresses" default:"1"`
	Change bool   `long:"change" description:"Derive change addresses"`
}

var (
	// addressCfg defines the configuration options for the command.
	addressCfg = addressCmd{}
)

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *addressCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	if len(args) < 1 {
		return errors.New("required descriptor parameter not specified")
	}
	info, err := walletdesc.FromString(args[0])
	if err != nil {
		return err
	}

	keychain := walletdesc.KeychainExternal
	if cmd.Change {
		keychain = walletdesc.KeychainInternal
	}
	for index := cmd.Index; index-cmd.Index < cmd.Count; index++ {
		addr, err := info.AddressAt(activeNetParams, keychain, index)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", info.AddressType().BIP32Path(keychain,
			index), addr.EncodeAddress())
	}
	return nil
}

// Usage overrides the usage display for the command.
func (cmd *addressCmd) Usage() string {
	return "<descriptor>"
}
