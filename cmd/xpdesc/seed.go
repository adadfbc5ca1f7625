package main

import (
	"errors"
	"fmt"

	"xpdesc/seedtools"
	"xpdesc/walletdesc"
)

// deriveCmd defines the configuration options for the derive command.
type deriveCmd struct {
	mnemonicOptions
	Origin     string `short:"o" long:"origin" description:"Key origin, e.g. m/84h/1h/0h; defaults to the key origin of --type"`
	Type       string `short:"t" long:"type" description:"Address type short name" default:"p2wpkh"`
	Derivation string `long:"derivation" description:"Derivation suffix" default:"/<0;1>/*"`
}

// xpubsCmd defines the configuration options for the xpubs command.
type xpubsCmd struct {
	mnemonicOptions
}

// secretCmd defines the configuration options for the secret command.
type secretCmd struct {
	mnemonicOptions
}

// mnemonicCmd defines the configuration options for the mnemonic command.
type mnemonicCmd struct {
	Bits int `short:"b" long:"bits" description:"Entropy bits {128, 160, 192, 224, 256}" default:"128"`
}

var (
	deriveCfg   = deriveCmd{}
	xpubsCfg    = xpubsCmd{}
	secretCfg   = secretCmd{}
	mnemonicCfg = mnemonicCmd{}
)

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *deriveCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	origin := cmd.Origin
	if origin == "" {
		addressType, ok := walletdesc.AddressTypeByShortName(cmd.Type)
		if !ok {
			return fmt.Errorf("unknown address type %q", cmd.Type)
		}
		origin = addressType.KeyOrigin(activeNetParams)
	}

	w, err := seedtools.NewWallet(cmd.Mnemonic, cmd.Passphrase,
		activeNetParams)
	if err != nil {
		return err
	}
	p, err := w.DeriveProvider(origin, cmd.Derivation)
	if err != nil {
		return err
	}
	fmt.Println(p)
	return nil
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *xpubsCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	signer, err := seedtools.NewSoftwareSigner(cmd.Mnemonic, cmd.Passphrase,
		activeNetParams)
	if err != nil {
		return err
	}
	xpubs, err := signer.Xpubs()
	if err != nil {
		return err
	}

	fmt.Printf("Fingerprint: %s\n", signer.Fingerprint())
	for _, x := range xpubs {
		fmt.Printf("%s %s %s\n", x.AddressType.ShortName(), x.KeyOrigin,
			x.XPub)
	}
	return nil
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *secretCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	if len(args) < 1 {
		return errors.New("required descriptor parameter not specified")
	}
	signer, err := seedtools.NewSoftwareSigner(cmd.Mnemonic, cmd.Passphrase,
		activeNetParams)
	if err != nil {
		return err
	}
	out, err := signer.DescriptorWithSecrets(args[0])
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// Usage overrides the usage display for the command.
func (cmd *secretCmd) Usage() string {
	return "<descriptor>"
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *mnemonicCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	mnemonic, err := seedtools.GenerateMnemonic(cmd.Bits)
	if err != nil {
		return err
	}
	fmt.Println(mnemonic)
	return nil
}
