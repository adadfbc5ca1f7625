package main

import (
	"errors"
	"fmt"

	"xpdesc/descriptor"
	"xpdesc/walletdesc"
)

// buildCmd defines the configuration options for the build command.
type buildCmd struct {
	Type       string   `short:"t" long:"type" description:"Address type short name, e.g. p2wsh" required:"true"`
	Threshold  int      `long:"threshold" description:"Number of required signatures of a multisig wallet" default:"1"`
	Keys       []string `short:"k" long:"key" description:"Key expression [fingerprint/origin]xpub[/derivation]; repeat for every signer" required:"true"`
	Derivation string   `long:"derivation" description:"Derivation suffix for keys without one" default:"/<0;1>/*"`
}

var (
	// buildCfg defines the configuration options for the command.
	buildCfg = buildCmd{}
)

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *buildCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	addressType, ok := walletdesc.AddressTypeByShortName(cmd.Type)
	if !ok {
		return fmt.Errorf("unknown address type %q -- supported types %v",
			cmd.Type, walletdesc.SupportedShortNames())
	}

	providers := make([]*walletdesc.SimplePubKeyProvider, 0, len(cmd.Keys))
	for _, k := range cmd.Keys {
		key, err := descriptor.ParseKey(k)
		if err != nil {
			return err
		}
		if key.Origin == nil {
			return errors.New("key " + k + " has no key origin")
		}
		if key.DerivPath == "" {
			key.DerivPath = cmd.Derivation
		}
		p, err := walletdesc.ProviderFromDescriptorKey(key)
		if err != nil {
			return err
		}
		providers = append(providers, p)
	}

	info, err := walletdesc.NewDescriptorInfo(addressType, providers,
		cmd.Threshold)
	if err != nil {
		return err
	}
	out, err := info.DescriptorString(activeNetParams, nil)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
