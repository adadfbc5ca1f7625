package main

import (
	"errors"
	"fmt"
	"os"

	"xpdesc/descriptor"
	"xpdesc/keyinfo"
	"xpdesc/walletdesc"
)

// inspectCmd defines the configuration options for the inspect command.
type inspectCmd struct {
	Keys bool `short:"k" long:"keys" description:"Decode the extended key of every provider"`
}

var (
	// inspectCfg defines the configuration options for the command.
	inspectCfg = inspectCmd{}
)

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *inspectCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	if len(args) < 1 {
		return errors.New("required descriptor parameter not specified")
	}
	desc := args[0]

	if err := descriptor.VerifyChecksum(desc); err != nil {
		log.Warnf("Descriptor checksum: %v", err)
	}

	info, err := walletdesc.FromString(desc)
	if err != nil {
		return err
	}
	addressType := info.AddressType()

	fmt.Printf("Address type: %s (%s)\n", addressType.ShortName(),
		addressType.Name())
	fmt.Printf("Device address type: %v\n", addressType.DeviceAddressType())
	if addressType.IsMultisig() {
		fmt.Printf("Threshold: %d-of-%d\n", info.Threshold(),
			len(info.Providers()))
	}

	var analyzer *keyinfo.Analyzer
	if cmd.Keys {
		analyzer, err = keyinfo.NewAnalyzer(cfg.Network)
		if err != nil {
			return err
		}
	}
	for i, p := range info.Providers() {
		fmt.Printf("Key %d: fingerprint %s, key origin %s, derivation "+
			"%s\n", i, p.Fingerprint(), p.KeyOrigin(),
			p.DerivationPath())
		fmt.Printf("  %s\n", p.XPub())

		if analyzer == nil {
			continue
		}
		ki, err := analyzer.Analyze(p.XPub())
		if err != nil {
			return err
		}
		keyinfo.DisplayInfo(os.Stdout, ki)
	}

	for _, d := range info.CheckKeyOrigins(activeNetParams) {
		fmt.Printf("Warning: %v\n", d)
	}

	out, err := info.DescriptorString(activeNetParams,
		func(walletdesc.Diagnostic) {})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// Usage overrides the usage display for the command.
func (cmd *inspectCmd) Usage() string {
	return "<descriptor>"
}
