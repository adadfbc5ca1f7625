package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"xpdesc/walletdesc"
)

// typesCmd defines the configuration options for the types command.
type typesCmd struct {
	Multisig bool `long:"multisig" description:"Only list multisig address types"`
	Single   bool `long:"single" description:"Only list single signature address types"`
}

var (
	// typesCfg defines the configuration options for the command.
	typesCfg = typesCmd{}
)

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *typesCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	addressTypes := walletdesc.AddressTypes()
	switch {
	case cmd.Multisig && cmd.Single:
		return fmt.Errorf("--multisig and --single can't be used " +
			"together")
	case cmd.Multisig:
		addressTypes = walletdesc.AddressTypesByMultisig(true)
	case cmd.Single:
		addressTypes = walletdesc.AddressTypesByMultisig(false)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKEY ORIGIN\tDEVICE\tDESCRIPTION")
	for _, t := range addressTypes {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", t.ShortName(),
			t.KeyOrigin(activeNetParams), t.DeviceAddressType(),
			t.Name())
	}
	return w.Flush()
}
