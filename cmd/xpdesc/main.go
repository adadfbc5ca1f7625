package main

import (
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

// loadConfigFile applies the option values of the INI file named by
// --configfile. Values given on the command line are parsed afterwards and
// take precedence.
func loadConfigFile(parser *flags.Parser) error {
	preCfg := config{}
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	if _, err := preParser.Parse(); err != nil {
		return err
	}
	if preCfg.ConfigFile == "" {
		return nil
	}

	log.Debugf("Loading config file %s", preCfg.ConfigFile)
	return flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	defer os.Stderr.Sync()

	// Setup the parser options and commands.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	parserFlags := flags.Options(flags.HelpFlag | flags.PassDoubleDash)
	parser := flags.NewNamedParser(appName, parserFlags)
	parser.AddGroup("Global Options", "", cfg)
	parser.AddCommand("inspect",
		"Decompose a descriptor into its address type and key providers",
		"Verify the checksum of a descriptor, match it against the "+
			"supported templates and report the key providers and "+
			"non-standard key origins.", &inspectCfg)
	parser.AddCommand("build",
		"Assemble a descriptor from an address type and keys", "",
		&buildCfg)
	parser.AddCommand("derive",
		"Derive the key provider of a mnemonic at a key origin", "",
		&deriveCfg)
	parser.AddCommand("xpubs",
		"Show the account xpub of a mnemonic for every address type", "",
		&xpubsCfg)
	parser.AddCommand("secret",
		"Replace the xpubs of a mnemonic in a descriptor by its xprvs",
		"Replace the xpubs of a mnemonic in a descriptor by its xprvs.  "+
			"WARNING: The output contains private keys.", &secretCfg)
	parser.AddCommand("address",
		"Derive addresses of a descriptor", "", &addressCfg)
	parser.AddCommand("types",
		"List the supported address types", "", &typesCfg)
	parser.AddCommand("mnemonic",
		"Generate a new BIP39 mnemonic", "", &mnemonicCfg)

	if err := loadConfigFile(parser); err != nil {
		log.Error(err)
		return err
	}

	// Parse command line and invoke the Execute function for the specified
	// command.
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		} else {
			log.Error(err)
		}

		return err
	}

	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
