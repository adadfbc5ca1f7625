package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/btcsuite/btclog"

	"xpdesc/seedtools"
	"xpdesc/walletdesc"
)

var (
	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = btclog.NewBackend(os.Stderr)

	log     = backendLog.Logger("MAIN")
	wdscLog = backendLog.Logger("WDSC")
	seedLog = backendLog.Logger("SEED")
)

// Initialize package-global logger variables.
func init() {
	walletdesc.UseLogger(wdscLog)
	seedtools.UseLogger(seedLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"MAIN": log,
	"WDSC": wdscLog,
	"SEED": seedLog,
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.
func setLogLevels(logLevel string) error {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return fmt.Errorf("the specified debug level [%v] is invalid -- "+
			"supported subsystems %v", logLevel, supportedSubsystems())
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}
