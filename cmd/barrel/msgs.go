package barrel

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate barrel files from an @index(...) directive"
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Print the effective configuration"
	MsgGenConfigShort  = "Generate a commented configuration file"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice   = "DRY RUN - %s was not modified"
	MsgUpToDate       = "%s is up to date"
	MsgSummary        = "%s: %d export(s) from %d pattern(s), %d exclusion(s) [%s]"
	MsgNoChanges      = "No changes."
	MsgPatternItem    = "  %s (%d)\n"
	MsgConfigWritten  = "Wrote %s\n"
	MsgConfigExists   = "%s already exists, not overwriting\n"
	MsgVersionFormat  = "barrel %s (commit %s, built %s)\n"
	MsgErrorFormat    = "Error: %v"
	MsgErrorDetail    = "  %s: %v"
	MsgErrNoRootFile  = "no root file given: pass it as an argument or with --file"
	MsgErrTwoRootFile = "root file given twice: %s and %s"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFile         = "Root file carrying the @index(...) directive"
	MsgFlagDryRun       = "Print the changes as a diff without writing them"
	MsgFlagCheck        = "Fail when the root file is not up to date (implies --dry-run)"
	MsgFlagMode         = "Persistence mode: rewrite or append"
	MsgFlagTemplated    = "Use the backtick template from the directive for export lines"
	MsgFlagAbortOnError = "Fail the run when a matched file cannot be resolved"
	MsgFlagFolders      = "Export subdirectories that have their own index.ts as one entry"
	MsgFlagPreset       = "Start from a preset: simple or templated"
	MsgFlagWrite        = "Write the file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
