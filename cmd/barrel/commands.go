package barrel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/barrel/internal/version"
	"github.com/arthur-debert/barrel/pkg/config"
	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/generator"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runFlags are the flags of the root command
type runFlags struct {
	verbosity          int
	file               string
	dryRun             bool
	check              bool
	mode               string
	templated          bool
	abortOnError       bool
	allowFolderExports bool
	preset             string
}

// flagKeys maps flags to the configuration keys they override
var flagKeys = map[string]string{
	"mode":                 "mode",
	"templated":            "templated",
	"abort-on-error":       "abort_on_resolution_error",
	"allow-folder-exports": "allow_folder_exports",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:     "barrel [root-file]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rootFile, err := flags.rootFile(args)
			if err != nil {
				_ = cmd.Help()
				return err
			}
			return runGenerate(cmd, flags, rootFile)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.file, "file", "f", "", MsgFlagFile)
	rootCmd.PersistentFlags().StringVar(&flags.preset, "preset", "", MsgFlagPreset)

	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&flags.check, "check", false, MsgFlagCheck)
	addConfigFlags(rootCmd.Flags(), flags)

	_ = rootCmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"rewrite", "append"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "config",
		Title: "CONFIGURATION:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newGenConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func addConfigFlags(fs *pflag.FlagSet, flags *runFlags) {
	fs.StringVar(&flags.mode, "mode", "", MsgFlagMode)
	fs.BoolVar(&flags.templated, "templated", false, MsgFlagTemplated)
	fs.BoolVar(&flags.abortOnError, "abort-on-error", false, MsgFlagAbortOnError)
	fs.BoolVar(&flags.allowFolderExports, "allow-folder-exports", false, MsgFlagFolders)
}

// rootFile picks the root file from the positional argument or --file
func (f *runFlags) rootFile(args []string) (string, error) {
	switch {
	case len(args) == 1 && f.file != "" && args[0] != f.file:
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrTwoRootFile, args[0], f.file)
	case len(args) == 1:
		return args[0], nil
	case f.file != "":
		return f.file, nil
	}
	return "", errors.New(errors.ErrInvalidInput, MsgErrNoRootFile)
}

// overrides returns the configuration keys of flags set on the command line
func overrides(fs *pflag.FlagSet) map[string]interface{} {
	values := make(map[string]interface{})
	fs.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if f.Value.Type() == "bool" {
			values[key] = f.Value.String() == "true"
			return
		}
		values[key] = f.Value.String()
	})
	return values
}

// loadConfig loads the configuration for a root file
func loadConfig(cmd *cobra.Command, flags *runFlags, rootFile string) (*config.Config, error) {
	projectDir := "."
	if rootFile != "" {
		projectDir = filepath.Dir(rootFile)
	}
	return config.Load(config.LoadOptions{
		ProjectDir: projectDir,
		Preset:     flags.preset,
		Overrides:  overrides(cmd.Flags()),
	})
}

func runGenerate(cmd *cobra.Command, flags *runFlags, rootFile string) error {
	cfg, err := loadConfig(cmd, flags, rootFile)
	if err != nil {
		return err
	}

	result, err := generator.Run(generator.Options{
		RootFile: rootFile,
		Config:   cfg,
		DryRun:   flags.dryRun,
		Check:    flags.check,
	})
	if errors.IsErrorCode(err, errors.ErrOutOfDate) {
		printDiff(cmd, result)
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.dryRun || flags.check {
		printDiff(cmd, result)
	}
	printSummary(cmd, result)
	switch {
	case flags.check:
		_, _ = fmt.Fprintf(out, MsgUpToDate+"\n", rootFile)
	case flags.dryRun:
		_, _ = fmt.Fprintln(out, formatBold(fmt.Sprintf(MsgDryRunNotice, rootFile)))
	}
	return nil
}

func printSummary(cmd *cobra.Command, result *generator.Result) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, MsgSummary+"\n",
		result.RootFile, len(result.Lines()), len(result.Patterns), len(result.Exclusions), result.Mode)
	for _, p := range result.Patterns {
		_, _ = fmt.Fprintf(out, MsgPatternItem, p.Pattern.Text, len(p.Files))
	}
}

func printDiff(cmd *cobra.Command, result *generator.Result) {
	out := cmd.OutOrStdout()
	diff := result.Diff()
	if diff == "" {
		_, _ = fmt.Fprintln(out, MsgNoChanges)
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		_, _ = fmt.Fprintln(out, colorDiffLine(out, line))
	}
}

func newConfigCmd(flags *runFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags, flags.file)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addConfigFlags(cmd.Flags(), flags)
	return cmd
}

func newGenConfigCmd(flags *runFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !write {
				_, err := fmt.Fprintln(out, config.GenerateConfigContent())
				return err
			}

			dir := "."
			if flags.file != "" {
				dir = filepath.Dir(flags.file)
			}
			path, created, err := config.WriteProjectConfig(dir)
			if err != nil {
				return err
			}
			if !created {
				_, _ = fmt.Fprintf(out, MsgConfigExists, path)
				return nil
			}
			_, _ = fmt.Fprintf(out, MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// FormatError renders a run error with its details for the terminal
func FormatError(err error) string {
	lines := []string{pterm.Red(fmt.Sprintf(MsgErrorFormat, err))}
	details := errors.GetErrorDetails(err)
	for _, key := range []string{"root", "pattern", "file", "path"} {
		if value, ok := details[key]; ok {
			lines = append(lines, fmt.Sprintf(MsgErrorDetail, key, value))
		}
	}
	return strings.Join(lines, "\n")
}

// Main runs the root command and returns the process exit code
func Main(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, FormatError(err))
		return 1
	}
	return 0
}
