package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/cpitd/internal/config"
	"github.com/ingo-eichhorst/cpitd/internal/pipeline"
	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
	"github.com/ingo-eichhorst/cpitd/pkg/types"
	"github.com/ingo-eichhorst/cpitd/pkg/version"
)

var (
	verbose bool

	flagMinTokens  int
	flagNormalize  int
	flagFormat     string
	flagIgnore     []string
	flagLanguages  []string
	flagSuppress   []string
	flagConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "cpitd [paths...]",
	Short: "Detect copy-pasted and near-duplicate code across a codebase",
	Long: "cpitd tokenises source files, hashes them line by line and at merged\n" +
		"tree levels, and reports line ranges that recur across two or more\n" +
		"files. Paths may be files or directories; directories are walked\n" +
		"recursively. With no paths given, the current directory is scanned.",
	Version:      version.Version,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
	RunE:         runScan,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.SilenceErrors = true

	rootCmd.Flags().IntVar(&flagMinTokens, "min-tokens", 0, "minimum token count a file must have to be scanned (default 50)")
	rootCmd.Flags().IntVar(&flagNormalize, "normalize", 0, "normalization level: 0=exact, 1=identifiers, 2=literals (default 0)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "", "output format: human or json (default human)")
	rootCmd.Flags().StringArrayVar(&flagIgnore, "ignore", nil, "glob pattern to exclude from discovery (repeatable)")
	rootCmd.Flags().StringArrayVar(&flagLanguages, "languages", nil, "restrict discovery to these languages (repeatable)")
	rootCmd.Flags().StringArrayVar(&flagSuppress, "suppress", nil, "glob pattern suppressing matching clone groups (repeatable)")
	rootCmd.Flags().StringVar(&flagConfigPath, "config", "", "path to a pyproject.toml-style config file (default: pyproject.toml in the first path)")
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	configFile := flagConfigPath
	if configFile == "" {
		configFile = config.FindConfigFile(paths[0])
	}

	var fileSection *config.FileSection
	if configFile != "" {
		sec, err := config.LoadFile(configFile)
		if err != nil {
			return &types.ExitError{Code: 2, Message: err.Error()}
		}
		fileSection = sec
	}

	overrides := config.Overrides{
		Ignore:    flagIgnore,
		Languages: flagLanguages,
		Suppress:  flagSuppress,
	}
	if cmd.Flags().Changed("min-tokens") {
		overrides.MinTokens = &flagMinTokens
	}
	if cmd.Flags().Changed("normalize") {
		level := tokenizer.NormalizationLevel(flagNormalize)
		overrides.Normalize = &level
	}
	if cmd.Flags().Changed("format") {
		format := config.OutputFormat(flagFormat)
		overrides.Format = &format
	}

	cfg := config.Build(fileSection, overrides)
	if cfg.OutputFormat != config.FormatHuman && cfg.OutputFormat != config.FormatJSON {
		return &types.ExitError{Code: 2, Message: "format must be \"human\" or \"json\""}
	}

	driver := pipeline.New(verbose)
	reports, err := driver.ScanAndReport(cfg, paths, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(reports) > 0 {
		return &types.ExitError{Code: 1, Message: ""}
	}
	return nil
}
