package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tdryer/diff2html-go/internal/config"
	"github.com/tdryer/diff2html-go/internal/diff"
	"github.com/tdryer/diff2html-go/internal/input"
	"github.com/tdryer/diff2html-go/internal/log"
	"github.com/tdryer/diff2html-go/internal/render"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	inputSource string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:     "diff2html [-- <git diff args | file path>]",
	Short:   "Parse unified diffs and render them as JSON or colorized text",
	Long: `diff2html parses unified diff text (diff, git diff, or combined merge
diffs) into a structured model and renders it as JSON or colorized terminal
output, optionally pairing up similar deleted/inserted lines to highlight
sub-line changes.`,
	Version: version,
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .diff2html.yaml or ~/.config/diff2html/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to diff2html.log")

	rootCmd.Flags().StringVarP(&inputSource, "input", "i", "command",
		"diff source: command (git diff), file, or stdin")
	rootCmd.Flags().StringP("format", "f", config.FormatTerm,
		"output format: term or json")
	rootCmd.Flags().Bool("side-by-side", false,
		"render old and new versions in parallel columns")
	rootCmd.Flags().Int("width", 0,
		"output width in cells (0 = no truncation)")
	rootCmd.Flags().Bool("no-matching", false,
		"disable pairing of similar deleted/inserted lines")
	rootCmd.Flags().Float64("match-threshold", 1.0,
		"largest distance still considered a match, in [0,1]")
	rootCmd.Flags().Int("max-changes", 0,
		"mark a file as too big past this many changed lines (0 = unlimited)")
	rootCmd.Flags().Int("max-line-length", 0,
		"truncate stored line content to this many characters (0 = unlimited)")
	rootCmd.Flags().StringSlice("ignore", nil,
		"pathspecs to exclude from git diff input")

	_ = viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("side_by_side", rootCmd.Flags().Lookup("side-by-side"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("match_threshold", rootCmd.Flags().Lookup("match-threshold"))
	_ = viper.BindPFlag("diff_max_changes", rootCmd.Flags().Lookup("max-changes"))
	_ = viper.BindPFlag("diff_max_line_length", rootCmd.Flags().Lookup("max-line-length"))
	_ = viper.BindPFlag("ignore", rootCmd.Flags().Lookup("ignore"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("format", defaults.Format)
	viper.SetDefault("matching", defaults.Matching)
	viper.SetDefault("match_threshold", defaults.MatchThreshold)
	viper.SetDefault("match_max_comparisons", defaults.MatchMaxComparisons)
	viper.SetDefault("match_max_line_length", defaults.MatchMaxLineLength)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .diff2html.yaml (current directory)
		// 2. ~/.config/diff2html/config.yaml (user config)
		if _, err := os.Stat(".diff2html.yaml"); err == nil {
			viper.SetConfigFile(".diff2html.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "diff2html"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Missing config files are fine - defaults apply.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

func run(cmd *cobra.Command, args []string) error {
	if debug || os.Getenv("DIFF2HTML_DEBUG") != "" {
		cleanup, err := log.Init("diff2html.log")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	if noMatching, _ := cmd.Flags().GetBool("no-matching"); noMatching {
		cfg.Matching = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	source := input.Source(inputSource)
	switch source {
	case input.SourceStdin, input.SourceFile, input.SourceCommand:
	default:
		return fmt.Errorf("invalid input source %q, want command, file, or stdin", inputSource)
	}

	raw, err := input.Get(cmd.Context(), source, args, cfg.Ignore)
	if err != nil {
		return err
	}

	files := diff.Parse(raw, cfg.ParserConfig())
	log.Info(log.CatParse, "parsed diff", "files", len(files))

	out, err := renderOutput(files)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func renderOutput(files []*diff.DiffFile) (string, error) {
	if cfg.Format == config.FormatJSON {
		return render.JSON(files)
	}

	term := render.NewTerm(render.Options{
		Width:       cfg.Width,
		SideBySide:  cfg.SideBySide,
		Matching:    cfg.Matching,
		MatchConfig: cfg.MatchConfig(),
	})
	return term.Render(files), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
