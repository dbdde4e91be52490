// Command addimports adds import and require statements to JavaScript and
// TypeScript files, reusing bindings the files already have.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hannajonsd/addimports/config"
	"github.com/hannajonsd/addimports/jsast"
	"github.com/hannajonsd/addimports/parser"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoStatements      = errors.New("no statements given, use -s or --statements-file")
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configFile string
	verbose    bool
}

// statementFlags are shared by the commands that add statements.
type statementFlags struct {
	statements     []string
	statementsFile string
	write          bool
	diff           bool
	format         string
}

func (f *statementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.statements, "statement", "s", nil, "statement to add (repeatable)")
	cmd.Flags().StringVar(&f.statementsFile, "statements-file", "", "file with statements to add")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write changes back to the files")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "show a diff instead of the result")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatText, "output format (text, json, yaml)")
}

// parse reads the requested statements from the flags and the statements file.
func (f *statementFlags) parse(ctx context.Context) ([]jsast.Statement, error) {
	switch f.format {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.format)
	}

	snippets := append([]string(nil), f.statements...)
	if f.statementsFile != "" {
		data, err := os.ReadFile(f.statementsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read statements file: %w", err)
		}
		snippets = append(snippets, string(data))
	}

	stmts, err := parser.ParseStatements(ctx, snippets...)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, ErrNoStatements
	}
	return stmts, nil
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "addimports",
		Short:         "Add imports and requires to JavaScript and TypeScript files",
		Long:          `addimports merges import and require statements into source files, reusing existing bindings and renaming new ones that would collide.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./.addimports.yaml or $HOME/.addimports.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(applyCmd(opts))
	rootCmd.AddCommand(batchCmd(opts))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "addimports %s\n", version)
		},
	}
}

// load reads the configuration and builds the logger.
func (o *rootOptions) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg.Logging, o.verbose, stderr), nil
}

func newLogger(cfg config.LoggingConfig, verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, formatJSON) {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
