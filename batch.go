package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hannajonsd/addimports/analyzer"
	"github.com/hannajonsd/addimports/printer"
)

var ErrFilesFailed = errors.New("some files could not be processed")

func batchCmd(opts *rootOptions) *cobra.Command {
	var flags statementFlags

	cmd := &cobra.Command{
		Use:   "batch [dir]",
		Short: "Add statements to every source file under a directory",
		Long: `Add import and require statements to every JavaScript and TypeScript file
under a directory. Files listed in .gitignore, hidden directories and the
configured skip directories are left alone.

Examples:
  addimports batch src -s 'import { t } from "i18n"'
  addimports batch --write -s 'const log = require("./log")'
  addimports batch --diff -s 'import type { Props } from "./types"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runBatch(cmd, opts, &flags, root)
		},
	}

	flags.register(cmd)

	return cmd
}

func runBatch(cmd *cobra.Command, opts *rootOptions, flags *statementFlags, root string) error {
	ctx := cmd.Context()

	cfg, logger, err := opts.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	stmts, err := flags.parse(ctx)
	if err != nil {
		return err
	}

	runner, err := analyzer.New(cfg, printer.New(cfg.PrinterConfig()), logger)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx, root, stmts, flags.write)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case flags.format != formatText:
		if err := encode(w, flags.format, report); err != nil {
			return err
		}
	case flags.diff:
		for _, f := range report.Files {
			if f.Changed {
				analyzer.WriteDiff(w, f.Path, f.Before, f.After)
			}
		}
	default:
		analyzer.Display(w, report, opts.verbose)
	}

	if _, _, _, failed := report.Counts(); failed > 0 {
		return fmt.Errorf("%w: %d", ErrFilesFailed, failed)
	}
	return nil
}
