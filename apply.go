package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hannajonsd/addimports/analyzer"
	"github.com/hannajonsd/addimports/printer"
)

var ErrWriteStdin = errors.New("--write cannot be used with stdin")

// applyResult is the json and yaml form of an apply run.
type applyResult struct {
	Path     string            `json:"path" yaml:"path"`
	Changed  bool              `json:"changed" yaml:"changed"`
	Written  bool              `json:"written" yaml:"written"`
	Bindings map[string]string `json:"bindings" yaml:"bindings"`
	Output   string            `json:"output,omitempty" yaml:"output,omitempty"`
}

func applyCmd(opts *rootOptions) *cobra.Command {
	var flags statementFlags
	var stdinName string

	cmd := &cobra.Command{
		Use:   "apply <file|->",
		Short: "Add statements to a single file",
		Long: `Add import and require statements to a single file and print the result.

Examples:
  addimports apply app.js -s 'import React from "react"'
  addimports apply app.js -s 'const { join } = require("path")' --diff
  addimports apply app.ts --statements-file imports.js --write
  cat app.js | addimports apply - -s 'import x from "x"' -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts, &flags, args[0], stdinName)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&stdinName, "stdin-filename", "stdin.js", "file name that selects the grammar for stdin")

	return cmd
}

func runApply(cmd *cobra.Command, opts *rootOptions, flags *statementFlags, path, stdinName string) error {
	ctx := cmd.Context()

	cfg, logger, err := opts.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	stmts, err := flags.parse(ctx)
	if err != nil {
		return err
	}

	var source []byte
	name := path
	if path == "-" {
		if flags.write {
			return ErrWriteStdin
		}
		name = stdinName
		source, err = io.ReadAll(cmd.InOrStdin())
	} else {
		source, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	runner, err := analyzer.New(cfg, printer.New(cfg.PrinterConfig()), logger)
	if err != nil {
		return err
	}

	out, bindings, err := runner.ProcessSource(ctx, name, source, stmts)
	if err != nil {
		return err
	}

	result := applyResult{Path: name, Changed: out != string(source), Bindings: bindings}

	if flags.write && result.Changed {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return statErr
		}
		if writeErr := os.WriteFile(path, []byte(out), info.Mode().Perm()); writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", path, writeErr)
		}
		result.Written = true
		logger.Info("wrote file", "path", path)
	}

	w := cmd.OutOrStdout()
	if flags.format != formatText {
		if !flags.write {
			result.Output = out
		}
		return encode(w, flags.format, result)
	}

	switch {
	case flags.diff:
		if result.Changed {
			analyzer.WriteDiff(w, name, string(source), out)
		}
	case !flags.write:
		_, err = io.WriteString(w, out)
	}

	return err
}
