//go:build !(js && wasm)

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lambda/internal/cmd"
	"lambda/internal/config"
	"lambda/internal/context"
	"lambda/internal/frontend/ast"
	"lambda/internal/frontend/lexer"
	"lambda/internal/repl"
)

// errFailed signals a run that already reported its errors
var errFailed = errors.New("front end reported errors")

type globalFlags struct {
	configPath string
	debug      bool
	color      string
	dump       bool
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "lambda: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "lambda",
		Short:         "Lexer and parser for untyped lambda calculus",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runREPL(flags, stdout)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ./lambda.yaml if present)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.color, "color", "", "color output: auto, always or never")
	root.PersistentFlags().BoolVar(&flags.dump, "dump", false, "print structural dumps instead of debug listings")

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Start the interactive read loop",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return runREPL(flags, stdout)
			},
		},
		&cobra.Command{
			Use:   "tokens FILE...",
			Short: "Print the tokens of every line",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return runFiles(flags, args, stdout, stderr, printTokens)
			},
		},
		&cobra.Command{
			Use:   "parse FILE...",
			Short: "Parse files and print their ASTs",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return runFiles(flags, args, stdout, stderr, printAST)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(c *cobra.Command, _ []string) {
				fmt.Fprintln(stdout, Version)
			},
		},
	)

	return root
}

// loadConfig reads the configuration and applies command-line overrides
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Debug = true
	}
	if flags.color != "" {
		cfg.Color = flags.color
	}
	if flags.dump {
		cfg.DumpAST = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

func runREPL(flags *globalFlags, stdout io.Writer) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	return repl.New(cfg, stdout, cfg.UseColor(!color.NoColor), logger).Run()
}

type renderFunc func(w io.Writer, file *context.SourceFile, dump bool)

// runFiles lexes and parses every file concurrently, renders each file and
// then the diagnostics
func runFiles(flags *globalFlags, paths []string, stdout, stderr io.Writer, render renderFunc) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	ctx := context.New(cfg.Options()).LogTo(stderr)

	runErr := cmd.Run(ctx, paths)

	for _, file := range ctx.GetAllFiles() {
		render(stdout, file, cfg.DumpAST)
	}

	ctx.EmitDiagnostics(stderr, cfg.UseColor(!color.NoColor))

	if runErr != nil {
		return runErr
	}
	if ctx.HasErrors() {
		return errFailed
	}
	return nil
}

func printTokens(w io.Writer, file *context.SourceFile, dump bool) {
	fmt.Fprintf(w, "%s:\n", file.Path)
	for _, line := range file.Lines {
		if dump {
			fmt.Fprintf(w, "%4d: %s", line.Number, ast.Dump(line.Tokens))
			continue
		}
		fmt.Fprintf(w, "%4d: %s\n", line.Number, lexer.FormatTokens(line.Tokens))
	}
}

func printAST(w io.Writer, file *context.SourceFile, dump bool) {
	fmt.Fprintf(w, "%s:\n", file.Path)
	for _, line := range file.Lines {
		if line.Err != nil || len(line.Nodes) == 0 {
			continue
		}
		if dump {
			fmt.Fprintf(w, "%4d: %s", line.Number, ast.Dump(line.Nodes))
			continue
		}
		fmt.Fprintf(w, "%4d: %s\n", line.Number, ast.FormatAll(line.Nodes))
	}
}
