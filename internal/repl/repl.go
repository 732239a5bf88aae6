// Package repl is the interactive driver: it reads one line at a time,
// runs the lexer and parser over it and prints the raw input, the tokens
// and the AST. Parse failures are reported and the loop keeps going.
package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"lambda/internal/config"
	"lambda/internal/context"
	"lambda/internal/diagnostics"
	"lambda/internal/frontend/ast"
	"lambda/internal/frontend/lexer"
)

const sourceName = "<stdin>"

const helpText = `REPL commands:
  :quit     Exit the REPL
  :help     Show this help
  :tokens   Toggle the token listing
  :ast      Toggle the AST listing
  :dump     Toggle the structural AST dump
`

// REPL holds the driver state between lines
type REPL struct {
	out    io.Writer
	logger *slog.Logger

	prompt      string
	historyPath string

	showTokens bool
	showAST    bool
	dumpAST    bool

	// every line entered so far, so diagnostics can quote them
	lines   []string
	emitter *diagnostics.Emitter

	grey, blue, green, yellow *color.Color
}

// New creates a REPL writing to out
func New(cfg *config.Config, out io.Writer, useColor bool, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}

	r := &REPL{
		out:         out,
		logger:      logger,
		prompt:      cfg.Prompt,
		historyPath: cfg.HistoryPath(),
		showTokens:  cfg.ShowTokens,
		showAST:     cfg.ShowAST,
		dumpAST:     cfg.DumpAST,
		emitter:     diagnostics.NewEmitterWithWriter(out, useColor),
		grey:        color.New(color.FgHiBlack),
		blue:        color.New(color.FgBlue),
		green:       color.New(color.FgGreen),
		yellow:      color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.grey, r.blue, r.green, r.yellow} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Run reads lines until EOF (Ctrl+D) or :quit
func (r *REPL) Run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	r.readHistory(ln)
	defer r.writeHistory(ln)

	fmt.Fprintln(r.out, "Untyped lambda calculus front end. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	for {
		line, err := ln.Prompt(r.prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}

		if exit := r.HandleLine(line); exit {
			return nil
		}
	}
}

// HandleLine processes one line of input and reports whether the REPL
// should exit. Blank lines are echoed like any other: they lex to a lone
// EOF and parse to no nodes.
func (r *REPL) HandleLine(text string) (exit bool) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, ":") {
		return r.handleCommand(trimmed)
	}

	r.lines = append(r.lines, text)
	number := len(r.lines)
	r.emitter.SetSourceLines(sourceName, r.lines)

	line := context.ProcessLine(number, text)
	size := 0
	for _, node := range line.Nodes {
		size += ast.CountNodes(node)
	}
	r.logger.Debug("processed line", "line", number, "tokens", len(line.Tokens), "nodes", size)

	r.grey.Fprintf(r.out, "Raw input: %s\n", trimmed)

	if r.showTokens && line.Tokens != nil {
		r.blue.Fprintf(r.out, "List of tokens: %s\n", lexer.FormatTokens(line.Tokens))
	}

	if line.Err != nil {
		r.emitter.Emit(sourceName, diagnostics.FromError(sourceName, number, line.Err))
		return false
	}

	if r.showAST {
		r.green.Fprintf(r.out, "AST: %s\n", ast.FormatAll(line.Nodes))
	}
	if r.dumpAST {
		fmt.Fprint(r.out, ast.Dump(line.Nodes))
	}
	return false
}

func (r *REPL) handleCommand(cmd string) (exit bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprint(r.out, helpText)
	case ":tokens":
		r.showTokens = !r.showTokens
		r.yellow.Fprintf(r.out, "token listing %s\n", onOff(r.showTokens))
	case ":ast":
		r.showAST = !r.showAST
		r.yellow.Fprintf(r.out, "AST listing %s\n", onOff(r.showAST))
	case ":dump":
		r.dumpAST = !r.dumpAST
		r.yellow.Fprintf(r.out, "AST dump %s\n", onOff(r.dumpAST))
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (r *REPL) readHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	f, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		r.logger.Debug("reading history failed", "path", r.historyPath, "error", err)
	}
}

func (r *REPL) writeHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	f, err := os.Create(r.historyPath)
	if err != nil {
		r.logger.Warn("cannot save history", "path", r.historyPath, "error", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		r.logger.Warn("cannot save history", "path", r.historyPath, "error", err)
	}
}
