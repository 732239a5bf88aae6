// Package context - front-end pipeline
//
// PIPELINE ARCHITECTURE:
// Each phase is a stateless worker function that:
//  1. Receives CompilerContext and SourceFile(s)
//  2. Reads from previous phase's output
//  3. Writes to the next phase's input
//  4. Reports errors to ctx.Diagnostics
//
// Phase progression:
//
//	Entry -> [File Registration] -> Lexer -> Parser -> Exit
package context

import (
	"fmt"

	"lambda/internal/diagnostics"
	"lambda/internal/frontend/lexer"
	"lambda/internal/frontend/parser"
)

// Pipeline runs the front-end phases over files registered in Context.
// ProcessFile touches only the file it is given, so one Pipeline may serve
// many goroutines as long as each works on a distinct file.
type Pipeline struct {
	Context *CompilerContext
}

// NewPipeline creates a pipeline over ctx
func NewPipeline(ctx *CompilerContext) *Pipeline {
	return &Pipeline{Context: ctx}
}

// ProcessFile runs Lexer -> Parser over file. Syntax errors are only
// reported to the diagnostic bag; an error is returned when FailFast stops
// the file early.
func (p *Pipeline) ProcessFile(file *SourceFile) error {
	if err := p.Context.LexFile(file); err != nil {
		return fmt.Errorf("lexer failed on %s: %w", file.Path, err)
	}

	if err := p.Context.ParseFile(file); err != nil {
		return fmt.Errorf("parser failed on %s: %w", file.Path, err)
	}

	return nil
}

// LexFile tokenizes every line of file. Lexical errors become diagnostics;
// with FailFast the first one is also returned.
func (ctx *CompilerContext) LexFile(file *SourceFile) error {
	ctx.Logger.Debug("tokenizing", "path", file.Path, "lines", len(file.Lines))

	total := 0
	for _, line := range file.Lines {
		tokens, err := lexer.Tokenize(line.Text)
		line.Tokens = tokens
		total += len(tokens)

		if err != nil {
			line.Err = err
			ctx.Diagnostics.Add(diagnostics.FromError(file.Path, line.Number, err))
			if ctx.Options.FailFast {
				return fmt.Errorf("line %d: %w", line.Number, err)
			}
		}
	}

	ctx.Logger.Debug("tokenized", "path", file.Path, "tokens", total)
	return nil
}

// ParseFile parses every line of file that lexed cleanly
func (ctx *CompilerContext) ParseFile(file *SourceFile) error {
	ctx.Logger.Debug("parsing", "path", file.Path)

	total := 0
	for _, line := range file.Lines {
		if line.Err != nil {
			continue
		}

		nodes, err := parser.Parse(line.Tokens)
		line.Nodes = nodes
		total += len(nodes)

		if err != nil {
			line.Err = err
			ctx.Diagnostics.Add(diagnostics.FromError(file.Path, line.Number, err))
			if ctx.Options.FailFast {
				return fmt.Errorf("line %d: %w", line.Number, err)
			}
		}
	}

	ctx.Logger.Debug("parsed", "path", file.Path, "nodes", total)
	return nil
}

// ProcessLine runs both phases over a single line of input without
// registering it anywhere. This is one step of the interactive driver.
func ProcessLine(number int, text string) *Line {
	line := &Line{Number: number, Text: text}

	line.Tokens, line.Err = lexer.Tokenize(text)
	if line.Err != nil {
		return line
	}

	line.Nodes, line.Err = parser.Parse(line.Tokens)
	return line
}
