// Package context provides the shared state for a front-end run.
//
// All phases are stateless workers that receive a CompilerContext and
// operate on the SourceFile objects within it. Each line of a source file is
// an independent unit: it gets its own lexer and parser, the same way the
// interactive driver handles one line at a time, so a failure on one line
// never hides the lines after it.
package context

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"lambda/internal/diagnostics"
	"lambda/internal/frontend/ast"
	"lambda/internal/frontend/lexer"
)

// CompilationPhase tracks the current phase of a run
type CompilationPhase int

const (
	PhaseInitial  CompilationPhase = iota // Not started
	PhaseLexing                           // Tokenizing source files
	PhaseParsing                          // Building ASTs
	PhaseComplete                         // Finished
)

func (p CompilationPhase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseLexing:
		return "lexing"
	case PhaseParsing:
		return "parsing"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// CompilerContext is the central hub for all state of a run.
//
// Thread safety: file registration is locked; distinct SourceFiles may be
// lexed and parsed concurrently.
type CompilerContext struct {
	// Diagnostics - centralized error and warning collection
	Diagnostics *diagnostics.DiagnosticBag

	// Files - maps absolute file path -> SourceFile
	Files map[string]*SourceFile

	CurrentPhase CompilationPhase

	Options *CompilerOptions

	// FileOrder - tracks order files were added (for deterministic output)
	FileOrder []string

	Logger *slog.Logger

	mu sync.RWMutex
}

// SourceFile is one input through every phase
type SourceFile struct {
	Path    string // Absolute file path, or a pseudo path like <stdin>
	Content string // Raw source

	Lines []*Line
}

// Line is the unit the lexer and parser work on
type Line struct {
	Number int // 1-based
	Text   string

	Tokens []lexer.Token
	Nodes  []ast.Expression
	Err    error // first lexical or parse error on this line
}

// CompilerOptions holds front-end configuration.
// Passed to the context at creation time and remains immutable.
type CompilerOptions struct {
	Debug    bool // Log phase progress; see LogTo
	FailFast bool // Stop a file at its first failing line
}

// New creates a context. Logging is discarded until LogTo or WithLogger.
func New(options *CompilerOptions) *CompilerContext {
	if options == nil {
		options = &CompilerOptions{}
	}

	return &CompilerContext{
		Diagnostics:  diagnostics.NewDiagnosticBag(""),
		Files:        make(map[string]*SourceFile),
		Options:      options,
		FileOrder:    make([]string, 0),
		CurrentPhase: PhaseInitial,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for phase progress
func (ctx *CompilerContext) WithLogger(logger *slog.Logger) *CompilerContext {
	if logger != nil {
		ctx.Logger = logger
	}
	return ctx
}

// LogTo logs to w. Phase progress is logged only when Options.Debug is set;
// otherwise just warnings and errors get through.
func (ctx *CompilerContext) LogTo(w io.Writer) *CompilerContext {
	level := slog.LevelInfo
	if ctx.Options.Debug {
		level = slog.LevelDebug
	}
	return ctx.WithLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// AddFile registers a new source file in the context, splitting it into
// lines. Registering a path twice replaces the earlier file.
func (ctx *CompilerContext) AddFile(path string, content string) *SourceFile {
	file := &SourceFile{
		Path:    path,
		Content: content,
		Lines:   splitLines(content),
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if _, exists := ctx.Files[path]; !exists {
		ctx.FileOrder = append(ctx.FileOrder, path)
	}
	ctx.Files[path] = file

	return file
}

// LoadFile reads a file from disk and registers it under its absolute path
func (ctx *CompilerContext) LoadFile(path string) (*SourceFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		ctx.Diagnostics.Add(diagnostics.ReadFailure(path, err))
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	file := ctx.AddFile(absPath, string(content))
	ctx.Logger.Debug("registered file", "path", absPath, "bytes", len(content), "lines", len(file.Lines))
	return file, nil
}

// GetAllFiles returns all registered files in the order they were added.
func (ctx *CompilerContext) GetAllFiles() []*SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	files := make([]*SourceFile, 0, len(ctx.FileOrder))
	for _, path := range ctx.FileOrder {
		files = append(files, ctx.Files[path])
	}
	return files
}

// HasErrors returns true if any errors have been reported
func (ctx *CompilerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// EmitDiagnostics renders all collected diagnostics to w, quoting source
// lines from the registered files. Diagnostics come out in registration
// order and by line, however the files were scheduled.
func (ctx *CompilerContext) EmitDiagnostics(w io.Writer, useColor bool) {
	emitter := diagnostics.NewEmitterWithWriter(w, useColor)
	files := ctx.GetAllFiles()
	order := make([]string, len(files))
	for i, file := range files {
		emitter.SetSourceLines(file.Path, file.SourceLines())
		order[i] = file.Path
	}
	ctx.Diagnostics.EmitAllWith(emitter, order)
}

// Nodes returns the top-level expressions of every line in order
func (f *SourceFile) Nodes() []ast.Expression {
	nodes := make([]ast.Expression, 0, len(f.Lines))
	for _, line := range f.Lines {
		nodes = append(nodes, line.Nodes...)
	}
	return nodes
}

// Failed reports whether any line of the file has an error
func (f *SourceFile) Failed() bool {
	for _, line := range f.Lines {
		if line.Err != nil {
			return true
		}
	}
	return false
}

// SourceLines returns the raw text of every line
func (f *SourceFile) SourceLines() []string {
	lines := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		lines[i] = line.Text
	}
	return lines
}

// splitLines splits content on '\n'. A trailing newline does not start an
// extra empty line.
func splitLines(content string) []*Line {
	if content == "" {
		return nil
	}
	texts := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	lines := make([]*Line, len(texts))
	for i, text := range texts {
		lines[i] = &Line{Number: i + 1, Text: text}
	}
	return lines
}
