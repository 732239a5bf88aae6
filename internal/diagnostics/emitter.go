package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const (
	STR_MULTIPLIER = "%*d | "
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	mu    sync.Mutex
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// SetSourceLines registers the lines of a source that does not live on
// disk (REPL input, wasm)
func (sc *SourceCache) SetSourceLines(filepath string, lines []string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.files[filepath] = lines
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if lines, ok := sc.files[filepath]; ok {
		if line > 0 && line <= len(lines) {
			return lines[line-1], nil
		}
		return "", fmt.Errorf("line %d out of range", line)
	}

	// Load file
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	sc.files[filepath] = lines

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}

	return "", fmt.Errorf("line %d out of range", line)
}

// palette holds the colors the emitter writes with. With color disabled
// every entry prints plain text.
type palette struct {
	red, blue, cyan, green, grey *color.Color
	boldRed                      *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		red:     color.New(color.FgRed),
		blue:    color.New(color.FgBlue),
		cyan:    color.New(color.FgCyan),
		green:   color.New(color.FgGreen),
		grey:    color.New(color.FgHiBlack),
		boldRed: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.red, p.blue, p.cyan, p.green, p.grey, p.boldRed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache  *SourceCache
	out    io.Writer
	colors *palette
}

// NewEmitterWithWriter creates an emitter writing to w
func NewEmitterWithWriter(w io.Writer, useColor bool) *Emitter {
	return &Emitter{
		cache:  NewSourceCache(),
		out:    w,
		colors: newPalette(useColor),
	}
}

// SetSourceLines pre-populates the source cache
func (e *Emitter) SetSourceLines(filepath string, lines []string) {
	e.cache.SetSourceLines(filepath, lines)
}

// Emit renders a diagnostic
func (e *Emitter) Emit(filepath string, diag *Diagnostic) {
	// Use filepath from diagnostic if available, otherwise use parameter
	if diag.FilePath != "" {
		filepath = diag.FilePath
	}

	e.printHeader(diag)

	for _, label := range diag.Labels {
		e.printLabel(filepath, label)
	}

	for _, note := range diag.Notes {
		e.printNote(note)
	}

	if diag.Help != "" {
		e.printHelp(diag.Help)
	}

	fmt.Fprintln(e.out)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	c := e.colors.boldRed

	c.Fprint(e.out, "error")
	if diag.Code != "" {
		fmt.Fprintf(e.out, "[%s]", diag.Code)
	}
	fmt.Fprint(e.out, ": ")
	c.Fprintln(e.out, diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label) {
	loc := label.Location
	if loc == nil || loc.Line <= 0 {
		return
	}

	// Print location header
	if loc.Column > 0 {
		e.colors.blue.Fprintf(e.out, "  --> %s:%d:%d\n", filepath, loc.Line, loc.Column)
	} else {
		e.colors.blue.Fprintf(e.out, "  --> %s:%d\n", filepath, loc.Line)
	}

	lineNumWidth := len(fmt.Sprintf("%d", loc.Line))

	sourceLine, err := e.cache.GetLine(filepath, loc.Line)
	if err != nil {
		return
	}

	e.colors.grey.Fprint(e.out, strings.Repeat(" ", lineNumWidth))
	e.colors.grey.Fprintln(e.out, " |")

	e.colors.grey.Fprintf(e.out, STR_MULTIPLIER, lineNumWidth, loc.Line)
	fmt.Fprintln(e.out, sourceLine)

	e.colors.grey.Fprint(e.out, strings.Repeat(" ", lineNumWidth))
	e.colors.grey.Fprint(e.out, " | ")

	padding, length := underlineSpan(sourceLine, loc)

	underlineColor := e.colors.red
	underlineChar := "~"
	if length == 1 {
		underlineChar = "^"
	}

	fmt.Fprint(e.out, strings.Repeat(" ", padding))
	underlineColor.Fprint(e.out, strings.Repeat(underlineChar, length))

	// Print label message (only if not empty)
	if label.Message != "" {
		underlineColor.Fprintf(e.out, " %s", label.Message)
	}
	fmt.Fprintln(e.out)
}

// underlineSpan returns the padding and length of the underline. Without
// a column the non-blank part of the line is underlined.
func underlineSpan(sourceLine string, loc *Location) (padding, length int) {
	if loc.Column > 0 {
		length = loc.Length
		if length <= 0 {
			length = 1
		}
		return loc.Column - 1, length
	}

	runes := []rune(strings.TrimRight(sourceLine, " \t\r"))
	for padding < len(runes) && (runes[padding] == ' ' || runes[padding] == '\t') {
		padding++
	}
	length = len(runes) - padding
	if length <= 0 {
		length = 1
	}
	return padding, length
}

func (e *Emitter) printNote(note Note) {
	e.colors.cyan.Fprint(e.out, "  = note: ")
	fmt.Fprintln(e.out, note.Message)
}

func (e *Emitter) printHelp(help string) {
	e.colors.green.Fprint(e.out, "  = help: ")
	fmt.Fprintln(e.out, help)
}
