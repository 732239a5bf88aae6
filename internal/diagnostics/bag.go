package diagnostics

import (
	"io"
	"sort"
	"sync"

	"github.com/fatih/color"
)

// DiagnosticBag collects diagnostics during a run. It is safe for
// concurrent use; files parsed in parallel report into the same bag.
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	filepath    string
	mu          sync.Mutex
}

// NewDiagnosticBag creates a new diagnostic bag for a file
func NewDiagnosticBag(filepath string) *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
		filepath:    filepath,
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	// If this is the first diagnostic with a filepath, use it as the bag's filepath
	if db.filepath == "" && diag.FilePath != "" {
		db.filepath = diag.FilePath
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	return db.ErrorCount() > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.diagnostics)
}

// Diagnostics returns a copy of all diagnostics
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*Diagnostic, len(db.diagnostics))
	copy(out, db.diagnostics)
	return out
}

// Sorted returns the diagnostics ordered by file, then by line. Files are
// ranked by their position in fileOrder; files missing from it come last
// in the order they were first reported. Diagnostics on the same line keep
// the order they were added in.
func (db *DiagnosticBag) Sorted(fileOrder []string) []*Diagnostic {
	diagnostics := db.Diagnostics()

	rank := make(map[string]int, len(fileOrder))
	for i, path := range fileOrder {
		rank[path] = i
	}
	for _, diag := range diagnostics {
		if _, ok := rank[diag.FilePath]; !ok {
			rank[diag.FilePath] = len(rank)
		}
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if rank[a.FilePath] != rank[b.FilePath] {
			return rank[a.FilePath] < rank[b.FilePath]
		}
		return a.Line() < b.Line()
	})
	return diagnostics
}

// EmitAllWith renders every diagnostic and the summary through emitter,
// in the order given by Sorted
func (db *DiagnosticBag) EmitAllWith(emitter *Emitter, fileOrder []string) {
	db.mu.Lock()
	filepath := db.filepath
	db.mu.Unlock()

	for _, diag := range db.Sorted(fileOrder) {
		emitter.Emit(filepath, diag)
	}

	db.printSummaryToWriter(emitter.out, emitter.colors.boldRed)
}

func (db *DiagnosticBag) printSummaryToWriter(w io.Writer, errColor *color.Color) {
	if count := db.ErrorCount(); count > 0 {
		errColor.Fprintf(w, "Parsing failed with %d error(s)\n", count)
	}
}
