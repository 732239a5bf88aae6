package diagnostics

// Location points into a source file. Tokens carry no positions, so a
// parser diagnostic usually knows only its line; Column is 0 then and the
// whole line is underlined.
type Location struct {
	Line   int // 1-based
	Column int // 1-based, 0 if unknown
	Length int
}

// Label marks the span of source a diagnostic is about
type Label struct {
	Location *Location
	Message  string
}

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic is an error found in the input. Every problem the lexer and
// parser detect stops the line it is on, so there is no lesser severity.
type Diagnostic struct {
	Message  string
	Code     string // Error code like "P0001"
	FilePath string // Source file for this diagnostic
	Labels   []Label
	Notes    []Note
	Help     string // Suggestion for fixing the error
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Message: message,
		Labels:  make([]Label, 0),
		Notes:   make([]Note, 0),
	}
}

// WithCode sets the error code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithPrimaryLabel adds the labeled location the error points at
func (d *Diagnostic) WithPrimaryLabel(filepath string, loc *Location, message string) *Diagnostic {
	if d.FilePath == "" {
		d.FilePath = filepath
	}
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
	})
	return d
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets helpful suggestion for fixing the error
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Line is the line of the first label, 0 when the diagnostic has none
func (d *Diagnostic) Line() int {
	for _, label := range d.Labels {
		if label.Location != nil {
			return label.Location.Line
		}
	}
	return 0
}
