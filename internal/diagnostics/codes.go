package diagnostics

// Diagnostic codes. L = lexer, P = parser, I = input/output.
const (
	ErrUnexpectedCharacter = "L0001"
	ErrExpectedToken       = "P0001"
	ErrUnexpectedToken     = "P0002"
	ErrUnexpectedEOF       = "P0003"
	ErrReadFailure         = "I0001"
)
