package errcode

// Code is a stable error identifier. It is a string newtype, comparable,
// allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes.
const (
	OK Code = "ok"

	ErrOutOfRange           Code = "out_of_range"
	ErrDuplicateWire        Code = "duplicate_wire"
	ErrNotInCircuit         Code = "not_in_circuit"
	ErrAlreadyInCircuit     Code = "already_in_circuit"
	ErrNotFound             Code = "not_found"
	ErrDuplicateBuilder     Code = "duplicate_builder"
	ErrPluginNotLoaded      Code = "plugin_not_loaded"
	ErrPluginSymbol         Code = "plugin_symbol_missing"
	ErrFeedbackUnderThreads Code = "feedback_under_threads"
	ErrInvalidConfig        Code = "invalid_config"

	Error Code = "error" // generic fallback
)

// E wraps a Code with the operation that produced it, an optional
// message, and an optional underlying cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := e.Op + ": " + string(e.C)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// New builds an *E wrapping code with the given operation and message.
func New(op string, c Code, msg string) *E {
	return &E{C: c, Op: op, Msg: msg}
}

// Wrap builds an *E wrapping code around an underlying cause.
func Wrap(op string, c Code, err error) *E {
	return &E{C: c, Op: op, Err: err}
}
