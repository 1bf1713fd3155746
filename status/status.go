package status

// Code is a stable, wire-facing status identifier.
// It is a uint8 newtype, comparable, allocation-free, and implements error.
// The numeric values ride in the JSON response footer, so they are part of
// the protocol and must not be renumbered.
type Code uint8

// Canonical codes (numbering matches the wire protocol).
const (
	OK        Code = 0 // request completed
	ErrorCode Code = 1 // generic fallback
	Again     Code = 2 // not an error: more input to consume
	NoOp      Code = 3 // operation had nothing to do
	Complete  Code = 4 // operation fully handled; caller must not re-print

	BufferEmpty Code = 12
	BufferFull  Code = 13

	InternalError Code = 20

	UnrecognizedCommand   Code = 40
	BadNumberFormat       Code = 42
	InputExceedsMaxLen    Code = 43
	InputValueUnsupported Code = 47
	SyntaxError           Code = 48
	TooManyPairs          Code = 49
	NoBufferSpace         Code = 50
)

func (c Code) Error() string { return c.String() }

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case ErrorCode:
		return "error"
	case Again:
		return "eagain"
	case NoOp:
		return "noop"
	case Complete:
		return "complete"
	case BufferEmpty:
		return "buffer empty"
	case BufferFull:
		return "buffer full"
	case InternalError:
		return "internal error"
	case UnrecognizedCommand:
		return "unrecognized command"
	case BadNumberFormat:
		return "bad number format"
	case InputExceedsMaxLen:
		return "input exceeds max length"
	case InputValueUnsupported:
		return "input value unsupported"
	case SyntaxError:
		return "syntax error"
	case TooManyPairs:
		return "too many pairs"
	case NoBufferSpace:
		return "no buffer space"
	}
	return "unknown status"
}

// Err converts a Code to an error, mapping OK to nil.
func (c Code) Err() error {
	if c == OK {
		return nil
	}
	return c
}

// E is an optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Err error
}

func (e *E) Error() string {
	if e.Op != "" {
		return e.Op + ": " + e.C.String()
	}
	return e.C.String()
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to ErrorCode.
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
	return ErrorCode
}
