package core

import "errors"

// Errors raised by composition and anchor resolution. All are fatal to the
// render that triggers them; callers batching multiple renders catch per
// render with errors.Is and continue independently.
var (
	// ErrDuplicateName reports a name reused within one composition scope.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrAnchorNotFound reports an unknown anchor. The wrapped message
	// enumerates every available anchor name.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrIncorrectAnchorArgs reports an argument mismatch invoking an
	// anchor handler.
	ErrIncorrectAnchorArgs = errors.New("incorrect anchor arguments")

	// ErrIllegalParameter reports conflicting argument forms, such as
	// positional anchor args combined with an anchor selector value.
	ErrIllegalParameter = errors.New("illegal parameter")

	// ErrIllegalState reports an operation on a composition that is not
	// in a state to accept it.
	ErrIllegalState = errors.New("illegal state")
)
