package rex

import "fmt"

// ErrorCode identifies the kind of failure.
type ErrorCode int

const (
	// CodeDuplicateName: two named groups share a name in one tree.
	CodeDuplicateName ErrorCode = iota
	// CodeUnresolvedReference: a backreference targets a group that does
	// not appear before it in pattern order.
	CodeUnresolvedReference
	// CodeDetachedReference: an identity backreference's target group is
	// not part of the tree being rendered.
	CodeDetachedReference
	// CodeContextRequired: an identity backreference was rendered outside
	// a containing tree.
	CodeContextRequired
	// CodeAmbiguousRename: a rename would strip the name of a group still
	// referenced by name elsewhere.
	CodeAmbiguousRename
	// CodeVariableLengthAssertion: a lookbehind assertion has no fixed
	// match length.
	CodeVariableLengthAssertion
	// CodeInvalidCodepoint: a character argument is outside the Unicode
	// code point space.
	CodeInvalidCodepoint
	// CodeInvalidCharRange: a character range is empty or backwards.
	CodeInvalidCharRange
	// CodeInvalidGroupName: a group name or reference is not a valid
	// identifier or positive index.
	CodeInvalidGroupName
	// CodeInvalidRepetition: repetition bounds are negative or unordered.
	CodeInvalidRepetition
	// CodeInvalidFlags: a flag set is unknown, non-negatable, or mixes
	// mutually exclusive flags.
	CodeInvalidFlags
	// CodeUnsupportedFlag: the flag has no spelling in the target flavor.
	CodeUnsupportedFlag
	// CodeInvalidKind: an operation was applied to a node kind that does
	// not support it.
	CodeInvalidKind
)

var codeNames = map[ErrorCode]string{
	CodeDuplicateName:           "DuplicateName",
	CodeUnresolvedReference:     "UnresolvedReference",
	CodeDetachedReference:       "DetachedReference",
	CodeContextRequired:         "ContextRequired",
	CodeAmbiguousRename:         "AmbiguousRename",
	CodeVariableLengthAssertion: "VariableLengthAssertion",
	CodeInvalidCodepoint:        "InvalidCodepoint",
	CodeInvalidCharRange:        "InvalidCharRange",
	CodeInvalidGroupName:        "InvalidGroupName",
	CodeInvalidRepetition:       "InvalidRepetition",
	CodeInvalidFlags:            "InvalidFlags",
	CodeUnsupportedFlag:         "UnsupportedFlag",
	CodeInvalidKind:             "InvalidKind",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the error type reported by construction, validation, rendering,
// renaming, and compilation.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return "rex: " + e.Code.String() + ": " + e.Message
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
