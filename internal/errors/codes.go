package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"

	// CodeNotAWeapon marks a catalog lookup that found the record but it
	// carries no base damage. Callers branch on it separately from NotFound.
	CodeNotAWeapon Code = "NOT_A_WEAPON"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status the CLI uses for the code
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument, CodeNotFound, CodeNotAWeapon:
		return 2
	case CodeFailedPrecondition, CodeAlreadyExists, CodeAborted:
		return 3
	case CodeUnavailable, CodeResourceExhausted, CodeDeadlineExceeded:
		return 4
	case CodeDataLoss:
		return 5
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}
