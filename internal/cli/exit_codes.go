package cli

import "errors"

// Exit codes returned by the mbdflow binary.
const (
	// ExitSuccess indicates validation passed or the command completed.
	ExitSuccess = 0
	// ExitValidationFailed indicates error-severity findings were reported.
	ExitValidationFailed = 1
	// ExitInvalidArguments indicates bad command arguments or missing files.
	ExitInvalidArguments = 3
)

// validationFailedError marks a validate run that produced error-severity
// findings, as opposed to bad arguments or unreadable files.
type validationFailedError struct {
	msg string
}

func (e *validationFailedError) Error() string {
	return e.msg
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var v *validationFailedError
	if errors.As(err, &v) {
		return ExitValidationFailed
	}
	return ExitInvalidArguments
}
