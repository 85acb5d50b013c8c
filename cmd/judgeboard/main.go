package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess          = 0 // Command completed
	ExitValidationFailed = 1 // validate found problems in one or more session files
	ExitError            = 2 // Configuration or runtime error
)

// ValidationFailedError indicates that validation ran to completion but
// found problems in one or more session files.
type ValidationFailedError struct {
	Message string
}

func (e *ValidationFailedError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var validationErr *ValidationFailedError
	if errors.As(err, &validationErr) {
		return ExitValidationFailed
	}
	return ExitError
}
