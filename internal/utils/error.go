package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ConvertPanicValueToError returns v if it is an error, otherwise it returns an error
// describing v.
func ConvertPanicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%#v", v)
}

// CombineErrors combines errors into a single error with a multiline message, nil errors are
// ignored and nil is returned if all errors are nil.
func CombineErrors(errs ...error) error {
	var lines []string
	for _, err := range errs {
		if err != nil {
			lines = append(lines, err.Error())
		}
	}

	if len(lines) == 0 {
		return nil
	}
	return errors.New(strings.Join(lines, "\n"))
}

// CombineErrorsWithPrefixMessage is like CombineErrors but the message of the result starts with prefixMsg.
func CombineErrorsWithPrefixMessage(prefixMsg string, errs ...error) error {
	err := CombineErrors(errs...)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", prefixMsg, err)
}
