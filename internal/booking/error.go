package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNextID              = errors.New("get next id from generator")
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicateSubmission = errors.New("booking already submitted with this idempotency key")
)

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

// Fields returns a copy of the per-field messages.
func (ie *InputError) Fields() map[string][]string {
	fields := make(map[string][]string, len(ie.fields))

	for field, msgs := range ie.fields {
		fields[field] = append([]string(nil), msgs...)
	}

	return fields
}
