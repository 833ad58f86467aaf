// Package validation carries field-scoped validation failures across the
// service boundary so handlers can report every invalid field in one pass.
package validation

import "errors"

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (e *Errors) Error() string {
	return "validation error"
}

func (e *Errors) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{
		Field:   field,
		Code:    code,
		Message: message,
	})
}

func (e *Errors) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns e as an error when any field failed, nil otherwise.
func (e *Errors) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// New builds a single-field validation error.
func New(field, code, message string) error {
	e := &Errors{}
	e.Add(field, code, message)
	return e
}

// As unwraps err into *Errors when it carries field-level failures.
func As(err error) *Errors {
	var vErr *Errors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}
