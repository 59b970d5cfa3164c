package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ValidationError rejects a draft before it is sent upstream.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// MalformedDateError reports a schedule that does not resolve to an instant.
// It is a data-quality condition: collections route such records to the
// unscheduled set instead of failing.
type MalformedDateError struct {
	Date string
	Time string
}

func (e MalformedDateError) Error() string {
	if e.Time == "" {
		return fmt.Sprintf("malformed date %q", e.Date)
	}
	return fmt.Sprintf("malformed date %q time %q", e.Date, e.Time)
}

func (e MalformedDateError) Is(target error) bool {
	_, ok := target.(MalformedDateError)
	if ok {
		return true
	}
	_, ok = target.(*MalformedDateError)
	return ok
}

var ErrMalformedDate = MalformedDateError{}
