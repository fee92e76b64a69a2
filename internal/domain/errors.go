package domain

import (
	"errors"
	"fmt"
)

// Localized notice texts shown to the operator.
const (
	MsgFetchFailure  = "Ошибка! Не удалось загрузить маршруты, попробуйте позже"
	MsgDeleteFailure = "Ошибка, маршрут не был удалён"
)

// FetchError is returned when the route list could not be read: transport
// failure, non-2xx status or a body that is not a JSON route array.
type FetchError struct {
	Status int
	Err    error
}

func (e FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetch routes: status %d: %v", e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch routes: status %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("fetch routes: %v", e.Err)
	default:
		return "fetch routes failed"
	}
}

func (e FetchError) Unwrap() error { return e.Err }

// DeleteError is returned when the backend did not answer a delete with the
// success marker. Body holds the text it answered instead.
type DeleteError struct {
	RouteID string
	Body    string
	Err     error
}

func (e DeleteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delete route %s: %v", e.RouteID, e.Err)
	}
	return fmt.Sprintf("delete route %s: unexpected response %q", e.RouteID, e.Body)
}

func (e DeleteError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsFetchFailure(err error) bool {
	var target FetchError
	return errors.As(err, &target)
}

func IsDeleteFailure(err error) bool {
	var target DeleteError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
