package menu

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a load failed
type ErrorKind string

const (
	KindFetch ErrorKind = "FetchError"
	KindParse ErrorKind = "ParseError"
	KindShape ErrorKind = "ShapeError"
)

var (
	ErrFetch = errors.New("menu resource could not be fetched")
	ErrParse = errors.New("menu resource is not valid JSON")
	ErrShape = errors.New("menu resource is not an array of records")
)

// LoadError is returned by every failed load. All kinds are terminal:
// no partial item list accompanies it.
type LoadError struct {
	Kind     ErrorKind
	Location string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Location)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Location, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match a LoadError against the kind sentinels
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrFetch:
		return e.Kind == KindFetch
	case ErrParse:
		return e.Kind == KindParse
	case ErrShape:
		return e.Kind == KindShape
	}
	return false
}

func newLoadError(kind ErrorKind, location string, cause error) *LoadError {
	return &LoadError{Kind: kind, Location: location, Cause: cause}
}

// KindOf reports the kind of a load failure, or "" if err is not one
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}
