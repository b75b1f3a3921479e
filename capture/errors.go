package capture

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrPlaceholderCreation = errors.New("cannot create placeholder")
	ErrArgumentConversion  = errors.New("cannot convert placeholder to argument")
	ErrConfiguration       = errors.New("invalid capture configuration")

	ErrNotSealed      = errors.New("custom creator can be registered only for sealed types")
	ErrNoStandIn      = errors.New("no stand-in registered for interface")
	ErrInterceptable  = errors.New("interceptable types are not synthesized")
	ErrCreatorOutput  = errors.New("custom creator returned a value of another type")
	ErrNilType        = errors.New("nil type")
	ErrNilCreator     = errors.New("nil creator")
	ErrEmptyEnum      = errors.New("enumeration has no members")
	ErrEnumMemberType = errors.New("enumeration member has another type")
)

// PlaceholderCreationError reports that no strategy could produce a
// placeholder of Type.
type PlaceholderCreationError struct {
	Type reflect.Type
	Err  error
}

func (e *PlaceholderCreationError) Error() string {
	return fmt.Sprintf("it is not possible to create a placeholder for type %s: %v", typeName(e.Type), e.Err)
}

func (e *PlaceholderCreationError) Unwrap() []error {
	return []error{ErrPlaceholderCreation, e.Err}
}

// ArgumentConversionError reports a value that is neither a chain nor a
// placeholder known to the registry.
type ArgumentConversionError struct {
	Placeholder any
}

func (e *ArgumentConversionError) Error() string {
	return fmt.Sprintf("unable to convert the placeholder %v (%T) in a valid argument", e.Placeholder, e.Placeholder)
}

func (e *ArgumentConversionError) Unwrap() error {
	return ErrArgumentConversion
}

// ConfigurationError is returned by registrations that can never be valid.
type ConfigurationError struct {
	Type reflect.Type
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", typeName(e.Type), e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
