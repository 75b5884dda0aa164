package introspection

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies the structural failures BuildClientSchema can report.
type ErrorKind string

const (
	// ErrIncompleteResult covers documents missing required top-level shape:
	// no resolvable query root, a record without a name, an absent args list.
	ErrIncompleteResult ErrorKind = "INCOMPLETE_INTROSPECTION_RESULT"
	// ErrUnknownType is a reference to a type the document never declares.
	ErrUnknownType ErrorKind = "UNKNOWN_TYPE"
	// ErrMissingKind is a type record without a recognized kind.
	ErrMissingKind ErrorKind = "MISSING_KIND"
	// ErrMissingFields is an OBJECT/INTERFACE record without a fields list.
	ErrMissingFields ErrorKind = "MISSING_FIELDS"
	// ErrMissingInterfaces is an OBJECT/INTERFACE record without an
	// interfaces list. Absence is an error, not an empty list.
	ErrMissingInterfaces ErrorKind = "MISSING_INTERFACES"
	// ErrMissingPossibleTypes is a UNION record without a possibleTypes list.
	ErrMissingPossibleTypes ErrorKind = "MISSING_POSSIBLE_TYPES"
	// ErrMissingEnumValues is an ENUM record without an enumValues list.
	ErrMissingEnumValues ErrorKind = "MISSING_ENUM_VALUES"
	// ErrMissingInputFields is an INPUT_OBJECT record without an inputFields
	// list.
	ErrMissingInputFields ErrorKind = "MISSING_INPUT_FIELDS"
	// ErrMissingLocations is a directive record without a non-empty
	// locations list.
	ErrMissingLocations ErrorKind = "MISSING_LOCATIONS"
	// ErrExpectedInterfaceType is a name that must resolve to an interface
	// resolving to a different kind.
	ErrExpectedInterfaceType ErrorKind = "EXPECTED_INTERFACE_TYPE"
	// ErrExpectedObjectType is a name that must resolve to an object
	// resolving to a different kind.
	ErrExpectedObjectType ErrorKind = "EXPECTED_OBJECT_TYPE"
	// ErrDecorationTooDeep is a type reference with more than seven
	// LIST/NON_NULL wrappers.
	ErrDecorationTooDeep ErrorKind = "DECORATION_TOO_DEEP"
	// ErrMalformedTypeRef is a structurally invalid wrapper reference: a
	// wrapper without ofType, doubled NON_NULL, or a leaf without a name.
	ErrMalformedTypeRef ErrorKind = "MALFORMED_TYPE_REF"
	// ErrUnknownEnumValue is a default-value enum literal naming a value the
	// enum does not declare.
	ErrUnknownEnumValue ErrorKind = "UNKNOWN_ENUM_VALUE"
	// ErrInvalidName is an identifier that fails the name-validity check and
	// is not covered by an allowed legacy name.
	ErrInvalidName ErrorKind = "INVALID_NAME"
	// ErrInvalidDefault is a default-value literal that cannot be parsed or
	// coerced against its declared type.
	ErrInvalidDefault ErrorKind = "INVALID_DEFAULT_VALUE"
)

// BuildError is the single failure type of the codec. Name identifies the
// type, field, or directive involved when known; Record carries the offending
// record's structural form for the diagnostics that require it.
type BuildError struct {
	Kind   ErrorKind
	Name   string
	Record any
	cause  error
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case ErrIncompleteResult:
		return "invalid or incomplete introspection result; a full introspection query is required to build a client schema: " + recordJSON(e.Record)
	case ErrUnknownType:
		return fmt.Sprintf("invalid or incomplete schema, unknown type: %s", e.Name)
	case ErrMissingKind:
		return fmt.Sprintf("introspection result missing kind for type %q: %s", e.Name, recordJSON(e.Record))
	case ErrMissingFields:
		return "introspection result missing fields: " + recordJSON(e.Record)
	case ErrMissingInterfaces:
		return "introspection result missing interfaces: " + recordJSON(e.Record)
	case ErrMissingPossibleTypes:
		return "introspection result missing possibleTypes: " + recordJSON(e.Record)
	case ErrMissingEnumValues:
		return "introspection result missing enumValues: " + recordJSON(e.Record)
	case ErrMissingInputFields:
		return "introspection result missing inputFields: " + recordJSON(e.Record)
	case ErrMissingLocations:
		return "introspection result missing directive locations: " + recordJSON(e.Record)
	case ErrExpectedInterfaceType:
		return fmt.Sprintf("expected %q to be an interface type", e.Name)
	case ErrExpectedObjectType:
		return fmt.Sprintf("expected %q to be an object type", e.Name)
	case ErrDecorationTooDeep:
		return fmt.Sprintf("type reference nesting exceeds %d levels: %s", maxTypeRefDepth, recordJSON(e.Record))
	case ErrMalformedTypeRef:
		return "malformed type reference: " + recordJSON(e.Record)
	case ErrUnknownEnumValue:
		return fmt.Sprintf("unknown enum value on %q: %v", e.Name, e.cause)
	case ErrInvalidName:
		return fmt.Sprintf("invalid name %q: %v", e.Name, e.cause)
	case ErrInvalidDefault:
		return fmt.Sprintf("invalid default value: %v", e.cause)
	default:
		return string(e.Kind)
	}
}

func (e *BuildError) Unwrap() error { return e.cause }

func recordJSON(record any) string {
	if record == nil {
		return "<nil>"
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf("%+v", record)
	}
	return string(raw)
}
