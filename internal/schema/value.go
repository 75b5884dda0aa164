package schema

import (
	"fmt"
	"strconv"

	language "github.com/hanpama/clientschema/internal/language"
)

// NullValue is the internal form of an explicit `null` default literal. It is
// distinct from a nil DefaultValue, which means no default was declared.
type NullValue struct{}

func (NullValue) String() string { return "null" }

// Null marks a declared `null` default.
var Null = NullValue{}

// EnumLiteral is an enum member name used as a value. It renders unquoted,
// unlike a String value.
type EnumLiteral string

// UnknownEnumValueError reports an enum literal naming a value the enum does
// not declare.
type UnknownEnumValueError struct {
	Enum  string
	Value string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown value %q for enum %q", e.Value, e.Enum)
}

// DefaultValueResolver coerces recorded default-value literals against their
// declared types. Resolution is deferred until every named type is registered
// so that a default on one input value may consult the defaults of another
// (an object literal omitting a key falls back to that field's own default).
type DefaultValueResolver struct {
	types   map[string]*Type
	sources map[*InputValue]*language.Value
	order   []*InputValue
	state   map[*InputValue]resolveState
}

type resolveState int

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

func NewDefaultValueResolver(types map[string]*Type) *DefaultValueResolver {
	return &DefaultValueResolver{
		types:   types,
		sources: make(map[*InputValue]*language.Value),
		state:   make(map[*InputValue]resolveState),
	}
}

// Record registers the unparsed default literal for iv. The literal is
// coerced when Resolve runs.
func (r *DefaultValueResolver) Record(iv *InputValue, node *language.Value) {
	if node == nil {
		return
	}
	r.sources[iv] = node
	r.order = append(r.order, iv)
}

// Resolve coerces every recorded literal and stores the result on its
// InputValue. It fails on the first literal that cannot be coerced.
func (r *DefaultValueResolver) Resolve() error {
	for _, iv := range r.order {
		if _, err := r.resolveOne(iv); err != nil {
			return fmt.Errorf("default value for %q: %w", iv.Name, err)
		}
	}
	return nil
}

func (r *DefaultValueResolver) resolveOne(iv *InputValue) (any, error) {
	switch r.state[iv] {
	case stateResolved:
		return iv.DefaultValue, nil
	case stateResolving:
		return nil, fmt.Errorf("cyclic default value")
	}
	r.state[iv] = stateResolving
	value, err := r.Coerce(r.sources[iv], iv.Type)
	if err != nil {
		return nil, err
	}
	iv.DefaultValue = value
	r.state[iv] = stateResolved
	return value, nil
}

// Coerce converts a parsed const literal into the internal value form,
// directed by the target type. A `null` literal is accepted even against a
// non-null target: defaults are build-time literals, not runtime values.
func (r *DefaultValueResolver) Coerce(node *language.Value, t *TypeRef) (any, error) {
	if node == nil {
		return nil, fmt.Errorf("missing value literal")
	}
	if node.Kind == language.NullValue {
		return Null, nil
	}
	if IsNonNull(t) {
		return r.Coerce(node, Unwrap(t))
	}
	if t.Kind == TypeRefKindList {
		if node.Kind != language.ListValue {
			// A bare value coerces to a single-item list.
			item, err := r.Coerce(node, t.OfType)
			if err != nil {
				return nil, err
			}
			return []any{item}, nil
		}
		out := make([]any, 0, len(node.Children))
		for _, child := range node.Children {
			item, err := r.Coerce(child.Value, t.OfType)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	}

	name := t.Named
	switch name {
	case "Int":
		if node.Kind != language.IntValue {
			return nil, fmt.Errorf("cannot coerce %s to Int", node.String())
		}
		return strconv.Atoi(node.Raw)
	case "Float":
		if node.Kind != language.IntValue && node.Kind != language.FloatValue {
			return nil, fmt.Errorf("cannot coerce %s to Float", node.String())
		}
		return strconv.ParseFloat(node.Raw, 64)
	case "String":
		if node.Kind != language.StringValue && node.Kind != language.BlockValue {
			return nil, fmt.Errorf("cannot coerce %s to String", node.String())
		}
		return node.Raw, nil
	case "Boolean":
		if node.Kind != language.BooleanValue {
			return nil, fmt.Errorf("cannot coerce %s to Boolean", node.String())
		}
		return node.Raw == "true", nil
	case "ID":
		if node.Kind != language.IntValue && node.Kind != language.StringValue {
			return nil, fmt.Errorf("cannot coerce %s to ID", node.String())
		}
		return node.Raw, nil
	}

	def := r.types[name]
	if def == nil {
		// Unregistered named type: accept the raw literal.
		return rawValue(node), nil
	}
	switch def.Kind {
	case TypeKindEnum:
		if node.Kind != language.EnumValue {
			return nil, fmt.Errorf("cannot coerce %s to enum %q", node.String(), name)
		}
		if def.EnumValue(node.Raw) == nil {
			return nil, &UnknownEnumValueError{Enum: name, Value: node.Raw}
		}
		return EnumLiteral(node.Raw), nil
	case TypeKindInputObject:
		if node.Kind != language.ObjectValue {
			return nil, fmt.Errorf("cannot coerce %s to input object %q", node.String(), name)
		}
		provided := make(map[string]*language.Value, len(node.Children))
		for _, child := range node.Children {
			if def.InputField(child.Name) == nil {
				return nil, fmt.Errorf("unknown field %q in value for input object %q", child.Name, name)
			}
			provided[child.Name] = child.Value
		}
		out := make(map[string]any, len(provided))
		for _, field := range def.InputFields {
			if childNode, ok := provided[field.Name]; ok {
				value, err := r.Coerce(childNode, field.Type)
				if err != nil {
					return nil, err
				}
				out[field.Name] = value
				continue
			}
			// Omitted key: consult the field's own default, which may not
			// have been resolved yet.
			if _, pending := r.sources[field]; pending {
				value, err := r.resolveOne(field)
				if err != nil {
					return nil, err
				}
				out[field.Name] = value
			} else if field.DefaultValue != nil {
				out[field.Name] = field.DefaultValue
			}
		}
		return out, nil
	default:
		// Custom scalars have no client-side literal rule; the raw literal
		// passes through transparently.
		return rawValue(node), nil
	}
}

// rawValue converts a literal tree to plain Go values without any
// type direction.
func rawValue(node *language.Value) any {
	switch node.Kind {
	case language.IntValue:
		v, _ := strconv.Atoi(node.Raw)
		return v
	case language.FloatValue:
		v, _ := strconv.ParseFloat(node.Raw, 64)
		return v
	case language.StringValue, language.BlockValue:
		return node.Raw
	case language.BooleanValue:
		return node.Raw == "true"
	case language.NullValue:
		return Null
	case language.EnumValue:
		return EnumLiteral(node.Raw)
	case language.ListValue:
		out := make([]any, len(node.Children))
		for i, child := range node.Children {
			out[i] = rawValue(child.Value)
		}
		return out
	case language.ObjectValue:
		out := make(map[string]any, len(node.Children))
		for _, child := range node.Children {
			out[child.Name] = rawValue(child.Value)
		}
		return out
	default:
		return nil
	}
}
