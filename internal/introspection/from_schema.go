package introspection

import (
	"sort"
	"strings"

	schema "github.com/hanpama/clientschema/internal/schema"
)

// FromSchema emits the introspection document for a schema. Output is
// canonical: types, members, and directives appear in lexicographic order, so
// emitting a schema rebuilt from a document reproduces the document that an
// emit of the source schema would have produced.
func FromSchema(s *schema.Schema) *Document {
	e := &emitter{s: s}
	data := &SchemaData{
		Description: s.Description,
		QueryType:   rootRef(s.QueryType),
		Types:       []*FullType{},
		Directives:  []*DirectiveData{},
	}
	if s.MutationType != "" {
		data.MutationType = rootRef(s.MutationType)
	}
	if s.SubscriptionType != "" {
		data.SubscriptionType = rootRef(s.SubscriptionType)
	}

	for _, name := range sortedKeys(s.Types) {
		if strings.HasPrefix(name, "__") {
			continue
		}
		data.Types = append(data.Types, e.fullType(s.Types[name]))
	}
	for _, name := range sortedKeys(s.Directives) {
		data.Directives = append(data.Directives, e.directive(s.Directives[name]))
	}
	return &Document{Schema: data}
}

type emitter struct {
	s *schema.Schema
}

func (e *emitter) fullType(t *schema.Type) *FullType {
	ft := &FullType{
		Kind:        t.Kind,
		Name:        t.Name,
		Description: t.Description,
	}
	switch t.Kind {
	case schema.TypeKindScalar:
		ft.SpecifiedByURL = t.SpecifiedByURL
	case schema.TypeKindObject, schema.TypeKindInterface:
		ft.Fields = e.fields(t)
		ft.Interfaces = e.namedRefs(t.Interfaces)
		if t.Kind == schema.TypeKindInterface {
			ft.PossibleTypes = e.namedRefs(e.implementers(t.Name))
		}
	case schema.TypeKindUnion:
		ft.PossibleTypes = e.namedRefs(t.PossibleTypes)
	case schema.TypeKindEnum:
		ft.EnumValues = e.enumValues(t)
	case schema.TypeKindInputObject:
		ft.InputFields = e.inputValues(t.InputFields)
		ft.OneOf = t.OneOf
	}
	return ft
}

func (e *emitter) fields(t *schema.Type) []*FieldData {
	sorted := make([]*schema.Field, len(t.Fields))
	copy(sorted, t.Fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	out := make([]*FieldData, 0, len(sorted))
	for _, f := range sorted {
		out = append(out, &FieldData{
			Name:              f.Name,
			Description:       f.Description,
			Args:              e.inputValues(f.Arguments),
			Type:              e.typeRef(f.Type),
			IsDeprecated:      f.IsDeprecated,
			DeprecationReason: reasonOf(f.IsDeprecated, f.DeprecationReason),
		})
	}
	return out
}

func (e *emitter) inputValues(values []*schema.InputValue) []*InputValueData {
	sorted := make([]*schema.InputValue, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	out := make([]*InputValueData, 0, len(sorted))
	for _, v := range sorted {
		rec := &InputValueData{
			Name:              v.Name,
			Description:       v.Description,
			Type:              e.typeRef(v.Type),
			IsDeprecated:      v.IsDeprecated,
			DeprecationReason: reasonOf(v.IsDeprecated, v.DeprecationReason),
		}
		if v.DefaultValue != nil {
			literal := schema.RenderValue(v.DefaultValue)
			rec.DefaultValue = &literal
		}
		out = append(out, rec)
	}
	return out
}

func (e *emitter) enumValues(t *schema.Type) []*EnumValueData {
	sorted := make([]*schema.EnumValue, len(t.EnumValues))
	copy(sorted, t.EnumValues)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	out := make([]*EnumValueData, 0, len(sorted))
	for _, v := range sorted {
		out = append(out, &EnumValueData{
			Name:              v.Name,
			Description:       v.Description,
			IsDeprecated:      v.IsDeprecated,
			DeprecationReason: reasonOf(v.IsDeprecated, v.DeprecationReason),
		})
	}
	return out
}

func (e *emitter) directive(d *schema.Directive) *DirectiveData {
	locations := make([]string, len(d.Locations))
	copy(locations, d.Locations)
	sort.Strings(locations)
	return &DirectiveData{
		Name:         d.Name,
		Description:  d.Description,
		Locations:    locations,
		Args:         e.inputValues(d.Arguments),
		IsRepeatable: d.IsRepeatable,
	}
}

func (e *emitter) typeRef(ref *schema.TypeRef) *TypeRef {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case schema.TypeRefKindList:
		return &TypeRef{Kind: typeRefKindList, OfType: e.typeRef(ref.OfType)}
	case schema.TypeRefKindNonNull:
		return &TypeRef{Kind: typeRefKindNonNull, OfType: e.typeRef(ref.OfType)}
	default:
		return e.namedRef(ref.Named)
	}
}

// namedRef carries the referenced type's own kind, as a server would report.
func (e *emitter) namedRef(name string) *TypeRef {
	ref := &TypeRef{Name: name}
	if t, ok := e.s.Types[name]; ok {
		ref.Kind = string(t.Kind)
	}
	return ref
}

func (e *emitter) namedRefs(names []string) []*TypeRef {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	out := make([]*TypeRef, 0, len(sorted))
	for _, name := range sorted {
		out = append(out, e.namedRef(name))
	}
	return out
}

// implementers lists the object types that declare the interface.
func (e *emitter) implementers(name string) []string {
	var out []string
	for _, t := range e.s.Types {
		if t.Kind != schema.TypeKindObject {
			continue
		}
		for _, iface := range t.Interfaces {
			if iface == name {
				out = append(out, t.Name)
				break
			}
		}
	}
	return out
}

func rootRef(name string) *RootTypeRef {
	return &RootTypeRef{Name: name}
}

func reasonOf(deprecated bool, reason string) *string {
	if !deprecated {
		return nil
	}
	return &reason
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
