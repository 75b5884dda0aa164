package schema

import (
	language "github.com/hanpama/clientschema/internal/language"
)

// BuildFromSDL parses an SDL string and returns the corresponding Schema.
// Built-in scalars and directives are always registered; root operation types
// come from the schema definition, falling back to the conventional
// Query/Mutation/Subscription names.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}

	s := NewSchema("")
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	s.AddDirective(includeDirective).
		AddDirective(skipDirective).
		AddDirective(deprecatedDirective).
		AddDirective(specifiedByDirective)

	defaults := NewDefaultValueResolver(s.Types)

	for _, def := range doc.Definitions {
		switch def.Kind {
		case language.Object, language.Interface:
			s.AddType(buildComposite(def, defaults))
		case language.Union:
			s.AddType(buildUnion(def))
		case language.Enum:
			s.AddType(buildEnum(def))
		case language.InputObject:
			s.AddType(buildInput(def, defaults))
		case language.Scalar:
			s.AddType(buildScalar(def))
		}
	}
	for _, dd := range doc.Directives {
		s.AddDirective(buildDirective(dd, defaults))
	}

	applyRootTypes(s, doc)

	if err := defaults.Resolve(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyRootTypes(s *Schema, doc *language.SchemaDocument) {
	for _, sd := range doc.Schema {
		if sd.Description != "" {
			s.Description = sd.Description
		}
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case "query":
				s.SetQueryType(op.Type)
			case "mutation":
				s.SetMutationType(op.Type)
			case "subscription":
				s.SetSubscriptionType(op.Type)
			}
		}
	}
	if s.QueryType == "" {
		if _, ok := s.Types["Query"]; ok {
			s.SetQueryType("Query")
		}
	}
	if s.MutationType == "" {
		if _, ok := s.Types["Mutation"]; ok {
			s.SetMutationType("Mutation")
		}
	}
	if s.SubscriptionType == "" {
		if _, ok := s.Types["Subscription"]; ok {
			s.SetSubscriptionType("Subscription")
		}
	}
}

func buildComposite(def *language.Definition, defaults *DefaultValueResolver) *Type {
	kind := TypeKindObject
	if def.Kind == language.Interface {
		kind = TypeKindInterface
	}
	t := NewType(def.Name, kind, def.Description)
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, fd := range def.Fields {
		t.AddField(buildField(fd, defaults))
	}
	return t
}

func buildField(fd *language.FieldDefinition, defaults *DefaultValueResolver) *Field {
	f := NewField(fd.Name, fd.Description, typeRefFromAST(fd.Type))
	if deprecated, reason := deprecationOf(fd.Directives); deprecated {
		f.Deprecate(reason)
	}
	for _, ad := range fd.Arguments {
		f.AddArgument(buildArgument(ad, defaults))
	}
	return f
}

func buildArgument(ad *language.ArgumentDefinition, defaults *DefaultValueResolver) *InputValue {
	iv := NewInputValue(ad.Name, ad.Description, typeRefFromAST(ad.Type))
	if deprecated, reason := deprecationOf(ad.Directives); deprecated {
		iv.Deprecate(reason)
	}
	defaults.Record(iv, ad.DefaultValue)
	return iv
}

func buildUnion(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindUnion, def.Description)
	for _, name := range def.Types {
		t.AddPossibleType(name)
	}
	return t
}

func buildEnum(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindEnum, def.Description)
	for _, vd := range def.EnumValues {
		v := NewEnumValue(vd.Name, vd.Description)
		if deprecated, reason := deprecationOf(vd.Directives); deprecated {
			v.Deprecate(reason)
		}
		t.AddEnumValue(v)
	}
	return t
}

func buildInput(def *language.Definition, defaults *DefaultValueResolver) *Type {
	t := NewType(def.Name, TypeKindInputObject, def.Description)
	if def.Directives.ForName("oneOf") != nil {
		t.SetOneOf(true)
	}
	for _, fd := range def.Fields {
		iv := NewInputValue(fd.Name, fd.Description, typeRefFromAST(fd.Type))
		if deprecated, reason := deprecationOf(fd.Directives); deprecated {
			iv.Deprecate(reason)
		}
		defaults.Record(iv, fd.DefaultValue)
		t.AddInputField(iv)
	}
	return t
}

func buildScalar(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindScalar, def.Description)
	if dir := def.Directives.ForName("specifiedBy"); dir != nil {
		if arg := dir.Arguments.ForName("url"); arg != nil {
			t.SetSpecifiedByURL(arg.Value.Raw)
		}
	}
	return t
}

func buildDirective(dd *language.DirectiveDefinition, defaults *DefaultValueResolver) *Directive {
	d := NewDirective(dd.Name, dd.Description).SetRepeatable(dd.IsRepeatable)
	for _, loc := range dd.Locations {
		d.AddLocation(string(loc))
	}
	for _, ad := range dd.Arguments {
		d.AddArgument(buildArgument(ad, defaults))
	}
	return d
}

func typeRefFromAST(t *language.Type) *TypeRef {
	var ref *TypeRef
	if t.NamedType != "" {
		ref = NamedType(t.NamedType)
	} else {
		ref = ListType(typeRefFromAST(t.Elem))
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

func deprecationOf(dirs language.DirectiveList) (bool, string) {
	dir := dirs.ForName("deprecated")
	if dir == nil {
		return false, ""
	}
	if arg := dir.Arguments.ForName("reason"); arg != nil {
		return true, arg.Value.Raw
	}
	return true, "No longer supported"
}
