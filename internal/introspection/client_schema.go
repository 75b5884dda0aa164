package introspection

import (
	"errors"

	language "github.com/hanpama/clientschema/internal/language"
	schema "github.com/hanpama/clientschema/internal/schema"
)

// maxTypeRefDepth bounds LIST/NON_NULL wrappers on a single type reference,
// matching the nesting the introspection query can express.
const maxTypeRefDepth = 7

// Option configures BuildClientSchema.
type Option func(*buildOptions)

type buildOptions struct {
	allowedLegacyNames []string
}

// WithAllowedLegacyNames exempts the given identifiers from name-validity
// checks. Servers predating the current naming rules can expose such names.
func WithAllowedLegacyNames(names ...string) Option {
	return func(o *buildOptions) {
		o.allowedLegacyNames = append(o.allowedLegacyNames, names...)
	}
}

// BuildClientSchema reconstructs a schema from an introspection document.
// The result contains every type and directive the document declares, with
// built-in scalars replaced by their canonical definitions. Construction is
// fail-fast: the first structural defect aborts with a *BuildError.
func BuildClientSchema(doc *Document, opts ...Option) (*schema.Schema, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	if doc == nil || doc.Schema == nil || doc.Schema.QueryType == nil {
		return nil, &BuildError{Kind: ErrIncompleteResult, Record: doc}
	}
	data := doc.Schema

	b := &clientBuilder{
		index:  make(map[string]*FullType, len(data.Types)),
		types:  make(map[string]*schema.Type, len(data.Types)),
		legacy: make(map[string]struct{}, len(o.allowedLegacyNames)),
	}
	for _, name := range o.allowedLegacyNames {
		b.legacy[name] = struct{}{}
	}
	b.defaults = schema.NewDefaultValueResolver(b.types)

	for _, rec := range data.Types {
		if rec == nil || rec.Name == "" {
			return nil, &BuildError{Kind: ErrIncompleteResult, Record: rec}
		}
		if _, meta := introspectionTypeNames[rec.Name]; meta {
			continue
		}
		b.index[rec.Name] = rec
	}
	for _, rec := range data.Types {
		if _, kept := b.index[rec.Name]; !kept {
			continue
		}
		if _, err := b.typeByName(rec.Name); err != nil {
			return nil, err
		}
	}

	s := schema.NewSchema(data.Description)
	s.Types = b.types
	s.AllowedLegacyNames = o.allowedLegacyNames

	query, err := b.typeByName(data.QueryType.Name)
	if err != nil {
		return nil, err
	}
	if query.Kind != schema.TypeKindObject {
		return nil, &BuildError{Kind: ErrExpectedObjectType, Name: query.Name}
	}
	s.SetQueryType(query.Name)
	if data.MutationType != nil {
		mutation, err := b.rootObjectType(data.MutationType.Name)
		if err != nil {
			return nil, err
		}
		s.SetMutationType(mutation.Name)
	}
	if data.SubscriptionType != nil {
		subscription, err := b.rootObjectType(data.SubscriptionType.Name)
		if err != nil {
			return nil, err
		}
		s.SetSubscriptionType(subscription.Name)
	}

	for _, rec := range data.Directives {
		d, err := b.buildDirective(rec)
		if err != nil {
			return nil, err
		}
		s.AddDirective(d)
	}

	if err := b.defaults.Resolve(); err != nil {
		var unknown *schema.UnknownEnumValueError
		if errors.As(err, &unknown) {
			return nil, &BuildError{Kind: ErrUnknownEnumValue, Name: unknown.Enum, cause: err}
		}
		return nil, &BuildError{Kind: ErrInvalidDefault, cause: err}
	}
	return s, nil
}

type clientBuilder struct {
	index    map[string]*FullType
	types    map[string]*schema.Type
	legacy   map[string]struct{}
	defaults *schema.DefaultValueResolver
}

// typeByName resolves a name to its built type, constructing it on first use.
// Built-in scalar names always yield the canonical singletons, regardless of
// what the document declares under them.
func (b *clientBuilder) typeByName(name string) (*schema.Type, error) {
	if t, ok := b.types[name]; ok {
		return t, nil
	}
	if t, ok := schema.BuiltinScalar(name); ok {
		b.types[name] = t
		return t, nil
	}
	rec, ok := b.index[name]
	if !ok {
		return nil, &BuildError{Kind: ErrUnknownType, Name: name}
	}
	return b.buildType(rec)
}

func (b *clientBuilder) rootObjectType(name string) (*schema.Type, error) {
	t, err := b.typeByName(name)
	if err != nil {
		return nil, err
	}
	if t.Kind != schema.TypeKindObject {
		return nil, &BuildError{Kind: ErrExpectedObjectType, Name: t.Name}
	}
	return t, nil
}

func (b *clientBuilder) buildType(rec *FullType) (*schema.Type, error) {
	if err := b.checkName(rec.Name); err != nil {
		return nil, err
	}
	switch rec.Kind {
	case schema.TypeKindScalar, schema.TypeKindObject, schema.TypeKindInterface,
		schema.TypeKindUnion, schema.TypeKindEnum, schema.TypeKindInputObject:
	case "":
		// An absent kind means the record was fetched without a full
		// introspection query, not that the kind itself is bad.
		return nil, &BuildError{Kind: ErrIncompleteResult, Name: rec.Name, Record: rec}
	default:
		return nil, &BuildError{Kind: ErrMissingKind, Name: rec.Name, Record: rec}
	}

	t := schema.NewType(rec.Name, rec.Kind, rec.Description)
	// Registered before population so cyclic references resolve to the same
	// instance instead of recursing.
	b.types[rec.Name] = t

	var err error
	switch rec.Kind {
	case schema.TypeKindScalar:
		t.SpecifiedByURL = rec.SpecifiedByURL
	case schema.TypeKindObject, schema.TypeKindInterface:
		err = b.populateComposite(t, rec)
	case schema.TypeKindUnion:
		err = b.populateUnion(t, rec)
	case schema.TypeKindEnum:
		err = b.populateEnum(t, rec)
	case schema.TypeKindInputObject:
		err = b.populateInput(t, rec)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (b *clientBuilder) populateComposite(t *schema.Type, rec *FullType) error {
	if rec.Fields == nil {
		return &BuildError{Kind: ErrMissingFields, Name: rec.Name, Record: rec}
	}
	if rec.Interfaces == nil {
		return &BuildError{Kind: ErrMissingInterfaces, Name: rec.Name, Record: rec}
	}
	for _, ref := range rec.Interfaces {
		iface, err := b.resolveNamed(ref)
		if err != nil {
			return err
		}
		if iface.Kind != schema.TypeKindInterface {
			return &BuildError{Kind: ErrExpectedInterfaceType, Name: iface.Name}
		}
		t.AddInterface(iface.Name)
	}
	for _, rec := range rec.Fields {
		f, err := b.buildField(rec)
		if err != nil {
			return err
		}
		t.AddField(f)
	}
	return nil
}

func (b *clientBuilder) buildField(rec *FieldData) (*schema.Field, error) {
	if err := b.checkName(rec.Name); err != nil {
		return nil, err
	}
	ref, err := b.decodeTypeRef(rec.Type)
	if err != nil {
		return nil, err
	}
	f := schema.NewField(rec.Name, rec.Description, ref)
	if rec.IsDeprecated {
		f.Deprecate(deprecationReason(rec.DeprecationReason))
	}
	if rec.Args == nil {
		return nil, &BuildError{Kind: ErrIncompleteResult, Name: rec.Name, Record: rec}
	}
	for _, arg := range rec.Args {
		iv, err := b.buildInputValue(arg)
		if err != nil {
			return nil, err
		}
		f.AddArgument(iv)
	}
	return f, nil
}

func (b *clientBuilder) populateUnion(t *schema.Type, rec *FullType) error {
	if rec.PossibleTypes == nil {
		return &BuildError{Kind: ErrMissingPossibleTypes, Name: rec.Name, Record: rec}
	}
	for _, ref := range rec.PossibleTypes {
		member, err := b.resolveNamed(ref)
		if err != nil {
			return err
		}
		if member.Kind != schema.TypeKindObject {
			return &BuildError{Kind: ErrExpectedObjectType, Name: member.Name}
		}
		t.AddPossibleType(member.Name)
	}
	return nil
}

func (b *clientBuilder) populateEnum(t *schema.Type, rec *FullType) error {
	if rec.EnumValues == nil {
		return &BuildError{Kind: ErrMissingEnumValues, Name: rec.Name, Record: rec}
	}
	for _, rec := range rec.EnumValues {
		if err := b.checkName(rec.Name); err != nil {
			return err
		}
		v := schema.NewEnumValue(rec.Name, rec.Description)
		if rec.IsDeprecated {
			v.Deprecate(deprecationReason(rec.DeprecationReason))
		}
		t.AddEnumValue(v)
	}
	return nil
}

func (b *clientBuilder) populateInput(t *schema.Type, rec *FullType) error {
	if rec.InputFields == nil {
		return &BuildError{Kind: ErrMissingInputFields, Name: rec.Name, Record: rec}
	}
	t.SetOneOf(rec.OneOf)
	for _, rec := range rec.InputFields {
		iv, err := b.buildInputValue(rec)
		if err != nil {
			return err
		}
		t.AddInputField(iv)
	}
	return nil
}

func (b *clientBuilder) buildInputValue(rec *InputValueData) (*schema.InputValue, error) {
	if err := b.checkName(rec.Name); err != nil {
		return nil, err
	}
	ref, err := b.decodeTypeRef(rec.Type)
	if err != nil {
		return nil, err
	}
	iv := schema.NewInputValue(rec.Name, rec.Description, ref)
	if rec.IsDeprecated {
		iv.Deprecate(deprecationReason(rec.DeprecationReason))
	}
	if rec.DefaultValue != nil {
		node, err := language.ParseValue(*rec.DefaultValue)
		if err != nil {
			return nil, &BuildError{Kind: ErrInvalidDefault, Name: rec.Name, cause: err}
		}
		b.defaults.Record(iv, node)
	}
	return iv, nil
}

func (b *clientBuilder) buildDirective(rec *DirectiveData) (*schema.Directive, error) {
	if rec == nil || rec.Name == "" {
		return nil, &BuildError{Kind: ErrIncompleteResult, Record: rec}
	}
	if err := b.checkName(rec.Name); err != nil {
		return nil, err
	}
	if len(rec.Locations) == 0 {
		return nil, &BuildError{Kind: ErrMissingLocations, Name: rec.Name, Record: rec}
	}
	if rec.Args == nil {
		return nil, &BuildError{Kind: ErrIncompleteResult, Name: rec.Name, Record: rec}
	}
	d := schema.NewDirective(rec.Name, rec.Description).SetRepeatable(rec.IsRepeatable)
	for _, loc := range rec.Locations {
		d.AddLocation(loc)
	}
	for _, arg := range rec.Args {
		iv, err := b.buildInputValue(arg)
		if err != nil {
			return nil, err
		}
		d.AddArgument(iv)
	}
	return d, nil
}

// resolveNamed resolves a reference that must be a bare named type, as in the
// interfaces and possibleTypes lists.
func (b *clientBuilder) resolveNamed(ref *TypeRef) (*schema.Type, error) {
	if ref == nil || ref.Name == "" {
		return nil, &BuildError{Kind: ErrMalformedTypeRef, Record: ref}
	}
	return b.typeByName(ref.Name)
}

func (b *clientBuilder) decodeTypeRef(ref *TypeRef) (*schema.TypeRef, error) {
	return b.decode(ref, 0)
}

func (b *clientBuilder) decode(ref *TypeRef, wrappers int) (*schema.TypeRef, error) {
	if ref == nil {
		return nil, &BuildError{Kind: ErrMalformedTypeRef, Record: ref}
	}
	switch ref.Kind {
	case typeRefKindList:
		if wrappers+1 > maxTypeRefDepth {
			return nil, &BuildError{Kind: ErrDecorationTooDeep, Record: ref}
		}
		if ref.OfType == nil {
			return nil, &BuildError{Kind: ErrMalformedTypeRef, Record: ref}
		}
		inner, err := b.decode(ref.OfType, wrappers+1)
		if err != nil {
			return nil, err
		}
		return schema.ListType(inner), nil
	case typeRefKindNonNull:
		if wrappers+1 > maxTypeRefDepth {
			return nil, &BuildError{Kind: ErrDecorationTooDeep, Record: ref}
		}
		if ref.OfType == nil || ref.OfType.Kind == typeRefKindNonNull {
			return nil, &BuildError{Kind: ErrMalformedTypeRef, Record: ref}
		}
		inner, err := b.decode(ref.OfType, wrappers+1)
		if err != nil {
			return nil, err
		}
		return schema.NonNullType(inner), nil
	default:
		if ref.Name == "" {
			return nil, &BuildError{Kind: ErrMalformedTypeRef, Record: ref}
		}
		if _, err := b.typeByName(ref.Name); err != nil {
			return nil, err
		}
		return schema.NamedType(ref.Name), nil
	}
}

func (b *clientBuilder) checkName(name string) error {
	if _, ok := b.legacy[name]; ok {
		return nil
	}
	if err := schema.ValidateName(name); err != nil {
		return &BuildError{Kind: ErrInvalidName, Name: name, cause: err}
	}
	return nil
}

func deprecationReason(reason *string) string {
	if reason == nil {
		return ""
	}
	return *reason
}
