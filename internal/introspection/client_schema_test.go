package introspection

import (
	"testing"

	"github.com/stretchr/testify/require"

	schema "github.com/hanpama/clientschema/internal/schema"
)

func namedRef(kind, name string) *TypeRef {
	return &TypeRef{Kind: kind, Name: name}
}

func objectRecord(name string, fields ...*FieldData) *FullType {
	return &FullType{
		Kind:       schema.TypeKindObject,
		Name:       name,
		Fields:     append([]*FieldData{}, fields...),
		Interfaces: []*TypeRef{},
	}
}

func fieldRecord(name string, typ *TypeRef) *FieldData {
	return &FieldData{Name: name, Args: []*InputValueData{}, Type: typ}
}

func queryRecord() *FullType {
	return objectRecord("Query", fieldRecord("ok", namedRef("SCALAR", "Boolean")))
}

func document(types ...*FullType) *Document {
	return &Document{Schema: &SchemaData{
		QueryType:  &RootTypeRef{Name: "Query"},
		Types:      append([]*FullType{}, types...),
		Directives: []*DirectiveData{},
	}}
}

func requireBuildError(t *testing.T, err error, kind ErrorKind) *BuildError {
	t.Helper()
	var be *BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, kind, be.Kind)
	return be
}

func TestBuildClientSchemaIncompleteDocument(t *testing.T) {
	_, err := BuildClientSchema(nil)
	requireBuildError(t, err, ErrIncompleteResult)

	_, err = BuildClientSchema(&Document{})
	requireBuildError(t, err, ErrIncompleteResult)

	_, err = BuildClientSchema(&Document{Schema: &SchemaData{}})
	requireBuildError(t, err, ErrIncompleteResult)
}

func TestBuildClientSchemaUnknownQueryType(t *testing.T) {
	// A named query root with no matching type record.
	_, err := BuildClientSchema(document())
	be := requireBuildError(t, err, ErrUnknownType)
	require.Equal(t, "Query", be.Name)
}

func TestBuildClientSchemaUnknownFieldType(t *testing.T) {
	doc := document(objectRecord("Query", fieldRecord("thing", namedRef("OBJECT", "Missing"))))
	be := requireBuildError(t, buildErr(doc), ErrUnknownType)
	require.Equal(t, "Missing", be.Name)
}

// buildErr discards the schema for error-only assertions.
func buildErr(doc *Document, opts ...Option) error {
	_, err := BuildClientSchema(doc, opts...)
	return err
}

func TestBuildClientSchemaMissingKind(t *testing.T) {
	// Absent kind reads as a partial introspection result; an unrecognized
	// kind is diagnosed on its own.
	doc := document(queryRecord(), &FullType{Name: "Mystery"})
	requireBuildError(t, buildErr(doc), ErrIncompleteResult)

	doc = document(queryRecord(), &FullType{Name: "Mystery", Kind: "GADT"})
	be := requireBuildError(t, buildErr(doc), ErrMissingKind)
	require.Equal(t, "Mystery", be.Name)
}

func TestBuildClientSchemaMissingMemberLists(t *testing.T) {
	cases := []struct {
		name string
		rec  *FullType
		kind ErrorKind
	}{
		{
			"object without fields",
			&FullType{Kind: schema.TypeKindObject, Name: "Bare", Interfaces: []*TypeRef{}},
			ErrMissingFields,
		},
		{
			"object without interfaces",
			&FullType{Kind: schema.TypeKindObject, Name: "Bare", Fields: []*FieldData{}},
			ErrMissingInterfaces,
		},
		{
			"interface without fields",
			&FullType{Kind: schema.TypeKindInterface, Name: "Bare", Interfaces: []*TypeRef{}},
			ErrMissingFields,
		},
		{
			"union without possibleTypes",
			&FullType{Kind: schema.TypeKindUnion, Name: "Bare"},
			ErrMissingPossibleTypes,
		},
		{
			"enum without enumValues",
			&FullType{Kind: schema.TypeKindEnum, Name: "Bare"},
			ErrMissingEnumValues,
		},
		{
			"input without inputFields",
			&FullType{Kind: schema.TypeKindInputObject, Name: "Bare"},
			ErrMissingInputFields,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := document(queryRecord(), tc.rec)
			be := requireBuildError(t, buildErr(doc), tc.kind)
			require.Equal(t, "Bare", be.Name)
		})
	}
}

func TestBuildClientSchemaMissingDirectiveLocations(t *testing.T) {
	doc := document(queryRecord())
	doc.Schema.Directives = []*DirectiveData{
		{Name: "custom", Args: []*InputValueData{}},
	}
	be := requireBuildError(t, buildErr(doc), ErrMissingLocations)
	require.Equal(t, "custom", be.Name)
}

func TestBuildClientSchemaExpectedInterfaceType(t *testing.T) {
	other := objectRecord("Other", fieldRecord("ok", namedRef("SCALAR", "Boolean")))
	impl := objectRecord("Impl", fieldRecord("ok", namedRef("SCALAR", "Boolean")))
	impl.Interfaces = []*TypeRef{namedRef("OBJECT", "Other")}
	doc := document(queryRecord(), other, impl)
	be := requireBuildError(t, buildErr(doc), ErrExpectedInterfaceType)
	require.Equal(t, "Other", be.Name)
}

func TestBuildClientSchemaExpectedObjectType(t *testing.T) {
	iface := &FullType{
		Kind:       schema.TypeKindInterface,
		Name:       "Node",
		Fields:     []*FieldData{fieldRecord("id", namedRef("SCALAR", "ID"))},
		Interfaces: []*TypeRef{},
	}
	union := &FullType{
		Kind:          schema.TypeKindUnion,
		Name:          "Anything",
		PossibleTypes: []*TypeRef{namedRef("INTERFACE", "Node")},
	}
	doc := document(queryRecord(), iface, union)
	be := requireBuildError(t, buildErr(doc), ErrExpectedObjectType)
	require.Equal(t, "Node", be.Name)
}

func TestBuildClientSchemaQueryRootMustBeObject(t *testing.T) {
	doc := &Document{Schema: &SchemaData{
		QueryType: &RootTypeRef{Name: "Node"},
		Types: []*FullType{{
			Kind:       schema.TypeKindInterface,
			Name:       "Node",
			Fields:     []*FieldData{fieldRecord("id", namedRef("SCALAR", "ID"))},
			Interfaces: []*TypeRef{},
		}},
		Directives: []*DirectiveData{},
	}}
	be := requireBuildError(t, buildErr(doc), ErrExpectedObjectType)
	require.Equal(t, "Node", be.Name)
}

func wrapped(depth int, inner *TypeRef) *TypeRef {
	ref := inner
	for range depth {
		ref = &TypeRef{Kind: typeRefKindList, OfType: ref}
	}
	return ref
}

func TestBuildClientSchemaDecorationDepth(t *testing.T) {
	deep := document(objectRecord("Query",
		fieldRecord("ok", wrapped(7, namedRef("SCALAR", "Boolean")))))
	_, err := BuildClientSchema(deep)
	require.NoError(t, err)

	tooDeep := document(objectRecord("Query",
		fieldRecord("ok", wrapped(8, namedRef("SCALAR", "Boolean")))))
	requireBuildError(t, buildErr(tooDeep), ErrDecorationTooDeep)
}

func TestBuildClientSchemaMalformedTypeRef(t *testing.T) {
	cases := []struct {
		name string
		ref  *TypeRef
	}{
		{"wrapper without ofType", &TypeRef{Kind: typeRefKindList}},
		{"non-null without ofType", &TypeRef{Kind: typeRefKindNonNull}},
		{"doubled non-null", &TypeRef{
			Kind:   typeRefKindNonNull,
			OfType: &TypeRef{Kind: typeRefKindNonNull, OfType: namedRef("SCALAR", "Boolean")},
		}},
		{"nameless leaf", &TypeRef{Kind: "SCALAR"}},
		{"nil reference", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := document(objectRecord("Query", fieldRecord("ok", tc.ref)))
			requireBuildError(t, buildErr(doc), ErrMalformedTypeRef)
		})
	}
}

func TestBuildClientSchemaCyclicReferences(t *testing.T) {
	doc := document(
		objectRecord("Query", fieldRecord("recur", namedRef("OBJECT", "Recur"))),
		objectRecord("Recur", fieldRecord("self", namedRef("OBJECT", "Recur"))),
	)
	s, err := BuildClientSchema(doc)
	require.NoError(t, err)

	recur := s.Types["Recur"]
	require.NotNil(t, recur)
	require.Equal(t, "Recur", recur.Field("self").Type.Named)
}

func TestBuildClientSchemaMutualRecursion(t *testing.T) {
	doc := document(
		objectRecord("Query", fieldRecord("dog", namedRef("OBJECT", "Dog"))),
		objectRecord("Dog", fieldRecord("bestFriend", namedRef("OBJECT", "Human"))),
		objectRecord("Human", fieldRecord("bestFriend", namedRef("OBJECT", "Dog"))),
	)
	s, err := BuildClientSchema(doc)
	require.NoError(t, err)

	dog := s.Types["Dog"]
	human := s.Types["Human"]
	require.Same(t, human, s.Types[dog.Field("bestFriend").Type.Named])
	require.Same(t, dog, s.Types[human.Field("bestFriend").Type.Named])
}

func TestBuildClientSchemaUnknownEnumDefault(t *testing.T) {
	status := &FullType{
		Kind: schema.TypeKindEnum,
		Name: "Status",
		EnumValues: []*EnumValueData{
			{Name: "DRAFT"},
		},
	}
	defaultValue := "REMOVED"
	query := objectRecord("Query", &FieldData{
		Name: "posts",
		Args: []*InputValueData{{
			Name:         "status",
			Type:         namedRef("ENUM", "Status"),
			DefaultValue: &defaultValue,
		}},
		Type: namedRef("SCALAR", "Boolean"),
	})
	doc := document(query, status)
	be := requireBuildError(t, buildErr(doc), ErrUnknownEnumValue)
	require.Equal(t, "Status", be.Name)
}

func TestBuildClientSchemaInvalidDefaultLiteral(t *testing.T) {
	defaultValue := "[1,"
	query := objectRecord("Query", &FieldData{
		Name: "posts",
		Args: []*InputValueData{{
			Name:         "limit",
			Type:         namedRef("SCALAR", "Int"),
			DefaultValue: &defaultValue,
		}},
		Type: namedRef("SCALAR", "Boolean"),
	})
	requireBuildError(t, buildErr(document(query)), ErrInvalidDefault)
}

func TestBuildClientSchemaNameValidation(t *testing.T) {
	doc := document(queryRecord(), &FullType{
		Kind:       schema.TypeKindObject,
		Name:       "__notReserved",
		Fields:     []*FieldData{fieldRecord("ok", namedRef("SCALAR", "Boolean"))},
		Interfaces: []*TypeRef{},
	})
	be := requireBuildError(t, buildErr(doc), ErrInvalidName)
	require.Equal(t, "__notReserved", be.Name)

	s, err := BuildClientSchema(doc, WithAllowedLegacyNames("__notReserved"))
	require.NoError(t, err)
	require.NotNil(t, s.Types["__notReserved"])
	require.Equal(t, []string{"__notReserved"}, s.AllowedLegacyNames)
}

func TestBuildClientSchemaSkipsIntrospectionTypes(t *testing.T) {
	doc := document(queryRecord(), &FullType{
		Kind: schema.TypeKindObject,
		Name: "__Schema",
	})
	s, err := BuildClientSchema(doc)
	require.NoError(t, err)
	require.Nil(t, s.Types["__Schema"])
}

func TestBuildClientSchemaMissingFieldArgs(t *testing.T) {
	doc := document(objectRecord("Query", &FieldData{
		Name: "ok",
		Type: namedRef("SCALAR", "Boolean"),
	}))
	requireBuildError(t, buildErr(doc), ErrIncompleteResult)
}
