// Package introspection is the codec between the schema graph and its
// canonical JSON interchange form, the introspection result. BuildClientSchema
// reconstructs an executable schema from a document produced by a remote
// service; FromSchema is the structural inverse.
package introspection

import (
	schema "github.com/hanpama/clientschema/internal/schema"
)

// Document is the top-level introspection result.
type Document struct {
	Schema *SchemaData `json:"__schema"`
}

// SchemaData mirrors the __schema selection of the introspection query.
// Nil-versus-empty distinctions are significant throughout: an absent list on
// a record that requires one is a structural error, not an empty list.
type SchemaData struct {
	Description      string           `json:"description,omitempty"`
	QueryType        *RootTypeRef     `json:"queryType"`
	MutationType     *RootTypeRef     `json:"mutationType,omitempty"`
	SubscriptionType *RootTypeRef     `json:"subscriptionType,omitempty"`
	Types            []*FullType      `json:"types"`
	Directives       []*DirectiveData `json:"directives"`
}

// RootTypeRef names a root operation type.
type RootTypeRef struct {
	Name string `json:"name"`
}

// FullType is one named-type record.
type FullType struct {
	Kind           schema.TypeKind   `json:"kind,omitempty"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Fields         []*FieldData      `json:"fields"`
	Interfaces     []*TypeRef        `json:"interfaces"`
	PossibleTypes  []*TypeRef        `json:"possibleTypes"`
	EnumValues     []*EnumValueData  `json:"enumValues"`
	InputFields    []*InputValueData `json:"inputFields"`
	SpecifiedByURL *string           `json:"specifiedByURL,omitempty"`
	OneOf          bool              `json:"isOneOf,omitempty"`
}

// TypeRef is the wrapper encoding of a type reference: either a named leaf
// or a LIST/NON_NULL decoration around another reference.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

// FieldData is a field record on an object or interface type.
type FieldData struct {
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Args              []*InputValueData `json:"args"`
	Type              *TypeRef          `json:"type"`
	IsDeprecated      bool              `json:"isDeprecated"`
	DeprecationReason *string           `json:"deprecationReason"`
}

// InputValueData is an argument or input-object field record. DefaultValue
// holds the GraphQL literal source text, or nil when no default is declared.
type InputValueData struct {
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Type              *TypeRef `json:"type"`
	DefaultValue      *string  `json:"defaultValue"`
	IsDeprecated      bool     `json:"isDeprecated,omitempty"`
	DeprecationReason *string  `json:"deprecationReason,omitempty"`
}

// EnumValueData is one enum member record.
type EnumValueData struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

// DirectiveData is one directive definition record.
type DirectiveData struct {
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Locations    []string          `json:"locations"`
	Args         []*InputValueData `json:"args"`
	IsRepeatable bool              `json:"isRepeatable,omitempty"`
}

const (
	typeRefKindList    = "LIST"
	typeRefKindNonNull = "NON_NULL"
)

// introspectionTypeNames are the meta-types a server includes in its own
// introspection result. The codec neither rebuilds nor emits them: a client
// schema answers introspection from its own graph.
var introspectionTypeNames = map[string]struct{}{
	"__Schema":            {},
	"__Type":              {},
	"__Field":             {},
	"__InputValue":        {},
	"__EnumValue":         {},
	"__Directive":         {},
	"__TypeKind":          {},
	"__DirectiveLocation": {},
}
