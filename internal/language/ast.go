package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	SchemaDocument      = ast.SchemaDocument
	Definition          = ast.Definition
	DefinitionList      = ast.DefinitionList
	DirectiveDefinition = ast.DirectiveDefinition
	DirectiveLocation   = ast.DirectiveLocation
	Directive           = ast.Directive
	DirectiveList       = ast.DirectiveList
	Argument            = ast.Argument
	FieldDefinition     = ast.FieldDefinition
	ArgumentDefinition  = ast.ArgumentDefinition
	EnumValueDefinition = ast.EnumValueDefinition
	Type                = ast.Type
	Value               = ast.Value
	ChildValue          = ast.ChildValue
	Position            = ast.Position
)

type DefinitionKind = ast.DefinitionKind

type ValueKind = ast.ValueKind

const (
	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject

	Variable     ValueKind = ast.Variable
	IntValue     ValueKind = ast.IntValue
	FloatValue   ValueKind = ast.FloatValue
	StringValue  ValueKind = ast.StringValue
	BlockValue   ValueKind = ast.BlockValue
	BooleanValue ValueKind = ast.BooleanValue
	NullValue    ValueKind = ast.NullValue
	EnumValue    ValueKind = ast.EnumValue
	ListValue    ValueKind = ast.ListValue
	ObjectValue  ValueKind = ast.ObjectValue
)
