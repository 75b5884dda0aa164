package language

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseValue parses a single const value literal (the form default values
// take in an introspection result). gqlparser has no standalone value entry
// point, so the literal is parsed as a variable default inside a minimal
// query document.
func ParseValue(source string) (*Value, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: "query ($value: String = " + source + ") { __typename }"})
	if err != nil {
		return nil, err
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].VariableDefinitions) != 1 {
		return nil, fmt.Errorf("malformed value literal %q", source)
	}
	value := doc.Operations[0].VariableDefinitions[0].DefaultValue
	if value == nil {
		return nil, fmt.Errorf("malformed value literal %q", source)
	}
	return value, nil
}
