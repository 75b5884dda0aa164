package schema

import (
	"fmt"
	"regexp"
	"strings"
)

var nameRegexp = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// ValidateName checks that name is a spec-valid GraphQL identifier. Names
// beginning with "__" are reserved for introspection.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("expected name to be a non-empty string")
	}
	if strings.HasPrefix(name, "__") {
		return fmt.Errorf("name %q must not begin with %q, which is reserved by GraphQL introspection", name, "__")
	}
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("name %q does not match %q", name, nameRegexp.String())
	}
	return nil
}
