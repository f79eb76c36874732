package validation

import "fmt"

// Message templates name the offending value and the violated constraint.
const (
	msgRequired     = "input is required"
	msgEmptyPath    = "path must not be empty"
	msgPathMissing  = "path '%s' does not exist"
	msgPathExists   = "path '%s' already exists"
	msgConstraint   = "'%v' does not meet %s '%v'"
	msgTypeMismatch = "'%v' does not meet type '%s': %v"
	msgBadRule      = "invalid %s rule: %v"
)

func violation(value any, rule string, want any) string {
	return fmt.Sprintf(msgConstraint, value, rule, want)
}
