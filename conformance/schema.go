package conformance

import "ocp/tables"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Tables      []tables.Definition `yaml:"tables,omitempty"` // shared by every test in the file
	Tests       []TestCase          `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Skip        interface{}         `yaml:"skip,omitempty"` // bool or string
	Mode        string              `yaml:"mode,omitempty"` // expr (default), right, pushback
	Code        string              `yaml:"code"`
	Tables      []tables.Definition `yaml:"tables,omitempty"` // replaces the suite tables
	Expect      Expectation         `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Code  []string `yaml:"code,omitempty"`  // exact listing, e.g. "PUSH_NUM 9"
	Error string   `yaml:"error,omitempty"` // syntax, argument_too_big, table_not_defined
	Match string   `yaml:"match,omitempty"` // substring of the error message
}

// Error kinds recognized in expectations
const (
	ErrorSyntax          = "syntax"
	ErrorArgumentTooBig  = "argument_too_big"
	ErrorTableNotDefined = "table_not_defined"
)

// Compile modes
const (
	ModeExpr     = "expr"
	ModeRight    = "right"
	ModePushback = "pushback"
)

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
