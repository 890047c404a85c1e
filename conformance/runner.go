package conformance

import (
	"errors"
	"fmt"
	"strings"

	"ocp/parser"
	"ocp/tables"
	"ocp/vm"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Listing    []string
	Error      error
}

// Runner executes conformance tests
type Runner struct{}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	defs := test.Suite.Tables
	if test.Test.Tables != nil {
		defs = test.Test.Tables
	}
	registry, err := tables.FromDefinitions(defs)
	if err != nil {
		return TestResult{Test: test, Error: fmt.Errorf("tables: %w", err)}
	}

	listing, compileErr := compile(test.Test.Mode, test.Test.Code, registry)
	result := TestResult{Test: test, Listing: listing}
	if err := checkExpectation(test.Test.Expect, listing, compileErr); err != nil {
		result.Error = err
		return result
	}
	result.Passed = true
	return result
}

// RunAll executes all tests in order
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, 0, len(tests))
	for _, test := range tests {
		results = append(results, r.Run(test))
	}
	return results
}

// compile parses and compiles source in the given mode
func compile(mode, source string, registry *tables.Registry) ([]string, error) {
	c := vm.NewCompilerWithTables(registry)

	switch mode {
	case "", ModeExpr:
		expr, err := parser.Parse(source)
		if err != nil {
			return nil, err
		}
		err = c.Compile(expr)
		return c.Program().Listing(), err
	case ModeRight, ModePushback:
		a, err := parser.ParseArith(source)
		if err != nil {
			return nil, err
		}
		if mode == ModeRight {
			err = c.OutRight(a)
		} else {
			err = c.OutPushback(a)
		}
		return c.Program().Listing(), err
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// SummaryStats holds pass/fail counts for a run
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks the compiled listing or error against the expectation.
// On an expected error the instructions buffered before the failure must
// still match expect.Code when it is given.
func checkExpectation(expect Expectation, listing []string, compileErr error) error {
	if expect.Error != "" {
		if compileErr == nil {
			return fmt.Errorf("expected %s error, got code %v", expect.Error, listing)
		}
		if kind := ErrorKind(compileErr); kind != expect.Error {
			return fmt.Errorf("expected %s error, got %s: %v", expect.Error, kind, compileErr)
		}
		if expect.Match != "" && !strings.Contains(compileErr.Error(), expect.Match) {
			return fmt.Errorf("error %q does not contain %q", compileErr.Error(), expect.Match)
		}
		if expect.Code != nil {
			return compareListing(expect.Code, listing)
		}
		return nil
	}

	if compileErr != nil {
		return fmt.Errorf("unexpected error: %w", compileErr)
	}
	return compareListing(expect.Code, listing)
}

func compareListing(want, got []string) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected %d instructions %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("instruction %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	return nil
}

// ErrorKind classifies a compile error by its expectation name
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, parser.ErrSyntax):
		return ErrorSyntax
	case errors.Is(err, vm.ErrArgumentTooBig):
		return ErrorArgumentTooBig
	case errors.Is(err, vm.ErrTableNotDefined):
		return ErrorTableNotDefined
	default:
		return "other"
	}
}
