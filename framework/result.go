package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the test run. Only leaf tests are counted, since a
// parent test's result just reflects its subtests.
func PrintResults(out io.Writer, results Results) {
	var total, skipped int
	for _, t := range results.Tests {
		if len(t.TestID.Path) == 0 || !isLeaf(t.TestID, results.Tests) {
			continue
		}
		total++
		if t.Skipped {
			skipped++
		}
	}
	if results.OK() {
		fmt.Fprintf(out, "All tests passed (%d run, %d skipped)\n", total-skipped, skipped)
		return
	}
	fmt.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "* %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}

func isLeaf(id TestID, all []TestResult) bool {
	prefix := id.String() + "/"
	for _, t := range all {
		if strings.HasPrefix(t.TestID.String(), prefix) {
			return false
		}
	}
	return true
}
