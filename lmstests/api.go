package lmstests

import (
	"github.com/courseware-qa/acceptance-tests/fixtures"
	"github.com/courseware-qa/acceptance-tests/framework"
	"github.com/courseware-qa/acceptance-tests/pages"

	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the LMS test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// It also provides what LMS tests need: a browser session that is created on first use and closed
// when the test ends, and course fixtures that install into the Studio instance under test.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
	driver  *pages.Driver
	browser *pages.BrowserSession
}

func newTestScope(context *framework.Context, harness *framework.TestHarness, driver *pages.Driver) *T {
	return &T{
		context: context,
		harness: harness,
		driver:  driver,
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The specified function receives a new T instance with no browser session; subtests that
// use the browser get their own.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness, t.driver))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip ends the test without failing it.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Defer schedules a function to run when the test ends.
func (t *T) Defer(cleanup func()) {
	t.context.Defer(cleanup)
}

func (t *T) LMSURL() string {
	return t.harness.LMSURL()
}

// Browser returns this test's browser session, starting it if necessary. The session is
// closed when the test ends.
func (t *T) Browser() *pages.BrowserSession {
	if t.browser == nil {
		require.NotNil(t, t.driver, "test needs a browser but none was configured")
		session, err := t.driver.NewBrowserSession()
		require.NoError(t, err)
		t.browser = session
		t.Defer(func() {
			if err := session.Close(); err != nil {
				t.Debug("error closing browser session: %s", err)
			}
		})
	}
	return t.browser
}

// NewCourseFixture starts a fixture for the course. The fixture logs its Studio calls to this
// test's debug output.
func (t *T) NewCourseFixture(course CourseInfo) *fixtures.CourseFixture {
	return fixtures.NewCourseFixture(t.harness.StudioURL(), course.Org, course.Number, course.Run, course.DisplayName).
		WithLogger(framework.LoggerWithPrefix(t.context.DebugLogger(), "[Studio] "))
}

// InstallCourse installs the fixture, failing the test immediately if that does not work.
func (t *T) InstallCourse(fixture *fixtures.CourseFixture) {
	require.NoError(t, fixture.Install(), "could not install %s", fixture)
}

// LoadData returns one of the embedded content files, failing the test if it does not exist.
func (t *T) LoadData(name string) string {
	data, err := LoadData(name)
	require.NoError(t, err)
	return data
}
