package lmstests

import (
	"github.com/courseware-qa/acceptance-tests/framework"
	"github.com/courseware-qa/acceptance-tests/pages"
)

// RunTestSuite runs every LMS test. If driver is nil, any test that needs a browser fails.
func RunTestSuite(
	harness *framework.TestHarness,
	driver *pages.Driver,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, harness, driver)

		t.Run("registration", DoRegistrationTests)
		t.Run("language", DoLanguageTests)
		t.Run("high level tabs", DoHighLevelTabTests)
		t.Run("video", DoVideoTests)
	})
}
