package lmstests

import (
	"github.com/courseware-qa/acceptance-tests/fixtures"
	"github.com/courseware-qa/acceptance-tests/pages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	demoHandout       = "demoPDF.pdf"
	testStaticTabName = "Test Static Tab"
)

// addHighLevelTabContent gives the course an update, a handout, a static tab and two
// sections of content.
func addHighLevelTabContent(fix *fixtures.CourseFixture, multipleChoice, formula string) *fixtures.CourseFixture {
	return fix.
		AddUpdate(fixtures.CourseUpdateDesc{Date: "January 29, 2014", Content: "Test course update"}).
		AddHandout(demoHandout).
		AddChildren(
			fixtures.NewXBlockDesc("static_tab", testStaticTabName),
			fixtures.NewXBlockDesc("chapter", "Test Section").AddChildren(
				fixtures.NewXBlockDesc("sequential", "Test Subsection").AddChildren(
					fixtures.NewXBlockDesc("problem", "Test Problem 1").WithData(multipleChoice),
					fixtures.NewXBlockDesc("problem", "Test Problem 2").WithData(formula),
					fixtures.NewXBlockDesc("html", "Test HTML"),
				),
			),
			fixtures.NewXBlockDesc("chapter", "Test Section 2").AddChildren(
				fixtures.NewXBlockDesc("sequential", "Test Subsection 2"),
				fixtures.NewXBlockDesc("sequential", "Test Subsection 3"),
			),
		)
}

func DoHighLevelTabTests(t *T) {
	// each subtest installs its own course so they can run in isolation
	setUp := func(t *T) (CourseInfo, *pages.BrowserSession) {
		course := NewUniqueCourse()
		fix := addHighLevelTabContent(t.NewCourseFixture(course),
			t.LoadData("multiple_choice.xml"), t.LoadData("formula_problem.xml"))
		t.InstallCourse(fix)

		browser := t.Browser()
		require.NoError(t, pages.NewAutoAuthPage(browser, t.LMSURL()).WithCourse(course.ID()).Visit())
		return course, browser
	}

	t.Run("course info", func(t *T) {
		course, browser := setUp(t)

		require.NoError(t, pages.NewProgressPage(browser, t.LMSURL(), course.ID()).Visit())
		require.NoError(t, pages.NewTabNavPage(browser).GoToTab("Course Info"))

		info := pages.NewCourseInfoPage(browser, t.LMSURL(), course.ID())
		numUpdates, err := info.NumUpdates()
		require.NoError(t, err)
		assert.Equal(t, 1, numUpdates)

		links, err := info.HandoutLinks()
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Contains(t, links[0], demoHandout)
	})

	t.Run("progress", func(t *T) {
		course, browser := setUp(t)

		require.NoError(t, pages.NewCourseInfoPage(browser, t.LMSURL(), course.ID()).Visit())
		require.NoError(t, pages.NewTabNavPage(browser).GoToTab("Progress"))

		// nothing has been answered yet, and only the two problems are scored
		scores, err := pages.NewProgressPage(browser, t.LMSURL(), course.ID()).Scores("Test Section", "Test Subsection")
		require.NoError(t, err)
		assert.Equal(t, []pages.Score{{Earned: 0, Possible: 3}, {Earned: 0, Possible: 1}}, scores)
	})

	t.Run("static tab", func(t *T) {
		course, browser := setUp(t)

		require.NoError(t, pages.NewCourseInfoPage(browser, t.LMSURL(), course.ID()).Visit())
		tabs := pages.NewTabNavPage(browser)
		require.NoError(t, tabs.GoToTab(testStaticTabName))
		onTab, err := tabs.IsOnTab(testStaticTabName)
		require.NoError(t, err)
		assert.True(t, onTab)
	})

	t.Run("courseware navigation", func(t *T) {
		course, browser := setUp(t)

		require.NoError(t, pages.NewCourseInfoPage(browser, t.LMSURL(), course.ID()).Visit())
		require.NoError(t, pages.NewTabNavPage(browser).GoToTab("Courseware"))

		nav := pages.NewCourseNavPage(browser)
		sections, err := nav.Sections()
		require.NoError(t, err)
		expectedSections := map[string][]string{
			"Test Section":   {"Test Subsection"},
			"Test Section 2": {"Test Subsection 2", "Test Subsection 3"},
		}
		actualSections := make(map[string][]string)
		for _, s := range sections {
			actualSections[s.Title] = s.Subsections
		}
		for title, subsections := range expectedSections {
			assert.Equal(t, subsections, actualSections[title], "subsections of %q", title)
		}

		require.NoError(t, nav.GoToSection("Test Section", "Test Subsection"))
		items, err := nav.SequenceItems()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Test Problem 1", "Test Problem 2", "Test HTML"}, items)
	})
}
