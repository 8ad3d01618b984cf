package lmstests

import (
	"github.com/courseware-qa/acceptance-tests/pages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoRegistrationTests(t *T) {
	t.Run("register for a course", func(t *T) {
		course := NewUniqueCourse()
		t.InstallCourse(t.NewCourseFixture(course))

		browser := t.Browser()

		// the new course is listed on the front page
		findCourses := pages.NewFindCoursesPage(browser, t.LMSURL())
		require.NoError(t, findCourses.Visit())
		courseIDs, err := findCourses.CourseIDs()
		require.NoError(t, err)
		assert.Contains(t, courseIDs, course.ID())

		about := pages.NewCourseAboutPage(browser, t.LMSURL(), course.ID())
		require.NoError(t, about.Visit())
		register, err := about.Register()
		require.NoError(t, err)

		username := "test_" + course.UniqueID[:6]
		require.NoError(t, register.ProvideInfo(username+"@example.com", "test", username, "Test User"))
		dashboard, err := register.Submit()
		require.NoError(t, err)

		courseNames, err := dashboard.AvailableCourses()
		require.NoError(t, err)
		assert.Contains(t, courseNames, course.DisplayName)
	})
}
