package lmstests

import (
	"github.com/courseware-qa/acceptance-tests/pages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dummyLanguageCode = "eo"

	// "CURRENT COURSES" as the dashboard shows it in the dummy Esperanto translation
	dummyLanguageDashboardText = "ÇÜRRÉNT ÇØÜRSÉS"
)

func DoLanguageTests(t *T) {
	t.Run("change language", func(t *T) {
		course := NewUniqueCourse()
		browser := t.Browser()

		require.NoError(t, pages.NewAutoAuthPage(browser, t.LMSURL()).WithCourse(course.ID()).Visit())
		dashboard := pages.NewDashboardPage(browser, t.LMSURL())
		require.NoError(t, dashboard.Visit())
		require.NoError(t, dashboard.ChangeLanguage(dummyLanguageCode))

		requireTextPresent(t, browser, dummyLanguageDashboardText)
	})

	t.Run("language persists after logging in again", func(t *T) {
		course := NewUniqueCourse()
		browser := t.Browser()

		username := "test_" + course.UniqueID
		autoAuth := pages.NewAutoAuthPage(browser, t.LMSURL()).
			WithCourse(course.ID()).
			WithUser(username, username+"@example.com")
		require.NoError(t, autoAuth.Visit())

		dashboard := pages.NewDashboardPage(browser, t.LMSURL())
		require.NoError(t, dashboard.Visit())
		require.NoError(t, dashboard.ChangeLanguage(dummyLanguageCode))

		// end the session, then log back in as the same user
		require.NoError(t, browser.ClearCookies())
		require.NoError(t, autoAuth.Visit())

		require.NoError(t, dashboard.Visit())
		requireTextPresent(t, browser, dummyLanguageDashboardText)
	})
}

func requireTextPresent(t *T, browser *pages.BrowserSession, text string) {
	present, err := browser.IsTextPresent(text)
	require.NoError(t, err)
	assert.True(t, present, "expected %q on %s", text, browser.CurrentURL())
}
