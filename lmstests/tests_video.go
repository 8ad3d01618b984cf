package lmstests

import (
	"time"

	"github.com/courseware-qa/acceptance-tests/fixtures"
	"github.com/courseware-qa/acceptance-tests/pages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	videoDurationTimeout = 20 * time.Second
	videoPollInterval    = 250 * time.Millisecond

	videoSkipReason = "video player gets stuck on pause"
)

func addVideoContent(fix *fixtures.CourseFixture) *fixtures.CourseFixture {
	return fix.AddChildren(
		fixtures.NewXBlockDesc("chapter", "Test Section").AddChildren(
			fixtures.NewXBlockDesc("sequential", "Test Subsection").AddChildren(
				fixtures.NewXBlockDesc("video", "Video"),
			),
		),
	)
}

func DoVideoTests(t *T) {
	t.Run("play and pause", func(t *T) {
		// TODO: remove once the player no longer stays paused after Play in headless Chromium
		t.Skip(videoSkipReason)

		course := NewUniqueCourse()
		t.InstallCourse(addVideoContent(t.NewCourseFixture(course)))

		browser := t.Browser()
		require.NoError(t, pages.NewAutoAuthPage(browser, t.LMSURL()).WithCourse(course.ID()).Visit())
		require.NoError(t, pages.NewCourseInfoPage(browser, t.LMSURL(), course.ID()).Visit())
		require.NoError(t, pages.NewTabNavPage(browser).GoToTab("Courseware"))

		video := pages.NewVideoPage(browser)

		// it starts paused, and nothing has loaded yet
		playing, err := video.IsPlaying()
		require.NoError(t, err)
		assert.False(t, playing)
		elapsed, err := video.ElapsedTime()
		require.NoError(t, err)
		assert.Equal(t, 0, elapsed)

		require.NoError(t, video.Play())
		playing, err = video.IsPlaying()
		require.NoError(t, err)
		assert.True(t, playing)

		duration := awaitVideoDuration(t, video)

		require.NoError(t, video.Pause())
		elapsed, err = video.ElapsedTime()
		require.NoError(t, err)
		// the video may not actually have advanced, so only check that the numbers are sane
		assert.GreaterOrEqual(t, elapsed, 0)
		assert.GreaterOrEqual(t, duration, elapsed)
	})
}

func awaitVideoDuration(t *T, video *pages.VideoPage) int {
	deadline := time.Now().Add(videoDurationTimeout)
	for {
		duration, err := video.Duration()
		require.NoError(t, err)
		if duration > 0 {
			return duration
		}
		if time.Now().After(deadline) {
			require.Fail(t, "video never reported its duration")
		}
		time.Sleep(videoPollInterval)
	}
}
