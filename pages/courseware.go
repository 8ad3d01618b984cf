package pages

import (
	"fmt"
	"strings"
)

// CourseNavPage is the accordion of sections and subsections on the courseware page, plus
// the sequence of units in the current subsection.
type CourseNavPage struct {
	session *BrowserSession
}

func NewCourseNavPage(session *BrowserSession) *CourseNavPage {
	return &CourseNavPage{session: session}
}

// Section is a chapter in the courseware navigation with the titles of its subsections.
type Section struct {
	Title       string
	Subsections []string
}

// Sections returns the navigation in display order.
func (p *CourseNavPage) Sections() ([]Section, error) {
	if _, err := p.session.waitForVisible("nav div.chapter"); err != nil {
		return nil, err
	}
	chapters := p.session.Page().Locator("nav div.chapter")
	n, err := chapters.Count()
	if err != nil {
		return nil, err
	}
	ret := make([]Section, 0, n)
	for i := 0; i < n; i++ {
		chapter := chapters.Nth(i)
		title, err := chapter.Locator("h3 a").TextContent()
		if err != nil {
			return nil, err
		}
		subsections, err := chapter.Locator("ul li a p:first-child").AllTextContents()
		if err != nil {
			return nil, err
		}
		ret = append(ret, Section{Title: strings.TrimSpace(title), Subsections: trimAll(subsections)})
	}
	return ret, nil
}

// GoToSection opens a section in the accordion and clicks one of its subsections.
func (p *CourseNavPage) GoToSection(sectionTitle, subsectionTitle string) error {
	sections, err := p.Sections()
	if err != nil {
		return err
	}
	for i, s := range sections {
		if s.Title != sectionTitle {
			continue
		}
		for j, sub := range s.Subsections {
			if sub != subsectionTitle {
				continue
			}
			chapter := p.session.Page().Locator("nav div.chapter").Nth(i)
			if err := chapter.Locator("h3 a").Click(); err != nil {
				return fmt.Errorf("could not open section %q: %w", sectionTitle, err)
			}
			if err := chapter.Locator("ul li a").Nth(j).Click(); err != nil {
				return fmt.Errorf("could not open subsection %q: %w", subsectionTitle, err)
			}
			if err := p.session.waitForLoad(); err != nil {
				return err
			}
			_, err := p.session.waitForVisible("ol#sequence-list")
			return err
		}
		return fmt.Errorf("section %q has no subsection %q, it has %v", sectionTitle, subsectionTitle, s.Subsections)
	}
	return fmt.Errorf("no section %q in course navigation", sectionTitle)
}

// SequenceItems returns the titles of the units in the current subsection.
func (p *CourseNavPage) SequenceItems() ([]string, error) {
	return p.session.texts("ol#sequence-list > li > a > p")
}

// ProgressPage shows the student's scores, grouped by section and subsection.
type ProgressPage struct {
	session  *BrowserSession
	lmsURL   string
	courseID string
}

func NewProgressPage(session *BrowserSession, lmsURL, courseID string) *ProgressPage {
	return &ProgressPage{session: session, lmsURL: lmsURL, courseID: courseID}
}

func (p *ProgressPage) URL() string {
	return coursePageURL(p.lmsURL, p.courseID, "progress")
}

func (p *ProgressPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	_, err := p.session.waitForVisible("section.course-info")
	return err
}

// Scores returns the problem scores of one subsection, in display order.
func (p *ProgressPage) Scores(chapterTitle, sectionTitle string) ([]Score, error) {
	chapters := p.session.Page().Locator("div.chapters > section")
	n, err := chapters.Count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		chapter := chapters.Nth(i)
		title, err := chapter.Locator("h2").TextContent()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(title) != chapterTitle {
			continue
		}
		sections := chapter.Locator("div.sections > div")
		m, err := sections.Count()
		if err != nil {
			return nil, err
		}
		for j := 0; j < m; j++ {
			section := sections.Nth(j)
			heading, err := section.Locator("h3 a").TextContent()
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(heading) != sectionTitle {
				continue
			}
			texts, err := section.Locator("div.scores > ol > li").AllTextContents()
			if err != nil {
				return nil, err
			}
			scores := make([]Score, 0, len(texts))
			for _, text := range texts {
				score, err := ParseScore(text)
				if err != nil {
					return nil, err
				}
				scores = append(scores, score)
			}
			return scores, nil
		}
		return nil, fmt.Errorf("chapter %q has no section %q on progress page", chapterTitle, sectionTitle)
	}
	return nil, fmt.Errorf("no chapter %q on progress page", chapterTitle)
}

// VideoPage is the video player in the current unit.
type VideoPage struct {
	session *BrowserSession
}

func NewVideoPage(session *BrowserSession) *VideoPage {
	return &VideoPage{session: session}
}

func (p *VideoPage) IsPlaying() (bool, error) {
	class, err := p.session.Page().Locator("div.video").First().GetAttribute("class")
	if err != nil {
		return false, err
	}
	for _, c := range strings.Fields(class) {
		if c == "is-playing" {
			return true, nil
		}
	}
	return false, nil
}

func (p *VideoPage) Play() error {
	return p.clickControl("a.video_control.play")
}

func (p *VideoPage) Pause() error {
	return p.clickControl("a.video_control.pause")
}

func (p *VideoPage) clickControl(selector string) error {
	locator, err := p.session.waitForVisible(selector)
	if err != nil {
		return err
	}
	return locator.First().Click()
}

func (p *VideoPage) times() (elapsed, duration int, err error) {
	text, err := p.session.Page().Locator("div.vidtime").First().TextContent()
	if err != nil {
		return 0, 0, err
	}
	return ParseVideoTime(text)
}

// ElapsedTime is the playback position in whole seconds.
func (p *VideoPage) ElapsedTime() (int, error) {
	elapsed, _, err := p.times()
	return elapsed, err
}

// Duration is zero until the player has loaded the video.
func (p *VideoPage) Duration() (int, error) {
	_, duration, err := p.times()
	return duration, err
}
