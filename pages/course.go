package pages

import (
	"fmt"
	"strings"
)

// FindCoursesPage is the LMS front page, which lists every course open for enrollment.
type FindCoursesPage struct {
	session *BrowserSession
	lmsURL  string
}

func NewFindCoursesPage(session *BrowserSession, lmsURL string) *FindCoursesPage {
	return &FindCoursesPage{session: session, lmsURL: lmsURL}
}

func (p *FindCoursesPage) URL() string {
	return p.lmsURL + "/"
}

func (p *FindCoursesPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	_, err := p.session.waitForVisible("section.courses")
	return err
}

// CourseIDs returns the LMS course IDs of the listed courses.
func (p *FindCoursesPage) CourseIDs() ([]string, error) {
	return p.session.attributes("article.course", "data-course-id")
}

func coursePageURL(lmsURL, courseID, section string) string {
	return fmt.Sprintf("%s/courses/%s/%s", lmsURL, courseID, section)
}

// CourseAboutPage describes a course to prospective students.
type CourseAboutPage struct {
	session  *BrowserSession
	lmsURL   string
	courseID string
}

func NewCourseAboutPage(session *BrowserSession, lmsURL, courseID string) *CourseAboutPage {
	return &CourseAboutPage{session: session, lmsURL: lmsURL, courseID: courseID}
}

func (p *CourseAboutPage) URL() string {
	return coursePageURL(p.lmsURL, p.courseID, "about")
}

func (p *CourseAboutPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	_, err := p.session.waitForVisible("section.course-info")
	return err
}

// Register clicks the register button, which leads anonymous users to the registration form.
func (p *CourseAboutPage) Register() (*RegisterPage, error) {
	if err := p.session.Page().Locator("a.register").Click(); err != nil {
		return nil, fmt.Errorf("could not click register button: %w", err)
	}
	register := NewRegisterPage(p.session, p.lmsURL)
	if err := register.waitForForm(); err != nil {
		return nil, err
	}
	return register, nil
}

// CourseInfoPage shows course updates and handouts.
type CourseInfoPage struct {
	session  *BrowserSession
	lmsURL   string
	courseID string
}

func NewCourseInfoPage(session *BrowserSession, lmsURL, courseID string) *CourseInfoPage {
	return &CourseInfoPage{session: session, lmsURL: lmsURL, courseID: courseID}
}

func (p *CourseInfoPage) URL() string {
	return coursePageURL(p.lmsURL, p.courseID, "info")
}

func (p *CourseInfoPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	return p.waitForPage()
}

func (p *CourseInfoPage) waitForPage() error {
	_, err := p.session.waitForVisible("section.updates")
	return err
}

func (p *CourseInfoPage) NumUpdates() (int, error) {
	return p.session.Page().Locator("section.updates section article").Count()
}

// HandoutLinks returns the href of every handout link.
func (p *CourseInfoPage) HandoutLinks() ([]string, error) {
	return p.session.attributes("section.handouts ol li a", "href")
}

// TabNavPage is the row of course tabs shown on every in-course page.
type TabNavPage struct {
	session *BrowserSession
}

func NewTabNavPage(session *BrowserSession) *TabNavPage {
	return &TabNavPage{session: session}
}

func (p *TabNavPage) tabNames() ([]string, error) {
	return p.session.texts("ol.course-tabs li a")
}

// GoToTab clicks the tab with the given name and waits for the next page to load.
func (p *TabNavPage) GoToTab(name string) error {
	names, err := p.tabNames()
	if err != nil {
		return err
	}
	for i, n := range names {
		if tabLabel(n) == name {
			if err := p.session.Page().Locator("ol.course-tabs li a").Nth(i).Click(); err != nil {
				return fmt.Errorf("could not click tab %q: %w", name, err)
			}
			if err := p.session.waitForLoad(); err != nil {
				return err
			}
			return p.session.waitForAttached(fmt.Sprintf("ol.course-tabs li a.active:has-text(%q)", name))
		}
	}
	return fmt.Errorf("no tab named %q, tabs are %v", name, names)
}

// IsOnTab reports whether the named tab is the active one.
func (p *TabNavPage) IsOnTab(name string) (bool, error) {
	active, err := p.session.texts("ol.course-tabs li a.active")
	if err != nil {
		return false, err
	}
	return len(active) == 1 && tabLabel(active[0]) == name, nil
}

// tabLabel drops the screen reader suffix the LMS adds to the active tab.
func tabLabel(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, ", current location"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	return text
}
