package pages

import (
	"fmt"
	"net/url"

	"github.com/playwright-community/playwright-go"
)

// AutoAuthPage logs in as a newly created user, optionally enrolling them in a course. It
// only works when the LMS has automatic authentication enabled.
type AutoAuthPage struct {
	session  *BrowserSession
	lmsURL   string
	courseID string
	username string
	email    string
	staff    bool
}

func NewAutoAuthPage(session *BrowserSession, lmsURL string) *AutoAuthPage {
	return &AutoAuthPage{session: session, lmsURL: lmsURL}
}

// WithCourse enrolls the user in the course with the given LMS course ID.
func (p *AutoAuthPage) WithCourse(courseID string) *AutoAuthPage {
	p.courseID = courseID
	return p
}

// WithUser logs in as a specific user. Visiting again with the same username logs the same
// user back in.
func (p *AutoAuthPage) WithUser(username, email string) *AutoAuthPage {
	p.username, p.email = username, email
	return p
}

func (p *AutoAuthPage) AsStaff() *AutoAuthPage {
	p.staff = true
	return p
}

func (p *AutoAuthPage) URL() string {
	q := url.Values{}
	if p.courseID != "" {
		q.Set("course_id", p.courseID)
	}
	if p.username != "" {
		q.Set("username", p.username)
	}
	if p.email != "" {
		q.Set("email", p.email)
	}
	if p.staff {
		q.Set("staff", "true")
	}
	u := p.lmsURL + "/auto_auth"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (p *AutoAuthPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	_, err := p.session.waitForVisible("body")
	return err
}

// RegisterPage is the new account form.
type RegisterPage struct {
	session *BrowserSession
	lmsURL  string
}

func NewRegisterPage(session *BrowserSession, lmsURL string) *RegisterPage {
	return &RegisterPage{session: session, lmsURL: lmsURL}
}

func (p *RegisterPage) URL() string {
	return p.lmsURL + "/register"
}

func (p *RegisterPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	return p.waitForForm()
}

func (p *RegisterPage) waitForForm() error {
	_, err := p.session.waitForVisible("form#register-form")
	return err
}

// ProvideInfo fills in the form and accepts the terms of service and honor code.
func (p *RegisterPage) ProvideInfo(email, password, username, fullName string) error {
	page := p.session.Page()
	fields := []struct{ selector, value string }{
		{"input#email", email},
		{"input#password", password},
		{"input#username", username},
		{"input#name", fullName},
	}
	for _, f := range fields {
		if err := page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("could not fill in %s: %w", f.selector, err)
		}
	}
	for _, selector := range []string{"input#tos-yes", "input#honorcode-yes"} {
		if err := page.Locator(selector).Check(); err != nil {
			return fmt.Errorf("could not check %s: %w", selector, err)
		}
	}
	return nil
}

// Submit sends the form and waits for the dashboard the LMS redirects to.
func (p *RegisterPage) Submit() (*DashboardPage, error) {
	if err := p.session.Page().Locator("button#submit").Click(); err != nil {
		return nil, fmt.Errorf("could not submit registration: %w", err)
	}
	dashboard := NewDashboardPage(p.session, p.lmsURL)
	if err := dashboard.waitForPage(); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// DashboardPage lists the courses the user is enrolled in.
type DashboardPage struct {
	session *BrowserSession
	lmsURL  string
}

func NewDashboardPage(session *BrowserSession, lmsURL string) *DashboardPage {
	return &DashboardPage{session: session, lmsURL: lmsURL}
}

func (p *DashboardPage) URL() string {
	return p.lmsURL + "/dashboard"
}

func (p *DashboardPage) Visit() error {
	if err := p.session.visit(p.URL()); err != nil {
		return err
	}
	return p.waitForPage()
}

func (p *DashboardPage) waitForPage() error {
	_, err := p.session.waitForVisible("section.my-courses")
	return err
}

// AvailableCourses returns the display names of the enrolled courses.
func (p *DashboardPage) AvailableCourses() ([]string, error) {
	return p.session.texts("section.info > hgroup > h3 > a")
}

// ChangeLanguage picks a language code, e.g. "eo", in the language settings dialog, then
// waits until the dashboard has reloaded in that language.
func (p *DashboardPage) ChangeLanguage(code string) error {
	page := p.session.Page()
	if err := page.Locator("a.edit-language").Click(); err != nil {
		return fmt.Errorf("could not open language settings: %w", err)
	}
	if _, err := p.session.waitForVisible("select#settings-language-value"); err != nil {
		return err
	}
	if _, err := page.Locator("select#settings-language-value").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{code},
	}); err != nil {
		return fmt.Errorf("could not select language %q: %w", code, err)
	}
	if err := page.Locator("input#submit-lang").Click(); err != nil {
		return fmt.Errorf("could not submit language change: %w", err)
	}
	if err := p.session.waitForAttached(fmt.Sprintf(`html[lang=%q]`, code)); err != nil {
		return err
	}
	return p.waitForPage()
}
