package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeoutMS bounds every wait and navigation in a browser session.
const DefaultTimeoutMS = 10000

// Driver owns the Playwright process and one Chromium instance. Each test gets its own
// BrowserSession from it, so cookies never leak between tests.
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch starts Playwright and Chromium. It fails if the Playwright driver or browsers have
// not been installed.
func Launch(headless bool) (*Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start Playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	return &Driver{pw: pw, browser: browser}, nil
}

func (d *Driver) Close() error {
	err := d.browser.Close()
	if stopErr := d.pw.Stop(); err == nil {
		err = stopErr
	}
	return err
}

// NewBrowserSession opens an isolated browser context with a single page.
func (d *Driver) NewBrowserSession() (*BrowserSession, error) {
	ctx, err := d.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	ctx.SetDefaultTimeout(DefaultTimeoutMS)
	ctx.SetDefaultNavigationTimeout(DefaultTimeoutMS)
	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &BrowserSession{context: ctx, page: page}, nil
}

// BrowserSession is one browser context and its page. Page objects created from the same
// session share its cookies and current location.
type BrowserSession struct {
	context playwright.BrowserContext
	page    playwright.Page
}

func (s *BrowserSession) Page() playwright.Page {
	return s.page
}

func (s *BrowserSession) Close() error {
	return s.context.Close()
}

// ClearCookies ends the server-side session, as if the user had closed the browser.
func (s *BrowserSession) ClearCookies() error {
	return s.context.ClearCookies()
}

func (s *BrowserSession) CurrentURL() string {
	return s.page.URL()
}

// IsTextPresent reports whether the text appears anywhere in the current page body.
func (s *BrowserSession) IsTextPresent(text string) (bool, error) {
	body, err := s.page.Locator("body").TextContent()
	if err != nil {
		return false, err
	}
	return strings.Contains(body, text), nil
}

func (s *BrowserSession) visit(url string) error {
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("could not load %s: %w", url, err)
	}
	return nil
}

// waitForVisible waits until the first element matching selector is visible.
func (s *BrowserSession) waitForVisible(selector string) (playwright.Locator, error) {
	locator := s.page.Locator(selector)
	err := locator.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(DefaultTimeoutMS),
	})
	if err != nil {
		return nil, fmt.Errorf("timed out waiting for %q on %s: %w", selector, s.page.URL(), err)
	}
	return locator, nil
}

// waitForAttached waits until an element matching selector is in the DOM, visible or not.
func (s *BrowserSession) waitForAttached(selector string) error {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(DefaultTimeoutMS),
	})
	if err != nil {
		return fmt.Errorf("timed out waiting for %q on %s: %w", selector, s.page.URL(), err)
	}
	return nil
}

func (s *BrowserSession) waitForLoad() error {
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	})
}

// texts returns the trimmed text of every element matching selector, in document order.
func (s *BrowserSession) texts(selector string) ([]string, error) {
	raw, err := s.page.Locator(selector).AllTextContents()
	if err != nil {
		return nil, err
	}
	return trimAll(raw), nil
}

func trimAll(ss []string) []string {
	ret := make([]string, 0, len(ss))
	for _, s := range ss {
		ret = append(ret, strings.TrimSpace(s))
	}
	return ret
}

// attributes returns the named attribute of every element matching selector.
func (s *BrowserSession) attributes(selector, name string) ([]string, error) {
	locator := s.page.Locator(selector)
	n, err := locator.Count()
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v, err := locator.Nth(i).GetAttribute(name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}
