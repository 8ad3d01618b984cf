// Package pages contains page objects for the LMS, driven through Playwright.
//
// A page object knows the URL and markup of one page (or one part of a page, such as the
// tab bar) and exposes what a test needs to read or do there. Page objects hold no state of
// their own beyond the BrowserSession they act on, so several of them can be used together
// on the same session.
package pages
